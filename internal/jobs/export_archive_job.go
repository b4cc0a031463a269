package jobs

import (
	"context"
	"time"

	"github.com/infradesk/infra-desk/internal/service"
	"go.uber.org/zap"
)

// ExportArchiveJobName is the scheduler name of the export archive job
const ExportArchiveJobName = "export_archive"

// DefaultArchiveTimeout bounds a single archive run
const DefaultArchiveTimeout = 15 * time.Minute

// Archiver renders the infra data export into a store.
// *service.ExportService satisfies it.
type Archiver interface {
	Archive(ctx context.Context, store service.ArchiveStore, prefix string) (string, *service.ExportStats, error)
}

// ExportArchiveJob periodically stores a copy of the infra data export
type ExportArchiveJob struct {
	archiver Archiver
	store    service.ArchiveStore
	prefix   string
	timeout  time.Duration
	logger   *zap.Logger
}

// NewExportArchiveJob creates a new export archive job.
// The timeout controls how long one run is allowed to take.
func NewExportArchiveJob(archiver Archiver, store service.ArchiveStore, prefix string, logger *zap.Logger, timeout time.Duration) *ExportArchiveJob {
	if timeout <= 0 {
		timeout = DefaultArchiveTimeout
	}
	return &ExportArchiveJob{
		archiver: archiver,
		store:    store,
		prefix:   prefix,
		timeout:  timeout,
		logger:   logger,
	}
}

// Run executes one archive. Failures are logged; the next tick tries again.
func (j *ExportArchiveJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	start := time.Now()
	key, stats, err := j.archiver.Archive(ctx, j.store, j.prefix)
	if err != nil {
		j.logger.Error("export archive failed",
			zap.Error(err),
			zap.Duration("duration", time.Since(start)))
		return
	}

	j.logger.Info("export archive completed",
		zap.String("key", key),
		zap.Int("issues", stats.Issues),
		zap.Int("rows", stats.Rows),
		zap.Duration("duration", time.Since(start)))
}

// RegisterExportArchiveJob registers the export archive job with the scheduler.
// cronExpr is a six-field expression, e.g. "0 0 2 * * *" for 02:00 every day.
func RegisterExportArchiveJob(scheduler *Scheduler, archiver Archiver, store service.ArchiveStore, prefix string, logger *zap.Logger, cronExpr string) error {
	job := NewExportArchiveJob(archiver, store, prefix, logger, DefaultArchiveTimeout)
	return scheduler.AddJob(ExportArchiveJobName, cronExpr, job.Run)
}
