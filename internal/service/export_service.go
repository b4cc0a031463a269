package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/infradesk/infra-desk/internal/domain"
	"github.com/infradesk/infra-desk/internal/metrics"
	"github.com/infradesk/infra-desk/internal/repository"
	"go.uber.org/zap"
)

// DefaultExportBatchSize bounds the number of issues held in memory at once
const DefaultExportBatchSize = 500

const archiveTimestampLayout = "20060102T150405Z"

// ArchiveStore persists a rendered export under a key
type ArchiveStore interface {
	Put(ctx context.Context, key string, contentType string, data io.Reader) (int64, error)
}

// ExportStats summarizes one export run
type ExportStats struct {
	Issues     int
	Rows       int
	Degraded   int
	Incomplete int
}

type ExportService struct {
	issueRepo    *repository.IssueRepository
	resourceRepo *repository.ResourceRepository
	activityRepo *repository.ActivityRepository
	batchSize    int
	location     *time.Location
	clock        domain.Clock
	logger       *zap.Logger
}

func NewExportService(
	issueRepo *repository.IssueRepository,
	resourceRepo *repository.ResourceRepository,
	activityRepo *repository.ActivityRepository,
	batchSize int,
	location *time.Location,
	logger *zap.Logger,
) *ExportService {
	if batchSize < 1 {
		batchSize = DefaultExportBatchSize
	}
	if location == nil {
		location = time.UTC
	}
	return &ExportService{
		issueRepo:    issueRepo,
		resourceRepo: resourceRepo,
		activityRepo: activityRepo,
		batchSize:    batchSize,
		location:     location,
		clock:        domain.SystemClock,
		logger:       logger,
	}
}

// WithClock replaces the clock used for archive timestamps
func (s *ExportService) WithClock(clock domain.Clock) *ExportService {
	s.clock = clock
	return s
}

// WriteCSV streams the flattened Issue x Activity export to w. Rows are
// flushed after every batch, so a failure mid-way leaves a truncated file.
func (s *ExportService) WriteCSV(ctx context.Context, w io.Writer) (*ExportStats, error) {
	stats := &ExportStats{}
	cw := csv.NewWriter(w)

	if err := cw.Write(domain.ExportHeader); err != nil {
		return stats, fmt.Errorf("failed to write export header: %w", err)
	}

	err := s.issueRepo.FindInBatches(ctx, s.batchSize, func(batch []domain.Issue) error {
		if err := s.writeBatch(ctx, cw, batch, stats); err != nil {
			return err
		}
		cw.Flush()
		return cw.Error()
	})
	if err != nil {
		return stats, fmt.Errorf("failed to export issues: %w", err)
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return stats, fmt.Errorf("failed to flush export: %w", err)
	}

	metrics.ExportRows.Add(float64(stats.Rows))
	s.logger.Info("infra data exported",
		zap.Int("issues", stats.Issues),
		zap.Int("rows", stats.Rows),
		zap.Int("degraded", stats.Degraded),
		zap.Int("incomplete", stats.Incomplete))
	return stats, nil
}

func (s *ExportService) writeBatch(ctx context.Context, cw *csv.Writer, batch []domain.Issue, stats *ExportStats) error {
	issueIDs := make([]uuid.UUID, 0, len(batch))
	envIDs := make([]uuid.UUID, 0, len(batch))
	seenEnv := make(map[uuid.UUID]struct{})
	for _, issue := range batch {
		issueIDs = append(issueIDs, issue.ID)
		if issue.EnvironmentID == nil {
			continue
		}
		if _, ok := seenEnv[*issue.EnvironmentID]; !ok {
			seenEnv[*issue.EnvironmentID] = struct{}{}
			envIDs = append(envIDs, *issue.EnvironmentID)
		}
	}

	resources, err := s.resourceRepo.ListByEnvironments(ctx, envIDs)
	if err != nil {
		return fmt.Errorf("failed to load resources: %w", err)
	}
	activities, err := s.activityRepo.ListByIssues(ctx, issueIDs)
	if err != nil {
		return fmt.Errorf("failed to load activities: %w", err)
	}

	for i := range batch {
		issue := &batch[i]
		stats.Issues++

		base := s.issueRow(issue, resources, stats)
		acts := activities[issue.ID]
		if len(acts) == 0 {
			if err := cw.Write(base.Record()); err != nil {
				return err
			}
			stats.Rows++
			continue
		}

		for j := range acts {
			row := base
			row.ActivityExportFields = acts[j].ExportFields()
			if !row.Complete() {
				stats.Incomplete++
				metrics.ExportDegraded.WithLabelValues("missing_activity_fields").Inc()
				s.logger.Debug("export row incomplete",
					zap.String("issue_id", issue.ID.String()),
					zap.String("activity_id", acts[j].ID.String()),
					zap.Error(domain.ErrExportIncomplete))
			}
			if err := cw.Write(row.Record()); err != nil {
				return err
			}
			stats.Rows++
		}
	}
	return nil
}

// issueRow fills the issue-level columns. A broken project/client/partner
// chain leaves the affected names blank.
func (s *ExportService) issueRow(issue *domain.Issue, resources map[uuid.UUID][]domain.Resource, stats *ExportStats) domain.ExportRow {
	row := domain.ExportRow{
		IssueTitle: issue.Title,
		Status:     string(issue.Status),
	}
	if !issue.UpdatedAt.IsZero() {
		row.UpdatedDate = issue.UpdatedAt.In(s.location).Format(domain.ExportUpdatedLayout)
	}

	reason := ""
	switch {
	case issue.Project == nil:
		reason = "missing_project"
	case issue.Project.Client == nil:
		row.Project = issue.Project.Name
		reason = "missing_client"
	case issue.Project.Client.Partner == nil:
		row.Project = issue.Project.Name
		row.Client = issue.Project.Client.Name
		reason = "missing_partner"
	default:
		row.Project = issue.Project.Name
		row.Client = issue.Project.Client.Name
		row.Partner = issue.Project.Client.Partner.Name
	}
	if reason != "" {
		stats.Degraded++
		metrics.ExportDegraded.WithLabelValues(reason).Inc()
		s.logger.Warn("export reference chain broken",
			zap.String("issue_id", issue.ID.String()),
			zap.String("reason", reason),
			zap.Error(domain.ErrDegraded))
	}

	if issue.EnvironmentID != nil {
		if issue.Environment != nil {
			row.Environment = issue.Environment.Name
		}
		envResources := resources[*issue.EnvironmentID]
		names := make([]string, len(envResources))
		for i, r := range envResources {
			names[i] = r.Name
		}
		row.Resources = strings.Join(names, ", ")
	}
	return row
}

// ArchiveKey is the storage key of an archive taken at t
func ArchiveKey(prefix string, t time.Time) string {
	name := strings.TrimSuffix(domain.ExportFilename, ".csv") + "_" + t.UTC().Format(archiveTimestampLayout) + ".csv"
	if prefix == "" {
		return name
	}
	return path.Join(prefix, name)
}

// Archive renders the export and stores it under prefix
func (s *ExportService) Archive(ctx context.Context, store ArchiveStore, prefix string) (string, *ExportStats, error) {
	var buf bytes.Buffer
	stats, err := s.WriteCSV(ctx, &buf)
	if err != nil {
		metrics.ExportArchives.WithLabelValues("error").Inc()
		return "", stats, err
	}

	key := ArchiveKey(prefix, s.clock())
	size, err := store.Put(ctx, key, "text/csv", &buf)
	if err != nil {
		metrics.ExportArchives.WithLabelValues("error").Inc()
		return "", stats, fmt.Errorf("failed to store export archive: %w", err)
	}

	metrics.ExportArchives.WithLabelValues("success").Inc()
	s.logger.Info("export archived", zap.String("key", key), zap.Int64("bytes", size))
	return key, stats, nil
}
