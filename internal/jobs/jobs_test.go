package jobs

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/infradesk/infra-desk/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeArchiver struct {
	calls  int
	prefix string
	err    error
}

func (f *fakeArchiver) Archive(ctx context.Context, store service.ArchiveStore, prefix string) (string, *service.ExportStats, error) {
	f.calls++
	f.prefix = prefix
	if f.err != nil {
		return "", nil, f.err
	}
	return prefix + "/infra_desk_export.csv", &service.ExportStats{Issues: 1, Rows: 1}, nil
}

type nopStore struct{}

func (nopStore) Put(ctx context.Context, key, contentType string, data io.Reader) (int64, error) {
	return 0, nil
}

func TestScheduler_AddAndRemoveJob(t *testing.T) {
	s := NewScheduler(zap.NewNop())

	require.NoError(t, s.AddJob("b", "0 0 2 * * *", func() {}))
	require.NoError(t, s.AddJob("a", "@every 1h", func() {}))
	assert.Equal(t, []string{"a", "b"}, s.JobNames())

	assert.Error(t, s.AddJob("a", "@hourly", func() {}))
	assert.Error(t, s.AddJob("c", "not a cron", func() {}))

	require.NoError(t, s.RemoveJob("a"))
	assert.Equal(t, []string{"b"}, s.JobNames())
	assert.Error(t, s.RemoveJob("a"))
}

func TestScheduler_StartStop(t *testing.T) {
	s := NewScheduler(zap.NewNop())
	require.NoError(t, s.AddJob("noop", "@every 1h", func() {}))

	s.Start()
	<-s.Stop().Done()
}

func TestExportArchiveJob_Run(t *testing.T) {
	archiver := &fakeArchiver{}
	job := NewExportArchiveJob(archiver, nopStore{}, "exports", zap.NewNop(), 0)

	job.Run()
	assert.Equal(t, 1, archiver.calls)
	assert.Equal(t, "exports", archiver.prefix)
	assert.Equal(t, DefaultArchiveTimeout, job.timeout)
}

func TestExportArchiveJob_RunSurvivesFailure(t *testing.T) {
	archiver := &fakeArchiver{err: errors.New("storage offline")}
	job := NewExportArchiveJob(archiver, nopStore{}, "exports", zap.NewNop(), 0)

	assert.NotPanics(t, job.Run)
	assert.Equal(t, 1, archiver.calls)
}

func TestRegisterExportArchiveJob(t *testing.T) {
	s := NewScheduler(zap.NewNop())
	require.NoError(t, RegisterExportArchiveJob(s, &fakeArchiver{}, nopStore{}, "exports", zap.NewNop(), "0 0 2 * * *"))
	assert.Equal(t, []string{ExportArchiveJobName}, s.JobNames())
}
