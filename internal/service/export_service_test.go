package service_test

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/infradesk/infra-desk/internal/domain"
	"github.com/infradesk/infra-desk/internal/repository"
	"github.com/infradesk/infra-desk/internal/service"
	"github.com/infradesk/infra-desk/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newExportService(db *gorm.DB, batchSize int, loc *time.Location) *service.ExportService {
	return service.NewExportService(
		repository.NewIssueRepository(db),
		repository.NewResourceRepository(db),
		repository.NewActivityRepository(db),
		batchSize,
		loc,
		zap.NewNop(),
	)
}

func exportRecords(t *testing.T, svc *service.ExportService) ([][]string, *service.ExportStats) {
	t.Helper()
	var buf bytes.Buffer
	stats, err := svc.WriteCSV(context.Background(), &buf)
	require.NoError(t, err)

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	return records, stats
}

func TestExportService_Header(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := newExportService(db, 0, nil)

	var buf bytes.Buffer
	_, err := svc.WriteCSV(context.Background(), &buf)
	require.NoError(t, err)
	assert.Equal(t,
		"Partner,Client,Project,Environment,Resource,Issue Title,Status,Updated Date,Handled By,Estimated Hour,Actual Hour\n",
		buf.String())
}

func TestExportService_IssueWithoutActivities(t *testing.T) {
	db := testutil.NewTestDB(t)
	testutil.SeedScenario(t, db)
	svc := newExportService(db, 0, nil)

	records, stats := exportRecords(t, svc)
	require.Len(t, records, 2)

	row := records[1]
	assert.Equal(t, "Kilowott", row[0])
	assert.Equal(t, "Gutta Fra Havet", row[1])
	assert.Equal(t, "Gutta Website", row[2])
	assert.Equal(t, "Prod EU", row[3])
	assert.Equal(t, "gutta-db, gutta-cdn", row[4])
	assert.Equal(t, "SSL renewal", row[5])
	assert.Equal(t, "done", row[6])
	assert.NotEmpty(t, row[7])
	assert.Equal(t, []string{"", "", ""}, row[8:])

	assert.Equal(t, 1, stats.Issues)
	assert.Equal(t, 1, stats.Rows)
	assert.Equal(t, 0, stats.Incomplete)
}

func TestExportService_OneRowPerActivity(t *testing.T) {
	db := testutil.NewTestDB(t)
	s := testutil.SeedScenario(t, db)
	for _, date := range []string{"2024-01-11", "2024-01-12", "2024-01-13"} {
		testutil.AddActivity(t, db, s.Issue.ID, date, "renewal step")
	}
	svc := newExportService(db, 0, nil)

	records, stats := exportRecords(t, svc)
	require.Len(t, records, 4)
	for _, row := range records[1:] {
		assert.Equal(t, records[1][0:8], row[0:8])
		assert.Equal(t, "SSL renewal", row[5])
		assert.Equal(t, "gutta-db, gutta-cdn", row[4])
		assert.Equal(t, []string{"", "", ""}, row[8:])
	}
	assert.Equal(t, 3, stats.Rows)
	assert.Equal(t, 3, stats.Incomplete)
	assert.Equal(t, 0, stats.Degraded)
}

func TestExportService_IssueWithoutEnvironment(t *testing.T) {
	db := testutil.NewTestDB(t)
	s := testutil.SeedScenario(t, db)
	require.NoError(t, db.Delete(&domain.Environment{}, "id = ?", s.Environment.ID).Error)
	svc := newExportService(db, 0, nil)

	records, _ := exportRecords(t, svc)
	require.Len(t, records, 2)
	assert.Equal(t, "Gutta Website", records[1][2])
	assert.Equal(t, "", records[1][3])
	assert.Equal(t, "", records[1][4])
}

func TestExportService_UpdatedDateInConfiguredZone(t *testing.T) {
	db := testutil.NewTestDB(t)
	s := testutil.SeedScenario(t, db)
	updated := time.Date(2024, 1, 15, 23, 30, 0, 0, time.UTC)
	require.NoError(t, db.Model(&domain.Issue{}).Where("id = ?", s.Issue.ID).UpdateColumn("updated_at", updated).Error)

	records, _ := exportRecords(t, newExportService(db, 0, nil))
	assert.Equal(t, "2024-01-15 23:30", records[1][7])

	records, _ = exportRecords(t, newExportService(db, 0, time.FixedZone("CET", 3600)))
	assert.Equal(t, "2024-01-16 00:30", records[1][7])
}

func TestExportService_Batches(t *testing.T) {
	db := testutil.NewTestDB(t)
	s := testutil.SeedScenario(t, db)
	for i := 0; i < 6; i++ {
		issue := &domain.Issue{
			ProjectID:    s.Project.ID,
			Title:        fmt.Sprintf("Task %d", i),
			ActivityDate: testutil.Date(t, "2024-02-01"),
		}
		require.NoError(t, db.Create(issue).Error)
		if i%2 == 0 {
			testutil.AddActivity(t, db, issue.ID, "2024-02-02", "first")
			testutil.AddActivity(t, db, issue.ID, "2024-02-03", "second")
		}
	}

	records, stats := exportRecords(t, newExportService(db, 2, nil))
	assert.Equal(t, 7, stats.Issues)
	// 3 issues with two activities, 4 without any
	assert.Equal(t, 10, stats.Rows)
	assert.Len(t, records, 11)
}

type memoryStore struct {
	objects map[string][]byte
}

func (m *memoryStore) Put(ctx context.Context, key string, contentType string, data io.Reader) (int64, error) {
	b, err := io.ReadAll(data)
	if err != nil {
		return 0, err
	}
	if m.objects == nil {
		m.objects = make(map[string][]byte)
	}
	m.objects[key] = b
	return int64(len(b)), nil
}

func TestExportService_Archive(t *testing.T) {
	db := testutil.NewTestDB(t)
	testutil.SeedScenario(t, db)
	svc := newExportService(db, 0, nil).WithClock(testutil.FixedClock(t, "2024-03-01"))
	store := &memoryStore{}

	key, stats, err := svc.Archive(context.Background(), store, "exports")
	require.NoError(t, err)
	assert.Equal(t, "exports/infra_desk_export_20240301T000000Z.csv", key)
	assert.Equal(t, 1, stats.Rows)

	records, err := csv.NewReader(bytes.NewReader(store.objects[key])).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, domain.ExportHeader, records[0])
}

func TestArchiveKey(t *testing.T) {
	ts := time.Date(2024, 3, 1, 2, 0, 5, 0, time.UTC)
	assert.Equal(t, "infra_desk_export_20240301T020005Z.csv", service.ArchiveKey("", ts))
	assert.Equal(t, "a/b/infra_desk_export_20240301T020005Z.csv", service.ArchiveKey("a/b/", ts))
}
