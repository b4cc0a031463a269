// Package testutil provides SQLite-backed fixtures for package tests.
package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/infradesk/infra-desk/internal/database"
	"github.com/infradesk/infra-desk/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var dbSeq atomic.Int64

// NewTestDB returns an isolated, migrated in-memory SQLite database with
// foreign keys enforced
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:infradesk_test_%d?mode=memory&cache=shared&_foreign_keys=on", dbSeq.Add(1))
	db, err := database.Open(database.SQLiteDialector(dsn))
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.AutoMigrate(db))

	t.Cleanup(func() {
		_ = sqlDB.Close()
	})
	return db
}

// Date parses YYYY-MM-DD or fails the test
func Date(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := domain.ParseDate(s)
	require.NoError(t, err)
	return d
}

// DatePtr is Date returning a pointer
func DatePtr(t *testing.T, s string) *time.Time {
	d := Date(t, s)
	return &d
}

// FixedClock returns a clock frozen at the given date
func FixedClock(t *testing.T, s string) domain.Clock {
	d := Date(t, s)
	return func() time.Time { return d }
}

// Scenario is the Kilowott / Gutta Fra Havet hierarchy used across tests
type Scenario struct {
	Partner     *domain.Partner
	Client      *domain.Client
	Project     *domain.Project
	Environment *domain.Environment
	Database    *domain.Resource
	CDN         *domain.Resource
	Issue       *domain.Issue
}

// SeedScenario inserts the Kilowott hierarchy with an "SSL renewal" issue
// (due 2024-01-10, done on 2024-01-15) and no activities
func SeedScenario(t *testing.T, db *gorm.DB) *Scenario {
	t.Helper()

	s := &Scenario{}
	s.Partner = &domain.Partner{Name: "Kilowott", Code: "kilowott", Active: true}
	require.NoError(t, db.Create(s.Partner).Error)

	s.Client = &domain.Client{PartnerID: s.Partner.ID, Name: "Gutta Fra Havet", Code: "gutta", Active: true}
	require.NoError(t, db.Create(s.Client).Error)

	s.Project = &domain.Project{ClientID: s.Client.ID, Name: "Gutta Website", Code: "gutta-web", IsActive: true}
	require.NoError(t, db.Create(s.Project).Error)

	s.Environment = &domain.Environment{ProjectID: s.Project.ID, Name: "Prod EU", EnvType: domain.EnvTypeProd, IsActive: true}
	require.NoError(t, db.Create(s.Environment).Error)

	s.Database = &domain.Resource{EnvironmentID: s.Environment.ID, Name: "gutta-db", ResourceType: domain.ResourceTypeDB, IsActive: true}
	require.NoError(t, db.Create(s.Database).Error)

	s.CDN = &domain.Resource{EnvironmentID: s.Environment.ID, Name: "gutta-cdn", ResourceType: domain.ResourceTypeBucket, IsActive: true}
	require.NoError(t, db.Create(s.CDN).Error)

	envID := s.Environment.ID
	s.Issue = &domain.Issue{
		ProjectID:     s.Project.ID,
		EnvironmentID: &envID,
		Title:         "SSL renewal",
		Status:        domain.IssueStatusDone,
		ActivityDate:  Date(t, "2024-01-15"),
		DueDate:       DatePtr(t, "2024-01-10"),
		EstimateHours: decimal.RequireFromString("2.50"),
	}
	require.NoError(t, db.Create(s.Issue).Error)

	return s
}

// AddActivity logs an activity against the issue
func AddActivity(t *testing.T, db *gorm.DB, issueID uuid.UUID, date, note string) *domain.InfraActivity {
	t.Helper()
	a := &domain.InfraActivity{IssueID: issueID, ActivityDate: Date(t, date), Note: note}
	require.NoError(t, db.Create(a).Error)
	return a
}
