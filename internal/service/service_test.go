package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/infradesk/infra-desk/internal/domain"
	"github.com/infradesk/infra-desk/internal/repository"
	"github.com/infradesk/infra-desk/internal/service"
	"github.com/infradesk/infra-desk/internal/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type services struct {
	partners *service.PartnerService
	clients  *service.ClientService
	projects *service.ProjectService
	envs     *service.EnvironmentService
	servers  *service.ServerService
	users    *service.UserService
	issues   *service.IssueService
	acts     *service.ActivityService
}

func newServices(db *gorm.DB, clock domain.Clock) services {
	logger := zap.NewNop()
	partnerRepo := repository.NewPartnerRepository(db)
	clientRepo := repository.NewClientRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	envRepo := repository.NewEnvironmentRepository(db)
	serverRepo := repository.NewServerRepository(db)
	resourceRepo := repository.NewResourceRepository(db)
	userRepo := repository.NewUserRepository(db)
	profileRepo := repository.NewUserProfileRepository(db)
	issueRepo := repository.NewIssueRepository(db)
	activityRepo := repository.NewActivityRepository(db)

	return services{
		partners: service.NewPartnerService(partnerRepo, logger),
		clients:  service.NewClientService(clientRepo, partnerRepo, logger),
		projects: service.NewProjectService(projectRepo, clientRepo, logger),
		envs:     service.NewEnvironmentService(envRepo, projectRepo, logger),
		servers:  service.NewServerService(serverRepo, envRepo, logger),
		users:    service.NewUserService(userRepo, profileRepo, partnerRepo, clientRepo, logger),
		issues:   service.NewIssueService(issueRepo, projectRepo, envRepo, resourceRepo, userRepo, clock, logger),
		acts:     service.NewActivityService(activityRepo, issueRepo, logger),
	}
}

func TestPartnerService_CreateDefaultsActive(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := newServices(db, nil)

	partner, err := svc.partners.Create(context.Background(), &domain.PartnerRequest{
		Name: "Kamsoft",
		Code: "kamsoft",
	})
	require.NoError(t, err)
	assert.True(t, partner.Active)
	assert.Equal(t, "Kamsoft", partner.Label)
	assert.NotEqual(t, uuid.Nil, partner.ID)
}

func TestPartnerService_UpdateKeepsActiveWhenOmitted(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := newServices(db, nil)
	ctx := context.Background()

	inactive := false
	created, err := svc.partners.Create(ctx, &domain.PartnerRequest{Name: "Kamsoft", Code: "kamsoft", Active: &inactive})
	require.NoError(t, err)

	updated, err := svc.partners.Update(ctx, created.ID, &domain.PartnerRequest{Name: "Kamsoft AS", Code: "kamsoft"})
	require.NoError(t, err)
	assert.False(t, updated.Active)
	assert.Equal(t, "Kamsoft AS", updated.Name)
}

func TestClientService_Create(t *testing.T) {
	db := testutil.NewTestDB(t)
	s := testutil.SeedScenario(t, db)
	svc := newServices(db, nil)

	client, err := svc.clients.Create(context.Background(), &domain.ClientRequest{
		PartnerID: s.Partner.ID,
		Name:      "Havbruk",
		Code:      "havbruk",
	})
	require.NoError(t, err)
	assert.Equal(t, "Kilowott / Havbruk", client.Label)
	assert.Equal(t, "Kilowott", client.PartnerName)
}

func TestClientService_Create_MissingPartner(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := newServices(db, nil)

	_, err := svc.clients.Create(context.Background(), &domain.ClientRequest{
		PartnerID: uuid.New(),
		Name:      "Orphan",
		Code:      "orphan",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestClientService_Create_DuplicateCode(t *testing.T) {
	db := testutil.NewTestDB(t)
	s := testutil.SeedScenario(t, db)
	svc := newServices(db, nil)

	_, err := svc.clients.Create(context.Background(), &domain.ClientRequest{
		PartnerID: s.Partner.ID,
		Name:      "Another Gutta",
		Code:      "gutta",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrDuplicateKey))

	var dup *domain.DuplicateKeyError
	require.True(t, errors.As(err, &dup))
	assert.Equal(t, []string{"partner_id", "code"}, dup.Fields)
}

func TestEnvironmentService_CreateDefaultsType(t *testing.T) {
	db := testutil.NewTestDB(t)
	s := testutil.SeedScenario(t, db)
	svc := newServices(db, nil)

	env, err := svc.envs.Create(context.Background(), &domain.EnvironmentRequest{
		ProjectID: s.Project.ID,
		Name:      "Sandbox",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.EnvTypeDev, env.EnvType)
	assert.Equal(t, "Kilowott / Gutta Fra Havet / Gutta Website / Sandbox (dev)", env.Label)
}

func TestServerService_CreateDefaults(t *testing.T) {
	db := testutil.NewTestDB(t)
	s := testutil.SeedScenario(t, db)
	svc := newServices(db, nil)

	server, err := svc.servers.Create(context.Background(), &domain.ServerRequest{
		EnvironmentID: s.Environment.ID,
		Name:          "web-1",
		IPAddress:     "10.0.0.5",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.ProviderOther, server.Provider)
	assert.Equal(t, 22, server.SSHPort)
	assert.Equal(t, "web-1 (10.0.0.5)", server.Label)
}

func TestIssueService_DelayDays(t *testing.T) {
	db := testutil.NewTestDB(t)
	s := testutil.SeedScenario(t, db)
	svc := newServices(db, testutil.FixedClock(t, "2024-03-01"))

	issue, err := svc.issues.GetByID(context.Background(), s.Issue.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, issue.DelayDays)
	assert.Equal(t, "Kilowott / Gutta Fra Havet / Gutta Website - SSL renewal", issue.Label)
}

func TestIssueService_DelayDaysOpenIssueUsesClock(t *testing.T) {
	db := testutil.NewTestDB(t)
	s := testutil.SeedScenario(t, db)
	svc := newServices(db, testutil.FixedClock(t, "2024-01-20"))

	issue, err := svc.issues.Create(context.Background(), &domain.IssueRequest{
		ProjectID:    s.Project.ID,
		Title:        "Rotate keys",
		ActivityDate: "2024-01-05",
		DueDate:      "2024-01-10",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.IssueStatusOpen, issue.Status)
	assert.Equal(t, domain.IssuePriorityMedium, issue.Priority)
	assert.Equal(t, 10, issue.DelayDays)
}

func TestIssueService_Create_InvalidDate(t *testing.T) {
	db := testutil.NewTestDB(t)
	s := testutil.SeedScenario(t, db)
	svc := newServices(db, nil)

	_, err := svc.issues.Create(context.Background(), &domain.IssueRequest{
		ProjectID:    s.Project.ID,
		Title:        "Bad date",
		ActivityDate: "2024-02-30",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidValue))
}

func TestIssueService_Create_NegativeHours(t *testing.T) {
	db := testutil.NewTestDB(t)
	s := testutil.SeedScenario(t, db)
	svc := newServices(db, nil)

	_, err := svc.issues.Create(context.Background(), &domain.IssueRequest{
		ProjectID:     s.Project.ID,
		Title:         "Negative",
		ActivityDate:  "2024-02-01",
		EstimateHours: decimal.NewFromInt(-1),
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidValue))
}

func TestIssueService_Create_UnknownAssignee(t *testing.T) {
	db := testutil.NewTestDB(t)
	s := testutil.SeedScenario(t, db)
	svc := newServices(db, nil)

	ghost := uuid.New()
	_, err := svc.issues.Create(context.Background(), &domain.IssueRequest{
		ProjectID:    s.Project.ID,
		Title:        "Ghost",
		ActivityDate: "2024-02-01",
		AssignedToID: &ghost,
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestIssueService_ListFilterByStatus(t *testing.T) {
	db := testutil.NewTestDB(t)
	s := testutil.SeedScenario(t, db)
	svc := newServices(db, testutil.FixedClock(t, "2024-03-01"))
	ctx := context.Background()

	_, err := svc.issues.Create(ctx, &domain.IssueRequest{
		ProjectID:    s.Project.ID,
		Title:        "Still open",
		ActivityDate: "2024-02-01",
	})
	require.NoError(t, err)

	done := domain.IssueStatusDone
	page, err := svc.issues.List(ctx, 1, 20, repository.IssueFilter{Status: &done})
	require.NoError(t, err)
	assert.Equal(t, int64(1), page.Total)

	issues := page.Data.([]domain.IssueDTO)
	require.Len(t, issues, 1)
	assert.Equal(t, "SSL renewal", issues[0].Title)
}

func TestActivityService_CreateAndList(t *testing.T) {
	db := testutil.NewTestDB(t)
	s := testutil.SeedScenario(t, db)
	svc := newServices(db, nil)
	ctx := context.Background()

	for _, date := range []string{"2024-01-12", "2024-01-14"} {
		_, err := svc.acts.Create(ctx, &domain.InfraActivityRequest{
			IssueID:      s.Issue.ID,
			ActivityDate: date,
			Status:       "done",
			HoursSpent:   decimal.RequireFromString("1.25"),
		})
		require.NoError(t, err)
	}

	page, err := svc.acts.List(ctx, 1, 20, &s.Issue.ID)
	require.NoError(t, err)
	acts := page.Data.([]domain.InfraActivityDTO)
	require.Len(t, acts, 2)
	assert.Equal(t, "2024-01-14", acts[0].ActivityDate)
	assert.Equal(t, "2024-01-14 - SSL renewal", acts[0].Label)
}

func TestActivityService_ListUnknownIssue(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := newServices(db, nil)

	missing := uuid.New()
	_, err := svc.acts.List(context.Background(), 1, 20, &missing)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestUserService_OneProfilePerUser(t *testing.T) {
	db := testutil.NewTestDB(t)
	s := testutil.SeedScenario(t, db)
	svc := newServices(db, nil)
	ctx := context.Background()

	user, err := svc.users.Create(ctx, &domain.UserRequest{Username: "ops", Email: "ops@kilowott.com"})
	require.NoError(t, err)

	profile, err := svc.users.CreateProfile(ctx, &domain.UserProfileRequest{UserID: user.ID, PartnerID: &s.Partner.ID})
	require.NoError(t, err)
	assert.Equal(t, "ops - No role", profile.Label)

	_, err = svc.users.CreateProfile(ctx, &domain.UserProfileRequest{UserID: user.ID, Role: "Engineer"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrDuplicateKey))
}

func TestUserService_CreateProfile_UnknownClient(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := newServices(db, nil)
	ctx := context.Background()

	user, err := svc.users.Create(ctx, &domain.UserRequest{Username: "ops"})
	require.NoError(t, err)

	missing := uuid.New()
	_, err = svc.users.CreateProfile(ctx, &domain.UserProfileRequest{UserID: user.ID, ClientID: &missing})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestPaginationMetadata(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := newServices(db, nil)
	ctx := context.Background()

	for _, code := range []string{"a", "b", "c", "d", "e"} {
		_, err := svc.partners.Create(ctx, &domain.PartnerRequest{Name: "Partner " + code, Code: code})
		require.NoError(t, err)
	}

	page, err := svc.partners.List(ctx, 2, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(5), page.Total)
	assert.Equal(t, 3, page.TotalPages)
	assert.Equal(t, 2, page.Page)

	partners := page.Data.([]domain.PartnerDTO)
	require.Len(t, partners, 2)
	assert.Equal(t, "Partner c", partners[0].Name)
}
