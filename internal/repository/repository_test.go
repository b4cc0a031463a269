package repository

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/infradesk/infra-desk/internal/domain"
	"github.com/infradesk/infra-desk/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCascadeDelete_PartnerRemovesHierarchy(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	s := testutil.SeedScenario(t, db)

	server := &domain.Server{EnvironmentID: s.Environment.ID, Name: "web-1", IPAddress: "10.0.0.5"}
	require.NoError(t, NewServerRepository(db).Create(ctx, server))

	resID := s.Database.ID
	s.Issue.ResourceID = &resID
	require.NoError(t, NewIssueRepository(db).Update(ctx, s.Issue))

	require.NoError(t, NewPartnerRepository(db).Delete(ctx, s.Partner.ID))

	_, err := NewClientRepository(db).GetByID(ctx, s.Client.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = NewProjectRepository(db).GetByID(ctx, s.Project.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = NewEnvironmentRepository(db).GetByID(ctx, s.Environment.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = NewServerRepository(db).GetByID(ctx, server.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = NewResourceRepository(db).GetByID(ctx, s.CDN.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// Issues are owned by the project, so they go too
	_, err = NewIssueRepository(db).GetByID(ctx, s.Issue.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCascadeDelete_EnvironmentClearsIssueLinks(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	s := testutil.SeedScenario(t, db)
	issues := NewIssueRepository(db)

	resID := s.Database.ID
	s.Issue.ResourceID = &resID
	require.NoError(t, issues.Update(ctx, s.Issue))

	require.NoError(t, NewEnvironmentRepository(db).Delete(ctx, s.Environment.ID))

	issue, err := issues.GetByID(ctx, s.Issue.ID)
	require.NoError(t, err)
	assert.Nil(t, issue.EnvironmentID)
	assert.Nil(t, issue.ResourceID)
	assert.Equal(t, "SSL renewal", issue.Title)
}

func TestCascadeDelete_IssueRemovesActivities(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	s := testutil.SeedScenario(t, db)
	a := testutil.AddActivity(t, db, s.Issue.ID, "2024-01-15", "Renewed certificate")

	require.NoError(t, NewIssueRepository(db).Delete(ctx, s.Issue.ID))

	_, err := NewActivityRepository(db).GetByID(ctx, a.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSetNull_UserDeleteClearsIssueRoles(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	s := testutil.SeedScenario(t, db)
	users := NewUserRepository(db)
	profiles := NewUserProfileRepository(db)

	pm := &domain.User{Username: "pm", Email: "pm@example.com", IsActive: true}
	require.NoError(t, users.Create(ctx, pm))
	profile := &domain.UserProfile{UserID: pm.ID, PartnerID: &s.Partner.ID, Role: "Project manager"}
	require.NoError(t, profiles.Create(ctx, profile))

	s.Issue.ProjectManagerID = &pm.ID
	s.Issue.AssignedToID = &pm.ID
	require.NoError(t, NewIssueRepository(db).Update(ctx, s.Issue))

	require.NoError(t, users.Delete(ctx, pm.ID))

	issue, err := NewIssueRepository(db).GetByID(ctx, s.Issue.ID)
	require.NoError(t, err)
	assert.Nil(t, issue.ProjectManagerID)
	assert.Nil(t, issue.AssignedToID)

	_, err = profiles.GetByID(ctx, profile.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSetNull_PartnerDeleteClearsProfileLink(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	s := testutil.SeedScenario(t, db)

	u := &domain.User{Username: "ops"}
	require.NoError(t, NewUserRepository(db).Create(ctx, u))
	profile := &domain.UserProfile{UserID: u.ID, PartnerID: &s.Partner.ID, ClientID: &s.Client.ID}
	require.NoError(t, NewUserProfileRepository(db).Create(ctx, profile))

	require.NoError(t, NewPartnerRepository(db).Delete(ctx, s.Partner.ID))

	got, err := NewUserProfileRepository(db).GetByID(ctx, profile.ID)
	require.NoError(t, err)
	assert.Nil(t, got.PartnerID)
	assert.Nil(t, got.ClientID)
}

func TestDuplicateKey(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	s := testutil.SeedScenario(t, db)

	t.Run("partner code", func(t *testing.T) {
		err := NewPartnerRepository(db).Create(ctx, &domain.Partner{Name: "Other", Code: "kilowott"})
		var dup *domain.DuplicateKeyError
		require.True(t, errors.As(err, &dup), "got %v", err)
		assert.Equal(t, "partner", dup.Entity)
		assert.Equal(t, []string{"code"}, dup.Fields)
	})

	t.Run("client code within partner", func(t *testing.T) {
		err := NewClientRepository(db).Create(ctx, &domain.Client{PartnerID: s.Partner.ID, Name: "Dup", Code: "gutta"})
		var dup *domain.DuplicateKeyError
		require.True(t, errors.As(err, &dup), "got %v", err)
		assert.Equal(t, []string{"partner_id", "code"}, dup.Fields)
	})

	t.Run("client code reused under another partner", func(t *testing.T) {
		other := &domain.Partner{Name: "Kamsoft", Code: "kamsoft"}
		require.NoError(t, NewPartnerRepository(db).Create(ctx, other))
		err := NewClientRepository(db).Create(ctx, &domain.Client{PartnerID: other.ID, Name: "Gutta", Code: "gutta"})
		assert.NoError(t, err)
	})

	t.Run("environment name within project", func(t *testing.T) {
		err := NewEnvironmentRepository(db).Create(ctx, &domain.Environment{ProjectID: s.Project.ID, Name: "Prod EU"})
		assert.ErrorIs(t, err, domain.ErrDuplicateKey)
	})

	t.Run("one profile per user", func(t *testing.T) {
		u := &domain.User{Username: "solo"}
		require.NoError(t, NewUserRepository(db).Create(ctx, u))
		profiles := NewUserProfileRepository(db)
		require.NoError(t, profiles.Create(ctx, &domain.UserProfile{UserID: u.ID}))
		assert.ErrorIs(t, profiles.Create(ctx, &domain.UserProfile{UserID: u.ID}), domain.ErrDuplicateKey)
	})
}

func TestInvalidValue(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	s := testutil.SeedScenario(t, db)

	err := NewServerRepository(db).Create(ctx, &domain.Server{EnvironmentID: s.Environment.ID, Name: "x", IPAddress: "10.0.0.1", Provider: "hetzner"})
	var invalid *domain.InvalidValueError
	require.True(t, errors.As(err, &invalid), "got %v", err)
	assert.Equal(t, "provider", invalid.Field)
	assert.Equal(t, domain.ServerProviderValues, invalid.Allowed)
}

func TestMissingParentIsNotFound(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()

	err := NewClientRepository(db).Create(ctx, &domain.Client{PartnerID: uuid.New(), Name: "Orphan", Code: "orphan"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDeleteMissingIsNotFound(t *testing.T) {
	db := testutil.NewTestDB(t)
	err := NewPartnerRepository(db).Delete(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestIssueUpdateRefreshesUpdatedAt(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	s := testutil.SeedScenario(t, db)
	issues := NewIssueRepository(db)

	before, err := issues.GetByID(ctx, s.Issue.ID)
	require.NoError(t, err)
	require.False(t, before.UpdatedAt.IsZero())

	before.Title = "SSL renewal (wildcard)"
	require.NoError(t, issues.Update(ctx, before))

	after, err := issues.GetByID(ctx, s.Issue.ID)
	require.NoError(t, err)
	assert.True(t, after.UpdatedAt.After(s.Issue.UpdatedAt) || after.UpdatedAt.Equal(s.Issue.UpdatedAt))
	assert.Equal(t, "SSL renewal (wildcard)", after.Title)
}

func TestList_DefaultOrdering(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	partners := NewPartnerRepository(db)
	clients := NewClientRepository(db)

	zeta := &domain.Partner{Name: "Zeta", Code: "zeta"}
	alpha := &domain.Partner{Name: "Alpha", Code: "alpha"}
	require.NoError(t, partners.Create(ctx, zeta))
	require.NoError(t, partners.Create(ctx, alpha))

	require.NoError(t, clients.Create(ctx, &domain.Client{PartnerID: zeta.ID, Name: "Aardvark", Code: "a"}))
	require.NoError(t, clients.Create(ctx, &domain.Client{PartnerID: alpha.ID, Name: "Yak", Code: "y"}))
	require.NoError(t, clients.Create(ctx, &domain.Client{PartnerID: alpha.ID, Name: "Bison", Code: "b"}))

	got, total, err := clients.List(ctx, 1, 20, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	var labels []string
	for i := range got {
		labels = append(labels, got[i].DisplayLabel())
	}
	assert.Equal(t, []string{"Alpha / Bison", "Alpha / Yak", "Zeta / Aardvark"}, labels)

	scoped, total, err := clients.List(ctx, 1, 20, &zeta.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, "Aardvark", scoped[0].Name)
}

func TestIssueList_NewestActivityFirst(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	s := testutil.SeedScenario(t, db)
	issues := NewIssueRepository(db)

	older := &domain.Issue{ProjectID: s.Project.ID, Title: "Old", ActivityDate: testutil.Date(t, "2023-12-01")}
	newer := &domain.Issue{ProjectID: s.Project.ID, Title: "New", ActivityDate: testutil.Date(t, "2024-02-01")}
	require.NoError(t, issues.Create(ctx, older))
	require.NoError(t, issues.Create(ctx, newer))

	got, _, err := issues.List(ctx, 1, 20, IssueFilter{})
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, []string{"New", "SSL renewal", "Old"}, []string{got[0].Title, got[1].Title, got[2].Title})
}

func TestSearch_CaseInsensitiveSubstring(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	testutil.SeedScenario(t, db)

	clients, err := NewClientRepository(db).Search(ctx, "gutta", 25)
	require.NoError(t, err)
	require.Len(t, clients, 1)
	assert.Equal(t, "Kilowott / Gutta Fra Havet", clients[0].DisplayLabel())

	resources, err := NewResourceRepository(db).Search(ctx, "GUTTA-", 25)
	require.NoError(t, err)
	assert.Len(t, resources, 2)

	envs, err := NewEnvironmentRepository(db).Search(ctx, "prod eu", 25)
	require.NoError(t, err)
	require.Len(t, envs, 1)
	assert.Equal(t, "Kilowott / Gutta Fra Havet / Gutta Website / Prod EU (prod)", envs[0].DisplayLabel())

	partners := NewPartnerRepository(db)
	require.NoError(t, partners.Create(ctx, &domain.Partner{Name: "Østlandet Drift", Code: "ostlandet"}))
	for _, q := range []string{"Østlandet", "østlandet", "ØSTLANDET DRIFT"} {
		got, err := partners.Search(ctx, q, 25)
		require.NoError(t, err)
		require.Len(t, got, 1, q)
		assert.Equal(t, "Østlandet Drift", got[0].Name)
	}
}

func TestSearch_RespectsLimit(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	partners := NewPartnerRepository(db)

	for i := 0; i < 30; i++ {
		require.NoError(t, partners.Create(ctx, &domain.Partner{Name: fmt.Sprintf("Acme %02d", i), Code: fmt.Sprintf("acme-%02d", i)}))
	}

	got, err := partners.Search(ctx, "acme", 25)
	require.NoError(t, err)
	assert.Len(t, got, 25)
	assert.Equal(t, "Acme 00", got[0].Name)
}

func TestSearch_WildcardsAreLiteral(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	partners := NewPartnerRepository(db)

	require.NoError(t, partners.Create(ctx, &domain.Partner{Name: "Hundred Percent", Code: "hp", ContactPerson: "100% uptime"}))
	require.NoError(t, partners.Create(ctx, &domain.Partner{Name: "Under", Code: "under_score"}))
	require.NoError(t, partners.Create(ctx, &domain.Partner{Name: "Plain", Code: "plain"}))

	got, err := partners.Search(ctx, "%", 25)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Hundred Percent", got[0].Name)

	got, err = partners.Search(ctx, "_", 25)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Under", got[0].Name)
}

func TestResourceListByEnvironments_CreationOrder(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	s := testutil.SeedScenario(t, db)

	byEnv, err := NewResourceRepository(db).ListByEnvironments(ctx, []uuid.UUID{s.Environment.ID})
	require.NoError(t, err)
	got := byEnv[s.Environment.ID]
	require.Len(t, got, 2)
	assert.Equal(t, "gutta-db", got[0].Name)
	assert.Equal(t, "gutta-cdn", got[1].Name)
}

func TestIssueFindInBatches(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	s := testutil.SeedScenario(t, db)
	issues := NewIssueRepository(db)

	for i := 0; i < 6; i++ {
		require.NoError(t, issues.Create(ctx, &domain.Issue{ProjectID: s.Project.ID, Title: fmt.Sprintf("Issue %d", i), ActivityDate: testutil.Date(t, "2024-01-01")}))
	}

	var sizes []int
	seen := map[uuid.UUID]bool{}
	err := issues.FindInBatches(ctx, 3, func(batch []domain.Issue) error {
		sizes = append(sizes, len(batch))
		for _, is := range batch {
			seen[is.ID] = true
			require.NotNil(t, is.Project)
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []int{3, 3, 1}, sizes)
	assert.Len(t, seen, 7)
}

func TestUserUpsert(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	users := NewUserRepository(db)

	u := &domain.User{Username: "anna", Email: "anna@old.example", FirstName: "Anna"}
	require.NoError(t, users.Upsert(ctx, u))
	firstID := u.ID

	again := &domain.User{Username: "anna", Email: "anna@example.com"}
	require.NoError(t, users.Upsert(ctx, again))
	assert.Equal(t, firstID, again.ID)

	got, err := users.GetByUsername(ctx, "anna")
	require.NoError(t, err)
	assert.Equal(t, "anna@example.com", got.Email)
	assert.Equal(t, "Anna", got.FirstName)
}

func TestLikePattern(t *testing.T) {
	assert.Equal(t, `%Gutta%`, LikePattern("Gutta"))
	assert.Equal(t, `%100\%%`, LikePattern("100%"))
	assert.Equal(t, `%a\_b%`, LikePattern("a_b"))
	assert.Equal(t, `%C:\\dir%`, LikePattern(`C:\dir`))
}

func TestClampPage(t *testing.T) {
	p, s := ClampPage(0, 0)
	assert.Equal(t, 1, p)
	assert.Equal(t, 20, s)
	_, s = ClampPage(2, 1000)
	assert.Equal(t, MaxPageSize, s)
}

func TestSqliteUniqueFields(t *testing.T) {
	assert.Equal(t, []string{"partner_id", "code"}, sqliteUniqueFields("UNIQUE constraint failed: clients.partner_id, clients.code"))
	assert.Nil(t, sqliteUniqueFields("something else"))
}
