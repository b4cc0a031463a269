package service_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/infradesk/infra-desk/internal/domain"
	"github.com/infradesk/infra-desk/internal/repository"
	"github.com/infradesk/infra-desk/internal/service"
	"github.com/infradesk/infra-desk/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newSearchService(db *gorm.DB, limit int) *service.SearchService {
	return service.NewSearchService(service.SearchRepositories{
		Partners:     repository.NewPartnerRepository(db),
		Clients:      repository.NewClientRepository(db),
		Projects:     repository.NewProjectRepository(db),
		Environments: repository.NewEnvironmentRepository(db),
		Servers:      repository.NewServerRepository(db),
		Resources:    repository.NewResourceRepository(db),
		Issues:       repository.NewIssueRepository(db),
		Activities:   repository.NewActivityRepository(db),
		Users:        repository.NewUserRepository(db),
	}, limit, zap.NewNop())
}

func models(items []domain.SearchResultItem) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = item.Model
	}
	return out
}

func TestSearchService_BlankQuery(t *testing.T) {
	db := testutil.NewTestDB(t)
	testutil.SeedScenario(t, db)
	svc := newSearchService(db, 25)

	for _, q := range []string{"", "   ", "\t\n"} {
		resp, err := svc.Search(context.Background(), q)
		require.NoError(t, err)
		assert.Empty(t, resp.Results)
		assert.Equal(t, 0, resp.Total)
		assert.Equal(t, "", resp.Query)
	}
}

func TestSearchService_SourcesInFixedOrder(t *testing.T) {
	db := testutil.NewTestDB(t)
	s := testutil.SeedScenario(t, db)
	testutil.AddActivity(t, db, s.Issue.ID, "2024-01-14", "Renewed the gutta certificate")
	require.NoError(t, db.Create(&domain.User{Username: "gutta.ops", Email: "ops@gutta.no", IsActive: true}).Error)
	svc := newSearchService(db, 25)

	resp, err := svc.Search(context.Background(), "  GUTTA ")
	require.NoError(t, err)
	assert.Equal(t, "GUTTA", resp.Query)
	assert.Equal(t, []string{"Client", "Project", "Resource", "Resource", "Infra Activity", "User"}, models(resp.Results))
	assert.Equal(t, len(resp.Results), resp.Total)

	client := resp.Results[0]
	assert.Equal(t, "Kilowott / Gutta Fra Havet", client.Label)
	assert.Equal(t, s.Client.ID, client.ID)
	assert.Equal(t, "/api/v1/clients/"+s.Client.ID.String(), client.URL)

	assert.Equal(t, "Kilowott / Gutta Fra Havet / Gutta Website", resp.Results[1].Label)
	assert.Equal(t, "2024-01-14 - SSL renewal", resp.Results[4].Label)
	assert.Equal(t, "gutta.ops (ops@gutta.no)", resp.Results[5].Label)
}

func TestSearchService_PerSourceLimit(t *testing.T) {
	db := testutil.NewTestDB(t)
	for i := 0; i < 30; i++ {
		p := &domain.Partner{Name: fmt.Sprintf("Acme %02d", i), Code: fmt.Sprintf("acme-%02d", i), Active: true}
		require.NoError(t, db.Create(p).Error)
	}
	svc := newSearchService(db, 0)

	resp, err := svc.Search(context.Background(), "acme")
	require.NoError(t, err)
	require.Len(t, resp.Results, service.DefaultSearchLimit)
	assert.Equal(t, "Acme 00", resp.Results[0].Label)
	assert.Equal(t, "Acme 24", resp.Results[24].Label)
}

func TestSearchService_WildcardsMatchLiterally(t *testing.T) {
	db := testutil.NewTestDB(t)
	testutil.SeedScenario(t, db)
	require.NoError(t, db.Create(&domain.Partner{Name: "100% Uptime", Code: "uptime", Active: true}).Error)
	svc := newSearchService(db, 25)

	resp, err := svc.Search(context.Background(), "%")
	require.NoError(t, err)
	require.Len(t, resp.Results, 1)
	assert.Equal(t, "100% Uptime", resp.Results[0].Label)

	resp, err = svc.Search(context.Background(), "_")
	require.NoError(t, err)
	assert.Empty(t, resp.Results)
}

func TestSearchService_ServerByIP(t *testing.T) {
	db := testutil.NewTestDB(t)
	s := testutil.SeedScenario(t, db)
	server := &domain.Server{EnvironmentID: s.Environment.ID, Name: "edge", IPAddress: "192.168.10.4"}
	require.NoError(t, db.Create(server).Error)
	svc := newSearchService(db, 25)

	resp, err := svc.Search(context.Background(), "168.10")
	require.NoError(t, err)
	require.Len(t, resp.Results, 1)
	assert.Equal(t, "Server", resp.Results[0].Model)
	assert.Equal(t, "edge (192.168.10.4)", resp.Results[0].Label)
	assert.Equal(t, "/api/v1/servers/"+server.ID.String(), resp.Results[0].URL)
}
