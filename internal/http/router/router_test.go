package router_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/infradesk/infra-desk/internal/app"
	"github.com/infradesk/infra-desk/internal/auth"
	"github.com/infradesk/infra-desk/internal/config"
	"github.com/infradesk/infra-desk/internal/domain"
	"github.com/infradesk/infra-desk/internal/http/handler"
	"github.com/infradesk/infra-desk/internal/http/middleware"
	"github.com/infradesk/infra-desk/internal/http/router"
	"github.com/infradesk/infra-desk/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const testAPIKey = "test-api-key"

func testConfig() *config.Config {
	return &config.Config{
		App:     config.AppConfig{Name: "infra-desk", Environment: "development"},
		ApiKey:  config.ApiKeyConfig{Value: testAPIKey},
		JWT:     config.JWTConfig{Secret: "router-test-secret", Issuer: "infra-desk", TTL: 60},
		Metrics: config.MetricsConfig{Enabled: true, Path: "/metrics"},
		Security: config.SecurityConfig{
			ContentTypeNosniff: true,
			FrameOptions:       "DENY",
		},
	}
}

func newTestServer(t *testing.T, db *gorm.DB, cfg *config.Config) http.Handler {
	t.Helper()
	logger := zap.NewNop()
	svc := app.NewServices(app.NewRepositories(db), cfg, nil, logger)

	rt := router.NewRouter(
		cfg, logger, db,
		auth.NewMiddleware(cfg, logger),
		middleware.NewRateLimiter(&cfg.RateLimit, logger),
		handler.NewPartnerHandler(svc.Partners, logger),
		handler.NewClientHandler(svc.Clients, logger),
		handler.NewProjectHandler(svc.Projects, logger),
		handler.NewEnvironmentHandler(svc.Environments, logger),
		handler.NewServerHandler(svc.Servers, logger),
		handler.NewResourceHandler(svc.Resources, logger),
		handler.NewUserHandler(svc.Users, logger),
		handler.NewProfileHandler(svc.Users, logger),
		handler.NewIssueHandler(svc.Issues, svc.Activities, logger),
		handler.NewActivityHandler(svc.Activities, logger),
		handler.NewSearchHandler(svc.Search, logger),
		handler.NewExportHandler(svc.Export, logger),
	)
	return rt.Setup()
}

func issueToken(t *testing.T, cfg *config.Config, roles ...string) string {
	t.Helper()
	token, _, err := auth.NewJWTValidator(&cfg.JWT).IssueToken(&auth.UserContext{
		UserID:   uuid.New(),
		Username: "ops",
		Roles:    roles,
	})
	require.NoError(t, err)
	return token
}

func TestRouter_Health(t *testing.T) {
	db := testutil.NewTestDB(t)
	srv := newTestServer(t, db, testConfig())

	for _, path := range []string{"/health", "/health/db", "/health/ready"} {
		t.Run(path, func(t *testing.T) {
			w := httptest.NewRecorder()
			srv.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
			assert.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
		})
	}
}

func TestRouter_Metrics(t *testing.T) {
	db := testutil.NewTestDB(t)
	srv := newTestServer(t, db, testConfig())

	w := httptest.NewRecorder()
	srv.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	w = httptest.NewRecorder()
	srv.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "infradesk_http_requests_total")
}

func TestRouter_Authentication(t *testing.T) {
	db := testutil.NewTestDB(t)
	cfg := testConfig()
	srv := newTestServer(t, db, cfg)
	testutil.SeedScenario(t, db)

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		header map[string]string
		want   int
	}{
		{"no credentials", http.MethodGet, "/api/v1/partners", "", nil, http.StatusUnauthorized},
		{"wrong api key", http.MethodGet, "/api/v1/partners", "", map[string]string{"x-api-key": "nope"}, http.StatusUnauthorized},
		{"api key", http.MethodGet, "/api/v1/partners", "", map[string]string{"x-api-key": testAPIKey}, http.StatusOK},
		{"root search needs auth", http.MethodGet, "/search?q=gutta", "", nil, http.StatusUnauthorized},
		{"viewer reads", http.MethodGet, "/api/v1/issues", "", map[string]string{"Authorization": "Bearer " + issueToken(t, cfg, auth.RoleViewer)}, http.StatusOK},
		{"viewer cannot write", http.MethodPost, "/api/v1/partners", `{"name":"X","code":"x"}`, map[string]string{"Authorization": "Bearer " + issueToken(t, cfg, auth.RoleViewer)}, http.StatusForbidden},
		{"staff writes", http.MethodPost, "/api/v1/partners", `{"name":"X","code":"x"}`, map[string]string{"Authorization": "Bearer " + issueToken(t, cfg, auth.RoleStaff)}, http.StatusCreated},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			for k, v := range tt.header {
				req.Header.Set(k, v)
			}
			w := httptest.NewRecorder()
			srv.ServeHTTP(w, req)
			assert.Equal(t, tt.want, w.Code, w.Body.String())
		})
	}
}

func TestRouter_SearchAndExportMounts(t *testing.T) {
	db := testutil.NewTestDB(t)
	srv := newTestServer(t, db, testConfig())
	s := testutil.SeedScenario(t, db)

	for _, path := range []string{"/search?q=gutta", "/api/v1/search?q=gutta"} {
		t.Run(path, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, path, nil)
			req.Header.Set("x-api-key", testAPIKey)
			w := httptest.NewRecorder()
			srv.ServeHTTP(w, req)

			require.Equal(t, http.StatusOK, w.Code)
			var resp domain.SearchResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, "gutta", resp.Query)
			require.NotEmpty(t, resp.Results)
			assert.Equal(t, "Client", resp.Results[0].Model)
			assert.Equal(t, "/api/v1/clients/"+s.Client.ID.String(), resp.Results[0].URL)
		})
	}

	for _, path := range []string{"/export", "/api/v1/export"} {
		t.Run(path, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, path, nil)
			req.Header.Set("x-api-key", testAPIKey)
			w := httptest.NewRecorder()
			srv.ServeHTTP(w, req)

			require.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, `attachment; filename="infra_desk_export.csv"`, w.Header().Get("Content-Disposition"))
			assert.Contains(t, w.Body.String(), "SSL renewal")
		})
	}
}

func TestRouter_IssueActivitiesRoute(t *testing.T) {
	db := testutil.NewTestDB(t)
	srv := newTestServer(t, db, testConfig())
	s := testutil.SeedScenario(t, db)
	testutil.AddActivity(t, db, s.Issue.ID, "2024-01-12", "renewed")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/issues/"+s.Issue.ID.String()+"/activities", nil)
	req.Header.Set("x-api-key", testAPIKey)
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var page domain.PaginatedResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	assert.Equal(t, int64(1), page.Total)
}
