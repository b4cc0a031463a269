package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/infradesk/infra-desk/internal/app"
	"github.com/infradesk/infra-desk/internal/auth"
	"github.com/infradesk/infra-desk/internal/config"
	"github.com/infradesk/infra-desk/internal/domain"
	"github.com/infradesk/infra-desk/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	db := testutil.NewTestDB(t)
	testutil.SeedScenario(t, db)

	cfg := &config.Config{
		JWT:     config.JWTConfig{Secret: "deskctl-test-secret", Issuer: "infra-desk", TTL: 60},
		Storage: config.StorageConfig{Mode: "local", LocalBasePath: t.TempDir()},
		Export:  config.ExportConfig{Archive: config.ArchiveConfig{Prefix: "exports"}},
	}
	logger := zap.NewNop()
	return &App{
		Config:   cfg,
		Logger:   logger,
		DB:       db,
		Services: app.NewServices(app.NewRepositories(db), cfg, nil, logger),
	}
}

func execute(t *testing.T, a *App, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd(a)
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestExportCmd_Stdout(t *testing.T) {
	a := newTestApp(t)

	out, errOut, err := execute(t, a, "export", "-o", "-")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, strings.Join(domain.ExportHeader, ","), lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "Kilowott,Gutta Fra Havet,Gutta Website,Prod EU,"))
	assert.Contains(t, errOut, "issues=1 rows=1")
}

func TestExportCmd_File(t *testing.T) {
	a := newTestApp(t)
	path := filepath.Join(t.TempDir(), "out.csv")

	_, _, err := execute(t, a, "export", "--output", path)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "Partner,Client,Project,Environment,Resource,"))
}

func TestExportCmd_Archive(t *testing.T) {
	a := newTestApp(t)

	out, _, err := execute(t, a, "export", "--archive")
	require.NoError(t, err)

	key := strings.TrimSpace(out)
	assert.True(t, strings.HasPrefix(key, "exports/infra_desk_export_"), key)

	data, err := os.ReadFile(filepath.Join(a.Config.Storage.LocalBasePath, filepath.FromSlash(key)))
	require.NoError(t, err)
	assert.Contains(t, string(data), "SSL renewal")
}

func TestSearchCmd(t *testing.T) {
	a := newTestApp(t)

	out, _, err := execute(t, a, "search", "gutta", "website")
	require.NoError(t, err)

	var resp domain.SearchResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "gutta website", resp.Query)
	require.NotEmpty(t, resp.Results)
	assert.Equal(t, "Project", resp.Results[0].Model)
}

func TestSearchCmd_RequiresQuery(t *testing.T) {
	_, _, err := execute(t, newTestApp(t), "search")
	assert.Error(t, err)
}

func TestTokenCmd(t *testing.T) {
	a := newTestApp(t)

	out, errOut, err := execute(t, a, "token", "--username", "ola", "--roles", "admin,viewer")
	require.NoError(t, err)
	assert.Contains(t, errOut, "expires ")

	user, err := auth.NewJWTValidator(&a.Config.JWT).ValidateToken(strings.TrimSpace(out))
	require.NoError(t, err)
	assert.Equal(t, "ola", user.Username)
	assert.Equal(t, []string{"admin", "viewer"}, user.Roles)
}

func TestTokenCmd_Errors(t *testing.T) {
	a := newTestApp(t)

	_, _, err := execute(t, a, "token")
	assert.Error(t, err)

	_, _, err = execute(t, a, "token", "--username", "ola", "--roles", "root")
	assert.EqualError(t, err, `unknown role "root"`)

	_, _, err = execute(t, a, "token", "--username", "ola", "--user-id", "nope")
	assert.Error(t, err)
}

func TestSeedCmd(t *testing.T) {
	a := newTestApp(t)
	path := filepath.Join(t.TempDir(), "fixture.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
partners:
  - name: Nordlys
    code: nordlys
    clients:
      - name: Fjord Fisk
        code: fjord
`), 0o600))

	out, _, err := execute(t, a, "seed", "--dry-run", path)
	require.NoError(t, err)
	assert.Contains(t, out, "0 users, 1 partners")

	out, _, err = execute(t, a, "seed", path)
	require.NoError(t, err)
	assert.Contains(t, out, "partners=1 clients=1")

	var n int64
	require.NoError(t, a.DB.Model(&domain.Client{}).Count(&n).Error)
	assert.EqualValues(t, 2, n)
}
