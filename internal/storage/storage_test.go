package storage_test

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/infradesk/infra-desk/internal/config"
	"github.com/infradesk/infra-desk/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestLocalStorage_PutAndOpen(t *testing.T) {
	dir := t.TempDir()
	store, err := storage.NewLocalStorage(dir)
	require.NoError(t, err)
	ctx := context.Background()

	size, err := store.Put(ctx, "exports/infra_desk_export_20240301T000000Z.csv", "text/csv", strings.NewReader("Partner,Client\n"))
	require.NoError(t, err)
	assert.Equal(t, int64(15), size)

	_, err = os.Stat(filepath.Join(dir, "exports", "infra_desk_export_20240301T000000Z.csv"))
	require.NoError(t, err)

	rc, err := store.Open(ctx, "exports/infra_desk_export_20240301T000000Z.csv")
	require.NoError(t, err)
	defer rc.Close()
	body, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "Partner,Client\n", string(body))
}

func TestLocalStorage_PutReplaces(t *testing.T) {
	store, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	_, err = store.Put(ctx, "a.csv", "text/csv", strings.NewReader("first"))
	require.NoError(t, err)
	_, err = store.Put(ctx, "a.csv", "text/csv", strings.NewReader("2nd"))
	require.NoError(t, err)

	rc, err := store.Open(ctx, "a.csv")
	require.NoError(t, err)
	defer rc.Close()
	body, _ := io.ReadAll(rc)
	assert.Equal(t, "2nd", string(body))
}

func TestLocalStorage_OpenMissing(t *testing.T) {
	store, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	_, err = store.Open(context.Background(), "missing.csv")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestLocalStorage_RejectsEscapingKeys(t *testing.T) {
	store, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	for _, key := range []string{"../outside.csv", "/etc/passwd", "", "a/../../b"} {
		_, err := store.Put(context.Background(), key, "text/csv", strings.NewReader("x"))
		assert.Error(t, err, key)
	}
}

func TestNewStorage_Modes(t *testing.T) {
	ctx := context.Background()

	store, err := storage.NewStorage(ctx, &config.StorageConfig{Mode: "local", LocalBasePath: t.TempDir()}, zap.NewNop())
	require.NoError(t, err)
	assert.IsType(t, &storage.LocalStorage{}, store)

	_, err = storage.NewStorage(ctx, &config.StorageConfig{Mode: "azure"}, zap.NewNop())
	assert.Error(t, err)

	_, err = storage.NewStorage(ctx, &config.StorageConfig{Mode: "ftp"}, zap.NewNop())
	assert.Error(t, err)
}
