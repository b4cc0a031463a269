package logger

import (
	"context"
	"testing"

	"github.com/infradesk/infra-desk/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestBuildConfig(t *testing.T) {
	app := &config.AppConfig{Name: "Infra Desk API", Environment: "development"}

	t.Run("console in development", func(t *testing.T) {
		cfg := buildConfig(&config.LoggingConfig{Level: "debug", Format: "console"}, app)
		assert.Equal(t, "console", cfg.Encoding)
		assert.Equal(t, zapcore.DebugLevel, cfg.Level.Level())
		assert.Equal(t, "Infra Desk API", cfg.InitialFields["app"])
	})

	t.Run("json when requested", func(t *testing.T) {
		cfg := buildConfig(&config.LoggingConfig{Level: "warn", Format: "json"}, app)
		assert.Equal(t, "json", cfg.Encoding)
		assert.Equal(t, zapcore.WarnLevel, cfg.Level.Level())
	})

	t.Run("json in production", func(t *testing.T) {
		prod := &config.AppConfig{Name: "x", Environment: "production"}
		cfg := buildConfig(&config.LoggingConfig{Level: "info", Format: "console"}, prod)
		assert.Equal(t, "json", cfg.Encoding)
	})

	t.Run("unknown level falls back to info", func(t *testing.T) {
		cfg := buildConfig(&config.LoggingConfig{Level: "loud"}, app)
		assert.Equal(t, zapcore.InfoLevel, cfg.Level.Level())
	})
}

func TestNewLogger(t *testing.T) {
	l, err := NewLogger(&config.LoggingConfig{Level: "info", Format: "json"}, &config.AppConfig{Name: "x"})
	require.NoError(t, err)
	assert.NotNil(t, l)
}

func TestContextLogger(t *testing.T) {
	fallback := zap.NewNop()
	assert.Same(t, fallback, FromContext(context.Background(), fallback))

	scoped := zap.NewNop().With(zap.String("request_id", "abc"))
	ctx := NewContext(context.Background(), scoped)
	assert.Same(t, scoped, FromContext(ctx, fallback))
}
