package bootstrap

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, parseLevel("debug"))
	assert.Equal(t, slog.LevelWarn, parseLevel("warn"))
	assert.Equal(t, slog.LevelError, parseLevel("error"))
	assert.Equal(t, slog.LevelInfo, parseLevel("loud"))
}

func TestNewLogger_JSONAndLevel(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var buf bytes.Buffer
	logger := NewLogger(&buf, "warn")
	logger.Info("hidden")
	slog.Warn("shown", "k", "v")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, `"msg":"shown"`)
	assert.Contains(t, out, `"k":"v"`)
}

func TestLoadConfig_ReadsDotEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"),
		[]byte("BACKEND_BASE_URL=https://rag.internal/\nUPLOAD_MAX_BYTES=1024\n"), 0o600))
	t.Chdir(dir)
	// Registered for cleanup; godotenv sets the variables directly.
	t.Setenv("BACKEND_BASE_URL", "")
	t.Setenv("UPLOAD_MAX_BYTES", "")
	require.NoError(t, os.Unsetenv("BACKEND_BASE_URL"))
	require.NoError(t, os.Unsetenv("UPLOAD_MAX_BYTES"))

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "https://rag.internal", cfg.Backend.BaseURL)
	assert.Equal(t, int64(1024), cfg.Upload.MaxBytes)
}

func TestLoadConfig_WithoutDotEnv(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("AUTH_UNAUTHORIZED_POLICY", "sometimes")

	_, err := LoadConfig()
	assert.Error(t, err)
}
