package conf

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	apperrors "github.com/lk2023060901/nitionsearch-console/internal/pkg/errors"
	"github.com/lk2023060901/nitionsearch-console/internal/websearch/view"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "searchui.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:8090", cfg.Server.Addr())
	assert.Equal(t, 5*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "http://localhost:8080", cfg.Search.APIHost)
	assert.Zero(t, cfg.Search.Timeout)
	assert.Empty(t, cfg.Search.SortOrder)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "stderr", cfg.Log.Output)

	policy, err := cfg.Render.MarkupPolicy()
	require.NoError(t, err)
	assert.Equal(t, view.MarkupTrusted, policy)
}

func TestLoadConfig_File(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 9000
search:
  api_host: https://search.example.com
  timeout: 2500ms
  sort_order: relevance
render:
  markup: highlight-only
log:
  level: debug
  format: json
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, "127.0.0.1", cfg.Server.Host)
	assert.Equal(t, "https://search.example.com", cfg.Search.APIHost)
	assert.Equal(t, 2500*time.Millisecond, cfg.Search.Timeout)
	assert.Equal(t, "relevance", cfg.Search.SortOrder)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)

	policy, err := cfg.Render.MarkupPolicy()
	require.NoError(t, err)
	assert.Equal(t, view.MarkupHighlightOnly, policy)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	path := writeConfig(t, "search:\n  api_host: https://file.example.com\n")
	t.Setenv("SEARCHUI_SEARCH_API_HOST", "https://env.example.com")
	t.Setenv("SEARCHUI_SERVER_PORT", "9100")
	t.Setenv("SEARCHUI_SEARCH_TIMEOUT", "3s")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "https://env.example.com", cfg.Search.APIHost)
	assert.Equal(t, 9100, cfg.Server.Port)
	assert.Equal(t, 3*time.Second, cfg.Search.Timeout)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		wantCode int
	}{
		{name: "bad port", body: "server:\n  port: 70000\n"},
		{name: "bad scheme", body: "search:\n  api_host: ftp://x\n", wantCode: apperrors.ErrSearchInvalidConfig},
		{name: "negative timeout", body: "search:\n  timeout: -1s\n", wantCode: apperrors.ErrSearchInvalidConfig},
		{name: "bad markup", body: "render:\n  markup: sanitize\n"},
		{name: "bad log level", body: "log:\n  level: loud\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, tt.body))
			require.Error(t, err)
			if tt.wantCode != 0 {
				assert.True(t, apperrors.Is(err, tt.wantCode))
			}
		})
	}
}
