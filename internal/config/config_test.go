package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(origDir) })
	return dir
}

func TestLoadDefaults(t *testing.T) {
	// Change to temp dir so no config.yaml is found
	chdirTemp(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "auto", cfg.Log.Format)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "https://html.duckduckgo.com/html/", cfg.Search.BaseURL)
	assert.Equal(t, "a.result__a", cfg.Search.ResultSelector)
	assert.Equal(t, 350*time.Millisecond, cfg.Search.Pacing())
	assert.Equal(t, 15*time.Second, cfg.Search.Timeout())
	assert.Equal(t, 5, cfg.Search.BreakerFailures)
	assert.Equal(t, "catalog-resolver/1.0 (+product-url-verification)", cfg.Fetch.UserAgent)
	assert.Equal(t, 20*time.Second, cfg.Fetch.Timeout())
	assert.Equal(t, int64(2<<20), cfg.Fetch.MaxBodyBytes)
	assert.Equal(t, 1, cfg.Fetch.MaxAttempts)
	assert.Equal(t, 5, cfg.Batch.Concurrency)
	assert.Equal(t, 25, cfg.Batch.ProgressEvery)
	assert.Equal(t, 10, cfg.Batch.MaxCandidates)
	assert.Equal(t, []string{"amazon", "iherb", "walmart", "well", "shoppers", "londondrugs"}, cfg.Rank.DefaultSources)
	assert.Equal(t, "amazon.com", cfg.Rank.Sources["amazon"])
	assert.Equal(t, "iherb.com", cfg.Rank.Sources["iherb"])
	assert.Contains(t, cfg.Rank.ExcludePatterns, "cart")
	assert.NotContains(t, cfg.Rank.ExcludePatterns, "cart*")
}

func TestLoadFromYAML(t *testing.T) {
	dir := chdirTemp(t)

	yaml := `
log:
  level: debug
  format: console
search:
  pacing_ms: 0
  result_selector: "li.result a"
batch:
  concurrency: 12
rank:
  default_sources: [iherb, amazon]
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o644))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, time.Duration(0), cfg.Search.Pacing())
	assert.Equal(t, "li.result a", cfg.Search.ResultSelector)
	assert.Equal(t, 12, cfg.Batch.Concurrency)
	assert.Equal(t, []string{"iherb", "amazon"}, cfg.Rank.DefaultSources)
	// Untouched sections keep their defaults.
	assert.Equal(t, 25, cfg.Batch.ProgressEvery)
}

func TestLoadEnvOverride(t *testing.T) {
	chdirTemp(t)
	t.Setenv("RESOLVER_BATCH_CONCURRENCY", "9")
	t.Setenv("RESOLVER_FETCH_USER_AGENT", "custom-agent/2.0")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9, cfg.Batch.Concurrency)
	assert.Equal(t, "custom-agent/2.0", cfg.Fetch.UserAgent)
}

func TestLoadInvalidYAML(t *testing.T) {
	dir := chdirTemp(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("log: [unclosed"), 0o644))

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config: read file")
}

func TestInitLogger(t *testing.T) {
	for _, format := range []string{"json", "console", "auto"} {
		t.Run(format, func(t *testing.T) {
			require.NoError(t, InitLogger(LogConfig{Level: "debug", Format: format}))
			assert.NotNil(t, zap.L())
		})
	}
}

func TestInitLogger_BadLevel(t *testing.T) {
	err := InitLogger(LogConfig{Level: "loud", Format: "json"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse log level")
}

func TestResolveFormat(t *testing.T) {
	assert.Equal(t, "json", resolveFormat("json", 0))
	assert.Equal(t, "console", resolveFormat("console", 0))

	f, err := os.CreateTemp(t.TempDir(), "notatty")
	require.NoError(t, err)
	defer f.Close() //nolint:errcheck
	assert.Equal(t, "json", resolveFormat("auto", f.Fd()))
}
