package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	t.Setenv("CONFIG_PATH", "")
	t.Setenv("DOTENV_PATH", "")
	return dir
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, ":8080", cfg.HTTP.Address)
	require.Equal(t, "api", cfg.Weather.Strategy)
	require.Equal(t, "Newark, CA", cfg.Weather.DefaultLocation)
	require.Equal(t, 5, cfg.Directory.MaxResults)
	require.Equal(t, 4, cfg.Eval.Workers)
}

func TestLoadFileThenEnv(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
http:
  address: ":9090"
weather:
  strategy: reasoning
  timeout: 3s
directory:
  maxResults: 3
`), 0o644))
	t.Setenv("CONFIG_PATH", path)
	t.Setenv("DIRECTORY_MAX_RESULTS", "7")
	t.Setenv("HTTP_CORS_ORIGINS", "https://a.example, https://b.example")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, ":9090", cfg.HTTP.Address)
	require.Equal(t, "reasoning", cfg.Weather.Strategy)
	require.Equal(t, 3*time.Second, cfg.Weather.Timeout)
	require.Equal(t, 7, cfg.Directory.MaxResults)
	require.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.HTTP.CORSOrigins)
}

func TestLoadDotenv(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("WEATHER_DEFAULT_LOCATION=Fremont, CA\n"), 0o644))
	t.Setenv("WEATHER_DEFAULT_LOCATION", "")
	require.NoError(t, os.Unsetenv("WEATHER_DEFAULT_LOCATION"))

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "Fremont, CA", cfg.Weather.DefaultLocation)
}

func TestLoadMissingExplicitDotenv(t *testing.T) {
	isolate(t)
	t.Setenv("DOTENV_PATH", "does-not-exist.env")
	_, err := Load()
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := defaultConfig()
	require.NoError(t, cfg.Validate())

	bad := defaultConfig()
	bad.Weather.Strategy = "psychic"
	require.ErrorContains(t, bad.Validate(), "weather.strategy")

	bad = defaultConfig()
	bad.Directory.MaxResults = 50
	require.Error(t, bad.Validate())

	bad = defaultConfig()
	bad.Eval.Upload.Enabled = true
	require.ErrorContains(t, bad.Validate(), "eval.upload")

	bad = defaultConfig()
	bad.HTTP.RateLimit.Burst = 0
	require.Error(t, bad.Validate())
}
