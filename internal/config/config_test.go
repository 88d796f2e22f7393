package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate keeps a developer's environment and .env out of the test.
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv(EnvAPIKey, "")
	t.Setenv(EnvBaseURL, "")
	chdir(t, t.TempDir())
}

func TestRoundTrip(t *testing.T) {
	isolate(t)
	cfg := Default("up:yeah:abc123")
	cfg.PageSize = 50

	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	require.NoError(t, Save(path, cfg))

	got, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, cfg.APIKey, got.APIKey)
	assert.Equal(t, cfg.BaseURL, got.BaseURL)
	assert.Equal(t, cfg.Timeout, got.Timeout)
	assert.Equal(t, 50, got.PageSize)
	assert.Equal(t, 7, got.Days)
}

func TestSavePermissions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, Save(path, Default("up:yeah:abc123")))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestDefaults(t *testing.T) {
	cfg := Default("tok")

	assert.Equal(t, "tok", cfg.APIKey)
	assert.Equal(t, "https://api.up.com.au/api/v1", cfg.BaseURL)
	assert.Equal(t, 30*time.Second, cfg.Timeout)
	assert.Equal(t, 7, cfg.Days)
	assert.Zero(t, cfg.PageSize)
}

func TestLoadNotFound(t *testing.T) {
	isolate(t)
	cfg, err := Load(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	require.NoError(t, err)
	assert.Empty(t, cfg.APIKey)

	var cfgErr *ConfigError
	require.ErrorAs(t, cfg.Validate(), &cfgErr)
	assert.Equal(t, "apikey", cfgErr.Field)
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("apikey: up:yeah:abc\ntimeout: 5s\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "up:yeah:abc", cfg.APIKey)
	assert.Equal(t, 5*time.Second, cfg.Timeout)
	assert.Equal(t, "https://api.up.com.au/api/v1", cfg.BaseURL)
	assert.Equal(t, 7, cfg.Days)
}

func TestLoadMalformed(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("apikey: [unterminated\n"), 0o600))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing config")
}

func TestEnvOverrides(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, Save(path, Default("from-file")))

	t.Setenv(EnvAPIKey, "from-env")
	t.Setenv(EnvBaseURL, "http://localhost:9999")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.APIKey)
	assert.Equal(t, "http://localhost:9999", cfg.BaseURL)
}

func TestDotEnv(t *testing.T) {
	isolate(t)
	require.NoError(t, os.WriteFile(".env", []byte(EnvAPIKey+"=from-dotenv\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv(EnvAPIKey) })
	os.Unsetenv(EnvAPIKey)

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "from-dotenv", cfg.APIKey)
}

func TestDotEnvMalformed(t *testing.T) {
	isolate(t)
	require.NoError(t, os.WriteFile(".env", []byte("BAD-KEY=1\n"), 0o600))

	_, err := Load(filepath.Join(t.TempDir(), "config.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "loading .env")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*Config)
		wantField string
	}{
		{"valid", func(*Config) {}, ""},
		{"missing apikey", func(c *Config) { c.APIKey = "" }, "apikey"},
		{"whitespace apikey", func(c *Config) { c.APIKey = "up:yeah: abc" }, "apikey"},
		{"missing base url", func(c *Config) { c.BaseURL = "" }, "base_url"},
		{"negative timeout", func(c *Config) { c.Timeout = -time.Second }, "timeout"},
		{"negative page size", func(c *Config) { c.PageSize = -1 }, "page_size"},
		{"zero days", func(c *Config) { c.Days = 0 }, "days"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default("up:yeah:abc123")
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantField == "" {
				require.NoError(t, err)
				return
			}
			var cfgErr *ConfigError
			require.ErrorAs(t, err, &cfgErr)
			assert.Equal(t, tt.wantField, cfgErr.Field)
		})
	}
}

// chdir changes the working directory for the duration of the test and
// restores it on cleanup (equivalent to testing.T.Chdir in Go 1.24+).
func chdir(t *testing.T, dir string) {
	t.Helper()
	orig, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(orig); err != nil {
			t.Fatal(err)
		}
	})
}
