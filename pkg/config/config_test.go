package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Princeton-CDH/cdhweb-components/pkg/logging"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{EnvPort, EnvShutdownTimeout, EnvDocRoot, logging.EnvLogLevel} {
		t.Setenv(k, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, 10*time.Second, cfg.LoaderTimeout())
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout())
}

func TestLoad_Files(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()

	files := map[string]string{
		"site.toml": `
name = "cdh"
doc_root = "/srv/site"
isolate = true

[server]
port = 9000
rate_limit = 5
rate_limit_burst = 10
`,
		"site.yaml": `
name: cdh
doc_root: /srv/site
isolate: true
server:
  port: 9000
  rate_limit: 5
  rate_limit_burst: 10
`,
	}

	for name, content := range files {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

			cfg, err := Load(path)
			require.NoError(t, err)
			assert.Equal(t, "cdh", cfg.Name)
			assert.Equal(t, "/srv/site", cfg.DocRoot)
			assert.True(t, cfg.Isolate)
			assert.Equal(t, 9000, cfg.Server.Port)
			assert.InDelta(t, 5.0, cfg.Server.RateLimit, 0.001)
			assert.Equal(t, 10, cfg.Server.RateLimitBurst)
			// Unset keys keep their defaults.
			assert.Equal(t, 30, cfg.Server.ShutdownTimeoutSeconds)
		})
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvPort, "9999")
	t.Setenv(EnvShutdownTimeout, "5")
	t.Setenv(EnvDocRoot, "/tmp/site")
	t.Setenv(logging.EnvLogLevel, "debug")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 9999, cfg.Server.Port)
	assert.Equal(t, 5*time.Second, cfg.ShutdownTimeout())
	assert.Equal(t, "/tmp/site", cfg.DocRoot)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoad_InvalidEnvIgnored(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvPort, "not-a-port")
	t.Setenv(EnvShutdownTimeout, "-3")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 30, cfg.Server.ShutdownTimeoutSeconds)
}

func TestLoad_Errors(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()

	_, err := Load(filepath.Join(dir, "missing.toml"))
	require.Error(t, err)

	bad := filepath.Join(dir, "bad.toml")
	require.NoError(t, os.WriteFile(bad, []byte("name = "), 0o600))
	_, err = Load(bad)
	require.Error(t, err)

	invalid := filepath.Join(dir, "invalid.yaml")
	require.NoError(t, os.WriteFile(invalid, []byte("server:\n  port: 70000\n  rate_limit: 0\n"), 0o600))
	_, err = Load(invalid)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "out of range")
	assert.Contains(t, err.Error(), "rate_limit must be positive")

	txt := filepath.Join(dir, "site.txt")
	require.NoError(t, os.WriteFile(txt, []byte(""), 0o600))
	_, err = Load(txt)
	require.Error(t, err)
}
