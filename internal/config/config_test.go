package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// allConfigKeys lists every GWREPORTS_ env var that Load() reads.
var allConfigKeys = []string{
	"GWREPORTS_GATEWAY_URL",
	"GWREPORTS_USERNAME",
	"GWREPORTS_PASSWORD",
	"GWREPORTS_OUTPUT_DIR",
	"GWREPORTS_OUTPUT_PREFIX",
	"GWREPORTS_BOUNDARY",
	"GWREPORTS_HTTP_TIMEOUT",
	"GWREPORTS_TLS_INSECURE",
	"GWREPORTS_ACCEPT_TERMS",
	"GWREPORTS_JOURNAL_PATH",
}

// isolateConfigEnv saves and unsets all GWREPORTS_ env vars so tests don't
// inherit values from the host environment (e.g. a developer's .env).
// t.Cleanup restores original values after the test.
func isolateConfigEnv(t *testing.T) {
	t.Helper()
	for _, key := range allConfigKeys {
		if orig, ok := os.LookupEnv(key); ok {
			t.Cleanup(func() { os.Setenv(key, orig) })
		} else {
			t.Cleanup(func() { os.Unsetenv(key) })
		}
		os.Unsetenv(key)
	}
}

func TestLoad_Success(t *testing.T) {
	isolateConfigEnv(t)
	t.Setenv("GWREPORTS_GATEWAY_URL", "https://gw.example.net")
	t.Setenv("GWREPORTS_USERNAME", "ci-bot")
	t.Setenv("GWREPORTS_PASSWORD", "hunter2")
	t.Setenv("GWREPORTS_OUTPUT_DIR", "/tmp/reports")
	t.Setenv("GWREPORTS_OUTPUT_PREFIX", "suite_")
	t.Setenv("GWREPORTS_BOUNDARY", "<!-- cut -->")
	t.Setenv("GWREPORTS_HTTP_TIMEOUT", "45s")
	t.Setenv("GWREPORTS_TLS_INSECURE", "true")
	t.Setenv("GWREPORTS_ACCEPT_TERMS", "false")
	t.Setenv("GWREPORTS_JOURNAL_PATH", "/tmp/runs.db")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "https://gw.example.net", cfg.GatewayURL)
	assert.Equal(t, "ci-bot", cfg.Username)
	assert.Equal(t, "hunter2", cfg.Password)
	assert.Equal(t, "/tmp/reports", cfg.OutputDir)
	assert.Equal(t, "suite_", cfg.OutputPrefix)
	assert.Equal(t, "<!-- cut -->", cfg.Boundary)
	assert.Equal(t, 45*time.Second, cfg.HTTPTimeout)
	assert.True(t, cfg.TLSInsecure)
	assert.False(t, cfg.AcceptTerms)
	assert.Equal(t, "/tmp/runs.db", cfg.JournalPath)
	assert.True(t, cfg.HasJournal())
}

func TestLoad_Defaults(t *testing.T) {
	isolateConfigEnv(t)
	t.Setenv("GWREPORTS_GATEWAY_URL", "https://gw.example.net")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, ".", cfg.OutputDir)
	assert.Equal(t, "report_", cfg.OutputPrefix)
	assert.Equal(t, `<?xml version="1.0" ?>`, cfg.Boundary)
	assert.Equal(t, 30*time.Second, cfg.HTTPTimeout)
	assert.False(t, cfg.TLSInsecure)
	assert.True(t, cfg.AcceptTerms)
	assert.Empty(t, cfg.JournalPath)
	assert.False(t, cfg.HasJournal())
}

func TestLoad_EmptyOptionalFallsBackToDefault(t *testing.T) {
	isolateConfigEnv(t)
	t.Setenv("GWREPORTS_OUTPUT_DIR", "")
	t.Setenv("GWREPORTS_OUTPUT_PREFIX", "")
	t.Setenv("GWREPORTS_BOUNDARY", "")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, ".", cfg.OutputDir)
	assert.Equal(t, "report_", cfg.OutputPrefix)
	assert.Equal(t, DefaultBoundary, cfg.Boundary)
}

func TestLoad_InvalidTimeout(t *testing.T) {
	isolateConfigEnv(t)
	t.Setenv("GWREPORTS_HTTP_TIMEOUT", "soon")

	_, err := Load()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "GWREPORTS_HTTP_TIMEOUT")
}

func TestLoad_InvalidTLSInsecure(t *testing.T) {
	isolateConfigEnv(t)
	t.Setenv("GWREPORTS_TLS_INSECURE", "yep")

	_, err := Load()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "GWREPORTS_TLS_INSECURE")
}

func TestRequireGateway(t *testing.T) {
	isolateConfigEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	err = cfg.RequireGateway()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GWREPORTS_GATEWAY_URL")
}

func TestRequireCredentials(t *testing.T) {
	isolateConfigEnv(t)
	t.Setenv("GWREPORTS_GATEWAY_URL", "https://gw.example.net")
	t.Setenv("GWREPORTS_USERNAME", "ci-bot")

	cfg, err := Load()
	require.NoError(t, err)

	err = cfg.RequireCredentials()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GWREPORTS_PASSWORD")

	t.Setenv("GWREPORTS_PASSWORD", "hunter2")
	cfg, err = Load()
	require.NoError(t, err)
	assert.NoError(t, cfg.RequireCredentials())
}
