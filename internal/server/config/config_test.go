package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withArgs(t *testing.T, args ...string) {
	t.Helper()
	orig := os.Args
	os.Args = append([]string{"server"}, args...)
	t.Cleanup(func() { os.Args = orig })
}

func TestLoadConfig_Defaults(t *testing.T) {
	withArgs(t)

	cfg := LoadConfig()

	assert.Equal(t, ":8080", cfg.EndpointAddrHTTP)
	assert.Equal(t, 60*time.Minute, cfg.AccessTokenValidityDuration)
	assert.Equal(t, time.Hour, cfg.ResetTokenValidityDuration)
	assert.Equal(t, 5*time.Minute, cfg.UserCacheTTL)
	assert.Equal(t, 4, cfg.DispatcherWorkers)
	assert.Equal(t, "auth.audit", cfg.AuditSubject)
}

func TestLoadConfig_FlagsOverrideDefaults(t *testing.T) {
	withArgs(t, "-a", ":9999", "-s", "flag-secret", "-t", "15", "-r", "30")

	cfg := LoadConfig()

	assert.Equal(t, ":9999", cfg.EndpointAddrHTTP)
	assert.Equal(t, "flag-secret", cfg.SecretKey)
	assert.Equal(t, 15*time.Minute, cfg.AccessTokenValidityDuration)
	assert.Equal(t, 30*time.Minute, cfg.ResetTokenValidityDuration)
}

func TestLoadConfig_JsonOverlay(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "server.json")
	content := `{
		"endpoint_addr_http": ":7070",
		"secret_key": "json-secret",
		"jwt_issuer": "json-issuer",
		"access_token_validity_duration": "30m",
		"user_cache_ttl": "2m",
		"dispatcher_workers": 8
	}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	withArgs(t, "-c", path)

	cfg := LoadConfig()

	assert.Equal(t, ":7070", cfg.EndpointAddrHTTP)
	assert.Equal(t, "json-secret", cfg.SecretKey)
	assert.Equal(t, "json-issuer", cfg.JWTIssuer)
	assert.Equal(t, 30*time.Minute, cfg.AccessTokenValidityDuration)
	assert.Equal(t, 2*time.Minute, cfg.UserCacheTTL)
	assert.Equal(t, 8, cfg.DispatcherWorkers)
	// untouched fields keep defaults
	assert.Equal(t, time.Hour, cfg.ResetTokenValidityDuration)
}

func TestLoadConfig_FlagsWinOverJson(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "server.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"secret_key": "json-secret"}`), 0o600))

	withArgs(t, "-c", path, "-s", "flag-secret")

	cfg := LoadConfig()
	assert.Equal(t, "flag-secret", cfg.SecretKey)
}
