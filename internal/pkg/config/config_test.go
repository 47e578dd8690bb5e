package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitConfig_Defaults(t *testing.T) {
	cfg := InitConfig("")

	assert.Equal(t, "kerjalink-identity", cfg.App.Name)
	assert.Equal(t, 9990, cfg.Server.Port)
	assert.Equal(t, 1440, cfg.JWT.Expiration)
	assert.Equal(t, "kerjalink", cfg.JWT.Issuer)
	assert.Equal(t, 300, cfg.OTP.TTLSeconds)
	assert.Equal(t, 6, cfg.OTP.CodeLength)
	assert.Equal(t, "info", cfg.Logger.Level)
}

func TestInitConfig_ConfigFile(t *testing.T) {
	configFile := filepath.Join(t.TempDir(), "config.yaml")
	content := `
server:
  port: 8080
jwt:
  secret: file-secret
otp:
  ttlseconds: 120
`
	require.NoError(t, os.WriteFile(configFile, []byte(content), 0o600))

	cfg := InitConfig(configFile)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "file-secret", cfg.JWT.Secret)
	assert.Equal(t, 120, cfg.OTP.TTLSeconds)
}

func TestInitConfig_MissingFileFallsBackToDefaults(t *testing.T) {
	cfg := InitConfig("/nonexistent/config.yaml")

	assert.Equal(t, 9990, cfg.Server.Port)
	assert.Equal(t, 300, cfg.OTP.TTLSeconds)
}

func TestInitConfig_EnvironmentOverride(t *testing.T) {
	t.Setenv("JWT_SECRET", "env-secret")
	t.Setenv("OTP_CODELENGTH", "8")

	cfg := InitConfig("")

	assert.Equal(t, "env-secret", cfg.JWT.Secret)
	assert.Equal(t, 8, cfg.OTP.CodeLength)
}
