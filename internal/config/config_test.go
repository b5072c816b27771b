package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(body), 0o644))
	return dir
}

func TestLoadConfig(t *testing.T) {
	dir := writeConfig(t, `
server:
  port: "9090"
  mode: debug
jwt:
  secret: test-secret
  expire_hours: 2
database:
  host: db
  port: 3306
game:
  config_key: classroom
  cache_ttl_seconds: 30
`)

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, 2*time.Hour, cfg.JWT.ExpireTime)
	assert.Equal(t, "db", cfg.Database.Host)
	assert.Equal(t, "utf8mb4", cfg.Database.Charset)
	assert.Equal(t, "classroom", cfg.Game.ConfigKey)
	assert.Equal(t, 30*time.Second, cfg.Game.CacheTTL())
	assert.Equal(t, time.Minute, cfg.Game.WarmInterval())
	assert.Equal(t, 100, cfg.RateLimit.MaxRequests)
	assert.Equal(t, time.Hour, cfg.RateLimit.Window())
	assert.Equal(t, filepath.Join(dir, "config.yaml"), cfg.File)
}

func TestLoadConfig_EnvOverride(t *testing.T) {
	dir := writeConfig(t, `
jwt:
  secret: from-file
database:
  host: db
`)
	t.Setenv("JWT_SECRET", "from-env")
	t.Setenv("DATABASE_HOST", "db.internal")

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.JWT.Secret)
	assert.Equal(t, "db.internal", cfg.Database.Host)
}

func TestLoadConfig_ShortSecretInRelease(t *testing.T) {
	dir := writeConfig(t, `
server:
  mode: release
jwt:
  secret: short
`)

	_, err := LoadConfig(dir)
	assert.ErrorContains(t, err, "JWT secret is too short")
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(t.TempDir())
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := Config{
		JWT:       JWTConfig{Secret: "s"},
		RateLimit: RateLimitConfig{MaxRequests: 1, WindowMinutes: 1},
		Game:      GameSettings{ConfigKey: "default"},
	}
	require.NoError(t, valid.Validate())

	noKey := valid
	noKey.Game.ConfigKey = ""
	assert.Error(t, noKey.Validate())

	noLimit := valid
	noLimit.RateLimit.MaxRequests = 0
	assert.Error(t, noLimit.Validate())
}
