package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyDefaults_EmptyConfig(t *testing.T) {
	cfg := &Config{}

	applyDefaults(cfg)

	assert.Equal(t, defaultMaxRequestBodySize, cfg.HTTP.MaxRequestBodySize)
	require.NotNil(t, cfg.Database)
	assert.Equal(t, DriverPostgres, cfg.Database.Driver)
	require.NotNil(t, cfg.Auth)
	assert.Equal(t, 12, cfg.Auth.BcryptCost)
	require.NotNil(t, cfg.PasswordPolicy)
	assert.Equal(t, 6, cfg.PasswordPolicy.MinLength)
	assert.Equal(t, 32, cfg.PasswordPolicy.MaxLength)
	assert.Nil(t, cfg.Redis)
}

func TestApplyDefaults_KeepsExplicitValues(t *testing.T) {
	cfg := &Config{
		Database:       &DatabaseConfig{Driver: DriverSQLite},
		Redis:          &RedisConfig{Enabled: true},
		Auth:           &AuthConfig{BcryptCost: 4},
		PasswordPolicy: &PasswordPolicyConfig{MinLength: 8, MaxLength: 64},
	}

	applyDefaults(cfg)

	assert.Equal(t, DriverSQLite, cfg.Database.Driver)
	assert.Equal(t, defaultCacheTTL, cfg.Redis.TTL)
	assert.Equal(t, 4, cfg.Auth.BcryptCost)
	assert.Equal(t, 8, cfg.PasswordPolicy.MinLength)
	assert.Equal(t, 64, cfg.PasswordPolicy.MaxLength)
}

func TestLoadWithEnv_YAMLAndEnvOverride(t *testing.T) {
	dir := t.TempDir()
	content := []byte(`
env:
  serviceName: accounts
http:
  port: 8080
  timeouts:
    readTimeout: 10s
database:
  driver: sqlite
  sqlite:
    dsn: "file::memory:"
passwordPolicy:
  minLength: 6
  maxLength: 32
`)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "test.yaml"), content, 0o600))
	t.Chdir(dir)
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("PASSWORDPOLICY_MAXLENGTH", "40")

	cfg, err := LoadWithEnv[Config]("test")
	require.NoError(t, err)

	assert.Equal(t, "accounts", cfg.Env.ServiceName)
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, 10*time.Second, cfg.HTTP.Timeouts.ReadTimeout)
	require.NotNil(t, cfg.Database)
	assert.Equal(t, DriverSQLite, cfg.Database.Driver)
	assert.Equal(t, "file::memory:", cfg.Database.SQLite.DSN)
	require.NotNil(t, cfg.PasswordPolicy)
	assert.Equal(t, 40, cfg.PasswordPolicy.MaxLength)
}

func TestLoadWithEnv_MissingFile(t *testing.T) {
	t.Chdir(t.TempDir())

	_, err := LoadWithEnv[Config]("absent")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "absent.yaml not found")
}
