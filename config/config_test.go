package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Server.Mode)

	assert.Equal(t, "", cfg.Ledger.Owner)
	assert.Equal(t, "", cfg.Ledger.Custody)

	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "postgres", cfg.Database.User)
	assert.Equal(t, "payment_ledger", cfg.Database.DBName)
	assert.Equal(t, "disable", cfg.Database.SSLMode)
	assert.Equal(t, int32(20), cfg.Database.MaxConns)
	assert.Equal(t, int32(5), cfg.Database.MinConns)

	assert.Equal(t, "localhost", cfg.Redis.Host)
	assert.Equal(t, 6379, cfg.Redis.Port)
	assert.Equal(t, 0, cfg.Redis.DB)

	assert.Equal(t, "http://localhost:9090", cfg.Custody.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.Custody.Timeout)

	assert.Equal(t, 24*time.Hour, cfg.JWT.Expiry)
	assert.Equal(t, "stablecoin-payment-ledger", cfg.JWT.Issuer)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.False(t, cfg.Log.Pretty)
}

func TestLoad_FromYAMLFile(t *testing.T) {
	content := []byte(`
server:
  host: "127.0.0.1"
  port: 9191
  mode: "release"
ledger:
  owner: "0x00000000000000000000000000000000000000aa"
  custody: "0x00000000000000000000000000000000000000bb"
database:
  host: "db.example.com"
  port: 5433
  dbname: "ledgerdb"
custody:
  base_url: "https://custody.example.com"
  signing_key: "topsecret"
  timeout: "5s"
jwt:
  secret: "my-jwt-secret"
  expiry: "12h"
admin:
  api_key_hash: "$argon2id$v=19$m=65536,t=1,p=4$salt$hash"
log:
  level: "debug"
  pretty: true
`)

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, content, 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1", cfg.Server.Host)
	assert.Equal(t, 9191, cfg.Server.Port)
	assert.Equal(t, "release", cfg.Server.Mode)
	assert.Equal(t, "0x00000000000000000000000000000000000000aa", cfg.Ledger.Owner)
	assert.Equal(t, "0x00000000000000000000000000000000000000bb", cfg.Ledger.Custody)
	assert.Equal(t, "db.example.com", cfg.Database.Host)
	assert.Equal(t, "ledgerdb", cfg.Database.DBName)
	assert.Equal(t, "https://custody.example.com", cfg.Custody.BaseURL)
	assert.Equal(t, "topsecret", cfg.Custody.SigningKey)
	assert.Equal(t, 5*time.Second, cfg.Custody.Timeout)
	assert.Equal(t, 12*time.Hour, cfg.JWT.Expiry)
	assert.NotEmpty(t, cfg.Admin.APIKeyHash)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.True(t, cfg.Log.Pretty)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("SPL_SERVER_PORT", "7070")
	t.Setenv("SPL_LEDGER_OWNER", "0x00000000000000000000000000000000000000cc")
	t.Setenv("SPL_DATABASE_HOST", "env-db-host")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 7070, cfg.Server.Port)
	assert.Equal(t, "0x00000000000000000000000000000000000000cc", cfg.Ledger.Owner)
	assert.Equal(t, "env-db-host", cfg.Database.Host)
}

func TestDatabaseConfig_DSN(t *testing.T) {
	d := DatabaseConfig{
		Host: "localhost", Port: 5432, User: "u", Password: "p",
		DBName: "ledger", SSLMode: "disable",
	}
	assert.Equal(t, "postgres://u:p@localhost:5432/ledger?sslmode=disable", d.DSN())
}

func TestRedisConfig_Addr(t *testing.T) {
	r := RedisConfig{Host: "localhost", Port: 6379}
	assert.Equal(t, "localhost:6379", r.Addr())
}
