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
	for _, name := range []string{"PORT", "ACCESS_TOKEN_SECRET", "DB_USER", "DB_PASS"} {
		t.Setenv(name, "")
	}
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadConfig_FromFile(t *testing.T) {
	path := writeConfig(t, `
http:
  address: ":8080"
  allowed_origins: ["http://a.test"]
auth:
  token_secret: s3cret
  token_ttl: 30m
database:
  driver: postgres
  uri: postgres://localhost/tour
  name: tourDB
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTP.Address)
	assert.Equal(t, []string{"http://a.test"}, cfg.HTTP.AllowedOrigins)
	assert.Equal(t, "s3cret", cfg.Auth.TokenSecret)
	assert.Equal(t, 30*time.Minute, cfg.Auth.TokenTTL)
	assert.Equal(t, DriverPostgres, cfg.Database.Driver)
	assert.Equal(t, "bookings", cfg.Kafka.BookingTopic)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	path := writeConfig(t, `
auth:
  token_secret: from-file
`)
	t.Setenv("TOURTREK_AUTH__TOKEN_SECRET", "from-env")
	t.Setenv("TOURTREK_HTTP__ALLOWED_ORIGINS", "http://a.test,http://b.test")
	t.Setenv("TOURTREK_REDIS__ADDR", "localhost:6379")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.Auth.TokenSecret)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.HTTP.AllowedOrigins)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, time.Hour, cfg.Auth.TokenTTL)
}

func TestLoadConfig_LegacyVariables(t *testing.T) {
	t.Setenv("PORT", "7000")
	t.Setenv("ACCESS_TOKEN_SECRET", "legacy")
	t.Setenv("DB_USER", "tour")
	t.Setenv("DB_PASS", "pass")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, ":7000", cfg.HTTP.Address)
	assert.Equal(t, "legacy", cfg.Auth.TokenSecret)
	assert.Equal(t, "tour", cfg.Database.User)
	assert.Equal(t, "pass", cfg.Database.Password)
}

func TestLoadConfig_MissingSecret(t *testing.T) {
	path := writeConfig(t, "http:\n  address: \":5000\"\n")

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestLoadConfig_UnknownDriver(t *testing.T) {
	path := writeConfig(t, `
auth:
  token_secret: s
database:
  driver: sqlite
`)

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestDatabaseConfig_MongoURI(t *testing.T) {
	d := DatabaseConfig{User: "u", Password: "p", Host: "cluster0.example.net", Name: "tourDB"}
	assert.Equal(t, "mongodb+srv://u:p@cluster0.example.net/tourDB?retryWrites=true&w=majority", d.MongoURI())

	d.URI = "mongodb://localhost:27017"
	assert.Equal(t, "mongodb://localhost:27017", d.MongoURI())
}
