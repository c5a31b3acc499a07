package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv blanks every variable Load reads so host settings cannot leak in.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"HTTP_ADDR", "GIN_MODE", "LOG_LEVEL", "SECRET_KEY", "TOKEN_TTL", "TOKEN_HEADER",
		"BCRYPT_COST", "CORS_ALLOWED_ORIGIN", "LOGIN_RATE_PER_MINUTE",
		"DB_DRIVER", "DATABASE_URL", "DB_HOST", "DB_USER", "DB_PASS", "DB_NAME", "DB_PORT",
	} {
		t.Setenv(k, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("SECRET_KEY", "s3cret")
	t.Setenv("DATABASE_URL", "postgres://u:p@localhost/events")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "release", cfg.GinMode)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "s3cret", cfg.SecretKey)
	assert.Equal(t, 60*time.Minute, cfg.TokenTTL)
	assert.Equal(t, "Authorization", cfg.TokenHeader)
	assert.Equal(t, 10, cfg.BcryptCost)
	assert.Equal(t, "*", cfg.CORSAllowedOrigin)
	assert.Equal(t, 20, cfg.LoginRatePerMinute)
	assert.Equal(t, "postgres", cfg.DB.Driver)
	assert.Equal(t, "postgres://u:p@localhost/events", cfg.DB.DSN())
}

func TestLoad_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("SECRET_KEY", "k")
	t.Setenv("TOKEN_TTL", "15m")
	t.Setenv("TOKEN_HEADER", "X-Access-Token")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DATABASE_URL", "events.db")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 15*time.Minute, cfg.TokenTTL)
	assert.Equal(t, "X-Access-Token", cfg.TokenHeader)
	assert.Equal(t, "sqlite", cfg.DB.Driver)
	assert.Equal(t, "events.db", cfg.DB.DSN())
}

func TestLoad_MissingSecret(t *testing.T) {
	clearEnv(t)
	t.Setenv("DATABASE_URL", "postgres://localhost/events")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SECRET_KEY")
}

func TestLoad_MissingDatabase(t *testing.T) {
	clearEnv(t)
	t.Setenv("SECRET_KEY", "k")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database env missing")
}

func TestLoad_UnsupportedDriver(t *testing.T) {
	clearEnv(t)
	t.Setenv("SECRET_KEY", "k")
	t.Setenv("DB_DRIVER", "mysql")
	t.Setenv("DATABASE_URL", "x")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported DB_DRIVER")
}

func TestDatabase_DSNFromParts(t *testing.T) {
	d := Database{Host: "db", User: "events", Password: "pw", Name: "brightevents", Port: "5433"}

	assert.Equal(t,
		"host=db user=events password=pw dbname=brightevents port=5433 sslmode=disable TimeZone=UTC",
		d.DSN())
}

func TestLoadEnvFile(t *testing.T) {
	const key = "BRIGHTEVENTS_TEST_ENV_FILE_KEY"
	t.Cleanup(func() { os.Unsetenv(key) })

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte(key+"=from-file\n"), 0o600))

	require.NoError(t, LoadEnvFile(path))
	assert.Equal(t, "from-file", os.Getenv(key))

	assert.Error(t, LoadEnvFile(filepath.Join(t.TempDir(), "missing.env")))
}
