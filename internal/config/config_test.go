package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var managedKeys = []string{
	"HTTP_PORT", "PORT", "DB_DRIVER", "DATABASE_URL", "SQLITE_PATH",
	"JWT_SECRET", "JWT_ISSUER", "BCRYPT_COST", "CORS_ALLOWED_ORIGINS",
	"HTTP_READ_TIMEOUT", "HTTP_WRITE_TIMEOUT", "HTTP_IDLE_TIMEOUT",
	"HTTP_SHUTDOWN_TIMEOUT", "LOG_LEVEL", "LOG_FORMAT",
	"PGHOST", "POSTGRES_HOST", "PGUSER", "POSTGRES_USER", "PGPASSWORD",
	"POSTGRES_PASSWORD", "PGDATABASE", "POSTGRES_DB", "PGPORT",
	"POSTGRES_PORT", "PGSSLMODE",
}

// clearEnv unsets every variable Load reads; t.Setenv restores them afterwards.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range managedKeys {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
}

func TestLoadFrom_Defaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("DB_DRIVER", "memory")

	cfg, err := LoadFrom("")
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.HTTPPort)
	assert.Equal(t, ":3000", cfg.Addr())
	assert.Equal(t, DriverMemory, cfg.DBDriver)
	assert.Equal(t, "virtual-board", cfg.JWTIssuer)
	assert.Equal(t, 10, cfg.BcryptCost)
	assert.Equal(t, []string{"*"}, cfg.AllowedOrigins)
	assert.Equal(t, 15*time.Second, cfg.ReadTimeout)
	assert.Equal(t, 15*time.Second, cfg.WriteTimeout)
	assert.Equal(t, 60*time.Second, cfg.IdleTimeout)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
}

func TestLoadFrom_MissingSecretIsFatal(t *testing.T) {
	clearEnv(t)
	t.Setenv("DB_DRIVER", "memory")

	_, err := LoadFrom("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")
}

func TestLoadFrom_HTTPPortWinsOverPort(t *testing.T) {
	clearEnv(t)
	t.Setenv("JWT_SECRET", "s")
	t.Setenv("DB_DRIVER", "memory")
	t.Setenv("PORT", "4000")
	t.Setenv("HTTP_PORT", "5000")

	cfg, err := LoadFrom("")
	require.NoError(t, err)
	assert.Equal(t, ":5000", cfg.Addr())
}

func TestLoadFrom_OriginsAreTrimmed(t *testing.T) {
	clearEnv(t)
	t.Setenv("JWT_SECRET", "s")
	t.Setenv("DB_DRIVER", "memory")
	t.Setenv("CORS_ALLOWED_ORIGINS", " https://a.example , ,https://b.example")

	cfg, err := LoadFrom("")
	require.NoError(t, err)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins)
}

func TestLoadFrom_PostgresFromParts(t *testing.T) {
	clearEnv(t)
	t.Setenv("JWT_SECRET", "s")
	t.Setenv("PGHOST", "db.internal")
	t.Setenv("PGUSER", "board")
	t.Setenv("PGPASSWORD", "pw")
	t.Setenv("PGDATABASE", "auth")

	cfg, err := LoadFrom("")
	require.NoError(t, err)
	assert.Equal(t, DriverPostgres, cfg.DBDriver)
	assert.Equal(t, "postgres://board:pw@db.internal:5432/auth?sslmode=disable", cfg.DatabaseURL)
}

func TestLoadFrom_PostgresqlSchemeNormalised(t *testing.T) {
	clearEnv(t)
	t.Setenv("JWT_SECRET", "s")
	t.Setenv("DATABASE_URL", "postgresql://u@localhost/db")

	cfg, err := LoadFrom("")
	require.NoError(t, err)
	assert.Equal(t, "postgres://u@localhost/db", cfg.DatabaseURL)
}

func TestLoadFrom_DotEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("JWT_ISSUER", "from-env")

	path := filepath.Join(t.TempDir(), ".env")
	content := "JWT_SECRET=from-file\nJWT_ISSUER=ignored\nDB_DRIVER=sqlite\nSQLITE_PATH=/tmp/x.db\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	t.Cleanup(func() {
		for _, k := range []string{"JWT_SECRET", "DB_DRIVER", "SQLITE_PATH"} {
			_ = os.Unsetenv(k)
		}
	})

	cfg, err := LoadFrom(path)
	require.NoError(t, err)
	assert.Equal(t, "from-file", cfg.JWTSecret)
	assert.Equal(t, "from-env", cfg.JWTIssuer)
	assert.Equal(t, DriverSQLite, cfg.DBDriver)
	assert.Equal(t, "/tmp/x.db", cfg.SQLitePath)
}

func TestLoadFrom_MissingDotEnvIsIgnored(t *testing.T) {
	clearEnv(t)
	t.Setenv("JWT_SECRET", "s")
	t.Setenv("DB_DRIVER", "memory")

	_, err := LoadFrom(filepath.Join(t.TempDir(), "absent.env"))
	assert.NoError(t, err)
}

func TestValidate(t *testing.T) {
	base := Config{
		HTTPPort:    "3000",
		DBDriver:    DriverPostgres,
		DatabaseURL: "postgres://localhost/db",
		SQLitePath:  "./data/auth.db",
		JWTSecret:   "s",
		BcryptCost:  10,
	}
	require.NoError(t, base.Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"no secret", func(c *Config) { c.JWTSecret = "" }},
		{"bad port", func(c *Config) { c.HTTPPort = "http" }},
		{"port out of range", func(c *Config) { c.HTTPPort = "70000" }},
		{"cost too low", func(c *Config) { c.BcryptCost = 3 }},
		{"cost too high", func(c *Config) { c.BcryptCost = 32 }},
		{"postgres without url", func(c *Config) { c.DatabaseURL = "" }},
		{"sqlite without path", func(c *Config) { c.DBDriver = DriverSQLite; c.SQLitePath = "" }},
		{"unknown driver", func(c *Config) { c.DBDriver = "mysql" }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := base
			tc.mutate(&c)
			assert.Error(t, c.Validate())
		})
	}
}

func TestAddr_KeepsHostPort(t *testing.T) {
	assert.Equal(t, "127.0.0.1:8080", Config{HTTPPort: "127.0.0.1:8080"}.Addr())
}
