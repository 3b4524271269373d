package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	neturl "net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Supported user store drivers.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverMemory   = "memory"
)

// Config centralises runtime configuration.
type Config struct {
	HTTPPort        string        `env:"HTTP_PORT"`
	Port            string        `env:"PORT" envDefault:"3000"`
	DBDriver        string        `env:"DB_DRIVER" envDefault:"postgres"`
	DatabaseURL     string        `env:"DATABASE_URL"`
	SQLitePath      string        `env:"SQLITE_PATH" envDefault:"./data/auth.db"`
	JWTSecret       string        `env:"JWT_SECRET"`
	JWTIssuer       string        `env:"JWT_ISSUER" envDefault:"virtual-board"`
	BcryptCost      int           `env:"BCRYPT_COST" envDefault:"10"`
	AllowedOrigins  []string      `env:"CORS_ALLOWED_ORIGINS" envDefault:"*" envSeparator:","`
	ReadTimeout     time.Duration `env:"HTTP_READ_TIMEOUT" envDefault:"15s"`
	WriteTimeout    time.Duration `env:"HTTP_WRITE_TIMEOUT" envDefault:"15s"`
	IdleTimeout     time.Duration `env:"HTTP_IDLE_TIMEOUT" envDefault:"60s"`
	ShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" envDefault:"10s"`
	LogLevel        string        `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat       string        `env:"LOG_FORMAT" envDefault:"json"`
}

// Load reads configuration from ./.env (when present) and the environment.
func Load() (Config, error) {
	return LoadFrom(".env")
}

// LoadFrom is Load with an explicit dotenv path. Variables already set in
// the environment take precedence over the file.
func LoadFrom(dotenvPath string) (Config, error) {
	if dotenvPath != "" {
		if err := godotenv.Load(dotenvPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("loading %s: %w", dotenvPath, err)
		}
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	if cfg.HTTPPort == "" {
		cfg.HTTPPort = cfg.Port
	}
	cfg.DBDriver = strings.ToLower(strings.TrimSpace(cfg.DBDriver))
	cfg.AllowedOrigins = normaliseOrigins(cfg.AllowedOrigins)
	if cfg.DBDriver == DriverPostgres && cfg.DatabaseURL == "" {
		cfg.DatabaseURL = resolveDatabaseURL()
	}
	cfg.DatabaseURL = normalisePostgresScheme(strings.TrimSpace(cfg.DatabaseURL))

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports the first configuration problem that prevents startup.
func (c Config) Validate() error {
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET is required")
	}
	port := c.HTTPPort[strings.LastIndex(c.HTTPPort, ":")+1:]
	if n, err := strconv.Atoi(port); err != nil || n < 0 || n > 65535 {
		return fmt.Errorf("invalid HTTP port %q", c.HTTPPort)
	}
	if c.BcryptCost < 4 || c.BcryptCost > 31 {
		return fmt.Errorf("BCRYPT_COST must be between 4 and 31, got %d", c.BcryptCost)
	}
	switch c.DBDriver {
	case DriverPostgres:
		if c.DatabaseURL == "" {
			return errors.New("database configuration missing: provide DATABASE_URL or PG* env vars")
		}
	case DriverSQLite:
		if strings.TrimSpace(c.SQLitePath) == "" {
			return errors.New("SQLITE_PATH must be set when DB_DRIVER=sqlite")
		}
	case DriverMemory:
	default:
		return fmt.Errorf("unknown DB_DRIVER %q", c.DBDriver)
	}
	return nil
}

// Addr returns the listen address derived from HTTPPort.
func (c Config) Addr() string {
	if strings.Contains(c.HTTPPort, ":") {
		return c.HTTPPort
	}
	return ":" + c.HTTPPort
}

func normaliseOrigins(values []string) []string {
	parts := []string{}
	for _, part := range values {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	if len(parts) == 0 {
		return []string{"*"}
	}
	return parts
}

// resolveDatabaseURL assembles a DSN from libpq-style PG* variables.
func resolveDatabaseURL() string {
	host := firstNonEmpty(os.Getenv("PGHOST"), os.Getenv("POSTGRES_HOST"))
	user := firstNonEmpty(os.Getenv("PGUSER"), os.Getenv("POSTGRES_USER"))
	if host == "" || user == "" {
		return ""
	}
	password := firstNonEmpty(os.Getenv("PGPASSWORD"), os.Getenv("POSTGRES_PASSWORD"))
	database := firstNonEmpty(os.Getenv("PGDATABASE"), os.Getenv("POSTGRES_DB"), user)
	port := firstNonEmpty(os.Getenv("PGPORT"), os.Getenv("POSTGRES_PORT"), "5432")
	sslMode := firstNonEmpty(os.Getenv("PGSSLMODE"), "disable")

	dsn := &neturl.URL{
		Scheme: "postgres",
		Host:   net.JoinHostPort(host, port),
		Path:   "/" + database,
		User:   neturl.User(user),
	}
	if password != "" {
		dsn.User = neturl.UserPassword(user, password)
	}
	query := dsn.Query()
	query.Set("sslmode", sslMode)
	dsn.RawQuery = query.Encode()
	return dsn.String()
}

func normalisePostgresScheme(url string) string {
	if strings.HasPrefix(url, "postgresql://") {
		return "postgres://" + strings.TrimPrefix(url, "postgresql://")
	}
	return url
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
