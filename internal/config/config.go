package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// RosterSource selects where the member directory is loaded from.
type RosterSource string

const (
	RosterSourceStatic   RosterSource = "static"
	RosterSourceFile     RosterSource = "file"
	RosterSourcePostgres RosterSource = "postgres"
)

// Config aggregates runtime configuration for the service.
type Config struct {
	App      AppConfig
	Session  SessionConfig
	Roster   RosterConfig
	Postgres PostgresConfig
	Redis    RedisConfig
	Logger   LoggerConfig
	CORS     CORSConfig
}

// AppConfig controls server level behavior.
type AppConfig struct {
	Name                  string
	Env                   string
	Host                  string
	Port                  string
	Version               string
	RequestTimeoutSeconds int
}

// SessionConfig defines token issuance and shared-password parameters.
type SessionConfig struct {
	// Secret is the HMAC key. The default is a deliberately insecure
	// placeholder for local development only.
	Secret             string
	CookieName         string
	TTLDays            int
	SharedPassword     string
	SharedPasswordHash string
}

// RosterConfig selects the directory backing the member roster.
type RosterConfig struct {
	Source          RosterSource
	Path            string
	CacheTTLSeconds int
}

// PostgresConfig holds DB connection values.
type PostgresConfig struct {
	DSN            string
	MaxConns       int32
	MinConns       int32
	RunMigrations  bool
	ConnMaxIdleSec int32
	ConnMaxLifeSec int32
}

// RedisConfig holds Redis connection values.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string
}

// CORSConfig holds the single allowed browser origin. Credentials are
// always sent, so the origin is never a wildcard.
type CORSConfig struct {
	AllowedOrigin string
}

// Load reads configuration from environment variables, applying defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	source := RosterSource(getEnv("ROSTER_SOURCE", string(RosterSourceStatic)))
	switch source {
	case RosterSourceStatic, RosterSourceFile, RosterSourcePostgres:
	default:
		return nil, fmt.Errorf("invalid ROSTER_SOURCE: %q", source)
	}

	cfg := &Config{
		App: AppConfig{
			Name:                  getEnv("APP_NAME", "portal-auth"),
			Env:                   getEnv("APP_ENV", "development"),
			Host:                  getEnv("APP_HOST", "0.0.0.0"),
			Port:                  getEnv("APP_PORT", "8080"),
			Version:               getEnv("APP_VERSION", "dev"),
			RequestTimeoutSeconds: getEnvAsInt("HTTP_REQUEST_TIMEOUT_SECONDS", 30),
		},
		Session: SessionConfig{
			Secret:             getEnv("COOKIE_SECRET", "change-me"),
			CookieName:         getEnv("SESSION_COOKIE_NAME", "cc_session"),
			TTLDays:            getEnvAsInt("SESSION_TTL_DAYS", 30),
			SharedPassword:     getEnv("SHARED_PASSWORD", "password1"),
			SharedPasswordHash: os.Getenv("SHARED_PASSWORD_HASH"),
		},
		Roster: RosterConfig{
			Source:          source,
			Path:            getEnv("ROSTER_PATH", "members.json"),
			CacheTTLSeconds: getEnvAsInt("DIRECTORY_CACHE_TTL_SECONDS", 0),
		},
		Postgres: PostgresConfig{
			DSN:            os.Getenv("POSTGRES_DSN"),
			MaxConns:       int32(getEnvAsInt("POSTGRES_MAX_CONNS", 10)),
			MinConns:       int32(getEnvAsInt("POSTGRES_MIN_CONNS", 2)),
			RunMigrations:  getEnvAsBool("POSTGRES_RUN_MIGRATIONS", true),
			ConnMaxIdleSec: int32(getEnvAsInt("POSTGRES_CONN_MAX_IDLE_SECONDS", 30)),
			ConnMaxLifeSec: int32(getEnvAsInt("POSTGRES_CONN_MAX_LIFE_SECONDS", 300)),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "127.0.0.1:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		CORS: CORSConfig{
			AllowedOrigin: getEnv("ALLOWED_ORIGIN", ""),
		},
	}

	if cfg.Session.TTLDays <= 0 {
		cfg.Session.TTLDays = 30
	}

	return cfg, nil
}

// Addr returns the HTTP bind address.
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}

// RequestTimeout returns the configured request timeout duration.
func (a AppConfig) RequestTimeout() time.Duration {
	if a.RequestTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(a.RequestTimeoutSeconds) * time.Second
}

// TTL returns the session lifetime.
func (s SessionConfig) TTL() time.Duration {
	return time.Duration(s.TTLDays) * 24 * time.Hour
}

// CacheTTL returns the directory cache lifetime; zero disables caching.
func (r RosterConfig) CacheTTL() time.Duration {
	if r.CacheTTLSeconds <= 0 {
		return 0
	}
	return time.Duration(r.CacheTTLSeconds) * time.Second
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsBool(key string, fallback bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return parsed
}
