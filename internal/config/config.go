package config

import (
	"errors"
	"os"
	"strconv"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Storage backends
const (
	BackendPostgres = "postgres"
	BackendSupabase = "supabase"
	BackendSQLite   = "sqlite"
	BackendMemory   = "memory"
)

type Config struct {
	Port            string
	Environment     string
	SupabaseURL     string
	SupabaseKey     string
	SupabaseDBURL   string
	SupabaseJWKSURL string // Constructed from SupabaseURL + /auth/v1/.well-known/jwks.json
	CORSOrigins     string
	TablePrefix     string
	// Storage selection
	RecordBackend   string // postgres | supabase
	StateBackend    string // postgres | sqlite | memory
	StateSQLitePath string
	// Logging
	LogDir      string // Empty = stdout only
	LogMaxFiles int
	// Circuit breaker around the record backend
	BreakerMaxRequests uint32
	BreakerInterval    time.Duration
	BreakerTimeout     time.Duration
	BreakerMinRequests uint32
	BreakerFailRatio   float64
}

func Load() *Config {
	env := getEnv("ENVIRONMENT", "dev")
	supabaseURL := getEnv("SUPABASE_URL", "")

	var jwksURL string
	if supabaseURL != "" {
		jwksURL = supabaseURL + "/auth/v1/.well-known/jwks.json"
	}

	return &Config{
		Port:            getEnv("PORT", "8080"),
		Environment:     env,
		SupabaseURL:     supabaseURL,
		SupabaseKey:     getEnv("SUPABASE_KEY", ""),
		SupabaseDBURL:   getEnv("SUPABASE_DB_URL", ""),
		SupabaseJWKSURL: jwksURL,
		CORSOrigins:     getEnv("CORS_ORIGINS", "http://localhost:3000"),
		TablePrefix:     getTablePrefix(env),

		RecordBackend:   getEnv("RECORD_BACKEND", BackendPostgres),
		StateBackend:    getEnv("STATE_BACKEND", BackendPostgres),
		StateSQLitePath: getEnv("STATE_SQLITE_PATH", "filesfeed-state.db"),

		LogDir:      getEnv("LOG_DIR", ""),
		LogMaxFiles: getEnvInt("LOG_MAX_FILES", 10),

		BreakerMaxRequests: uint32(getEnvInt("BREAKER_MAX_REQUESTS", 5)),
		BreakerInterval:    getEnvDuration("BREAKER_INTERVAL", 30*time.Second),
		BreakerTimeout:     getEnvDuration("BREAKER_TIMEOUT", 60*time.Second),
		BreakerMinRequests: uint32(getEnvInt("BREAKER_MIN_REQUESTS", 5)),
		BreakerFailRatio:   getEnvFloat("BREAKER_FAILURE_RATIO", 0.8),
	}
}

// Validate checks that the selected backends are known and configured
func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.RecordBackend, validation.In(BackendPostgres, BackendSupabase)),
		validation.Field(&c.StateBackend, validation.In(BackendPostgres, BackendSQLite, BackendMemory)),
		validation.Field(&c.SupabaseDBURL, validation.When(c.NeedsDatabase(),
			validation.Required.Error("is required for the postgres backend"))),
		validation.Field(&c.SupabaseURL, validation.When(c.RecordBackend == BackendSupabase,
			validation.Required.Error("is required for the supabase backend"))),
		validation.Field(&c.SupabaseKey, validation.When(c.RecordBackend == BackendSupabase,
			validation.Required.Error("is required for the supabase backend"))),
		validation.Field(&c.StateSQLitePath, validation.When(c.StateBackend == BackendSQLite,
			validation.Required)),
		validation.Field(&c.BreakerFailRatio, validation.By(func(value interface{}) error {
			if r := value.(float64); r <= 0 || r > 1 {
				return errors.New("must be in (0, 1]")
			}
			return nil
		})),
	)
}

// NeedsDatabase reports whether any backend uses the Postgres pool
func (c *Config) NeedsDatabase() bool {
	return c.RecordBackend == BackendPostgres || c.StateBackend == BackendPostgres
}

// AuthEnabled reports whether bearer tokens are verified against Supabase Auth
func (c *Config) AuthEnabled() bool {
	return c.SupabaseJWKSURL != ""
}

// getTablePrefix returns the table prefix based on environment
func getTablePrefix(env string) string {
	// Allow manual override via TABLE_PREFIX env var
	if prefix, ok := os.LookupEnv("TABLE_PREFIX"); ok {
		return prefix
	}

	switch env {
	case "prod":
		return "prod_"
	case "test":
		return "test_"
	default:
		return "dev_"
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if n, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return n
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if f, err := strconv.ParseFloat(os.Getenv(key), 64); err == nil {
		return f
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if d, err := time.ParseDuration(os.Getenv(key)); err == nil {
		return d
	}
	return defaultValue
}
