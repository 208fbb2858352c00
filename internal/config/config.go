package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// DefaultSecret is only acceptable outside prod.
const DefaultSecret = "supersecretkey"

const (
	StoreMongo  = "mongo"
	StoreMemory = "memory"
)

type Config struct {
	Port string

	// SecretKey signs and verifies JWTs. Read-only after startup.
	SecretKey string
	// TokenTTL is the token lifetime (default 1h). Set via JWT_TTL, e.g. "30m".
	TokenTTL time.Duration

	MongoURI     string
	MongoDB      string
	MongoTimeout time.Duration

	// Store is "mongo" (default) or "memory". The memory store is for local runs and tests.
	Store string

	// Env is "dev" (default) or "prod". When "prod", SECRET_KEY must be set and not the default.
	Env string

	// LogFormat is "text" (default) or "json".
	LogFormat string

	// CORSAllowedOrigins is set via CORS_ALLOWED_ORIGINS (comma-separated).
	// When empty, no CORS headers are sent.
	CORSAllowedOrigins []string

	MaxBodyBytes int

	// AuditRetention enables pruning of audit entries older than this (0 disables).
	AuditRetention time.Duration
	// AuditPruneSchedule is a cron spec, default "@hourly".
	AuditPruneSchedule string

	// TLSCertFile and TLSKeyFile enable HTTPS when both are set.
	TLSCertFile string
	TLSKeyFile  string
}

// Load reads a .env file if one exists, then builds the config from the environment.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		Port: getEnv("PORT", "8080"),

		SecretKey: getEnv("SECRET_KEY", DefaultSecret),
		TokenTTL:  getEnvDuration("JWT_TTL", time.Hour),

		MongoURI:     getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:      getEnv("MONGO_DB", "movies"),
		MongoTimeout: getEnvDuration("MONGO_TIMEOUT", 10*time.Second),

		Store: getEnv("STORE", StoreMongo),

		Env:       getEnv("ENV", "dev"),
		LogFormat: getEnv("LOG_FORMAT", "text"),

		CORSAllowedOrigins: parseCORSOrigins(getEnv("CORS_ALLOWED_ORIGINS", "")),

		MaxBodyBytes: getEnvInt("MAX_BODY_BYTES", 1<<20),

		AuditRetention:     getEnvDuration("AUDIT_RETENTION", 0),
		AuditPruneSchedule: getEnv("AUDIT_PRUNE_SCHEDULE", "@hourly"),

		TLSCertFile: getEnv("TLS_CERT_FILE", ""),
		TLSKeyFile:  getEnv("TLS_KEY_FILE", ""),
	}
}

// Validate rejects configurations that must not reach production.
func (c Config) Validate() error {
	if c.Env == "prod" && (c.SecretKey == "" || c.SecretKey == DefaultSecret) {
		return errors.New("SECRET_KEY must be set to a non-default value when ENV=prod")
	}
	if c.Store != StoreMongo && c.Store != StoreMemory {
		return errors.New("STORE must be mongo or memory")
	}
	return nil
}

// TLSEnabled reports whether both TLS files are configured.
func (c Config) TLSEnabled() bool {
	return c.TLSCertFile != "" && c.TLSKeyFile != ""
}

// parseCORSOrigins splits a comma-separated list of origins and trims spaces. Empty strings are omitted.
func parseCORSOrigins(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if o := strings.TrimSpace(p); o != "" {
			out = append(out, o)
		}
	}
	return out
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			return d
		}
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
