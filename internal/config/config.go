package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	StoreFile     = "file"
	StoreRedis    = "redis"
	StorePostgres = "postgres"
)

type Config struct {
	// Build-time values the dashboard is compiled with.
	APIBaseURL string
	AppName    string
	AppVersion string

	RequestTimeout time.Duration
	CacheStaleTime time.Duration

	SessionStore         string
	SessionDir           string
	SessionEncryptionKey string
	CookieTTL            time.Duration

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	DatabaseURL string
	DBMaxConns  int32
	DBMinConns  int32

	DashboardURL string
	DashboardDir string

	ServerPort              string
	ServerReadHeaderTimeout time.Duration
	ServerWriteTimeout      time.Duration
	ServerIdleTimeout       time.Duration
	CORSOrigins             []string
	RateLimitRPM            int
	AuthRateLimitRPM        int

	LogLevel  string
	LogFormat string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		APIBaseURL: getEnvFallback("API_BASE_URL", "NEXT_PUBLIC_API_URL", "http://localhost:3001/api"),
		AppName:    getEnvFallback("APP_NAME", "NEXT_PUBLIC_APP_NAME", "SportifyLife Admin"),
		AppVersion: getEnvFallback("APP_VERSION", "NEXT_PUBLIC_APP_VERSION", "1.0.0"),

		RequestTimeout: getDuration("REQUEST_TIMEOUT", 30*time.Second),
		CacheStaleTime: getDuration("CACHE_STALE_TIME", 60*time.Second),

		SessionStore:         strings.ToLower(getEnv("SESSION_STORE", StoreFile)),
		SessionDir:           getEnv("SESSION_DIR", defaultSessionDir()),
		SessionEncryptionKey: strings.TrimSpace(os.Getenv("SESSION_ENCRYPTION_KEY")),
		CookieTTL:            time.Duration(getInt("COOKIE_DAYS", 7)) * 24 * time.Hour,

		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: strings.TrimSpace(os.Getenv("REDIS_PASSWORD")),
		RedisDB:       getInt("REDIS_DB", 0),

		DatabaseURL: strings.TrimSpace(os.Getenv("DATABASE_URL")),
		DBMaxConns:  int32(getInt("DB_MAX_CONNS", 5)),
		DBMinConns:  int32(getInt("DB_MIN_CONNS", 1)),

		DashboardURL: getEnv("DASHBOARD_URL", "http://localhost:3000"),
		DashboardDir: getEnv("DASHBOARD_DIR", "./web/out"),

		ServerPort:              getEnv("SERVER_PORT", "3000"),
		ServerReadHeaderTimeout: getDuration("SERVER_READ_HEADER_TIMEOUT", 10*time.Second),
		ServerWriteTimeout:      getDuration("SERVER_WRITE_TIMEOUT", 60*time.Second),
		ServerIdleTimeout:       getDuration("SERVER_IDLE_TIMEOUT", 120*time.Second),
		CORSOrigins:             splitCSV(getEnv("CORS_ORIGINS", "*")),
		RateLimitRPM:            getInt("RATE_LIMIT_RPM", 300),
		AuthRateLimitRPM:        getInt("AUTH_RATE_LIMIT_RPM", 10),

		LogLevel:  strings.ToLower(getEnv("LOG_LEVEL", "info")),
		LogFormat: strings.ToLower(getEnv("LOG_FORMAT", "pretty")),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	base, err := url.Parse(c.APIBaseURL)
	if err != nil || base.Scheme == "" || base.Host == "" {
		return fmt.Errorf("API_BASE_URL must be an absolute URL, got %q", c.APIBaseURL)
	}

	if c.RequestTimeout <= 0 {
		return fmt.Errorf("REQUEST_TIMEOUT must be positive")
	}

	if c.CacheStaleTime <= 0 {
		return fmt.Errorf("CACHE_STALE_TIME must be positive")
	}

	if c.CookieTTL <= 0 {
		return fmt.Errorf("COOKIE_DAYS must be positive")
	}

	switch c.SessionStore {
	case StoreFile:
		if strings.TrimSpace(c.SessionDir) == "" {
			return fmt.Errorf("SESSION_DIR cannot be empty")
		}
	case StoreRedis:
		if c.RedisAddr == "" {
			return fmt.Errorf("REDIS_ADDR is required when SESSION_STORE=redis")
		}
	case StorePostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required when SESSION_STORE=postgres")
		}
		if c.DBMaxConns <= 0 || c.DBMinConns < 0 || c.DBMinConns > c.DBMaxConns {
			return fmt.Errorf("DB_MIN_CONNS and DB_MAX_CONNS are inconsistent")
		}
	default:
		return fmt.Errorf("SESSION_STORE must be one of file, redis, postgres, got %q", c.SessionStore)
	}

	if c.ServerPort == "" {
		return fmt.Errorf("SERVER_PORT cannot be empty")
	}

	if c.LogFormat != "pretty" && c.LogFormat != "json" {
		return fmt.Errorf("LOG_FORMAT must be pretty or json, got %q", c.LogFormat)
	}

	return nil
}

func defaultSessionDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "./.sportify"
	}
	return dir + string(os.PathSeparator) + "sportify-admin"
}

func getEnv(key string, fallback string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}

	return v
}

// getEnvFallback reads key, then legacy, then falls back.
func getEnvFallback(key string, legacy string, fallback string) string {
	return getEnv(key, getEnv(legacy, fallback))
}

func getInt(key string, fallback int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}

	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}

	return v
}

func getDuration(key string, fallback time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}

	v, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return v
}

func splitCSV(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed == "" {
			continue
		}
		out = append(out, trimmed)
	}

	return out
}
