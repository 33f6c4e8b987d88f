package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the environment driven settings of the service.
type Config struct {
	AppPort string

	DBDriver       string
	DBDSN          string
	DBMaxOpenConns int
	DBMaxIdleConns int

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	CacheTTL      time.Duration

	LogLevel      string
	LogPath       string
	LogMaxSizeMB  int
	LogMaxBackups int
	LogMaxAgeDays int

	GinMode            string
	AllowedOrigins     []string
	RateLimitPerMinute int
}

const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Load reads .env when present and then the process environment.
func Load() (Config, error) {
	// a missing .env is fine, the environment wins anyway
	_ = godotenv.Load()

	cfg := Config{
		AppPort:        getEnv("APP_PORT", "8000"),
		DBDriver:       strings.ToLower(getEnv("DB_DRIVER", DriverMySQL)),
		DBDSN:          os.Getenv("DB_DSN"),
		RedisAddr:      os.Getenv("REDIS_ADDR"),
		RedisPassword:  os.Getenv("REDIS_PASSWORD"),
		LogLevel:       strings.ToLower(getEnv("LOG_LEVEL", "info")),
		LogPath:        os.Getenv("LOG_PATH"),
		GinMode:        strings.ToLower(getEnv("GIN_MODE", "release")),
		AllowedOrigins: splitList(getEnv("ALLOWED_ORIGINS", "*")),
	}

	var err error
	ints := []struct {
		key  string
		def  int
		dest *int
	}{
		{"DB_MAX_OPEN_CONNS", 20, &cfg.DBMaxOpenConns},
		{"DB_MAX_IDLE_CONNS", 5, &cfg.DBMaxIdleConns},
		{"REDIS_DB", 0, &cfg.RedisDB},
		{"LOG_MAX_SIZE_MB", 100, &cfg.LogMaxSizeMB},
		{"LOG_MAX_BACKUPS", 3, &cfg.LogMaxBackups},
		{"LOG_MAX_AGE_DAYS", 7, &cfg.LogMaxAgeDays},
		{"RATE_LIMIT_PER_MINUTE", 0, &cfg.RateLimitPerMinute},
	}
	for _, it := range ints {
		if *it.dest, err = getEnvInt(it.key, it.def); err != nil {
			return Config{}, err
		}
	}

	if cfg.CacheTTL, err = getEnvDuration("CACHE_TTL", 10*time.Minute); err != nil {
		return Config{}, err
	}

	switch cfg.DBDriver {
	case DriverMySQL, DriverPostgres:
		if cfg.DBDSN == "" {
			return Config{}, fmt.Errorf("DB_DSN is not set for driver %q", cfg.DBDriver)
		}
	case DriverSQLite:
		if cfg.DBDSN == "" {
			cfg.DBDSN = "blog.db"
		}
	default:
		return Config{}, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}

	return cfg, nil
}

func getEnv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) (int, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid %s %q: must be a non-negative integer", key, v)
	}
	return n, nil
}

func getEnvDuration(key string, def time.Duration) (time.Duration, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil || d < 0 {
		return 0, fmt.Errorf("invalid %s %q: must be a non-negative duration", key, v)
	}
	return d, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
