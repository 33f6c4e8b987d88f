package config

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/gorm/logger"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"APP_PORT", "DB_DRIVER", "DB_DSN", "DB_MAX_OPEN_CONNS", "DB_MAX_IDLE_CONNS",
		"REDIS_ADDR", "REDIS_PASSWORD", "REDIS_DB", "CACHE_TTL",
		"LOG_LEVEL", "LOG_PATH", "LOG_MAX_SIZE_MB", "LOG_MAX_BACKUPS", "LOG_MAX_AGE_DAYS",
		"GIN_MODE", "ALLOWED_ORIGINS", "RATE_LIMIT_PER_MINUTE",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("DB_DSN", "user:pass@tcp(localhost:3306)/blog?parseTime=true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.AppPort != "8000" {
		t.Fatalf("AppPort=%q, want 8000", cfg.AppPort)
	}
	if cfg.DBDriver != DriverMySQL {
		t.Fatalf("DBDriver=%q, want %q", cfg.DBDriver, DriverMySQL)
	}
	if cfg.DBMaxOpenConns != 20 || cfg.DBMaxIdleConns != 5 {
		t.Fatalf("pool=%d/%d, want 20/5", cfg.DBMaxOpenConns, cfg.DBMaxIdleConns)
	}
	if cfg.CacheTTL != 10*time.Minute {
		t.Fatalf("CacheTTL=%v, want 10m", cfg.CacheTTL)
	}
	if cfg.LogLevel != "info" || cfg.GinMode != "release" {
		t.Fatalf("LogLevel=%q GinMode=%q", cfg.LogLevel, cfg.GinMode)
	}
	if len(cfg.AllowedOrigins) != 1 || cfg.AllowedOrigins[0] != "*" {
		t.Fatalf("AllowedOrigins=%v, want [*]", cfg.AllowedOrigins)
	}
	if cfg.RateLimitPerMinute != 0 {
		t.Fatalf("RateLimitPerMinute=%d, want 0", cfg.RateLimitPerMinute)
	}
}

func TestLoad_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("APP_PORT", "9090")
	t.Setenv("DB_DRIVER", "Postgres")
	t.Setenv("DB_DSN", "host=localhost dbname=blog")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("REDIS_DB", "2")
	t.Setenv("CACHE_TTL", "30s")
	t.Setenv("ALLOWED_ORIGINS", "http://a.example, http://b.example ,")
	t.Setenv("RATE_LIMIT_PER_MINUTE", "120")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.AppPort != "9090" || cfg.DBDriver != DriverPostgres {
		t.Fatalf("AppPort=%q DBDriver=%q", cfg.AppPort, cfg.DBDriver)
	}
	if cfg.RedisAddr != "localhost:6379" || cfg.RedisDB != 2 {
		t.Fatalf("redis=%q/%d", cfg.RedisAddr, cfg.RedisDB)
	}
	if cfg.CacheTTL != 30*time.Second {
		t.Fatalf("CacheTTL=%v, want 30s", cfg.CacheTTL)
	}
	if got := strings.Join(cfg.AllowedOrigins, "|"); got != "http://a.example|http://b.example" {
		t.Fatalf("AllowedOrigins=%q", got)
	}
	if cfg.RateLimitPerMinute != 120 {
		t.Fatalf("RateLimitPerMinute=%d, want 120", cfg.RateLimitPerMinute)
	}
}

func TestLoad_SQLiteDefaultsDSN(t *testing.T) {
	clearEnv(t)
	t.Setenv("DB_DRIVER", "sqlite")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DBDSN != "blog.db" {
		t.Fatalf("DBDSN=%q, want blog.db", cfg.DBDSN)
	}
}

func TestLoad_Errors(t *testing.T) {
	cases := []struct {
		name string
		env  map[string]string
		want string
	}{
		{"missing dsn", map[string]string{"DB_DRIVER": "mysql"}, "DB_DSN"},
		{"unknown driver", map[string]string{"DB_DRIVER": "oracle", "DB_DSN": "x"}, "DB_DRIVER"},
		{"bad int", map[string]string{"DB_DSN": "x", "DB_MAX_OPEN_CONNS": "many"}, "DB_MAX_OPEN_CONNS"},
		{"negative int", map[string]string{"DB_DSN": "x", "RATE_LIMIT_PER_MINUTE": "-1"}, "RATE_LIMIT_PER_MINUTE"},
		{"bad duration", map[string]string{"DB_DSN": "x", "CACHE_TTL": "soon"}, "CACHE_TTL"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tc.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			if err == nil {
				t.Fatalf("expected error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("err=%q, want it to mention %s", err, tc.want)
			}
		})
	}
}

func TestNewLogger_UnknownLevelFallsBackToInfo(t *testing.T) {
	log, err := NewLogger(Config{LogLevel: "loud"})
	if err != nil {
		t.Fatalf("NewLogger: %v", err)
	}
	if log.Core().Enabled(zapcore.DebugLevel) {
		t.Fatalf("debug enabled, want info")
	}
	if !log.Core().Enabled(zapcore.InfoLevel) {
		t.Fatalf("info disabled")
	}
}

func TestNewLogger_WritesRollingFile(t *testing.T) {
	dir := t.TempDir()
	log, err := NewLogger(Config{
		LogLevel:      "debug",
		LogPath:       dir + "/app.log",
		LogMaxSizeMB:  1,
		LogMaxBackups: 1,
		LogMaxAgeDays: 1,
	})
	if err != nil {
		t.Fatalf("NewLogger: %v", err)
	}
	log.Info("hello")
	_ = log.Sync()

	if _, err := os.Stat(filepath.Join(dir, "app.log")); err != nil {
		t.Fatalf("log file: %v", err)
	}
}

func TestOpenDB_SQLite(t *testing.T) {
	db, err := OpenDB(Config{
		DBDriver:       DriverSQLite,
		DBDSN:          "file::memory:",
		DBMaxOpenConns: 1,
		DBMaxIdleConns: 1,
		LogLevel:       "silent",
	}, zap.NewNop())
	if err != nil {
		t.Fatalf("OpenDB: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("DB: %v", err)
	}
	defer sqlDB.Close()

	if got := sqlDB.Stats().MaxOpenConnections; got != 1 {
		t.Fatalf("MaxOpenConnections=%d, want 1", got)
	}
}

func TestOpenRedis_DisabledWithoutAddr(t *testing.T) {
	client, err := OpenRedis(context.Background(), Config{}, zap.NewNop())
	if err != nil || client != nil {
		t.Fatalf("OpenRedis()=(%v, %v), want (nil, nil)", client, err)
	}
}

func TestGormLogLevel(t *testing.T) {
	cases := map[string]logger.LogLevel{
		"debug":  logger.Info,
		"info":   logger.Warn,
		"error":  logger.Error,
		"silent": logger.Silent,
	}
	for in, want := range cases {
		if got := gormLogLevel(in); got != want {
			t.Fatalf("gormLogLevel(%q)=%v, want %v", in, got, want)
		}
	}
}
