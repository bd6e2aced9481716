package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"library-catalog/internal/infrastructure/database"
)

const (
	CacheDriverRedis  = "redis"
	CacheDriverMemory = "memory"
)

// Config chứa toàn bộ application configuration
// Struct này được populate từ environment variables
type Config struct {
	App        AppConfig
	Database   *database.DBConfig
	Redis      RedisConfig
	Cache      CacheConfig
	Pagination PaginationConfig
	Log        LogConfig
}

type AppConfig struct {
	Name        string
	Environment string // development, staging, production
	Port        string
	Version     string
	AutoMigrate bool // chạy goose up lúc start
}

type RedisConfig struct {
	Host     string
	Password string
	DB       int
}

// CacheConfig chọn store cho tag cache
type CacheConfig struct {
	Driver         string // redis | memory
	Namespace      string // prefix cho mọi redis key
	TTL            time.Duration
	MemoryCapacity int
	MemoryShards   int
}

type PaginationConfig struct {
	DefaultPerPage int
	MaxPerPage     int
}

type LogConfig struct {
	Level string
}

// Load đọc config từ environment variables
func Load() (*Config, error) {
	db, err := LoadDatabaseConfig()
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "Library Catalog"),
			Environment: getEnv("APP_ENV", "development"),
			Port:        getEnv("APP_PORT", "8080"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
			AutoMigrate: getEnvBool("DB_AUTO_MIGRATE", false),
		},
		Database: db,
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		Cache: CacheConfig{
			Driver:         strings.ToLower(getEnv("CACHE_DRIVER", CacheDriverRedis)),
			Namespace:      getEnv("CACHE_NAMESPACE", "catalog"),
			TTL:            getEnvDuration("CACHE_TTL", 10*time.Minute),
			MemoryCapacity: getEnvInt("CACHE_MEMORY_CAPACITY", 10000),
			MemoryShards:   getEnvInt("CACHE_MEMORY_SHARDS", 64),
		},
		Pagination: PaginationConfig{
			DefaultPerPage: getEnvInt("PAGINATION_DEFAULT_PER_PAGE", 20),
			MaxPerPage:     getEnvInt("PAGINATION_MAX_PER_PAGE", 100),
		},
		Log: LogConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate kiểm tra config có hợp lệ không
func (c *Config) Validate() error {
	switch c.Cache.Driver {
	case CacheDriverRedis, CacheDriverMemory:
	default:
		return fmt.Errorf("CACHE_DRIVER must be %q or %q, got %q", CacheDriverRedis, CacheDriverMemory, c.Cache.Driver)
	}
	if c.Cache.TTL <= 0 {
		return fmt.Errorf("CACHE_TTL must be positive")
	}

	if c.Pagination.DefaultPerPage <= 0 {
		return fmt.Errorf("PAGINATION_DEFAULT_PER_PAGE must be positive")
	}
	if c.Pagination.MaxPerPage < c.Pagination.DefaultPerPage {
		return fmt.Errorf("PAGINATION_MAX_PER_PAGE (%d) must be >= PAGINATION_DEFAULT_PER_PAGE (%d)",
			c.Pagination.MaxPerPage, c.Pagination.DefaultPerPage)
	}

	// Production environment phải có DB password
	if c.App.Environment == "production" && c.Database != nil && c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD must be set in production")
	}

	return nil
}

// IsProduction dùng để chọn gin mode và log format
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// Helper functions
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
