// ABOUTME: Configuration management for the application with environment variable support
// ABOUTME: Defaults, an optional YAML overlay file and environment overrides, in that order

package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	timeutil "digests-reader-api/pkg/utils/time"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration
type Config struct {
	// Server contains HTTP server configuration
	Server ServerConfig `yaml:"server"`

	// Cache contains cache configuration
	Cache CacheConfig `yaml:"cache"`

	// Fetch controls how pages and payloads are retrieved
	Fetch FetchConfig `yaml:"fetch"`

	// Render controls Markdown output details
	Render RenderConfig `yaml:"render"`

	// Log controls logging output
	Log LogConfig `yaml:"log"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	// Port is the HTTP server port
	Port string `yaml:"port"`

	// RateLimit is the allowed requests per second per client
	RateLimit float64 `yaml:"rate_limit"`

	// RateBurst is the token bucket size per client
	RateBurst int `yaml:"rate_burst"`

	// MaxConcurrency bounds concurrent page loads per batch
	MaxConcurrency int `yaml:"max_concurrency"`
}

// CacheConfig holds cache backend configuration
type CacheConfig struct {
	// Type specifies the cache backend (memory/redis/sqlite)
	Type string `yaml:"type"`

	// TTLSeconds is how long rendered views stay cached
	TTLSeconds int `yaml:"ttl_seconds"`

	// Redis contains Redis-specific configuration
	Redis RedisConfig `yaml:"redis"`

	// SQLite contains SQLite-specific configuration
	SQLite SQLiteConfig `yaml:"sqlite"`
}

// RedisConfig holds Redis-specific configuration
type RedisConfig struct {
	// Address is the Redis server address
	Address string `yaml:"address"`

	// Password is the Redis authentication password
	Password string `yaml:"password"`

	// DB is the Redis database number
	DB int `yaml:"db"`

	// KeyPrefix namespaces every key written by this service
	KeyPrefix string `yaml:"key_prefix"`
}

// SQLiteConfig holds SQLite-specific configuration
type SQLiteConfig struct {
	// Path is the database file
	Path string `yaml:"path"`
}

// FetchConfig holds page and payload retrieval settings
type FetchConfig struct {
	// PageSource selects how HTML is loaded (http/browser)
	PageSource string `yaml:"page_source"`

	// TimeoutSeconds bounds a single fetch
	TimeoutSeconds int `yaml:"timeout_seconds"`

	// UserAgent is sent with every outgoing request
	UserAgent string `yaml:"user_agent"`

	// RespectRobots makes page sources honour robots.txt
	RespectRobots bool `yaml:"respect_robots"`

	// BrowserBin is an optional path to a Chromium binary
	BrowserBin string `yaml:"browser_bin"`
}

// RenderConfig holds output settings
type RenderConfig struct {
	// TimeZone is used for discussion attribution dates
	TimeZone string `yaml:"time_zone"`
}

// LogConfig holds logging settings
type LogConfig struct {
	// Level is one of debug/info/warn/error
	Level string `yaml:"level"`

	// Format is json or text
	Format string `yaml:"format"`

	// File enables rotating file output when set
	File string `yaml:"file"`
}

// Page source names
const (
	PageSourceHTTP    = "http"
	PageSourceBrowser = "browser"
)

// Cache type names
const (
	CacheTypeMemory = "memory"
	CacheTypeRedis  = "redis"
	CacheTypeSQLite = "sqlite"
)

// DefaultUserAgent identifies this service to remote sites
const DefaultUserAgent = "DigestsReader/1.0 (+https://digests.app)"

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:           "8000",
			RateLimit:      5,
			RateBurst:      10,
			MaxConcurrency: 10,
		},
		Cache: CacheConfig{
			Type:       CacheTypeMemory,
			TTLSeconds: 3600,
			Redis: RedisConfig{
				Address:   "localhost:6379",
				KeyPrefix: "readmark:",
			},
			SQLite: SQLiteConfig{
				Path: "readmark-cache.db",
			},
		},
		Fetch: FetchConfig{
			PageSource:     PageSourceHTTP,
			TimeoutSeconds: 30,
			UserAgent:      DefaultUserAgent,
			RespectRobots:  true,
		},
		Render: RenderConfig{
			TimeZone: "UTC",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Load builds the configuration from defaults, the YAML file named by
// CONFIG_FILE (if any) and then the environment.
func Load() (*Config, error) {
	cfg := Default()
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.LoadFile(path); err != nil {
			return nil, err
		}
	}
	cfg.applyEnv()
	return cfg, nil
}

// LoadFromEnv loads configuration from environment variables over the defaults
func LoadFromEnv() (*Config, error) {
	cfg := Default()
	cfg.applyEnv()
	return cfg, nil
}

// LoadFile overlays the YAML file at path onto c. Keys absent from the file
// keep their current values.
func (c *Config) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() {
	c.Server.Port = getEnvOrDefault("PORT", c.Server.Port)
	c.Server.RateLimit = getEnvAsFloatOrDefault("RATE_LIMIT", c.Server.RateLimit)
	c.Server.RateBurst = getEnvAsIntOrDefault("RATE_BURST", c.Server.RateBurst)
	c.Server.MaxConcurrency = getEnvAsIntOrDefault("MAX_CONCURRENCY", c.Server.MaxConcurrency)

	c.Cache.Type = getEnvOrDefault("CACHE_TYPE", c.Cache.Type)
	c.Cache.TTLSeconds = getEnvAsIntOrDefault("CACHE_TTL_SECONDS", c.Cache.TTLSeconds)
	c.Cache.Redis.Address = getEnvOrDefault("REDIS_ADDRESS", c.Cache.Redis.Address)
	c.Cache.Redis.Password = getEnvOrDefault("REDIS_PASSWORD", c.Cache.Redis.Password)
	c.Cache.Redis.DB = getEnvAsIntOrDefault("REDIS_DB", c.Cache.Redis.DB)
	c.Cache.SQLite.Path = getEnvOrDefault("SQLITE_PATH", c.Cache.SQLite.Path)

	c.Fetch.PageSource = getEnvOrDefault("PAGE_SOURCE", c.Fetch.PageSource)
	c.Fetch.TimeoutSeconds = getEnvAsIntOrDefault("FETCH_TIMEOUT_SECONDS", c.Fetch.TimeoutSeconds)
	c.Fetch.UserAgent = getEnvOrDefault("USER_AGENT", c.Fetch.UserAgent)
	c.Fetch.RespectRobots = getEnvAsBoolOrDefault("RESPECT_ROBOTS", c.Fetch.RespectRobots)
	c.Fetch.BrowserBin = getEnvOrDefault("BROWSER_BIN", c.Fetch.BrowserBin)

	c.Render.TimeZone = getEnvOrDefault("RENDER_TIMEZONE", c.Render.TimeZone)

	c.Log.Level = getEnvOrDefault("LOG_LEVEL", c.Log.Level)
	c.Log.Format = getEnvOrDefault("LOG_FORMAT", c.Log.Format)
	c.Log.File = getEnvOrDefault("LOG_FILE", c.Log.File)
}

// getEnvOrDefault returns the environment variable value or a default
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsIntOrDefault returns the environment variable as int or a default
func getEnvAsIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getEnvAsBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

// TTL returns the cache TTL as a duration
func (c CacheConfig) TTL() time.Duration {
	return time.Duration(c.TTLSeconds) * time.Second
}

// Timeout returns the fetch timeout as a duration
func (f FetchConfig) Timeout() time.Duration {
	return time.Duration(f.TimeoutSeconds) * time.Second
}

// Location resolves the configured time zone
func (r RenderConfig) Location() (*time.Location, error) {
	return timeutil.ParseLocation(r.TimeZone)
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return errors.New("port cannot be empty")
	}

	if c.Server.RateLimit <= 0 {
		return errors.New("rate limit must be positive")
	}

	switch c.Cache.Type {
	case CacheTypeMemory, CacheTypeRedis, CacheTypeSQLite:
	default:
		return errors.New("cache type must be 'memory', 'redis' or 'sqlite'")
	}

	if c.Cache.Type == CacheTypeRedis && c.Cache.Redis.Address == "" {
		return errors.New("redis address cannot be empty when using redis cache")
	}

	if c.Cache.Type == CacheTypeSQLite && c.Cache.SQLite.Path == "" {
		return errors.New("sqlite path cannot be empty when using sqlite cache")
	}

	if c.Cache.TTLSeconds < 0 {
		return errors.New("cache ttl cannot be negative")
	}

	switch strings.ToLower(c.Fetch.PageSource) {
	case PageSourceHTTP, PageSourceBrowser:
	default:
		return errors.New("page source must be 'http' or 'browser'")
	}

	if c.Fetch.TimeoutSeconds < 1 {
		return errors.New("fetch timeout must be at least 1 second")
	}

	if _, err := c.Render.Location(); err != nil {
		return fmt.Errorf("invalid render time zone %q: %w", c.Render.TimeZone, err)
	}

	return nil
}
