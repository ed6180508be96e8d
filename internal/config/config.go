package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// FetcherConfig controls outbound storefront requests.
type FetcherConfig struct {
	UserAgent    string `yaml:"userAgent"`
	TimeoutMs    int    `yaml:"timeoutMs"`
	MaxRedirects int    `yaml:"maxRedirects"`
}

// ExtractConfig controls how long-form content is rendered.
type ExtractConfig struct {
	ContentFormat string `yaml:"contentFormat"`
}

type DatabaseConfig struct {
	DSN string `yaml:"dsn"`
}

type RedisConfig struct {
	URL string `yaml:"url"`
}

type CacheConfig struct {
	TTLMinutes int `yaml:"ttlMinutes"`
}

type RateLimitConfig struct {
	PerMinute int `yaml:"perMinute"`
}

// RetentionConfig controls TTL-like deletion of persisted insights so
// that the database does not grow without bound over time.
type RetentionConfig struct {
	Enabled                bool `yaml:"enabled"`
	MaxAgeDays             int  `yaml:"maxAgeDays"`
	CleanupIntervalMinutes int  `yaml:"cleanupIntervalMinutes"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Fetcher   FetcherConfig   `yaml:"fetcher"`
	Extract   ExtractConfig   `yaml:"extract"`
	Database  DatabaseConfig  `yaml:"database"`
	Redis     RedisConfig     `yaml:"redis"`
	Cache     CacheConfig     `yaml:"cache"`
	RateLimit RateLimitConfig `yaml:"ratelimit"`
	Retention RetentionConfig `yaml:"retention"`
	Log       LogConfig       `yaml:"log"`
}

// Environment variables that override the file.
const (
	EnvDatabaseDSN = "BRANDSCOPE_DATABASE_DSN"
	EnvRedisURL    = "BRANDSCOPE_REDIS_URL"
)

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Server:    ServerConfig{Host: "0.0.0.0", Port: 8080},
		Fetcher:   FetcherConfig{TimeoutMs: 10000, MaxRedirects: 10},
		Extract:   ExtractConfig{ContentFormat: "text"},
		Cache:     CacheConfig{TTLMinutes: 60},
		RateLimit: RateLimitConfig{PerMinute: 0},
		Retention: RetentionConfig{MaxAgeDays: 30, CleanupIntervalMinutes: 60},
		Log:       LogConfig{Level: "info", Format: "text"},
	}
}

// Load reads a YAML config file over the defaults. An empty path skips
// the file. Environment overrides are applied last.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open config file: %w", err)
		}
		defer f.Close()

		if err := yaml.NewDecoder(f).Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("decode config: %w", err)
		}
	}

	if v := os.Getenv(EnvDatabaseDSN); v != "" {
		cfg.Database.DSN = v
	}
	if v := os.Getenv(EnvRedisURL); v != "" {
		cfg.Redis.URL = v
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects values the server cannot run with.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535, got %d", c.Server.Port)
	}
	switch c.Extract.ContentFormat {
	case "", "text", "markdown":
	default:
		return fmt.Errorf("extract.contentFormat must be text or markdown, got %q", c.Extract.ContentFormat)
	}
	switch c.Log.Format {
	case "", "text", "json":
	default:
		return fmt.Errorf("log.format must be text or json, got %q", c.Log.Format)
	}
	return nil
}

// Addr is the listen address for the API server.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// FetchTimeout is the per-request timeout for storefront fetches.
func (c *Config) FetchTimeout() time.Duration {
	return time.Duration(c.Fetcher.TimeoutMs) * time.Millisecond
}

// CacheTTL is how long an insight stays in Redis.
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.Cache.TTLMinutes) * time.Minute
}
