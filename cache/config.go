package cache

import (
	"fmt"
	"time"
)

// Durable backend names accepted in DurableConfig.Backend
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendNone  = "none"
)

// Config represents cache configuration
type Config struct {
	// GoCache configuration for the volatile tier
	GoCache GoCacheConfig `yaml:"go_cache"`

	// Durable configuration for the durable tier
	Durable DurableConfig `yaml:"durable"`
}

// GoCacheConfig configuration for in-memory go-cache
type GoCacheConfig struct {
	// DefaultExpiration default expiration time for cache items
	// If 0, items never expire by default
	DefaultExpiration time.Duration `yaml:"default_expiration"`

	// CleanupInterval interval for cleaning up expired items
	// Should be less than DefaultExpiration
	CleanupInterval time.Duration `yaml:"cleanup_interval"`
}

// DurableConfig selects and configures the durable document backend
type DurableConfig struct {
	// Backend is one of "file", "redis" or "none"
	Backend string `yaml:"backend"`

	// Path of the JSON document for the file backend
	Path string `yaml:"path"`

	// RedisAddr is host:port of the Redis server for the redis backend
	RedisAddr string `yaml:"redis_addr"`

	// RedisKey is the key holding the whole document in Redis
	RedisKey string `yaml:"redis_key"`

	// CompactionInterval is how often expired entries are pruned from the document.
	// Zero disables periodic compaction; writes still compact.
	CompactionInterval time.Duration `yaml:"compaction_interval"`
}

// DefaultCacheConfig returns default cache configuration
func DefaultCacheConfig() Config {
	return Config{
		GoCache: GoCacheConfig{
			DefaultExpiration: 5 * time.Minute,
			CleanupInterval:   10 * time.Minute,
		},
		Durable: DurableConfig{
			Backend:            BackendFile,
			Path:               "data/cache.json",
			RedisKey:           "smurfguard:cache",
			CompactionInterval: time.Hour,
		},
	}
}

// ApplyDefaults fills zero values with DefaultCacheConfig values
func (c *Config) ApplyDefaults() {
	def := DefaultCacheConfig()

	if c.GoCache.DefaultExpiration == 0 {
		c.GoCache.DefaultExpiration = def.GoCache.DefaultExpiration
	}
	if c.GoCache.CleanupInterval == 0 {
		c.GoCache.CleanupInterval = def.GoCache.CleanupInterval
	}
	if c.Durable.Backend == "" {
		c.Durable.Backend = def.Durable.Backend
	}
	if c.Durable.Path == "" {
		c.Durable.Path = def.Durable.Path
	}
	if c.Durable.RedisKey == "" {
		c.Durable.RedisKey = def.Durable.RedisKey
	}
}

// Validate checks the durable backend selection
func (c *Config) Validate() error {
	switch c.Durable.Backend {
	case BackendFile:
		if c.Durable.Path == "" {
			return fmt.Errorf("durable.path is required for the file backend")
		}
	case BackendRedis:
		if c.Durable.RedisAddr == "" {
			return fmt.Errorf("durable.redis_addr is required for the redis backend")
		}
	case BackendNone:
	default:
		return fmt.Errorf("unknown durable backend %q", c.Durable.Backend)
	}

	if c.Durable.CompactionInterval < 0 {
		return fmt.Errorf("durable.compaction_interval must not be negative")
	}

	return nil
}
