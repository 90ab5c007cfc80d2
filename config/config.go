package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/reithediver/lol-smurfguard-sub000/cache"
)

type Config struct {
	Riot       RiotConfig                   `yaml:"riot"`
	RateLimits map[string][]RateLimitWindow `yaml:"rate_limits"`
	Resources  map[string]ResourcePolicy    `yaml:"resources"`
	Batch      BatchConfig                  `yaml:"batch"`
	Retry      RetryConfig                  `yaml:"retry"`
	Cache      cache.Config                 `yaml:"cache"`
	Server     ServerConfig                 `yaml:"server"`
	LogLevel   string                       `yaml:"log_level"`

	// APIKey is resolved from Riot.APIKeyFile or the environment, never from YAML
	APIKey string `yaml:"-"`
}

// RiotConfig holds upstream routing and authentication settings
type RiotConfig struct {
	// Platform routing value for summoner, league and mastery endpoints (e.g. "na1")
	Platform string `yaml:"platform"`

	// Region routing value for account and match endpoints (e.g. "americas")
	Region string `yaml:"region"`

	// APIKeyFile contains the Riot API key on its first line
	APIKeyFile string `yaml:"api_key_file"`

	OverridePlatformURL string `yaml:"override_platform_url"`
	OverrideRegionalURL string `yaml:"override_regional_url"`
}

// BatchConfig configures the batch fetch orchestrator
type BatchConfig struct {
	ConcurrencyLimit int           `yaml:"concurrency_limit"`
	ChunkDelay       time.Duration `yaml:"chunk_delay"` // Pause between chunks
}

// RetryConfig configures the retry executor
type RetryConfig struct {
	MaxAttempts       int           `yaml:"max_attempts"`
	BaseBackoff       time.Duration `yaml:"base_backoff"`
	HonorRetryAfter   *bool         `yaml:"honor_retry_after"`
	RetryClientErrors bool          `yaml:"retry_client_errors"` // Retry non-429 4xx responses too
	ConnectionTimeout time.Duration `yaml:"connection_timeout"`
	RequestTimeout    time.Duration `yaml:"request_timeout"`
}

// ServerConfig configures the HTTP surface
type ServerConfig struct {
	Port string `yaml:"port"`
}

// ShouldHonorRetryAfter reports whether Retry-After hints are used; defaults to true
func (r RetryConfig) ShouldHonorRetryAfter() bool {
	return r.HonorRetryAfter == nil || *r.HonorRetryAfter
}

// Default returns a fully populated configuration
func Default() *Config {
	cfg := &Config{}
	cfg.ApplyDefaults()
	return cfg
}

func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	config.ApplyDefaults()
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	apiKey, err := LoadAPIKey(config.Riot.APIKeyFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load api key: %w", err)
	}
	config.APIKey = apiKey

	return &config, nil
}

// ApplyDefaults fills every zero value with its default
func (c *Config) ApplyDefaults() {
	if c.Riot.Platform == "" {
		c.Riot.Platform = "na1"
	}
	if c.Riot.Region == "" {
		c.Riot.Region = "americas"
	}
	if c.Riot.APIKeyFile == "" {
		c.Riot.APIKeyFile = "riot_api_key.txt"
	}

	if c.RateLimits == nil {
		c.RateLimits = make(map[string][]RateLimitWindow)
	}
	for class, windows := range DefaultRateLimits() {
		if len(c.RateLimits[class]) == 0 {
			c.RateLimits[class] = windows
		}
	}

	if c.Resources == nil {
		c.Resources = make(map[string]ResourcePolicy)
	}
	for name, policy := range DefaultResourcePolicies() {
		current, ok := c.Resources[name]
		if !ok {
			c.Resources[name] = policy
			continue
		}
		if current.TTL <= 0 {
			current.TTL = policy.TTL
			c.Resources[name] = current
		}
	}

	if c.Batch.ConcurrencyLimit <= 0 {
		c.Batch.ConcurrencyLimit = 5
	}
	if c.Batch.ChunkDelay == 0 {
		c.Batch.ChunkDelay = 250 * time.Millisecond
	}

	if c.Retry.MaxAttempts <= 0 {
		c.Retry.MaxAttempts = 3
	}
	if c.Retry.BaseBackoff <= 0 {
		c.Retry.BaseBackoff = time.Second
	}
	if c.Retry.ConnectionTimeout <= 0 {
		c.Retry.ConnectionTimeout = 10 * time.Second
	}
	if c.Retry.RequestTimeout <= 0 {
		c.Retry.RequestTimeout = 30 * time.Second
	}

	c.Cache.ApplyDefaults()

	if c.Server.Port == "" {
		c.Server.Port = "8080"
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
}

// Validate checks the configuration for values that cannot work
func (c *Config) Validate() error {
	if c.Riot.Platform == "" {
		return fmt.Errorf("riot.platform is required")
	}
	if c.Riot.Region == "" {
		return fmt.Errorf("riot.region is required")
	}

	for class, windows := range c.RateLimits {
		if err := validateWindows(class, windows); err != nil {
			return err
		}
	}

	for name, policy := range c.Resources {
		if policy.TTL <= 0 {
			return fmt.Errorf("resource '%s': ttl must be greater than 0", name)
		}
	}

	if c.Batch.ConcurrencyLimit <= 0 {
		return fmt.Errorf("batch.concurrency_limit must be greater than 0")
	}
	if c.Batch.ChunkDelay < 0 {
		return fmt.Errorf("batch.chunk_delay must not be negative")
	}
	if c.Retry.MaxAttempts < 1 {
		return fmt.Errorf("retry.max_attempts must be at least 1")
	}

	if err := c.Cache.Validate(); err != nil {
		return fmt.Errorf("cache: %w", err)
	}

	return nil
}

// LoadAPIKey reads the API key from filename. A missing file yields an empty key.
func LoadAPIKey(filename string) (string, error) {
	if filename == "" {
		return "", nil
	}

	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return "", nil
	}

	data, err := os.ReadFile(filename)
	if err != nil {
		return "", err
	}

	return firstLine(string(data)), nil
}
