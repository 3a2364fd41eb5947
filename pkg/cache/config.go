package cache

import (
	"fmt"
	"time"
)

// Config holds Redis cache configuration
type Config struct {
	// Cache Strategy
	Enabled    bool          `json:"enabled" yaml:"enabled"`
	DefaultTTL time.Duration `json:"default_ttl" yaml:"default_ttl"`

	// Redis Connection
	Host     string `json:"host" yaml:"host"`
	Port     int    `json:"port" yaml:"port"`
	Password string `json:"password" yaml:"password"`
	Database int    `json:"database" yaml:"database"`

	// Connection Pool
	PoolSize     int           `json:"pool_size" yaml:"pool_size"`
	MinIdleConns int           `json:"min_idle_conns" yaml:"min_idle_conns"`
	PoolTimeout  time.Duration `json:"pool_timeout" yaml:"pool_timeout"`
	IdleTimeout  time.Duration `json:"idle_timeout" yaml:"idle_timeout"`

	// Performance
	ReadTimeout  time.Duration `json:"read_timeout" yaml:"read_timeout"`
	WriteTimeout time.Duration `json:"write_timeout" yaml:"write_timeout"`
	DialTimeout  time.Duration `json:"dial_timeout" yaml:"dial_timeout"`
}

// DefaultConfig returns a configuration for a local Redis instance.
func DefaultConfig() *Config {
	return &Config{
		Enabled:      true,
		DefaultTTL:   5 * time.Minute,
		Host:         "localhost",
		Port:         6379,
		PoolSize:     10,
		MinIdleConns: 2,
		PoolTimeout:  4 * time.Second,
		IdleTimeout:  5 * time.Minute,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		DialTimeout:  5 * time.Second,
	}
}

// Validate checks if the cache configuration is valid.
func (c *Config) Validate() error {
	if !c.Enabled {
		return nil // Nothing else to validate when disabled
	}
	if c.Host == "" {
		return fmt.Errorf("redis host is required")
	}
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("redis port must be between 1 and 65535, got %d", c.Port)
	}
	if c.DefaultTTL <= 0 {
		return fmt.Errorf("default_ttl must be positive")
	}
	return nil
}

// GetAddr returns the Redis address in host:port form.
func (c *Config) GetAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
