// Package cache provides an optional Redis-backed read cache for
// catalog queries. Values are encoded with msgpack; invalidation is
// pattern-based over SCAN so it never blocks the Redis server.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/vmihailenco/msgpack/v5"
)

// Manager manages the Redis connection and cache operations
type Manager struct {
	config  *Config
	client  *redis.Client
	metrics *Metrics
}

// NewManager creates a new cache manager
func NewManager(config *Config) (*Manager, error) {
	if config == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid cache config: %w", err)
	}

	manager := &Manager{
		config:  config,
		metrics: NewMetrics(),
	}

	if config.Enabled {
		manager.client = redis.NewClient(&redis.Options{
			Addr:            config.GetAddr(),
			Password:        config.Password,
			DB:              config.Database,
			PoolSize:        config.PoolSize,
			MinIdleConns:    config.MinIdleConns,
			PoolTimeout:     config.PoolTimeout,
			ConnMaxIdleTime: config.IdleTimeout,
			ReadTimeout:     config.ReadTimeout,
			WriteTimeout:    config.WriteTimeout,
			DialTimeout:     config.DialTimeout,
		})
	}

	return manager, nil
}

// Config returns the manager's configuration
func (m *Manager) Config() *Config {
	return m.config
}

// Metrics returns the manager's metrics collector
func (m *Manager) Metrics() *Metrics {
	return m.metrics
}

// Close closes the Redis connection
func (m *Manager) Close() error {
	if m.client != nil {
		return m.client.Close()
	}
	return nil
}

// Ping tests the Redis connection
// Returns nil if the cache is disabled (not an error condition)
func (m *Manager) Ping(ctx context.Context) error {
	if !m.config.Enabled {
		return nil
	}
	if m.client == nil {
		return ErrClientNotInitialized
	}
	if err := m.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrConnectionFailed, err)
	}
	return nil
}

// checkClient validates that the cache is enabled and the client is
// initialized
func (m *Manager) checkClient() error {
	if !m.config.Enabled {
		return ErrCacheDisabled
	}
	if m.client == nil {
		return ErrClientNotInitialized
	}
	return nil
}

// Get retrieves raw bytes from cache
func (m *Manager) Get(ctx context.Context, key string) ([]byte, error) {
	if err := m.checkClient(); err != nil {
		return nil, err
	}

	start := time.Now()
	result := m.client.Get(ctx, key)
	m.metrics.RecordGet(time.Since(start))

	if result.Err() == redis.Nil {
		m.metrics.RecordCacheMiss()
		return nil, ErrKeyNotFound
	}
	if result.Err() != nil {
		m.metrics.RecordCacheError()
		return nil, fmt.Errorf("redis get error: %w", result.Err())
	}

	m.metrics.RecordCacheHit()
	return []byte(result.Val()), nil
}

// Set stores raw bytes in cache with the default TTL
func (m *Manager) Set(ctx context.Context, key string, value []byte) error {
	return m.SetWithTTL(ctx, key, value, m.config.DefaultTTL)
}

// SetWithTTL stores raw bytes in cache with a custom TTL
func (m *Manager) SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := m.checkClient(); err != nil {
		return err
	}

	start := time.Now()
	err := m.client.Set(ctx, key, value, ttl).Err()
	m.metrics.RecordSet(time.Since(start))
	if err != nil {
		m.metrics.RecordCacheError()
	}
	return err
}

// Delete removes a key from cache
func (m *Manager) Delete(ctx context.Context, key string) error {
	if err := m.checkClient(); err != nil {
		return err
	}

	m.metrics.RecordDelete()
	return m.client.Del(ctx, key).Err()
}

// Exists checks if a key exists in cache
func (m *Manager) Exists(ctx context.Context, key string) (bool, error) {
	if err := m.checkClient(); err != nil {
		return false, err
	}

	result := m.client.Exists(ctx, key)
	if result.Err() != nil {
		return false, result.Err()
	}
	return result.Val() > 0, nil
}

// GetValue retrieves and msgpack-decodes a value from cache into target
func (m *Manager) GetValue(ctx context.Context, key string, target interface{}) error {
	data, err := m.Get(ctx, key)
	if err != nil {
		return err
	}
	if err := msgpack.Unmarshal(data, target); err != nil {
		m.metrics.RecordCacheError()
		return fmt.Errorf("failed to decode cached value: %w", err)
	}
	return nil
}

// SetValue msgpack-encodes a value and stores it with the default TTL
func (m *Manager) SetValue(ctx context.Context, key string, value interface{}) error {
	data, err := msgpack.Marshal(value)
	if err != nil {
		m.metrics.RecordCacheError()
		return fmt.Errorf("failed to encode value for cache: %w", err)
	}
	return m.Set(ctx, key, data)
}

// InvalidatePattern removes keys matching a pattern using SCAN instead
// of KEYS. SCAN is non-blocking and production-safe, unlike KEYS which
// blocks the Redis server.
func (m *Manager) InvalidatePattern(ctx context.Context, pattern string) error {
	if err := m.checkClient(); err != nil {
		return err
	}

	var cursor uint64
	const scanBatchSize = 100 // Process keys in batches

	for {
		batch, next, err := m.client.Scan(ctx, cursor, pattern, scanBatchSize).Result()
		if err != nil {
			return fmt.Errorf("failed to scan keys with pattern %s: %w", pattern, err)
		}

		// Delete keys in batches to avoid large atomic operations
		if len(batch) > 0 {
			if err := m.client.Del(ctx, batch...).Err(); err != nil {
				return fmt.Errorf("failed to delete batch: %w", err)
			}
			m.metrics.RecordInvalidation()
		}

		// cursor == 0 means we've iterated through all keys
		cursor = next
		if cursor == 0 {
			break
		}
	}

	return nil
}
