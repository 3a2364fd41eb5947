package cache

import (
	"testing"
	"time"
)

func TestConfigValidate(t *testing.T) {
	valid := DefaultConfig()
	if err := valid.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}

	disabled := &Config{Enabled: false}
	if err := disabled.Validate(); err != nil {
		t.Errorf("disabled config should need nothing else, got %v", err)
	}

	noHost := DefaultConfig()
	noHost.Host = ""
	if err := noHost.Validate(); err == nil {
		t.Error("missing host accepted")
	}

	badPort := DefaultConfig()
	badPort.Port = 70000
	if err := badPort.Validate(); err == nil {
		t.Error("out-of-range port accepted")
	}

	badTTL := DefaultConfig()
	badTTL.DefaultTTL = 0
	if err := badTTL.Validate(); err == nil {
		t.Error("zero TTL accepted")
	}
}

func TestGetAddr(t *testing.T) {
	config := &Config{Host: "redis.local", Port: 6380}
	if got := config.GetAddr(); got != "redis.local:6380" {
		t.Errorf("GetAddr() = %q", got)
	}
}

func TestMetricsSnapshot(t *testing.T) {
	m := NewMetrics()

	m.RecordCacheHit()
	m.RecordCacheHit()
	m.RecordCacheHit()
	m.RecordCacheMiss()
	m.RecordGet(10 * time.Millisecond)
	m.RecordGet(20 * time.Millisecond)
	m.RecordSet(5 * time.Millisecond)
	m.RecordDelete()
	m.RecordInvalidation()

	snap := m.GetSnapshot()
	if snap.CacheHits != 3 || snap.CacheMisses != 1 {
		t.Errorf("hits=%d misses=%d", snap.CacheHits, snap.CacheMisses)
	}
	if snap.CacheHitRate != 75 {
		t.Errorf("hit rate = %v, want 75", snap.CacheHitRate)
	}
	if snap.AvgGetLatency != 15*time.Millisecond {
		t.Errorf("avg get latency = %v", snap.AvgGetLatency)
	}
	if snap.SetOperations != 1 || snap.DeleteOperations != 1 || snap.InvalidationCount != 1 {
		t.Errorf("snapshot = %+v", snap)
	}

	m.Reset()
	if snap := m.GetSnapshot(); snap.CacheHits != 0 || snap.GetOperations != 0 {
		t.Errorf("reset left counters: %+v", snap)
	}
}

func TestErrorPredicates(t *testing.T) {
	if !IsCacheDisabled(ErrCacheDisabled) || IsCacheDisabled(ErrKeyNotFound) {
		t.Error("IsCacheDisabled misclassified")
	}
	if !IsKeyNotFound(ErrKeyNotFound) || IsKeyNotFound(nil) {
		t.Error("IsKeyNotFound misclassified")
	}
	if !IsConnectionFailed(ErrConnectionFailed) {
		t.Error("IsConnectionFailed misclassified")
	}
}
