package business

import (
	"context"
	"fmt"
	"reflect"

	"github.com/cespare/xxhash/v2"
	"go.uber.org/zap"

	"tastemap/pkg/cache"
	"tastemap/pkg/store"
)

// Cache key constants for consistent key generation
const (
	cacheKeyPrefix     = "tastemap"
	cacheKeySeparator  = ":"
	cacheKeyHashLength = 12 // Balance between uniqueness and key length
)

// RuleCheck validates an entity before it is saved. It returns a
// user-facing violation message, or an empty string when the entity
// passes.
type RuleCheck[T store.Entity] func(ctx context.Context, entity T) string

// Object is the generic persistence gateway for one entity kind. It
// wraps a Store with a rule-check hook invoked before every save, an
// optional read cache and fail-open query behavior.
type Object[T store.Entity] struct {
	store     store.Store[T]
	rules     RuleCheck[T]
	cache     *cache.Manager
	logger    *zap.Logger
	tableName string
	related   []string // extra table names invalidated on mutation
}

// New creates an Object over the given store. rules, cacheManager and
// logger may all be nil. related lists additional table names whose
// cached reads a mutation of this entity invalidates (e.g. owned
// collections).
func New[T store.Entity](st store.Store[T], rules RuleCheck[T], cacheManager *cache.Manager, logger *zap.Logger, related ...string) *Object[T] {
	if logger == nil {
		logger = zap.NewNop()
	}
	model := newModel[T]()
	return &Object[T]{
		store:     st,
		rules:     rules,
		cache:     cacheManager,
		logger:    logger,
		tableName: model.TableName(),
		related:   related,
	}
}

// Store exposes the underlying entity store.
func (o *Object[T]) Store() store.Store[T] {
	return o.store
}

// GetAll returns all entities, unsorted and unfiltered.
func (o *Object[T]) GetAll(ctx context.Context) []T {
	return o.GetEntities(ctx, store.Query{})
}

// GetEntities returns entities matching the query. Store failures
// degrade to an empty result set with a diagnostic log entry; read
// queries never surface errors to the caller.
func (o *Object[T]) GetEntities(ctx context.Context, q store.Query) []T {
	cacheKey := o.queryCacheKey(q)

	// Try cache first
	if o.cache != nil {
		var entities []T
		if err := o.cache.GetValue(ctx, cacheKey, &entities); err == nil {
			return entities
		} else if !cache.IsKeyNotFound(err) && !cache.IsCacheDisabled(err) {
			// Unexpected cache error; continue to the store
		}
	}

	entities, err := o.store.Find(ctx, q)
	if err != nil {
		o.logger.Error("query failed, returning empty result",
			zap.String("entity", o.tableName),
			zap.Error(err))
		return []T{}
	}

	// Cache the result - best effort
	if o.cache != nil {
		_ = o.cache.SetValue(ctx, cacheKey, entities)
	}

	return entities
}

// Count returns the number of persisted entities, zero on store failure.
func (o *Object[T]) Count(ctx context.Context) int64 {
	count, err := o.store.Count(ctx)
	if err != nil {
		o.logger.Error("count failed, returning zero",
			zap.String("entity", o.tableName),
			zap.Error(err))
		return 0
	}
	return count
}

// CheckRules runs the rule hook for the entity. The default, with no
// hook installed, is no violation.
func (o *Object[T]) CheckRules(ctx context.Context, entity T) string {
	if o.rules == nil {
		return ""
	}
	return o.rules(ctx, entity)
}

// Insert registers a new entity and commits it. A rule violation
// blocks the save entirely; no persistence attempt occurs.
func (o *Object[T]) Insert(ctx context.Context, entity T) SaveOutcome {
	if msg := o.CheckRules(ctx, entity); msg != "" {
		return Violated(msg)
	}
	o.store.Insert(entity)
	return o.flush(ctx)
}

// Save commits changes to the entity after checking business rules.
func (o *Object[T]) Save(ctx context.Context, entity T) SaveOutcome {
	if msg := o.CheckRules(ctx, entity); msg != "" {
		return Violated(msg)
	}
	o.store.Update(entity)
	return o.flush(ctx)
}

// SaveAll commits every pending insert, update and delete in the
// current unit of work.
func (o *Object[T]) SaveAll(ctx context.Context) SaveOutcome {
	return o.flush(ctx)
}

// DeleteAndSave marks the entity for removal and commits.
func (o *Object[T]) DeleteAndSave(ctx context.Context, entity T) SaveOutcome {
	o.store.Remove(entity)
	return o.flush(ctx)
}

func (o *Object[T]) flush(ctx context.Context) SaveOutcome {
	if err := o.store.Flush(ctx); err != nil {
		return Failed(err)
	}
	o.invalidate(ctx)
	return Complete()
}

// invalidate drops cached reads for this entity and its related tables
// after a committed mutation. Best effort: cache failures never affect
// the save outcome.
func (o *Object[T]) invalidate(ctx context.Context) {
	if o.cache == nil {
		return
	}
	tables := append([]string{o.tableName}, o.related...)
	for _, table := range tables {
		pattern := fmt.Sprintf("%s%s%s%s*", cacheKeyPrefix, cacheKeySeparator, table, cacheKeySeparator)
		if err := o.cache.InvalidatePattern(ctx, pattern); err != nil && !cache.IsCacheDisabled(err) {
			o.logger.Warn("cache invalidation failed",
				zap.String("entity", table),
				zap.Error(err))
		}
	}
}

// queryCacheKey derives a short, stable cache key from the query using
// xxhash (fast non-cryptographic hash).
func (o *Object[T]) queryCacheKey(q store.Query) string {
	hash := xxhash.Sum64String(q.Key())
	hashStr := fmt.Sprintf("%016x", hash)
	return fmt.Sprintf("%s%s%s%sfind%s%s",
		cacheKeyPrefix, cacheKeySeparator, o.tableName, cacheKeySeparator,
		cacheKeySeparator, hashStr[:cacheKeyHashLength])
}

// newModel builds a fresh instance of the entity type so its table
// name can be read. T is expected to be a pointer type.
func newModel[T store.Entity]() T {
	t := reflect.TypeOf((*T)(nil)).Elem()
	if t.Kind() == reflect.Ptr {
		return reflect.New(t.Elem()).Interface().(T)
	}
	var zero T
	return zero
}
