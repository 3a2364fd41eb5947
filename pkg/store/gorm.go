package store

import (
	"context"
	"fmt"
	"reflect"
	"sync"

	"gorm.io/gorm"

	"tastemap/pkg/db"
)

type opKind int

const (
	opInsert opKind = iota
	opUpdate
	opRemove
)

type operation[T Entity] struct {
	kind   opKind
	entity T
}

// Gorm is the GORM-backed Store implementation. All mutating calls act
// on a single shared unit of work guarded by a mutex, preserving the
// at-most-one-writer invariant; reads go straight to committed database
// state and may run concurrently.
type Gorm[T Entity] struct {
	manager *db.Manager
	gdb     *gorm.DB

	mu      sync.Mutex
	pending []operation[T]
}

// NewGorm creates a store for one entity kind on the given manager.
func NewGorm[T Entity](manager *db.Manager) *Gorm[T] {
	return &Gorm[T]{
		manager: manager,
		gdb:     manager.DB(),
	}
}

// Insert registers a pending insert.
func (s *Gorm[T]) Insert(entity T) {
	s.register(opInsert, entity)
}

// Update registers a pending update.
func (s *Gorm[T]) Update(entity T) {
	s.register(opUpdate, entity)
}

// Remove registers a pending delete.
func (s *Gorm[T]) Remove(entity T) {
	s.register(opRemove, entity)
}

func (s *Gorm[T]) register(kind opKind, entity T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = append(s.pending, operation[T]{kind: kind, entity: entity})
}

// Pending reports the number of uncommitted operations.
func (s *Gorm[T]) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}

// Flush commits all pending operations inside one transaction, in
// submission order. The pending list is cleared whether or not the
// commit succeeds, so an outcome is always definitive: a failed unit of
// work is never silently replayed by a later flush.
func (s *Gorm[T]) Flush(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.pending) == 0 {
		return nil
	}
	ops := s.pending
	s.pending = nil

	err := s.gdb.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, op := range ops {
			switch op.kind {
			case opInsert:
				if err := tx.Create(op.entity).Error; err != nil {
					return err
				}
			case opUpdate:
				if err := tx.Save(op.entity).Error; err != nil {
					return err
				}
			case opRemove:
				if err := tx.Delete(op.entity).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("commit failed: %w", err)
	}
	return nil
}

// Find returns committed entities matching the query.
func (s *Gorm[T]) Find(ctx context.Context, q Query) ([]T, error) {
	ctx, cancel := s.withQueryTimeout(ctx)
	defer cancel()

	tx := s.gdb.WithContext(ctx)
	for _, c := range q.Conditions {
		clause, args := c.Clause()
		tx = tx.Where(clause, args...)
	}
	for _, sort := range q.Sort {
		tx = tx.Order(sort.Clause())
	}
	for _, assoc := range q.Preloads {
		tx = tx.Preload(assoc)
	}

	var entities []T
	if err := tx.Find(&entities).Error; err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}
	return entities, nil
}

// Count returns the number of committed entities.
func (s *Gorm[T]) Count(ctx context.Context) (int64, error) {
	ctx, cancel := s.withQueryTimeout(ctx)
	defer cancel()

	var count int64
	if err := s.gdb.WithContext(ctx).Model(newModel[T]()).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("database error: %w", err)
	}
	return count, nil
}

// withQueryTimeout wraps a context with the configured query timeout.
func (s *Gorm[T]) withQueryTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.manager != nil && s.manager.Config() != nil {
		timeout := s.manager.Config().QueryTimeout
		if timeout > 0 {
			return context.WithTimeout(ctx, timeout)
		}
	}
	// Return context without timeout if not configured
	return ctx, func() {}
}

// newModel builds a fresh instance of the entity type for GORM model
// inference. T is expected to be a pointer type.
func newModel[T any]() T {
	t := reflect.TypeOf((*T)(nil)).Elem()
	if t.Kind() == reflect.Ptr {
		return reflect.New(t.Elem()).Interface().(T)
	}
	var zero T
	return zero
}
