// Package store defines the entity-store contract the business layer
// persists through: a pending unit of work with insert/update/remove
// registration, a commit that reports a definitive error, and queries
// by optional sort keys and filter conditions. Any engine satisfying
// the Store interface is interchangeable.
package store

import (
	"context"
	"fmt"
	"strings"
)

// Entity is the minimal contract persisted types must satisfy.
type Entity interface {
	// TableName returns the database table name for this entity.
	TableName() string

	// PrimaryKey returns the value of the entity's identity key.
	PrimaryKey() interface{}
}

// Store is a persistent collection of one entity kind. Mutations are
// registered against a shared unit of work and committed by Flush;
// reads observe only committed state.
type Store[T Entity] interface {
	// Insert registers a pending insert.
	Insert(entity T)

	// Update registers a pending update.
	Update(entity T)

	// Remove registers a pending delete.
	Remove(entity T)

	// Pending reports the number of uncommitted operations.
	Pending() int

	// Flush commits all pending operations in submission order. A
	// non-nil error carries the engine's diagnostic text; either way
	// the unit of work is definitively resolved.
	Flush(ctx context.Context) error

	// Find returns committed entities matching the query.
	Find(ctx context.Context, q Query) ([]T, error)

	// Count returns the number of committed entities.
	Count(ctx context.Context) (int64, error)
}

// Operator represents comparison operators usable in filter conditions.
type Operator string

const (
	Equal              Operator = "="
	NotEqual           Operator = "<>"
	GreaterThan        Operator = ">"
	GreaterThanOrEqual Operator = ">="
	LessThan           Operator = "<"
	LessThanOrEqual    Operator = "<="
	Like               Operator = "LIKE"
	In                 Operator = "IN"
	IsNull             Operator = "IS NULL"
	IsNotNull          Operator = "IS NOT NULL"
)

// Condition is one filter predicate. Field names are trusted
// identifiers and must never come from user input; values are always
// parameterized.
type Condition struct {
	Field    string
	Operator Operator
	Value    interface{}
}

// Clause renders the condition as a parameterized SQL fragment and its
// arguments.
func (c Condition) Clause() (string, []interface{}) {
	switch c.Operator {
	case IsNull, IsNotNull:
		return fmt.Sprintf("%s %s", c.Field, c.Operator), nil
	case In:
		return fmt.Sprintf("%s IN ?", c.Field), []interface{}{c.Value}
	default:
		return fmt.Sprintf("%s %s ?", c.Field, c.Operator), []interface{}{c.Value}
	}
}

// Sort is one ordering key.
type Sort struct {
	Field      string
	Descending bool
}

// Clause renders the sort key as an ORDER BY fragment.
func (s Sort) Clause() string {
	if s.Descending {
		return s.Field + " DESC"
	}
	return s.Field + " ASC"
}

// Query combines optional sort keys, filter conditions and association
// preloads. The zero value matches everything in engine-defined order.
type Query struct {
	Sort       []Sort
	Conditions []Condition
	Preloads   []string
}

// Where appends a condition and returns the query for chaining.
func (q Query) Where(field string, op Operator, value interface{}) Query {
	q.Conditions = append(q.Conditions, Condition{Field: field, Operator: op, Value: value})
	return q
}

// OrderBy appends an ascending sort key.
func (q Query) OrderBy(field string) Query {
	q.Sort = append(q.Sort, Sort{Field: field})
	return q
}

// OrderByDesc appends a descending sort key.
func (q Query) OrderByDesc(field string) Query {
	q.Sort = append(q.Sort, Sort{Field: field, Descending: true})
	return q
}

// Preload requests the named associations to be loaded with the
// results.
func (q Query) Preload(associations ...string) Query {
	q.Preloads = append(q.Preloads, associations...)
	return q
}

// Key returns a stable textual form of the query, used for cache key
// derivation.
func (q Query) Key() string {
	var b strings.Builder
	for _, c := range q.Conditions {
		clause, args := c.Clause()
		fmt.Fprintf(&b, "%s%v;", clause, args)
	}
	for _, s := range q.Sort {
		b.WriteString(s.Clause())
		b.WriteByte(';')
	}
	for _, p := range q.Preloads {
		b.WriteString(p)
		b.WriteByte(';')
	}
	return b.String()
}
