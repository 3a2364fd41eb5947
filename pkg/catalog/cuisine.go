package catalog

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"tastemap/pkg/business"
	"tastemap/pkg/cache"
	"tastemap/pkg/store"
)

// CuisineRepository persists cuisines. Cuisine names are unique; a
// duplicate is rejected by the store's uniqueness constraint and
// surfaces as a storage-error outcome.
type CuisineRepository struct {
	*business.Object[*Cuisine]
}

// NewCuisineRepository creates the repository. cacheManager and logger
// may be nil.
func NewCuisineRepository(st store.Store[*Cuisine], cacheManager *cache.Manager, logger *zap.Logger) *CuisineRepository {
	// Restaurant reads cache their preloaded cuisine reference, so a
	// cuisine mutation must invalidate them too.
	return &CuisineRepository{
		Object: business.New(st, nil, cacheManager, logger,
			Restaurant{}.TableName()),
	}
}

// Create constructs a new cuisine without persisting it.
func (r *CuisineRepository) Create(name string) *Cuisine {
	return &Cuisine{ID: uuid.New(), Name: name}
}

// Add constructs a cuisine with the given name and persists it.
func (r *CuisineRepository) Add(ctx context.Context, name string) business.SaveOutcome {
	return r.Insert(ctx, r.Create(name))
}

// GetAllSortedByName returns all cuisines in ascending alphabetical
// order by name.
func (r *CuisineRepository) GetAllSortedByName(ctx context.Context) []*Cuisine {
	return r.GetEntities(ctx, store.Query{}.OrderBy("name"))
}

// FindByName returns the cuisine with the given name, or nil.
func (r *CuisineRepository) FindByName(ctx context.Context, name string) *Cuisine {
	matches := r.GetEntities(ctx, store.Query{}.Where("name", store.Equal, name))
	if len(matches) == 0 {
		return nil
	}
	return matches[0]
}
