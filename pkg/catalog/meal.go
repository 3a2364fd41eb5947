package catalog

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"tastemap/pkg/business"
	"tastemap/pkg/cache"
	"tastemap/pkg/store"
)

// NameScope controls how widely meal names must be unique.
type NameScope int

const (
	// NamesUniqueGlobally requires meal names be unique across the
	// whole catalog.
	NamesUniqueGlobally NameScope = iota
	// NamesUniquePerRestaurant requires meal names be unique only
	// within one restaurant.
	NamesUniquePerRestaurant
)

// MealRepository persists meals and enforces the meal business rules.
type MealRepository struct {
	*business.Object[*Meal]
	scope NameScope
}

// NewMealRepository creates the repository with the given name
// uniqueness scope. cacheManager and logger may be nil.
func NewMealRepository(st store.Store[*Meal], scope NameScope, cacheManager *cache.Manager, logger *zap.Logger) *MealRepository {
	r := &MealRepository{scope: scope}
	// Restaurant reads cache their preloaded meals, so a meal
	// mutation must invalidate them too.
	r.Object = business.New(st, r.checkRules, cacheManager, logger,
		Restaurant{}.TableName())
	return r
}

// Create constructs a new meal for the restaurant without persisting it.
func (r *MealRepository) Create(name string, restaurant *Restaurant) *Meal {
	return &Meal{
		ID:           uuid.New(),
		Name:         name,
		DateTime:     time.Now(),
		RestaurantID: restaurant.ID,
	}
}

// MealsFor returns the meals logged at the given restaurant, in
// store-defined order.
func (r *MealRepository) MealsFor(ctx context.Context, restaurant *Restaurant) []*Meal {
	return r.GetEntities(ctx, store.Query{}.Where("restaurant_id", store.Equal, restaurant.ID))
}

// checkRules enforces the meal business rules: the name must not be
// empty, and must be unique within the configured scope.
func (r *MealRepository) checkRules(ctx context.Context, m *Meal) string {
	if m.Name == "" {
		return "Meal name cannot be empty"
	}

	q := store.Query{}.
		Where("name", store.Equal, m.Name).
		Where("id", store.NotEqual, m.ID)
	if r.scope == NamesUniquePerRestaurant {
		q = q.Where("restaurant_id", store.Equal, m.RestaurantID)
	}

	// A failed lookup is not a rule violation; the commit itself will
	// report any storage problem.
	duplicates, err := r.Store().Find(ctx, q)
	if err == nil && len(duplicates) > 0 {
		return "A meal with this name already exists"
	}

	return ""
}
