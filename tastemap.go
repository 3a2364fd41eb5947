// Package tastemap is the persistence and domain layer of a personal
// restaurant catalog: a generic cached entity store over GORM, the
// catalog entities and their business rules, and helpers for operating
// hours and distances.
package tastemap

import (
	"go.uber.org/zap"

	"tastemap/pkg/cache"
	"tastemap/pkg/catalog"
	"tastemap/pkg/db"
	"tastemap/pkg/hours"
	"tastemap/pkg/locale"
	"tastemap/pkg/store"
)

// Config represents database configuration.
type Config = db.Config

// CacheConfig represents cache configuration.
type CacheConfig = cache.Config

// NewManager creates a new database manager.
func NewManager(config *Config) (*db.Manager, error) {
	return db.NewManager(config)
}

// NewDefaultManager opens an SQLite-backed manager with sensible
// defaults, the quickest way to a working catalog.
func NewDefaultManager(path string) (*db.Manager, error) {
	return db.NewDefaultManager(path)
}

// NewCacheManager creates a new cache manager. Pass the result as the
// cache argument of the repository constructors; a nil manager means
// database-only operation.
func NewCacheManager(config *CacheConfig) (*cache.Manager, error) {
	return cache.NewManager(config)
}

// Catalog bundles the three domain repositories over one database.
type Catalog struct {
	Cuisines    *catalog.CuisineRepository
	Restaurants *catalog.RestaurantRepository
	Meals       *catalog.MealRepository
}

// NewCatalog migrates the schema and wires repositories over the given
// database manager. cacheManager and logger may be nil.
func NewCatalog(manager *db.Manager, cacheManager *cache.Manager, logger *zap.Logger, p locale.Provider) (*Catalog, error) {
	if err := catalog.Migrate(manager.DB()); err != nil {
		return nil, err
	}
	if p == nil {
		p = locale.Default{}
	}
	return &Catalog{
		Cuisines:    catalog.NewCuisineRepository(store.NewGorm[*catalog.Cuisine](manager), cacheManager, logger),
		Restaurants: catalog.NewRestaurantRepository(store.NewGorm[*catalog.Restaurant](manager), cacheManager, logger, hours.SystemClock{}, p),
		Meals:       catalog.NewMealRepository(store.NewGorm[*catalog.Meal](manager), catalog.NamesUniqueGlobally, cacheManager, logger),
	}, nil
}
