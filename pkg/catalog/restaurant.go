package catalog

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"tastemap/pkg/business"
	"tastemap/pkg/cache"
	"tastemap/pkg/geo"
	"tastemap/pkg/hours"
	"tastemap/pkg/locale"
	"tastemap/pkg/store"
)

// RestaurantRepository persists restaurants and answers operating-hours
// and distance questions about them.
type RestaurantRepository struct {
	*business.Object[*Restaurant]
	clock  hours.Clock
	locale locale.Provider
}

// NewRestaurantRepository creates the repository. cacheManager, logger,
// clock and provider may be nil; the clock defaults to the system clock
// and the provider to the English metric locale.
func NewRestaurantRepository(st store.Store[*Restaurant], cacheManager *cache.Manager, logger *zap.Logger, clock hours.Clock, p locale.Provider) *RestaurantRepository {
	if clock == nil {
		clock = hours.SystemClock{}
	}
	if p == nil {
		p = locale.Default{}
	}
	r := &RestaurantRepository{clock: clock, locale: p}
	// Deleting a restaurant cascades to its owned collections, so
	// their cached reads go stale too.
	r.Object = business.New(st, r.checkRules, cacheManager, logger,
		OperatingHours{}.TableName(), Meal{}.TableName())
	return r
}

// Create constructs a new restaurant without persisting it.
func (r *RestaurantRepository) Create(name string) *Restaurant {
	return &Restaurant{ID: uuid.New(), Name: name, CreatedAt: time.Now()}
}

// Insert strips hours entries missing either time, then registers and
// commits the restaurant. Incomplete entries never reach storage.
func (r *RestaurantRepository) Insert(ctx context.Context, e *Restaurant) business.SaveOutcome {
	e.Hours = completeHours(e.Hours)
	return r.Object.Insert(ctx, e)
}

// FindByName returns the restaurant with the given name, with its
// cuisine, hours and meals loaded, or nil.
func (r *RestaurantRepository) FindByName(ctx context.Context, name string) *Restaurant {
	matches := r.GetEntities(ctx, store.Query{}.
		Where("name", store.Equal, name).
		Preload("Cuisine", "Hours", "Meals"))
	if len(matches) == 0 {
		return nil
	}
	return matches[0]
}

// GetAllSortedByName returns all restaurants in ascending alphabetical
// order by name, with hours loaded for status display.
func (r *RestaurantRepository) GetAllSortedByName(ctx context.Context) []*Restaurant {
	return r.GetEntities(ctx, store.Query{}.OrderBy("name").Preload("Hours"))
}

// OperatingStatus reports the restaurant's current open/closed status
// using the repository's clock. The flag is nil when the restaurant
// has no usable hours data.
func (r *RestaurantRepository) OperatingStatus(e *Restaurant) (string, *bool) {
	return r.OperatingStatusAt(e.Hours, r.clock.Now())
}

// OperatingStatusAt reports the open/closed status of a schedule at a
// given instant.
func (r *RestaurantRepository) OperatingStatusAt(hs []OperatingHours, now time.Time) (string, *bool) {
	entries := make([]hours.Entry, 0, len(hs))
	for _, h := range hs {
		entries = append(entries, hours.Entry{Day: h.DayOfWeek, Open: h.OpenTime, Close: h.CloseTime})
	}
	return hours.Evaluate(entries, now, r.locale)
}

// DistanceFrom returns the formatted distance from the tracker's last
// known location to the restaurant, or false when either location is
// unknown.
func (r *RestaurantRepository) DistanceFrom(t *geo.Tracker, e *Restaurant) (string, bool) {
	target, ok := e.Coordinate()
	if !ok {
		return "", false
	}
	return t.FormattedDistanceTo(target)
}

// checkRules enforces the restaurant business rules.
func (r *RestaurantRepository) checkRules(ctx context.Context, e *Restaurant) string {
	if e.Name == "" {
		return "Restaurant name cannot be empty"
	}
	return ""
}

// completeHours drops entries missing an open or close time.
func completeHours(hs []OperatingHours) []OperatingHours {
	if hs == nil {
		return nil
	}
	valid := make([]OperatingHours, 0, len(hs))
	for _, h := range hs {
		if h.Complete() {
			valid = append(valid, h)
		}
	}
	return valid
}
