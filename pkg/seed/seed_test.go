package seed

import (
	"context"
	"testing"

	"tastemap/pkg/catalog"
	"tastemap/pkg/db"
	"tastemap/pkg/store"
)

func newRepos(t *testing.T) (*catalog.CuisineRepository, *catalog.RestaurantRepository) {
	t.Helper()
	manager, err := db.NewDefaultManager("file::memory:")
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	t.Cleanup(func() { manager.Close() })

	if err := catalog.Migrate(manager.DB()); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	cuisines := catalog.NewCuisineRepository(store.NewGorm[*catalog.Cuisine](manager), nil, nil)
	restaurants := catalog.NewRestaurantRepository(store.NewGorm[*catalog.Restaurant](manager), nil, nil, nil, nil)
	return cuisines, restaurants
}

func TestPopulate(t *testing.T) {
	cuisines, restaurants := newRepos(t)
	ctx := context.Background()

	if outcome := Populate(ctx, cuisines, restaurants); !outcome.Ok() {
		t.Fatalf("Populate = %+v", outcome)
	}

	if got := cuisines.Count(ctx); got != int64(len(Cuisines)) {
		t.Errorf("cuisine count = %d, want %d", got, len(Cuisines))
	}
	if got := restaurants.Count(ctx); got != 3 {
		t.Errorf("restaurant count = %d, want 3", got)
	}

	deli := restaurants.FindByName(ctx, "Deli, Deli")
	if deli == nil {
		t.Fatal("Deli, Deli not seeded")
	}
	if len(deli.Hours) != 7 {
		t.Errorf("Deli, Deli has %d hours entries, want 7", len(deli.Hours))
	}
	if deli.Cuisine == nil || deli.Cuisine.Name != "International" {
		t.Errorf("Deli, Deli cuisine = %+v, want International", deli.Cuisine)
	}
	if _, ok := deli.Coordinate(); !ok {
		t.Error("Deli, Deli has no coordinates")
	}
}

func TestPopulateIsIdempotent(t *testing.T) {
	cuisines, restaurants := newRepos(t)
	ctx := context.Background()

	if outcome := Populate(ctx, cuisines, restaurants); !outcome.Ok() {
		t.Fatalf("first Populate = %+v", outcome)
	}
	if outcome := Populate(ctx, cuisines, restaurants); !outcome.Ok() {
		t.Fatalf("second Populate = %+v", outcome)
	}

	if got := cuisines.Count(ctx); got != int64(len(Cuisines)) {
		t.Errorf("cuisine count = %d after re-run, want %d", got, len(Cuisines))
	}
	if got := restaurants.Count(ctx); got != 3 {
		t.Errorf("restaurant count = %d after re-run, want 3", got)
	}
}
