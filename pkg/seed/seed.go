// Package seed populates an empty catalog with a starter set of
// cuisines and a few sample restaurants with full weekly hours.
package seed

import (
	"context"
	"time"

	"tastemap/pkg/business"
	"tastemap/pkg/catalog"
)

// Cuisines is the starter cuisine list.
var Cuisines = []string{
	"Afghan", "Albanian", "Algerian", "American", "Argentinian", "Armenian", "Asian", "Australian", "Austrian", "Bangladeshi", "Bakery",
	"Belgian", "Bolivian", "Brazilian", "British", "Brunch", "Bulgarian", "Burmese", "Cajun", "Cambodian", "Caribbean",
	"Chilean", "Chinese", "Colombian", "Coffee", "Cuban", "Cypriot", "Czech", "Danish", "Dominican", "Dutch",
	"Ecuadorian", "Egyptian", "Ethiopian", "Filipino", "Finnish", "French", "Georgian", "German", "Ghanaian",
	"Greek", "Guatemalan", "Haitian", "Hawaiian", "Honduran", "Hungarian", "Indian", "Indonesian", "International",
	"Iranian", "Iraqi", "Irish", "Israeli", "Italian", "Ivorian", "Jamaican", "Japanese", "Jewish", "Jordanian",
	"Kenyan", "Korean", "Kosovar", "Kurdish", "Laotian", "Latvian", "Lebanese", "Liberian", "Libyan",
	"Lithuanian", "Malaysian", "Maldivian", "Malian", "Maltese", "Mauritian", "Mediterranean", "Mexican",
	"Middle Eastern", "Mongolian", "Moroccan", "Nepalese", "New Zealand", "Nigerian", "Norwegian", "Pakistani",
	"Panamanian", "Paraguayan", "Peruvian", "Persian", "Polish", "Portuguese", "Puerto Rican", "Romanian", "Seafood",
	"Russian", "Salvadoran", "Saudi Arabian", "Scottish", "Senegalese", "Serbian", "Singaporean", "Slovak",
	"Somali", "South African", "Spanish", "Sri Lankan", "Sudanese", "Swedish", "Swiss", "Syrian", "Taiwanese",
	"Tajik", "Tanzanian", "Thai", "Tibetan", "Togolese", "Tunisian", "Turkish", "Ukrainian", "Uruguayan",
	"Uzbek", "Vegan", "Vegetarian", "Venezuelan", "Vietnamese", "Welsh", "Yemeni", "Zambian", "Zimbabwean",
}

type hoursSpec struct {
	day   int
	open  string
	close string
}

type restaurantSpec struct {
	name         string
	latitude     float64
	longitude    float64
	address      string
	city         string
	country      string
	postalCode   string
	cuisine      string
	neighborhood string
	hours        []hoursSpec
}

var restaurants = []restaurantSpec{
	{
		name: "Deli, Deli", latitude: 41.1515, longitude: -8.6070,
		address: "Rua Sá da Bandeira 578", city: "Porto", country: "Portugal",
		postalCode: "4000-431", cuisine: "International", neighborhood: "Trindade",
		hours: []hoursSpec{
			{1, "09:00", "18:00"}, {2, "09:00", "18:00"}, {3, "09:00", "18:00"},
			{4, "09:00", "18:00"}, {5, "09:00", "18:00"}, {6, "09:00", "18:00"},
			{7, "09:00", "18:00"},
		},
	},
	{
		name: "Restaurante O Valentim", latitude: 41.1250, longitude: -8.6455,
		address: "Rua Heróis de França 263", city: "Matosinhos", country: "Portugal",
		postalCode: "4450-159", cuisine: "Portuguese", neighborhood: "Matosinhos",
		hours: []hoursSpec{
			{1, "12:00", "23:00"}, {2, "12:00", "23:00"}, {3, "12:00", "23:00"},
			{4, "12:00", "22:00"}, {5, "12:00", "23:00"}, {6, "12:00", "23:00"},
			{7, "12:00", "23:00"},
		},
	},
	{
		name: "Indian Flavours", latitude: 41.1633, longitude: -8.6141,
		address: "R. da Constituição 1343", city: "Porto", country: "Portugal",
		postalCode: "4250-167", cuisine: "Indian", neighborhood: "Constituição",
		hours: []hoursSpec{
			{1, "11:00", "00:00"}, {2, "11:00", "23:00"}, {3, "11:00", "23:00"},
			{4, "11:00", "23:00"}, {5, "11:00", "23:00"}, {6, "11:00", "00:00"},
			{7, "11:00", "00:00"},
		},
	},
}

// Populate fills the catalog with the starter cuisines and sample
// restaurants. Seeding is idempotent: names already present are
// skipped, so re-running against a populated catalog is a no-op. The
// first storage failure stops seeding and is returned.
func Populate(ctx context.Context, cuisines *catalog.CuisineRepository, restaurantRepo *catalog.RestaurantRepository) business.SaveOutcome {
	if outcome := PopulateCuisines(ctx, cuisines); outcome.State == business.SaveFailed {
		return outcome
	}
	return PopulateRestaurants(ctx, cuisines, restaurantRepo)
}

// PopulateCuisines inserts the starter cuisine list, skipping names
// already in the catalog.
func PopulateCuisines(ctx context.Context, cuisines *catalog.CuisineRepository) business.SaveOutcome {
	for _, name := range Cuisines {
		if cuisines.FindByName(ctx, name) != nil {
			continue
		}
		if outcome := cuisines.Add(ctx, name); outcome.State == business.SaveFailed {
			return outcome
		}
	}
	return business.Complete()
}

// PopulateRestaurants inserts the sample restaurants, linking each to
// its cuisine by name when present. Restaurants already in the catalog
// are skipped.
func PopulateRestaurants(ctx context.Context, cuisines *catalog.CuisineRepository, restaurantRepo *catalog.RestaurantRepository) business.SaveOutcome {
	for _, spec := range restaurants {
		if restaurantRepo.FindByName(ctx, spec.name) != nil {
			continue
		}
		entity := restaurantRepo.Create(spec.name)
		entity.Latitude = ptr(spec.latitude)
		entity.Longitude = ptr(spec.longitude)
		entity.Address = ptr(spec.address)
		entity.City = ptr(spec.city)
		entity.Country = ptr(spec.country)
		entity.PostalCode = ptr(spec.postalCode)
		entity.Neighborhood = ptr(spec.neighborhood)

		if cuisine := cuisines.FindByName(ctx, spec.cuisine); cuisine != nil {
			entity.CuisineID = &cuisine.ID
		}

		for _, h := range spec.hours {
			open, err := parseTimeOfDay(h.open)
			if err != nil {
				continue
			}
			close, err := parseTimeOfDay(h.close)
			if err != nil {
				continue
			}
			entity.Hours = append(entity.Hours, catalog.OperatingHours{
				DayOfWeek: h.day,
				OpenTime:  open,
				CloseTime: close,
			})
		}

		if outcome := restaurantRepo.Insert(ctx, entity); outcome.State == business.SaveFailed {
			return outcome
		}
	}
	return business.Complete()
}

// parseTimeOfDay parses an "HH:MM" clock time onto a reference date.
func parseTimeOfDay(s string) (*time.Time, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func ptr[T any](v T) *T {
	return &v
}
