// Package catalog holds the restaurant-catalog domain: entities for
// cuisines, restaurants, meals and weekly operating hours, plus the
// repositories that validate and persist them.
package catalog

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"tastemap/pkg/geo"
)

const noAddressText = "No address specified"

// Cuisine is a kind of food a restaurant serves. Restaurants reference
// cuisines but do not own them; a cuisine survives its restaurants.
type Cuisine struct {
	ID          uuid.UUID     `gorm:"type:char(36);primaryKey" json:"id"`
	Name        string        `gorm:"uniqueIndex;not null" json:"name"`
	Restaurants []*Restaurant `gorm:"foreignKey:CuisineID" json:"restaurants,omitempty"`
}

func (Cuisine) TableName() string { return "cuisines" }

// PrimaryKey returns the cuisine's identity.
func (c *Cuisine) PrimaryKey() interface{} { return c.ID }

// BeforeCreate assigns an identity when none was set.
func (c *Cuisine) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// Restaurant is the catalog's central entity. Optional scalar fields
// are pointers: nil means unset. In particular coordinates carry no
// zero-value sentinel, since 0.0 is a valid latitude and longitude.
type Restaurant struct {
	ID           uuid.UUID  `gorm:"type:char(36);primaryKey" json:"id"`
	Name         string     `gorm:"uniqueIndex;not null" json:"name"`
	Address      *string    `json:"address,omitempty"`
	City         *string    `json:"city,omitempty"`
	Country      *string    `json:"country,omitempty"`
	PostalCode   *string    `json:"postal_code,omitempty"`
	Neighborhood *string    `json:"neighborhood,omitempty"`
	Latitude     *float64   `json:"latitude,omitempty"`
	Longitude    *float64   `json:"longitude,omitempty"`
	Description  *string    `json:"description,omitempty"`
	Phone        *string    `json:"phone,omitempty"`
	Photo        []byte     `json:"-"`
	Rating       *float64   `json:"rating,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	CuisineID    *uuid.UUID `gorm:"type:char(36)" json:"cuisine_id,omitempty"`
	Cuisine      *Cuisine   `gorm:"foreignKey:CuisineID" json:"cuisine,omitempty"`

	// Hours and Meals are owned collections and are removed with the
	// restaurant. The cuisine reference is not owned.
	Hours []OperatingHours `gorm:"foreignKey:RestaurantID;constraint:OnDelete:CASCADE" json:"hours,omitempty"`
	Meals []Meal           `gorm:"foreignKey:RestaurantID;constraint:OnDelete:CASCADE" json:"meals,omitempty"`
}

func (Restaurant) TableName() string { return "restaurants" }

// PrimaryKey returns the restaurant's identity.
func (r *Restaurant) PrimaryKey() interface{} { return r.ID }

// BeforeCreate assigns an identity when none was set.
func (r *Restaurant) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// FullAddress joins the populated address parts, or reports that no
// address was specified.
func (r *Restaurant) FullAddress() string {
	var parts []string
	for _, p := range []*string{r.Address, r.PostalCode, r.City, r.Country} {
		if p != nil && *p != "" {
			parts = append(parts, *p)
		}
	}
	if len(parts) == 0 {
		return noAddressText
	}
	return strings.Join(parts, ", ")
}

// Coordinate returns the restaurant's location, or false when either
// coordinate is unset.
func (r *Restaurant) Coordinate() (geo.Coordinate, bool) {
	if r.Latitude == nil || r.Longitude == nil {
		return geo.Coordinate{}, false
	}
	return geo.Coordinate{Latitude: *r.Latitude, Longitude: *r.Longitude}, true
}

// HasLocationOrAddress reports whether either a coordinate or any
// address part has been specified.
func (r *Restaurant) HasLocationOrAddress() bool {
	if _, ok := r.Coordinate(); ok {
		return true
	}
	return r.FullAddress() != noAddressText
}

// OperatingHours is one day's open/close interval for a restaurant.
// Days use a Sunday-first 1..7 domain, one entry per day. An entry
// missing either time is "not specified for that day" and is stripped
// before the restaurant is persisted. A close time numerically earlier
// than the open time marks an interval crossing midnight.
type OperatingHours struct {
	ID           uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	RestaurantID uuid.UUID  `gorm:"type:char(36);index;not null" json:"restaurant_id"`
	DayOfWeek    int        `gorm:"not null" json:"day_of_week"` // 1=Sunday .. 7=Saturday
	OpenTime     *time.Time `json:"open_time,omitempty"`
	CloseTime    *time.Time `json:"close_time,omitempty"`
}

func (OperatingHours) TableName() string { return "operating_hours" }

// PrimaryKey returns the entry's identity.
func (h *OperatingHours) PrimaryKey() interface{} { return h.ID }

// Complete reports whether both times are present.
func (h OperatingHours) Complete() bool {
	return h.OpenTime != nil && h.CloseTime != nil
}

// Meal is a meal eaten at a restaurant. It belongs to exactly one
// restaurant and is deleted with it.
type Meal struct {
	ID           uuid.UUID `gorm:"type:char(36);primaryKey" json:"id"`
	Name         string    `gorm:"not null;index" json:"name"`
	Comment      *string   `json:"comment,omitempty"`
	Photo        []byte    `json:"-"`
	DateTime     time.Time `json:"date_time"`
	Rating       *float64  `json:"rating,omitempty"`
	RestaurantID uuid.UUID `gorm:"type:char(36);index;not null" json:"restaurant_id"`
}

func (Meal) TableName() string { return "meals" }

// PrimaryKey returns the meal's identity.
func (m *Meal) PrimaryKey() interface{} { return m.ID }

// BeforeCreate assigns an identity when none was set.
func (m *Meal) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// Migrate creates or updates the catalog tables.
func Migrate(gdb *gorm.DB) error {
	return gdb.AutoMigrate(
		&Cuisine{},
		&Restaurant{},
		&OperatingHours{},
		&Meal{},
	)
}
