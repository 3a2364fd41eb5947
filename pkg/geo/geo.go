// Package geo computes great-circle distances between coordinates and
// formats them for the user's measurement system.
package geo

import (
	"fmt"
	"math"
	"sync"

	"tastemap/pkg/locale"
)

const (
	earthRadiusMeters = 6371008.8
	metersPerMile     = 1609.344
	feetPerMile       = 5280
)

// Coordinate is a WGS84 latitude/longitude pair in degrees.
type Coordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Distance returns the haversine great-circle distance between two
// coordinates in meters.
func Distance(from, to Coordinate) float64 {
	lat1 := from.Latitude * math.Pi / 180
	lat2 := to.Latitude * math.Pi / 180
	dLat := (to.Latitude - from.Latitude) * math.Pi / 180
	dLon := (to.Longitude - from.Longitude) * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusMeters * c
}

// FormatDistance renders a distance in meters per the given measurement
// system: kilometers/miles with two decimals above a tenth of the unit,
// meters/feet with none below it.
func FormatDistance(meters float64, system locale.MeasurementSystem) string {
	switch system {
	case locale.Imperial:
		miles := meters / metersPerMile
		if miles >= 0.1 {
			return fmt.Sprintf("%.2f miles", miles)
		}
		return fmt.Sprintf("%.0f feet", miles*feetPerMile)
	default:
		kilometers := meters / 1000
		if kilometers >= 0.1 {
			return fmt.Sprintf("%.2f km", kilometers)
		}
		return fmt.Sprintf("%.0f meters", meters)
	}
}

// Tracker holds the last known device location. Updates may arrive from
// a platform location feed on another goroutine, so access is guarded by
// a read-write lock.
type Tracker struct {
	mu      sync.RWMutex
	current *Coordinate
	locale  locale.Provider
}

// NewTracker creates a tracker with no known location.
func NewTracker(p locale.Provider) *Tracker {
	if p == nil {
		p = locale.Default{}
	}
	return &Tracker{locale: p}
}

// SetCurrent records the latest known location.
func (t *Tracker) SetCurrent(c Coordinate) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.current = &c
}

// Current returns the last known location, or false when none is known.
func (t *Tracker) Current() (Coordinate, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if t.current == nil {
		return Coordinate{}, false
	}
	return *t.current, true
}

// DistanceTo returns the distance in meters from the last known location
// to the target, or false when the current location is unknown.
func (t *Tracker) DistanceTo(target Coordinate) (float64, bool) {
	current, ok := t.Current()
	if !ok {
		return 0, false
	}
	return Distance(current, target), true
}

// FormattedDistanceTo returns the distance to the target rendered per
// the tracker's locale, or false when the current location is unknown.
func (t *Tracker) FormattedDistanceTo(target Coordinate) (string, bool) {
	meters, ok := t.DistanceTo(target)
	if !ok {
		return "", false
	}
	return FormatDistance(meters, t.locale.Measurement()), true
}
