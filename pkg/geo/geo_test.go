package geo

import (
	"math"
	"sync"
	"testing"

	"tastemap/pkg/locale"
)

func TestDistance(t *testing.T) {
	tests := []struct {
		name       string
		from, to   Coordinate
		wantMeters float64
		tolerance  float64
	}{
		{
			name:       "same point",
			from:       Coordinate{Latitude: 41.1515, Longitude: -8.6070},
			to:         Coordinate{Latitude: 41.1515, Longitude: -8.6070},
			wantMeters: 0,
			tolerance:  0.001,
		},
		{
			name:       "one degree of latitude",
			from:       Coordinate{Latitude: 0, Longitude: 0},
			to:         Coordinate{Latitude: 1, Longitude: 0},
			wantMeters: 111195,
			tolerance:  20,
		},
		{
			name:       "across town",
			from:       Coordinate{Latitude: 41.1515, Longitude: -8.6070},
			to:         Coordinate{Latitude: 41.1250, Longitude: -8.6455},
			wantMeters: 4368,
			tolerance:  20,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Distance(tt.from, tt.to)
			if math.Abs(got-tt.wantMeters) > tt.tolerance {
				t.Errorf("Distance() = %.1f m, want %.1f ± %.1f", got, tt.wantMeters, tt.tolerance)
			}
		})
	}
}

func TestDistanceIsSymmetric(t *testing.T) {
	a := Coordinate{Latitude: 41.1633, Longitude: -8.6141}
	b := Coordinate{Latitude: 38.7223, Longitude: -9.1393}
	if d1, d2 := Distance(a, b), Distance(b, a); math.Abs(d1-d2) > 1e-6 {
		t.Errorf("Distance(a,b) = %f, Distance(b,a) = %f", d1, d2)
	}
}

func TestFormatDistance(t *testing.T) {
	tests := []struct {
		meters float64
		system locale.MeasurementSystem
		want   string
	}{
		{2500, locale.Metric, "2.50 km"},
		{100, locale.Metric, "0.10 km"},
		{99, locale.Metric, "99 meters"},
		{0, locale.Metric, "0 meters"},
		{1609.344, locale.Imperial, "1.00 miles"},
		{402.336, locale.Imperial, "0.25 miles"},
		{100, locale.Imperial, "328 feet"},
	}

	for _, tt := range tests {
		if got := FormatDistance(tt.meters, tt.system); got != tt.want {
			t.Errorf("FormatDistance(%v, %v) = %q, want %q", tt.meters, tt.system, got, tt.want)
		}
	}
}

func TestTrackerUnknownLocation(t *testing.T) {
	tr := NewTracker(nil)

	if _, ok := tr.Current(); ok {
		t.Error("Current() reported a location before any update")
	}
	if _, ok := tr.DistanceTo(Coordinate{Latitude: 1, Longitude: 1}); ok {
		t.Error("DistanceTo() reported a distance before any update")
	}
	if _, ok := tr.FormattedDistanceTo(Coordinate{Latitude: 1, Longitude: 1}); ok {
		t.Error("FormattedDistanceTo() reported a distance before any update")
	}
}

func TestTrackerFormattedDistance(t *testing.T) {
	tr := NewTracker(locale.Default{System: locale.Metric})
	tr.SetCurrent(Coordinate{Latitude: 41.1515, Longitude: -8.6070})

	got, ok := tr.FormattedDistanceTo(Coordinate{Latitude: 41.1250, Longitude: -8.6455})
	if !ok {
		t.Fatal("FormattedDistanceTo() = not ok")
	}
	if got != "4.37 km" {
		t.Errorf("FormattedDistanceTo() = %q, want %q", got, "4.37 km")
	}
}

func TestTrackerConcurrentUpdates(t *testing.T) {
	tr := NewTracker(nil)
	target := Coordinate{Latitude: 10, Longitude: 10}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			tr.SetCurrent(Coordinate{Latitude: float64(i), Longitude: float64(i)})
		}(i)
		go func() {
			defer wg.Done()
			tr.DistanceTo(target)
		}()
	}
	wg.Wait()

	if _, ok := tr.Current(); !ok {
		t.Error("Current() unknown after updates")
	}
}
