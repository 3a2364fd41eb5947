package locale

import (
	"testing"
	"time"
)

func TestWeekdayName(t *testing.T) {
	d := Default{}
	tests := []struct {
		day  int
		want string
	}{
		{1, "Sunday"},
		{2, "Monday"},
		{7, "Saturday"},
		{0, ""},
		{8, ""},
	}
	for _, tt := range tests {
		if got := d.WeekdayName(tt.day); got != tt.want {
			t.Errorf("WeekdayName(%d) = %q, want %q", tt.day, got, tt.want)
		}
	}
}

func TestShortTime(t *testing.T) {
	d := Default{}
	tests := []struct {
		hour, minute int
		want         string
	}{
		{9, 5, "9:05 AM"},
		{18, 0, "6:00 PM"},
		{0, 0, "12:00 AM"},
		{12, 30, "12:30 PM"},
	}
	for _, tt := range tests {
		v := time.Date(2024, time.January, 7, tt.hour, tt.minute, 0, 0, time.UTC)
		if got := d.ShortTime(v); got != tt.want {
			t.Errorf("ShortTime(%02d:%02d) = %q, want %q", tt.hour, tt.minute, got, tt.want)
		}
	}
}

func TestParseMeasurementSystem(t *testing.T) {
	tests := []struct {
		in   string
		want MeasurementSystem
	}{
		{"metric", Metric},
		{"imperial", Imperial},
		{" US ", Imperial},
		{"uk", Imperial},
		{"", Metric},
		{"cubits", Metric},
	}
	for _, tt := range tests {
		if got := ParseMeasurementSystem(tt.in); got != tt.want {
			t.Errorf("ParseMeasurementSystem(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
