// Package locale supplies the locale-dependent pieces of status and
// distance rendering: the user's measurement system, weekday names and
// short time-of-day formatting. Callers inject a Provider so the core
// stays testable with a fixed locale.
package locale

import (
	"strings"
	"time"
)

// MeasurementSystem identifies the user's preferred unit system.
type MeasurementSystem int

const (
	Metric MeasurementSystem = iota
	Imperial
)

// Provider resolves locale-dependent rendering decisions.
type Provider interface {
	// Measurement returns the preferred measurement system.
	Measurement() MeasurementSystem

	// WeekdayName returns the localized weekday name for a day in the
	// 1..7 Sunday-first domain. Out-of-range days return an empty string.
	WeekdayName(day int) string

	// ShortTime renders only the time-of-day portion of t in the
	// locale's short style (e.g. "6:00 PM").
	ShortTime(t time.Time) string
}

// Default is an English Provider. The zero value uses the metric system.
type Default struct {
	System MeasurementSystem
}

// Measurement returns the configured measurement system.
func (d Default) Measurement() MeasurementSystem {
	return d.System
}

// WeekdayName returns the English weekday name for day 1 (Sunday)
// through 7 (Saturday).
func (d Default) WeekdayName(day int) string {
	if day < 1 || day > 7 {
		return ""
	}
	return time.Weekday(day - 1).String()
}

// ShortTime renders t as e.g. "9:05 AM".
func (d Default) ShortTime(t time.Time) string {
	return t.Format("3:04 PM")
}

// ParseMeasurementSystem maps a configuration string to a measurement
// system. Unknown values default to metric.
func ParseMeasurementSystem(s string) MeasurementSystem {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "imperial", "us", "uk":
		return Imperial
	default:
		return Metric
	}
}
