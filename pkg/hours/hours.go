// Package hours evaluates a weekly operating schedule against an
// instant and reports whether the business is open, when it closes, or
// when it next opens. Evaluation is a pure function over its inputs and
// is safe for concurrent use.
package hours

import (
	"fmt"
	"time"

	"tastemap/pkg/locale"
)

// Days of week use a Sunday-first 1..7 domain.
const (
	Sunday     = 1
	Saturday   = 7
	DaysInWeek = 7
)

const minutesPerDay = 24 * 60

// NoHoursText is reported when the schedule holds no usable entries.
const NoHoursText = "No operating hours available"

// Entry is one day's operating interval. The date portions of Open and
// Close are ignored; only the time of day matters. An entry missing
// either time is not yet specified and is skipped during evaluation.
// A close time numerically earlier than or equal to the open time marks
// an interval that wraps past midnight into the next calendar day.
type Entry struct {
	Day   int // 1=Sunday .. 7=Saturday
	Open  *time.Time
	Close *time.Time
}

// Complete reports whether both times are present.
func (e Entry) Complete() bool {
	return e.Open != nil && e.Close != nil
}

// Clock abstracts the wall clock so evaluation stays testable.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// Evaluate determines the open/closed status of a schedule at now.
// The returned flag is nil only when the schedule holds no usable data.
func Evaluate(entries []Entry, now time.Time, p locale.Provider) (string, *bool) {
	if p == nil {
		p = locale.Default{}
	}
	if len(entries) == 0 {
		return NoHoursText, nil
	}

	day := int(now.Weekday()) + 1 // 1=Sunday .. 7=Saturday
	nowMin := minuteOfDay(now)

	// An interval that wrapped past midnight yesterday can still cover
	// the early hours of today. Today's own entry never reports those
	// hours as open.
	if entry, ok := entryFor(entries, previousDay(day)); ok {
		_, close := interval(entry)
		if close > minutesPerDay && nowMin+minutesPerDay < close {
			closes := timeOfDay(now, close-minutesPerDay)
			return fmt.Sprintf("Open - Closes %s", p.ShortTime(closes)), openFlag(true)
		}
	}

	if entry, ok := entryFor(entries, day); ok {
		open, close := interval(entry)
		switch {
		case nowMin >= open && nowMin < close:
			closes := timeOfDay(now, close%minutesPerDay)
			return fmt.Sprintf("Open - Closes %s", p.ShortTime(closes)), openFlag(true)
		case nowMin < open:
			// Opens later today; no day name.
			opens := timeOfDay(now, open)
			return fmt.Sprintf("Closed - Opens at %s", p.ShortTime(opens)), openFlag(false)
		}
	}

	// Past closing (or no entry today): scan forward through the week,
	// wrapping, for the first day with a complete entry.
	for i := 1; i <= DaysInWeek; i++ {
		next := (day+i-1)%DaysInWeek + 1
		entry, ok := entryFor(entries, next)
		if !ok {
			continue
		}
		open, _ := interval(entry)
		opens := timeOfDay(now, open)
		return fmt.Sprintf("Closed - Opens at %s on %s",
			p.ShortTime(opens), p.WeekdayName(next)), openFlag(false)
	}

	return NoHoursText, nil
}

// entryFor returns the first complete entry for the given day. Entries
// missing either time are skipped; the schedule is expected to carry at
// most one entry per day.
func entryFor(entries []Entry, day int) (Entry, bool) {
	for _, e := range entries {
		if e.Day == day && e.Complete() {
			return e, true
		}
	}
	return Entry{}, false
}

// interval returns the open and close minutes of a complete entry, with
// the close minute pushed forward a full day when the interval wraps
// past midnight.
func interval(e Entry) (open, close int) {
	open = minuteOfDay(*e.Open)
	close = minuteOfDay(*e.Close)
	if close <= open {
		close += minutesPerDay
	}
	return open, close
}

func previousDay(day int) int {
	if day == Sunday {
		return Saturday
	}
	return day - 1
}

// minuteOfDay discards the date portion, keeping hour and minute only.
func minuteOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}

// timeOfDay places a minute-of-day on now's calendar date so it can be
// rendered as a local time.
func timeOfDay(now time.Time, minute int) time.Time {
	return time.Date(now.Year(), now.Month(), now.Day(),
		minute/60, minute%60, 0, 0, now.Location())
}

func openFlag(v bool) *bool {
	return &v
}
