package report

import (
	"fmt"
	"time"
)

// Kind is the custom type to enforce enum-like behavior for window kinds.
type Kind string

const (
	Week  Kind = "week"
	Month Kind = "month"
	Year  Kind = "year"
)

// Window is an end-inclusive time range used to bucket orders. End is the
// last instant of the period (23:59:59.999 local), matching the inclusive
// filter in the aggregator.
type Window struct {
	Start time.Time
	End   time.Time
	Label string
}

// Contains reports whether t falls inside the window. Both bounds are
// inclusive.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}

// Resolve computes the window of the given kind, offset periods back from
// the one containing now. Offset 0 is the current period. All arithmetic
// happens in now's location.
func Resolve(kind Kind, offset int, now time.Time) Window {
	switch kind {
	case Week:
		return weekWindow(offset, now)
	case Month:
		return monthWindow(offset, now)
	default:
		return yearWindow(offset, now)
	}
}

// weekWindow: weeks run Sunday through Saturday.
func weekWindow(offset int, now time.Time) Window {
	y, m, d := now.Date()
	midnight := time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	start := midnight.AddDate(0, 0, -int(now.Weekday())-7*offset)
	return Window{
		Start: start,
		End:   endOfDay(start.AddDate(0, 0, 6)),
		Label: fmt.Sprintf("Week %d", weekNumber(start)),
	}
}

func monthWindow(offset int, now time.Time) Window {
	start := time.Date(now.Year(), now.Month()-time.Month(offset), 1, 0, 0, 0, 0, now.Location())
	return Window{
		Start: start,
		End:   endOfDay(start.AddDate(0, 1, -1)),
		Label: start.Format("Jan 2006"),
	}
}

func yearWindow(offset int, now time.Time) Window {
	start := time.Date(now.Year()-offset, time.January, 1, 0, 0, 0, 0, now.Location())
	return Window{
		Start: start,
		End:   endOfDay(time.Date(start.Year(), time.December, 31, 0, 0, 0, 0, now.Location())),
		Label: start.Format("2006"),
	}
}

// weekNumber computes the display week number as
// ceil((dayOfYear + weekdayOfJan1 + 1) / 7). This is not ISO-8601 week
// numbering; it is the storefront's historical formula and is kept for
// label continuity.
func weekNumber(t time.Time) int {
	jan1 := time.Date(t.Year(), time.January, 1, 0, 0, 0, 0, t.Location())
	n := t.YearDay() + int(jan1.Weekday()) + 1
	return (n + 6) / 7
}

func endOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, int(999*time.Millisecond), t.Location())
}
