package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// Wednesday afternoon, mid-March.
var testNow = time.Date(2025, 3, 19, 15, 0, 0, 0, time.UTC)

func TestWeekWindow(t *testing.T) {
	w := Resolve(Week, 0, testNow)
	assert.Equal(t, time.Date(2025, 3, 16, 0, 0, 0, 0, time.UTC), w.Start)
	assert.Equal(t, time.Date(2025, 3, 22, 23, 59, 59, 999000000, time.UTC), w.End)
	assert.Equal(t, "Week 12", w.Label)

	prev := Resolve(Week, 1, testNow)
	assert.Equal(t, time.Date(2025, 3, 9, 0, 0, 0, 0, time.UTC), prev.Start)
	assert.Equal(t, time.Date(2025, 3, 15, 23, 59, 59, 999000000, time.UTC), prev.End)
}

func TestWeekWindowStartsOnSunday(t *testing.T) {
	// a Sunday is already the start of its own week
	sunday := time.Date(2025, 3, 16, 8, 0, 0, 0, time.UTC)
	w := Resolve(Week, 0, sunday)
	assert.Equal(t, time.Date(2025, 3, 16, 0, 0, 0, 0, time.UTC), w.Start)
}

func TestWeekWindowYearBoundary(t *testing.T) {
	// Jan 1 2025 is a Wednesday; its week starts Sunday Dec 29 2024
	jan1 := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)
	w := Resolve(Week, 0, jan1)
	assert.Equal(t, time.Date(2024, 12, 29, 0, 0, 0, 0, time.UTC), w.Start)
	assert.Equal(t, "Week 53", w.Label)
}

func TestMonthWindow(t *testing.T) {
	w := Resolve(Month, 0, testNow)
	assert.Equal(t, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), w.Start)
	assert.Equal(t, time.Date(2025, 3, 31, 23, 59, 59, 999000000, time.UTC), w.End)
	assert.Equal(t, "Mar 2025", w.Label)

	// rolls over the year boundary
	dec := Resolve(Month, 3, testNow)
	assert.Equal(t, time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC), dec.Start)
	assert.Equal(t, "Dec 2024", dec.Label)

	// leap February has 29 days
	feb := Resolve(Month, 13, testNow)
	assert.Equal(t, "Feb 2024", feb.Label)
	assert.Equal(t, time.Date(2024, 2, 29, 23, 59, 59, 999000000, time.UTC), feb.End)
}

func TestYearWindow(t *testing.T) {
	w := Resolve(Year, 0, testNow)
	assert.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), w.Start)
	assert.Equal(t, time.Date(2025, 12, 31, 23, 59, 59, 999000000, time.UTC), w.End)
	assert.Equal(t, "2025", w.Label)

	assert.Equal(t, "2023", Resolve(Year, 2, testNow).Label)
}

func TestWindowEndInclusive(t *testing.T) {
	w := Resolve(Month, 0, testNow)
	assert.True(t, w.Contains(w.Start))
	assert.True(t, w.Contains(w.End))
	assert.False(t, w.Contains(w.End.Add(time.Millisecond)))
	assert.False(t, w.Contains(w.Start.Add(-time.Millisecond)))
}

func TestAdjacentWindowsDoNotOverlap(t *testing.T) {
	for _, kind := range []Kind{Week, Month, Year} {
		cur := Resolve(kind, 0, testNow)
		prev := Resolve(kind, 1, testNow)
		assert.True(t, prev.End.Before(cur.Start), "kind %s", kind)
		// no gap wider than the 1ms end-of-day granularity
		assert.True(t, cur.Start.Sub(prev.End) <= time.Millisecond, "kind %s", kind)
	}
}
