package engine

import "time"

// Clock abstracts time.Now() to allow deterministic testing.
// It determines "now" for age computations and the "use today" shortcuts.
type Clock interface {
	Now() time.Time
}

// RealClock implements Clock using the standard time package.
type RealClock struct{}

// Now returns the current local time.
func (RealClock) Now() time.Time {
	return time.Now()
}

// FixedClock always returns the same instant. Handy for CLI flags such as --now.
type FixedClock struct {
	At time.Time
}

// Now returns the fixed instant.
func (c FixedClock) Now() time.Time {
	return c.At
}

// Today returns midnight of the clock's current calendar day, in the clock's location.
func Today(c Clock) time.Time {
	return dateOnly(c.Now())
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
