package engine

import "time"

const secondsPerDay = 24 * 60 * 60

// calendarSpan decomposes the interval [from, to] into years, months and days by
// field-wise subtraction. A negative day count borrows the length of the month that
// precedes to's month; a negative month count then borrows a year.
//
// The day borrow happens once. When from falls on a day that the preceding month
// does not have (Jan 31 → Mar 1), the result keeps a small negative day count.
func calendarSpan(from, to time.Time) (years, months, days int) {
	y1, m1, d1 := from.Date()
	y2, m2, d2 := to.Date()

	years = y2 - y1
	months = int(m2) - int(m1)
	days = d2 - d1

	if days < 0 {
		months--
		days += daysInPreviousMonth(to)
	}
	if months < 0 {
		years--
		months += 12
	}
	return years, months, days
}

// daysInPreviousMonth returns the length of the calendar month before t's month.
func daysInPreviousMonth(t time.Time) int {
	// Day 0 of a month normalises to the last day of the previous one.
	return time.Date(t.Year(), t.Month(), 0, 0, 0, 0, 0, time.UTC).Day()
}

// civilDay numbers calendar days so that consecutive dates differ by exactly one,
// regardless of location or daylight saving transitions.
func civilDay(t time.Time) int64 {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Unix() / secondsPerDay
}

// civilDate returns t's calendar date at midnight UTC.
func civilDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func abs64(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}

func isWorkingDay(w time.Weekday) bool {
	return w != time.Saturday && w != time.Sunday
}
