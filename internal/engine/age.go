package engine

import (
	"time"
)

// Age is the calendar breakdown of the time elapsed since a birth date.
type Age struct {
	BirthDate time.Time `json:"birthDate"`

	Years  int `json:"years"`
	Months int `json:"months"`
	Days   int `json:"days"`

	// Totals are derived from TotalDays so that hours and minutes stay exact multiples.
	TotalDays    int64 `json:"totalDays"`
	TotalHours   int64 `json:"totalHours"`
	TotalMinutes int64 `json:"totalMinutes"`

	BirthDay time.Weekday `json:"-"`
	Zodiac   Zodiac       `json:"zodiac"`

	NextBirthday          time.Time `json:"nextBirthday"`
	DaysUntilNextBirthday int       `json:"daysUntilNextBirthday"`
	AgeNext               int       `json:"ageNext"`
}

// BirthDayName is the English weekday name of the birth date.
func (a Age) BirthDayName() string {
	return a.BirthDay.String()
}

// ComputeAge breaks down the time elapsed between birth and now.
// It reports false when birth lies in the future relative to now.
func ComputeAge(birth, now time.Time) (Age, bool) {
	if birth.IsZero() || now.IsZero() || birth.After(now) {
		return Age{}, false
	}

	years, months, days := calendarSpan(birth, now)

	totalDays := floorDiv(now.Unix()-birth.Unix(), secondsPerDay)
	totalHours := totalDays * 24

	next, ageNext := nextOccurrence(now, birth)
	todayStart := dateOnly(now)

	return Age{
		BirthDate:             birth,
		Years:                 years,
		Months:                months,
		Days:                  days,
		TotalDays:             totalDays,
		TotalHours:            totalHours,
		TotalMinutes:          totalHours * 60,
		BirthDay:              birth.Weekday(),
		Zodiac:                ZodiacOf(birth.Month(), birth.Day()),
		NextBirthday:          next,
		DaysUntilNextBirthday: int(civilDay(next) - civilDay(todayStart)),
		AgeNext:               ageNext,
	}, true
}

// ComputeAgeISO parses both inputs and computes the age. nowISO may be a plain date or
// a full RFC 3339 timestamp; the birth date is interpreted in now's location.
func ComputeAgeISO(birthISO, nowISO string) (Age, bool) {
	now, err := parseInstant(nowISO, time.UTC)
	if err != nil {
		return Age{}, false
	}
	birth, err := ParseDate(birthISO, now.Location())
	if err != nil {
		return Age{}, false
	}
	return ComputeAge(birth, now)
}

// nextOccurrence returns the next birthday relative to now and the age reached on it.
// A birthday falling today counts as the next occurrence.
func nextOccurrence(now, birth time.Time) (time.Time, int) {
	loc := now.Location()
	year := now.Year()

	// time.Date normalises Feb 29 to Mar 1 in non-leap years.
	candidate := time.Date(year, birth.Month(), birth.Day(), 0, 0, 0, 0, loc)
	if candidate.Before(dateOnly(now)) {
		candidate = time.Date(year+1, birth.Month(), birth.Day(), 0, 0, 0, 0, loc)
	}

	return candidate, candidate.Year() - birth.Year()
}
