package engine

import (
	"strconv"
	"strings"
	"time"

	"github.com/tartampluch/go-folio/internal/config"
)

// Difference is the signed calendar distance from Start to End.
// When End precedes Start every field carries a negative sign.
type Difference struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`

	Years  int `json:"years"`
	Months int `json:"months"`
	Days   int `json:"days"`

	TotalDays     int64 `json:"totalDays"`
	TotalWeeks    int64 `json:"totalWeeks"`
	RemainingDays int64 `json:"remainingDays"`
	TotalHours    int64 `json:"totalHours"`
	TotalMinutes  int64 `json:"totalMinutes"`
	TotalSeconds  int64 `json:"totalSeconds"`

	WorkingDays int64 `json:"workingDays"`
	Weekends    int64 `json:"weekends"`

	StartFormatted string `json:"startFormatted"`
	EndFormatted   string `json:"endFormatted"`

	Reversed bool `json:"reversed"`
}

// ComputeDifference measures the calendar distance between two dates in either order.
// Only the calendar date of each argument is considered.
func ComputeDifference(start, end time.Time) Difference {
	s, e := civilDate(start), civilDate(end)

	reversed := s.After(e)
	earlier, later := s, e
	sign := 1
	if reversed {
		earlier, later = e, s
		sign = -1
	}

	years, months, days := calendarSpan(earlier, later)

	totalDays := civilDay(e) - civilDay(s)
	span := abs64(totalDays)
	working := countWorkingDays(earlier, span)

	sign64 := int64(sign)
	return Difference{
		Start:          s,
		End:            e,
		Years:          years * sign,
		Months:         months * sign,
		Days:           days * sign,
		TotalDays:      totalDays,
		TotalWeeks:     (span / 7) * sign64,
		RemainingDays:  (span % 7) * sign64,
		TotalHours:     totalDays * 24,
		TotalMinutes:   totalDays * 24 * 60,
		TotalSeconds:   totalDays * secondsPerDay,
		WorkingDays:    working * sign64,
		Weekends:       (span - working) * sign64,
		StartFormatted: s.Format(config.DateFormatLong),
		EndFormatted:   e.Format(config.DateFormatLong),
		Reversed:       reversed,
	}
}

// ComputeDifferenceISO parses both dates and computes their difference.
// It reports false when either date is missing or unparseable.
func ComputeDifferenceISO(startISO, endISO string) (Difference, bool) {
	start, err := ParseDate(startISO, time.UTC)
	if err != nil {
		return Difference{}, false
	}
	end, err := ParseDate(endISO, time.UTC)
	if err != nil {
		return Difference{}, false
	}
	return ComputeDifference(start, end), true
}

// countWorkingDays counts Monday to Friday days in the span days starting at from,
// walking the calendar one day at a time.
func countWorkingDays(from time.Time, span int64) int64 {
	var n int64
	wd := from.Weekday()
	for i := int64(0); i < span; i++ {
		if isWorkingDay(wd) {
			n++
		}
		wd = (wd + 1) % 7
	}
	return n
}

// Part identifies one component of a human readable difference.
type Part int

const (
	PartYears Part = iota
	PartMonths
	PartDays
)

// PartFormatter renders one signed component, e.g. (PartDays, -3) → "-3 days".
type PartFormatter func(p Part, n int) string

// EnglishParts is the default PartFormatter.
func EnglishParts(p Part, n int) string {
	unit := [...]string{"year", "month", "day"}[p]
	if n != 1 && n != -1 {
		unit += "s"
	}
	return strconv.Itoa(n) + " " + unit
}

// Describe renders the years, months and days of d, omitting zero components.
// A same-day difference renders as "0 days". A nil formatter selects EnglishParts.
func Describe(d Difference, format PartFormatter) string {
	if format == nil {
		format = EnglishParts
	}

	var parts []string
	if d.Years != 0 {
		parts = append(parts, format(PartYears, d.Years))
	}
	if d.Months != 0 {
		parts = append(parts, format(PartMonths, d.Months))
	}
	if d.Days != 0 || len(parts) == 0 {
		parts = append(parts, format(PartDays, d.Days))
	}
	return strings.Join(parts, config.DescribeSeparator)
}
