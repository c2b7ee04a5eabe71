package engine

import (
	"strings"
	"time"
)

// Zodiac is a western sun sign.
type Zodiac int

const (
	Aries Zodiac = iota
	Taurus
	Gemini
	Cancer
	Leo
	Virgo
	Libra
	Scorpio
	Sagittarius
	Capricorn
	Aquarius
	Pisces
)

var zodiacNames = [...]string{
	"Aries", "Taurus", "Gemini", "Cancer", "Leo", "Virgo",
	"Libra", "Scorpio", "Sagittarius", "Capricorn", "Aquarius", "Pisces",
}

func (z Zodiac) String() string {
	if z < Aries || z > Pisces {
		return "Unknown"
	}
	return zodiacNames[z]
}

// Key is the lower-case identifier used for translation lookups.
func (z Zodiac) Key() string {
	return strings.ToLower(z.String())
}

// MarshalText renders the sign name in JSON.
func (z Zodiac) MarshalText() ([]byte, error) {
	return []byte(z.String()), nil
}

type zodiacRange struct {
	sign       Zodiac
	startMonth time.Month
	startDay   int
	endMonth   time.Month
	endDay     int
}

// Capricorn is absent: its range wraps across the year boundary.
var zodiacRanges = []zodiacRange{
	{Aquarius, time.January, 20, time.February, 18},
	{Pisces, time.February, 19, time.March, 20},
	{Aries, time.March, 21, time.April, 19},
	{Taurus, time.April, 20, time.May, 20},
	{Gemini, time.May, 21, time.June, 20},
	{Cancer, time.June, 21, time.July, 22},
	{Leo, time.July, 23, time.August, 22},
	{Virgo, time.August, 23, time.September, 22},
	{Libra, time.September, 23, time.October, 22},
	{Scorpio, time.October, 23, time.November, 21},
	{Sagittarius, time.November, 22, time.December, 21},
}

// ZodiacOf returns the sun sign of a month/day pair.
func ZodiacOf(month time.Month, day int) Zodiac {
	if (month == time.December && day >= 22) || (month == time.January && day <= 19) {
		return Capricorn
	}
	for _, r := range zodiacRanges {
		if (month == r.startMonth && day >= r.startDay) || (month == r.endMonth && day <= r.endDay) {
			return r.sign
		}
	}
	return Capricorn
}
