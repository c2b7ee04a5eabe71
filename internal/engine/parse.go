package engine

import (
	"errors"
	"strings"
	"time"

	"github.com/tartampluch/go-folio/internal/config"
)

// ParseDate reads a calendar date in one of the accepted layouts and returns it at
// midnight in loc. Time-of-day information in RFC 3339 input is discarded.
func ParseDate(value string, loc *time.Location) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, errors.New(config.ErrDateParse)
	}
	if loc == nil {
		loc = time.UTC
	}

	layouts := []string{
		config.DateFormatFullDash,
		config.DateFormatFullBasic,
		config.DateFormatRFC3339,
		config.DateFormatFullT,
	}

	for _, layout := range layouts {
		if t, err := time.Parse(layout, value); err == nil {
			y, m, d := t.Date()
			return time.Date(y, m, d, 0, 0, 0, 0, loc), nil
		}
	}

	return time.Time{}, errors.New(config.ErrDateParse)
}

// parseInstant reads either a full RFC 3339 timestamp or a plain date.
func parseInstant(value string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	if t, err := time.Parse(time.RFC3339, strings.TrimSpace(value)); err == nil {
		return t.In(loc), nil
	}
	return ParseDate(value, loc)
}
