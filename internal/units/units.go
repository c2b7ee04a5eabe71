// Package units converts numeric values between the units of a closed set of
// measurement categories.
//
// Linear categories scale through a per-unit factor relative to the category's
// base unit. Temperature is affine and composes through Celsius.
package units

import (
	"math"
	"strconv"
	"strings"
)

// Category names one of the fixed measurement groups.
type Category string

const (
	Length      Category = "length"
	Weight      Category = "weight"
	Temperature Category = "temperature"
	Volume      Category = "volume"
	Area        Category = "area"
	Speed       Category = "speed"
)

// Categories lists every category in display order.
var Categories = []Category{Length, Weight, Temperature, Volume, Area, Speed}

// ParseCategory maps a free-form name to a Category.
func ParseCategory(s string) (Category, bool) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	_, ok := catalog[c]
	return c, ok
}

// Unit describes one entry of a category table.
// Factor expresses one unit in the category's base unit; it is zero for temperature.
type Unit struct {
	Key    string  `json:"key"`
	Name   string  `json:"name"`
	Symbol string  `json:"symbol"`
	Factor float64 `json:"factor,omitempty"`
}

// Table is the closed unit set of a category.
type Table struct {
	Category Category `json:"category"`
	Base     string   `json:"base"`
	Units    []Unit   `json:"units"`
}

// Has reports whether key belongs to the table.
func (t Table) Has(key string) bool {
	_, ok := t.unit(key)
	return ok
}

// Keys returns the unit keys in display order.
func (t Table) Keys() []string {
	keys := make([]string, len(t.Units))
	for i, u := range t.Units {
		keys[i] = u.Key
	}
	return keys
}

func (t Table) unit(key string) (Unit, bool) {
	for _, u := range t.Units {
		if u.Key == key {
			return u, true
		}
	}
	return Unit{}, false
}

// Lookup returns the table of a category.
func Lookup(c Category) (Table, bool) {
	t, ok := catalog[c]
	return t, ok
}

// Tables returns every table in display order.
func Tables() []Table {
	out := make([]Table, 0, len(Categories))
	for _, c := range Categories {
		out = append(out, catalog[c])
	}
	return out
}

// Convert is the string-keyed entry point used at the boundaries (HTTP, CLI, UI).
// It returns false when the category is unknown or a unit is not part of it.
func Convert(c Category, from, to string, value float64) (float64, bool) {
	t, ok := catalog[c]
	if !ok || !t.Has(from) || !t.Has(to) {
		return 0, false
	}
	if from == to {
		return value, true
	}
	if c == Temperature {
		return ConvertTemperature(value, TemperatureUnit(from), TemperatureUnit(to)), true
	}
	f, _ := t.unit(from)
	g, _ := t.unit(to)
	return value * f.Factor / g.Factor, true
}

// ConvertText parses text and converts it. Empty or malformed input, a non-finite
// number, or unset units leave the result not ready (false); none of them is an error.
func ConvertText(c Category, from, to, text string) (float64, bool) {
	v, ok := ParseValue(text)
	if !ok || from == "" || to == "" {
		return 0, false
	}
	return Convert(c, from, to, v)
}

// ParseValue parses a finite decimal number. A decimal comma is accepted.
func ParseValue(text string) (float64, bool) {
	s := strings.TrimSpace(text)
	if s == "" {
		return 0, false
	}
	s = strings.Replace(s, ",", ".", 1)
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// FormatValue renders a converted value rounded to decimals places, trailing zeros trimmed.
func FormatValue(v float64, decimals int) string {
	p := math.Pow(10, float64(decimals))
	r := math.Round(v*p) / p
	if r == 0 {
		r = 0 // drop negative zero
	}
	if math.IsInf(r, 0) || math.IsNaN(r) {
		// v*p overflowed; the value is too large for fixed decimals anyway.
		return strconv.FormatFloat(v, 'g', -1, 64)
	}
	return strconv.FormatFloat(r, 'f', -1, 64)
}
