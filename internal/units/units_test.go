package units_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-folio/internal/units"
)

// TestConvert_Identity checks that converting a unit to itself is exact for every unit.
func TestConvert_Identity(t *testing.T) {
	values := []float64{0, 1, -17.25, 0.1, 1e-9, 123456.789, math.Pi}

	for _, table := range units.Tables() {
		for _, key := range table.Keys() {
			for _, v := range values {
				got, ok := units.Convert(table.Category, key, key, v)
				require.True(t, ok, "%s/%s", table.Category, key)
				assert.Equal(t, v, got, "%s/%s identity must be exact", table.Category, key)
			}
		}
	}
}

// TestConvert_InverseConsistency checks a→b→a for every pair of every linear category.
func TestConvert_InverseConsistency(t *testing.T) {
	values := []float64{1, 2.5, 175, 0.003, 98765.4321}

	for _, table := range units.Tables() {
		for _, a := range table.Keys() {
			for _, b := range table.Keys() {
				for _, v := range values {
					there, ok := units.Convert(table.Category, a, b, v)
					require.True(t, ok)
					back, ok := units.Convert(table.Category, b, a, there)
					require.True(t, ok)
					assert.InDelta(t, v, back, 1e-6*math.Max(1, math.Abs(v)), "%s %s<->%s", table.Category, a, b)
				}
			}
		}
	}
}

func TestConvert_KnownValues(t *testing.T) {
	tests := []struct {
		name     string
		category units.Category
		from, to string
		value    float64
		want     float64
		delta    float64
	}{
		{"cm to in", units.Length, "cm", "in", 175, 68.8976377952756, 1e-9},
		{"kg to lbs", units.Weight, "kg", "lbs", 70, 154.3237094, 1e-6},
		{"in to m exact factor", units.Length, "in", "m", 1, 0.0254, 0},
		{"lbs to kg exact factor", units.Weight, "lbs", "kg", 1, 0.453592, 0},
		{"mi to km", units.Length, "mi", "km", 1, 1.609344, 1e-12},
		{"gal to l", units.Volume, "gal", "l", 2, 7.57082, 1e-9},
		{"ha to m2", units.Area, "ha", "m2", 1.5, 15000, 0},
		{"kph to mph", units.Speed, "kph", "mph", 100, 62.1373, 1e-3},
		{"C to F freezing", units.Temperature, "celsius", "fahrenheit", 0, 32, 0},
		{"C to F boiling", units.Temperature, "celsius", "fahrenheit", 100, 212, 0},
		{"C to K", units.Temperature, "celsius", "kelvin", 0, 273.15, 0},
		{"F to C", units.Temperature, "fahrenheit", "celsius", -40, -40, 0},
		{"K to F", units.Temperature, "kelvin", "fahrenheit", 273.15, 32, 1e-9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := units.Convert(tt.category, tt.from, tt.to, tt.value)
			require.True(t, ok)
			if tt.delta == 0 {
				assert.Equal(t, tt.want, got)
			} else {
				assert.InDelta(t, tt.want, got, tt.delta)
			}
		})
	}
}

func TestConvertTemperature_RoundTrip(t *testing.T) {
	for _, v := range []float64{-40, 0, 5, 20, 100} {
		f := units.ConvertTemperature(v, units.Celsius, units.Fahrenheit)
		assert.Equal(t, v, units.ConvertTemperature(f, units.Fahrenheit, units.Celsius), "round trip of %v", v)
	}

	// Values that are not exactly representable still come back within double precision.
	for _, v := range []float64{37, -273.15, 36.6, 1e6} {
		f := units.ConvertTemperature(v, units.Celsius, units.Fahrenheit)
		assert.InDelta(t, v, units.ConvertTemperature(f, units.Fahrenheit, units.Celsius), 1e-9)
		k := units.ConvertTemperature(v, units.Celsius, units.Kelvin)
		assert.InDelta(t, v, units.ConvertTemperature(k, units.Kelvin, units.Celsius), 1e-9)
	}
}

func TestConvertLinear_Typed(t *testing.T) {
	assert.InDelta(t, 68.8976, units.ConvertLinear(175, units.Centimeter, units.Inch), 1e-4)
	assert.InDelta(t, 154.324, units.ConvertLinear(70, units.Kilogram, units.Pound), 1e-3)
	assert.Equal(t, 42.0, units.ConvertLinear(42, units.Knot, units.Knot))
	assert.InDelta(t, 1.0, units.ConvertLinear(3.6, units.KilometerPerHour, units.MeterPerSecond), 1e-5)
}

func TestConvert_RejectsForeignUnits(t *testing.T) {
	_, ok := units.Convert(units.Length, "cm", "kg", 1)
	assert.False(t, ok, "kg is not a length")

	_, ok = units.Convert(units.Category("time"), "s", "min", 1)
	assert.False(t, ok, "time is not a category")
}

func TestConvertText_NotReady(t *testing.T) {
	tests := []struct {
		name     string
		from, to string
		text     string
	}{
		{"empty", "cm", "in", ""},
		{"spaces", "cm", "in", "   "},
		{"letters", "cm", "in", "abc"},
		{"nan", "cm", "in", "NaN"},
		{"infinity", "cm", "in", "Inf"},
		{"unset from", "", "in", "1"},
		{"unset to", "cm", "", "1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := units.ConvertText(units.Length, tt.from, tt.to, tt.text)
			assert.False(t, ok)
		})
	}
}

func TestConvertText_DecimalComma(t *testing.T) {
	got, ok := units.ConvertText(units.Length, "m", "cm", " 1,5 ")
	require.True(t, ok)
	assert.InDelta(t, 150.0, got, 1e-9)
}

func TestParseCategory(t *testing.T) {
	c, ok := units.ParseCategory(" Temperature ")
	assert.True(t, ok)
	assert.Equal(t, units.Temperature, c)

	_, ok = units.ParseCategory("energy")
	assert.False(t, ok)
}

func TestTables_Integrity(t *testing.T) {
	require.Len(t, units.Tables(), len(units.Categories))

	for _, table := range units.Tables() {
		assert.True(t, table.Has(table.Base), "%s base unit must be in its own table", table.Category)
		seen := map[string]bool{}
		for _, u := range table.Units {
			assert.False(t, seen[u.Key], "duplicate key %s", u.Key)
			seen[u.Key] = true
			assert.NotEmpty(t, u.Name)
			assert.NotEmpty(t, u.Symbol)
			if table.Category == units.Temperature {
				assert.Zero(t, u.Factor)
			} else {
				assert.Greater(t, u.Factor, 0.0, "%s factor", u.Key)
			}
		}
		base, _ := units.Convert(table.Category, table.Base, table.Base, 1)
		assert.Equal(t, 1.0, base)
	}
}

func TestFormatValue(t *testing.T) {
	assert.Equal(t, "68.897638", units.FormatValue(68.8976377952756, 6))
	assert.Equal(t, "32", units.FormatValue(32, 6))
	assert.Equal(t, "0", units.FormatValue(-0.0000001, 6))
	assert.Equal(t, "0.1", units.FormatValue(0.1+0.2-0.2, 6))
}
