package units

// Each category has its own unit type so that a pair of units from two different
// categories cannot be passed to the typed converters.
type (
	LengthUnit      string
	WeightUnit      string
	TemperatureUnit string
	VolumeUnit      string
	AreaUnit        string
	SpeedUnit       string
)

const (
	Millimeter LengthUnit = "mm"
	Centimeter LengthUnit = "cm"
	Meter      LengthUnit = "m"
	Kilometer  LengthUnit = "km"
	Inch       LengthUnit = "in"
	Foot       LengthUnit = "ft"
	Yard       LengthUnit = "yd"
	Mile       LengthUnit = "mi"
)

const (
	Milligram WeightUnit = "mg"
	Gram      WeightUnit = "g"
	Kilogram  WeightUnit = "kg"
	Tonne     WeightUnit = "t"
	Ounce     WeightUnit = "oz"
	Pound     WeightUnit = "lbs"
	Stone     WeightUnit = "st"
)

const (
	Celsius    TemperatureUnit = "celsius"
	Fahrenheit TemperatureUnit = "fahrenheit"
	Kelvin     TemperatureUnit = "kelvin"
)

const (
	Milliliter  VolumeUnit = "ml"
	Liter       VolumeUnit = "l"
	CubicMeter  VolumeUnit = "m3"
	Teaspoon    VolumeUnit = "tsp"
	Tablespoon  VolumeUnit = "tbsp"
	FluidOunce  VolumeUnit = "floz"
	Cup         VolumeUnit = "cup"
	Pint        VolumeUnit = "pt"
	Quart       VolumeUnit = "qt"
	Gallon      VolumeUnit = "gal"
)

const (
	SquareMillimeter AreaUnit = "mm2"
	SquareCentimeter AreaUnit = "cm2"
	SquareMeter      AreaUnit = "m2"
	SquareKilometer  AreaUnit = "km2"
	Hectare          AreaUnit = "ha"
	SquareInch       AreaUnit = "in2"
	SquareFoot       AreaUnit = "ft2"
	SquareYard       AreaUnit = "yd2"
	Acre             AreaUnit = "ac"
	SquareMile       AreaUnit = "mi2"
)

const (
	MeterPerSecond   SpeedUnit = "mps"
	KilometerPerHour SpeedUnit = "kph"
	MilePerHour      SpeedUnit = "mph"
	FootPerSecond    SpeedUnit = "fps"
	Knot             SpeedUnit = "knot"
)

func (LengthUnit) Category() Category      { return Length }
func (WeightUnit) Category() Category      { return Weight }
func (TemperatureUnit) Category() Category { return Temperature }
func (VolumeUnit) Category() Category      { return Volume }
func (AreaUnit) Category() Category        { return Area }
func (SpeedUnit) Category() Category       { return Speed }

var catalog = map[Category]Table{
	Length: {
		Category: Length,
		Base:     string(Meter),
		Units: []Unit{
			{Key: string(Millimeter), Name: "Millimeter", Symbol: "mm", Factor: 0.001},
			{Key: string(Centimeter), Name: "Centimeter", Symbol: "cm", Factor: 0.01},
			{Key: string(Meter), Name: "Meter", Symbol: "m", Factor: 1},
			{Key: string(Kilometer), Name: "Kilometer", Symbol: "km", Factor: 1000},
			{Key: string(Inch), Name: "Inch", Symbol: "in", Factor: 0.0254},
			{Key: string(Foot), Name: "Foot", Symbol: "ft", Factor: 0.3048},
			{Key: string(Yard), Name: "Yard", Symbol: "yd", Factor: 0.9144},
			{Key: string(Mile), Name: "Mile", Symbol: "mi", Factor: 1609.344},
		},
	},
	Weight: {
		Category: Weight,
		Base:     string(Kilogram),
		Units: []Unit{
			{Key: string(Milligram), Name: "Milligram", Symbol: "mg", Factor: 0.000001},
			{Key: string(Gram), Name: "Gram", Symbol: "g", Factor: 0.001},
			{Key: string(Kilogram), Name: "Kilogram", Symbol: "kg", Factor: 1},
			{Key: string(Tonne), Name: "Metric ton", Symbol: "t", Factor: 1000},
			{Key: string(Ounce), Name: "Ounce", Symbol: "oz", Factor: 0.0283495},
			{Key: string(Pound), Name: "Pound", Symbol: "lbs", Factor: 0.453592},
			{Key: string(Stone), Name: "Stone", Symbol: "st", Factor: 6.35029},
		},
	},
	Temperature: {
		Category: Temperature,
		Base:     string(Celsius),
		Units: []Unit{
			{Key: string(Celsius), Name: "Celsius", Symbol: "°C"},
			{Key: string(Fahrenheit), Name: "Fahrenheit", Symbol: "°F"},
			{Key: string(Kelvin), Name: "Kelvin", Symbol: "K"},
		},
	},
	Volume: {
		Category: Volume,
		Base:     string(Liter),
		Units: []Unit{
			{Key: string(Milliliter), Name: "Milliliter", Symbol: "ml", Factor: 0.001},
			{Key: string(Liter), Name: "Liter", Symbol: "l", Factor: 1},
			{Key: string(CubicMeter), Name: "Cubic meter", Symbol: "m³", Factor: 1000},
			{Key: string(Teaspoon), Name: "Teaspoon", Symbol: "tsp", Factor: 0.00492892},
			{Key: string(Tablespoon), Name: "Tablespoon", Symbol: "tbsp", Factor: 0.0147868},
			{Key: string(FluidOunce), Name: "Fluid ounce", Symbol: "fl oz", Factor: 0.0295735},
			{Key: string(Cup), Name: "Cup", Symbol: "cup", Factor: 0.236588},
			{Key: string(Pint), Name: "Pint", Symbol: "pt", Factor: 0.473176},
			{Key: string(Quart), Name: "Quart", Symbol: "qt", Factor: 0.946353},
			{Key: string(Gallon), Name: "Gallon", Symbol: "gal", Factor: 3.78541},
		},
	},
	Area: {
		Category: Area,
		Base:     string(SquareMeter),
		Units: []Unit{
			{Key: string(SquareMillimeter), Name: "Square millimeter", Symbol: "mm²", Factor: 0.000001},
			{Key: string(SquareCentimeter), Name: "Square centimeter", Symbol: "cm²", Factor: 0.0001},
			{Key: string(SquareMeter), Name: "Square meter", Symbol: "m²", Factor: 1},
			{Key: string(SquareKilometer), Name: "Square kilometer", Symbol: "km²", Factor: 1000000},
			{Key: string(Hectare), Name: "Hectare", Symbol: "ha", Factor: 10000},
			{Key: string(SquareInch), Name: "Square inch", Symbol: "in²", Factor: 0.00064516},
			{Key: string(SquareFoot), Name: "Square foot", Symbol: "ft²", Factor: 0.092903},
			{Key: string(SquareYard), Name: "Square yard", Symbol: "yd²", Factor: 0.836127},
			{Key: string(Acre), Name: "Acre", Symbol: "ac", Factor: 4046.86},
			{Key: string(SquareMile), Name: "Square mile", Symbol: "mi²", Factor: 2589988.11},
		},
	},
	Speed: {
		Category: Speed,
		Base:     string(MeterPerSecond),
		Units: []Unit{
			{Key: string(MeterPerSecond), Name: "Meter per second", Symbol: "m/s", Factor: 1},
			{Key: string(KilometerPerHour), Name: "Kilometer per hour", Symbol: "km/h", Factor: 0.277778},
			{Key: string(MilePerHour), Name: "Mile per hour", Symbol: "mph", Factor: 0.44704},
			{Key: string(FootPerSecond), Name: "Foot per second", Symbol: "ft/s", Factor: 0.3048},
			{Key: string(Knot), Name: "Knot", Symbol: "kn", Factor: 0.514444},
		},
	},
}

// Linear is satisfied by the unit types of the scale-only categories.
type Linear interface {
	LengthUnit | WeightUnit | VolumeUnit | AreaUnit | SpeedUnit
	Category() Category
}

// ConvertLinear converts between two units of the same linear category.
func ConvertLinear[U Linear](value float64, from, to U) float64 {
	if from == to {
		return value
	}
	v, _ := Convert(from.Category(), string(from), string(to), value)
	return v
}

// ConvertTemperature converts through Celsius: from → °C → to.
func ConvertTemperature(value float64, from, to TemperatureUnit) float64 {
	if from == to {
		return value
	}
	return fromCelsius(toCelsius(value, from), to)
}

func toCelsius(v float64, u TemperatureUnit) float64 {
	switch u {
	case Fahrenheit:
		return (v - 32) * 5 / 9
	case Kelvin:
		return v - 273.15
	default:
		return v
	}
}

func fromCelsius(c float64, u TemperatureUnit) float64 {
	switch u {
	case Fahrenheit:
		return c*9/5 + 32
	case Kelvin:
		return c + 273.15
	default:
		return c
	}
}
