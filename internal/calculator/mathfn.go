package calculator

import (
	"math"
	"strconv"
	"strings"

	"github.com/tartampluch/go-folio/internal/config"
)

// AngleMode selects the unit of trigonometric arguments and results.
type AngleMode string

const (
	Degrees AngleMode = "DEG"
	Radians AngleMode = "RAD"
)

// Toggle returns the other angle mode.
func (m AngleMode) Toggle() AngleMode {
	if m == Radians {
		return Degrees
	}
	return Radians
}

// ParseAngleMode accepts "deg" or "rad" in any case. Anything else yields Degrees.
func ParseAngleMode(s string) AngleMode {
	if strings.EqualFold(s, string(Radians)) {
		return Radians
	}
	return Degrees
}

// Transcendental results are shown with 12 significant digits, and magnitudes
// below zeroSnap as 0, so that sin(180°) is 0 and log(1000) is 3.
const (
	roundDigits = 12
	zeroSnap    = 1e-12
)

func roundSignificant(v float64) float64 {
	if !finite(v) {
		return v
	}
	if math.Abs(v) < zeroSnap {
		return 0
	}
	r, err := strconv.ParseFloat(strconv.FormatFloat(v, 'g', roundDigits, 64), 64)
	if err != nil {
		return v
	}
	return r
}

func toRadians(x float64, mode AngleMode) float64 {
	if mode == Radians {
		return x
	}
	return x * math.Pi / 180
}

func fromRadians(x float64, mode AngleMode) float64 {
	if mode == Radians {
		return x
	}
	return x * 180 / math.Pi
}

// Factorial returns n! for integers 0..170 and NaN otherwise.
func Factorial(n float64) float64 {
	if n < 0 || n != math.Trunc(n) || n > config.MaxFactorial {
		return math.NaN()
	}
	r := 1.0
	for i := 2.0; i <= n; i++ {
		r *= i
	}
	return r
}

// unary is a one-argument scientific function.
type unary func(x float64, mode AngleMode) float64

var unaryFuncs = map[string]unary{
	"sin":  func(x float64, m AngleMode) float64 { return roundSignificant(math.Sin(toRadians(x, m))) },
	"cos":  func(x float64, m AngleMode) float64 { return roundSignificant(math.Cos(toRadians(x, m))) },
	"tan":  func(x float64, m AngleMode) float64 { return roundSignificant(math.Tan(toRadians(x, m))) },
	"asin": func(x float64, m AngleMode) float64 { return roundSignificant(fromRadians(math.Asin(x), m)) },
	"acos": func(x float64, m AngleMode) float64 { return roundSignificant(fromRadians(math.Acos(x), m)) },
	"atan": func(x float64, m AngleMode) float64 { return roundSignificant(fromRadians(math.Atan(x), m)) },
	"log":  func(x float64, _ AngleMode) float64 { return roundSignificant(math.Log10(x)) },
	"ln":   func(x float64, _ AngleMode) float64 { return math.Log(x) },
	"sqrt": func(x float64, _ AngleMode) float64 { return math.Sqrt(x) },
	"exp":  func(x float64, _ AngleMode) float64 { return math.Exp(x) },
	"abs":  func(x float64, _ AngleMode) float64 { return math.Abs(x) },
}

// keyFuncs maps keypad keys to their function and the label used in the expression line.
var keyFuncs = map[Key]struct {
	label string
	fn    unary
}{
	KeySin:        {"sin", unaryFuncs["sin"]},
	KeyCos:        {"cos", unaryFuncs["cos"]},
	KeyTan:        {"tan", unaryFuncs["tan"]},
	KeyAsin:       {"asin", unaryFuncs["asin"]},
	KeyAcos:       {"acos", unaryFuncs["acos"]},
	KeyAtan:       {"atan", unaryFuncs["atan"]},
	KeyLog:        {"log", unaryFuncs["log"]},
	KeyLn:         {"ln", unaryFuncs["ln"]},
	KeySqrt:       {"√", unaryFuncs["sqrt"]},
	KeyExp:        {"e^", unaryFuncs["exp"]},
	KeySquare:     {"sqr", func(x float64, _ AngleMode) float64 { return x * x }},
	KeyPow10:      {"10^", func(x float64, _ AngleMode) float64 { return math.Pow(10, x) }},
	KeyReciprocal: {"1/", func(x float64, _ AngleMode) float64 { return 1 / x }},
	KeyFactorial:  {"fact", func(x float64, _ AngleMode) float64 { return Factorial(x) }},
	KeyPercent:    {"pct", func(x float64, _ AngleMode) float64 { return x / 100 }},
}

func applyBinary(op Key, a, b float64) float64 {
	switch op {
	case KeyAdd:
		return a + b
	case KeySubtract:
		return a - b
	case KeyMultiply:
		return a * b
	case KeyDivide:
		return a / b
	case KeyPower:
		return math.Pow(a, b)
	}
	return b
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// FormatNumber renders v the way the display shows it: shortest exact decimal,
// switching to exponent notation for very large or very small magnitudes.
func FormatNumber(v float64) string {
	if !finite(v) {
		return config.ErrorDisplay
	}
	if v == 0 {
		return "0"
	}
	a := math.Abs(v)
	if a >= 1e21 || a < 1e-6 {
		return strconv.FormatFloat(v, 'e', -1, 64)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
