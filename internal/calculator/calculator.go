// Package calculator implements the key-entry state machine of the basic and
// scientific calculators, and a small expression evaluator.
package calculator

import (
	"math"
	"strconv"
	"strings"

	"github.com/tartampluch/go-folio/internal/config"
)

// State is the complete calculator state. It is a value: Press never mutates its input.
type State struct {
	Display    string   `json:"display"`
	Expression string   `json:"expression"`
	Previous   *float64 `json:"previous"`
	Operation  Key      `json:"operation,omitempty"`

	// WaitingForOperand is set right after an operator or "=": the next digit starts a
	// new number and another operator only replaces the pending one.
	WaitingForOperand bool `json:"waitingForOperand"`

	// Overwrite marks a computed display value (function result, constant, recall).
	// It counts as an operand but the next digit replaces it.
	Overwrite bool `json:"overwrite,omitempty"`

	Memory    float64   `json:"memory"`
	AngleMode AngleMode `json:"angleMode"`
}

// New returns the initial state.
func New() State {
	return State{Display: "0", AngleMode: Degrees}
}

// Normalize fills the fields a zero or partial State leaves empty.
func (s State) Normalize() State {
	if s.AngleMode == "" {
		s.AngleMode = Degrees
	}
	if s.Display == "" {
		s.Display = "0"
	}
	return s
}

// IsError reports whether the display shows the error sentinel.
func (s State) IsError() bool {
	return s.Display == config.ErrorDisplay
}

// Value is the number currently displayed.
func (s State) Value() float64 {
	v, err := strconv.ParseFloat(s.Display, 64)
	if err != nil {
		return 0
	}
	return v
}

// Run presses keys in order starting from the initial state.
func Run(keys ...Key) State {
	return PressAll(New(), keys...)
}

// PressAll presses keys in order starting from s.
func PressAll(s State, keys ...Key) State {
	for _, k := range keys {
		s = Press(s, k)
	}
	return s
}

// Press returns the state that results from pressing k in state s.
// Unknown keys leave the state unchanged.
func Press(s State, k Key) State {
	s = s.Normalize()

	switch {
	case isDigit(k):
		return inputDigit(s, string(k))
	case k == KeyDecimal:
		return inputDecimal(s)
	case isBinary(k):
		return chooseOperator(s, k)
	}

	switch k {
	case KeyEquals:
		return equals(s)
	case KeyAllClear:
		return State{Display: "0", Memory: s.Memory, AngleMode: s.AngleMode}
	case KeyClearEntry:
		s.Display = "0"
		s.WaitingForOperand = false
		s.Overwrite = false
		return s
	case KeyBackspace:
		return backspace(s)
	case KeyNegate:
		return negate(s)
	case KeyPi:
		return showComputed(s, math.Pi, "π")
	case KeyE:
		return showComputed(s, math.E, "e")
	case KeyAngle:
		s.AngleMode = s.AngleMode.Toggle()
		return s
	case KeyMemoryClear:
		s.Memory = 0
		return s
	case KeyMemoryRecall:
		return showComputed(s, s.Memory, "M")
	}

	if s.IsError() {
		return s
	}

	switch k {
	case KeyMemoryStore:
		s.Memory = s.Value()
		s.Overwrite = true
		return s
	case KeyMemoryAdd:
		s.Memory += s.Value()
		s.Overwrite = true
		return s
	case KeyMemorySub:
		s.Memory -= s.Value()
		s.Overwrite = true
		return s
	}

	if f, ok := keyFuncs[k]; ok {
		result := f.fn(s.Value(), s.AngleMode)
		if !finite(result) {
			return errorState(s)
		}
		s.Expression = f.label + "(" + s.Display + ")"
		return showComputed(s, result, "")
	}

	return s
}

func inputDigit(s State, d string) State {
	if s.WaitingForOperand || s.Overwrite || s.IsError() || s.Display == "0" {
		s.Display = d
	} else {
		s.Display += d
	}
	s.WaitingForOperand = false
	s.Overwrite = false
	return s
}

func inputDecimal(s State) State {
	if s.WaitingForOperand || s.Overwrite || s.IsError() {
		s.Display = "0."
	} else if !strings.Contains(s.Display, ".") && !strings.ContainsAny(s.Display, "e") {
		s.Display += "."
	}
	s.WaitingForOperand = false
	s.Overwrite = false
	return s
}

func chooseOperator(s State, op Key) State {
	if s.IsError() {
		return s
	}
	input := s.Value()

	switch {
	case s.Previous == nil:
		s.Previous = &input
	case s.Operation != "" && !s.WaitingForOperand:
		result := applyBinary(s.Operation, *s.Previous, input)
		if !finite(result) {
			return errorState(s)
		}
		s.Display = FormatNumber(result)
		s.Previous = &result
	}

	s.Operation = op
	s.WaitingForOperand = true
	s.Overwrite = false
	s.Expression = FormatNumber(*s.Previous) + " " + string(op)
	return s
}

func equals(s State) State {
	if s.IsError() || s.Previous == nil || s.Operation == "" {
		return s
	}
	input := s.Value()
	s.Expression = FormatNumber(*s.Previous) + " " + string(s.Operation) + " " + FormatNumber(input) + " ="

	result := applyBinary(s.Operation, *s.Previous, input)
	if !finite(result) {
		return errorState(s)
	}
	s.Display = FormatNumber(result)
	s.Previous = nil
	s.Operation = ""
	s.WaitingForOperand = true
	s.Overwrite = false
	return s
}

func backspace(s State) State {
	if s.IsError() {
		s.Display = "0"
		s.WaitingForOperand = false
		s.Overwrite = false
		return s
	}
	if s.WaitingForOperand || s.Overwrite || s.Display == "" {
		return s
	}
	d := s.Display[:len(s.Display)-1]
	if d == "" || d == "-" {
		d = "0"
	}
	s.Display = d
	return s
}

func negate(s State) State {
	if s.IsError() || s.Display == "0" {
		return s
	}
	if strings.HasPrefix(s.Display, "-") {
		s.Display = s.Display[1:]
	} else {
		s.Display = "-" + s.Display
	}
	return s
}

// showComputed displays v as an operand that the next digit replaces.
func showComputed(s State, v float64, label string) State {
	s.Display = FormatNumber(v)
	if label != "" {
		s.Expression = label
	}
	s.WaitingForOperand = false
	s.Overwrite = true
	return s
}

// errorState shows the error sentinel and discards the pending computation.
// Memory and angle mode survive.
func errorState(s State) State {
	return State{
		Display:           config.ErrorDisplay,
		Expression:        s.Expression,
		WaitingForOperand: true,
		Memory:            s.Memory,
		AngleMode:         s.AngleMode,
	}
}
