package calculator

import (
	"fmt"
	"strings"

	"github.com/tartampluch/go-folio/internal/config"
)

// Key is one button of the calculator keypad.
type Key string

const (
	Key0 Key = "0"
	Key1 Key = "1"
	Key2 Key = "2"
	Key3 Key = "3"
	Key4 Key = "4"
	Key5 Key = "5"
	Key6 Key = "6"
	Key7 Key = "7"
	Key8 Key = "8"
	Key9 Key = "9"

	KeyDecimal Key = "."

	KeyAdd      Key = "+"
	KeySubtract Key = "−"
	KeyMultiply Key = "×"
	KeyDivide   Key = "÷"
	KeyPower    Key = "^"
	KeyEquals   Key = "="

	KeyAllClear   Key = "AC"
	KeyClearEntry Key = "CE"
	KeyBackspace  Key = "⌫"
	KeyNegate     Key = "±"
	KeyPercent    Key = "%"

	KeySin        Key = "sin"
	KeyCos        Key = "cos"
	KeyTan        Key = "tan"
	KeyAsin       Key = "asin"
	KeyAcos       Key = "acos"
	KeyAtan       Key = "atan"
	KeyLog        Key = "log"
	KeyLn         Key = "ln"
	KeySqrt       Key = "√"
	KeySquare     Key = "x²"
	KeyPow10      Key = "10^x"
	KeyExp        Key = "e^x"
	KeyReciprocal Key = "1/x"
	KeyFactorial  Key = "n!"
	KeyPi         Key = "π"
	KeyE          Key = "e"

	KeyMemoryClear  Key = "MC"
	KeyMemoryRecall Key = "MR"
	KeyMemoryStore  Key = "MS"
	KeyMemoryAdd    Key = "M+"
	KeyMemorySub    Key = "M−"

	KeyAngle Key = "DEG/RAD"
)

// BasicKeys is the four-function keypad in display order.
var BasicKeys = []Key{
	KeyAllClear, KeyClearEntry, KeyBackspace, KeyDivide,
	Key7, Key8, Key9, KeyMultiply,
	Key4, Key5, Key6, KeySubtract,
	Key1, Key2, Key3, KeyAdd,
	KeyNegate, Key0, KeyDecimal, KeyEquals,
}

// ScientificKeys is the extra keypad shown in scientific mode.
var ScientificKeys = []Key{
	KeySin, KeyCos, KeyTan, KeyAngle, KeyPercent,
	KeyAsin, KeyAcos, KeyAtan, KeyPi, KeyE,
	KeyLog, KeyLn, KeySqrt, KeySquare, KeyPower,
	KeyPow10, KeyExp, KeyReciprocal, KeyFactorial, KeyMemoryClear,
	KeyMemoryRecall, KeyMemoryStore, KeyMemoryAdd, KeyMemorySub,
}

// aliases maps ASCII spellings typed on a keyboard or a command line to keys.
var aliases = map[string]Key{
	"-":    KeySubtract,
	"*":    KeyMultiply,
	"x":    KeyMultiply,
	"/":    KeyDivide,
	"**":   KeyPower,
	"c":    KeyAllClear,
	"back": KeyBackspace,
	"bs":   KeyBackspace,
	"+/-":  KeyNegate,
	"neg":  KeyNegate,
	"sqrt": KeySqrt,
	"sq":   KeySquare,
	"x^2":  KeySquare,
	"exp":  KeyExp,
	"inv":  KeyReciprocal,
	"!":    KeyFactorial,
	"fact": KeyFactorial,
	"pi":   KeyPi,
	"m-":   KeyMemorySub,
	"deg":  KeyAngle,
	"rad":  KeyAngle,
}

var known = func() map[Key]bool {
	m := make(map[Key]bool)
	for _, k := range BasicKeys {
		m[k] = true
	}
	for _, k := range ScientificKeys {
		m[k] = true
	}
	return m
}()

// ParseKey resolves a key label or one of its ASCII aliases.
func ParseKey(s string) (Key, bool) {
	if known[Key(s)] {
		return Key(s), true
	}
	lower := strings.ToLower(s)
	if k, ok := aliases[lower]; ok {
		return k, true
	}
	for _, k := range []Key{Key(lower), Key(strings.ToUpper(s))} {
		if known[k] {
			return k, true
		}
	}
	return "", false
}

// ParseKeys splits a whitespace separated key sequence such as "2 + 3 =".
func ParseKeys(seq string) ([]Key, error) {
	fields := strings.Fields(seq)
	if len(fields) > config.MaxCalculatorKeys {
		return nil, fmt.Errorf("%s: %d", config.ErrTooManyKeys, len(fields))
	}

	keys := make([]Key, 0, len(fields))
	for _, f := range fields {
		k, ok := ParseKey(f)
		if !ok {
			return nil, fmt.Errorf("%s: %q", config.ErrUnknownKey, f)
		}
		keys = append(keys, k)
	}
	return keys, nil
}

func isDigit(k Key) bool {
	return len(k) == 1 && k[0] >= '0' && k[0] <= '9'
}

func isBinary(k Key) bool {
	switch k {
	case KeyAdd, KeySubtract, KeyMultiply, KeyDivide, KeyPower:
		return true
	}
	return false
}
