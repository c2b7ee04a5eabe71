package ui

import (
	"strings"

	"fyne.io/fyne/v2/driver/mobile"
	"fyne.io/fyne/v2/widget"
)

// DecimalEntry is an Entry that only accepts the characters of a signed decimal
// number. Both "." and "," are accepted as the decimal separator.
type DecimalEntry struct {
	widget.Entry
}

// NewDecimalEntry creates a new instance of DecimalEntry.
func NewDecimalEntry() *DecimalEntry {
	entry := &DecimalEntry{}
	entry.ExtendBaseWidget(entry)
	return entry
}

// TypedRune drops characters that cannot appear in a decimal number. A minus sign
// is only taken at the start and a single separator is allowed.
func (e *DecimalEntry) TypedRune(r rune) {
	switch {
	case r >= '0' && r <= '9':
	case r == '-':
		if e.CursorColumn != 0 || strings.HasPrefix(e.Text, "-") {
			return
		}
	case r == '.' || r == ',':
		if strings.ContainsAny(e.Text, ".,") {
			return
		}
	default:
		return
	}
	e.Entry.TypedRune(r)
}

// Keyboard asks mobile drivers for the numeric keypad.
func (e *DecimalEntry) Keyboard() mobile.KeyboardType {
	return mobile.NumberKeyboard
}
