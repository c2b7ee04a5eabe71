package engine

import "github.com/tartampluch/go-folio/internal/config"

// RangeForm holds the two date fields of the date difference widget.
// Fields are kept as text so that partially typed input survives recomputation.
type RangeForm struct {
	Clock Clock
	Start string
	End   string
}

// NewRangeForm returns an empty form using clock for the "today" shortcuts.
func NewRangeForm(clock Clock) *RangeForm {
	if clock == nil {
		clock = RealClock{}
	}
	return &RangeForm{Clock: clock}
}

func (f *RangeForm) today() string {
	return Today(f.Clock).Format(config.DateFormatFullDash)
}

// UseTodayForStart sets the start field to the current date.
func (f *RangeForm) UseTodayForStart() { f.Start = f.today() }

// UseTodayForEnd sets the end field to the current date.
func (f *RangeForm) UseTodayForEnd() { f.End = f.today() }

// Swap exchanges the two endpoints, which flips the sign of every signed field.
func (f *RangeForm) Swap() { f.Start, f.End = f.End, f.Start }

// Clear resets both fields.
func (f *RangeForm) Clear() { f.Start, f.End = "", "" }

// Result computes the difference, or false while either field is not a valid date.
func (f *RangeForm) Result() (Difference, bool) {
	return ComputeDifferenceISO(f.Start, f.End)
}
