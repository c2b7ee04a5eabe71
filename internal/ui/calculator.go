package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/tartampluch/go-folio/internal/calculator"
	"github.com/tartampluch/go-folio/internal/config"
	"github.com/tartampluch/go-folio/internal/prefs"
)

// calculatorView drives the keypads from the pure state machine. Every press
// replaces state with the result of calculator.Press.
type calculatorView struct {
	app   *FolioApp
	state calculator.State

	display    *widget.Label
	expression *widget.Label
	memory     *widget.Label
	angle      *widget.Label
	scientific *widget.Check
	sciPad     *fyne.Container

	input  *widget.Entry
	result *widget.Label
}

func newCalculatorView(app *FolioApp) *calculatorView {
	v := &calculatorView{
		app:        app,
		state:      calculator.New(),
		display:    widget.NewLabel(""),
		expression: widget.NewLabel(""),
		memory:     widget.NewLabel(""),
		angle:      widget.NewLabel(""),
		input:      widget.NewEntry(),
		result:     widget.NewLabel(""),
	}
	v.state.AngleMode = prefs.Get(app.Prefs, prefs.AngleMode)

	v.display.Alignment = fyne.TextAlignTrailing
	v.display.TextStyle = fyne.TextStyle{Bold: true, Monospace: true}
	v.display.SizeName = theme.SizeNameHeadingText
	v.expression.Alignment = fyne.TextAlignTrailing
	v.expression.Importance = widget.LowImportance

	v.sciPad = keypad(config.LayoutColumnsSci, calculator.ScientificKeys, v.press)
	v.scientific = widget.NewCheck(app.tr.Msg(config.TKeyLblScientific), func(on bool) {
		prefs.Set(v.app.Prefs, prefs.Scientific, on)
		v.showScientific(on)
	})
	v.scientific.SetChecked(prefs.Get(app.Prefs, prefs.Scientific))
	v.showScientific(v.scientific.Checked)

	v.input.SetPlaceHolder(app.tr.Msg(config.TKeyHintExpression))
	v.input.OnSubmitted = func(string) { v.evaluate() }
	v.result.TextStyle = fyne.TextStyle{Monospace: true}

	v.render()
	return v
}

// press applies one key and persists the angle mode when it changes.
func (v *calculatorView) press(k calculator.Key) {
	before := v.state.AngleMode
	v.state = calculator.Press(v.state, k)
	if v.state.AngleMode != before {
		prefs.Set(v.app.Prefs, prefs.AngleMode, v.state.AngleMode)
	}
	v.render()
}

func (v *calculatorView) render() {
	v.display.SetText(v.state.Display)
	v.expression.SetText(v.state.Expression)
	v.angle.SetText(string(v.state.AngleMode))
	if v.state.Memory != 0 {
		v.memory.SetText(v.app.tr.Format(config.TKeyLblMemory, map[string]any{
			"Value": calculator.FormatNumber(v.state.Memory),
		}))
	} else {
		v.memory.SetText("")
	}
}

func (v *calculatorView) showScientific(on bool) {
	if on {
		v.sciPad.Show()
	} else {
		v.sciPad.Hide()
	}
}

// evaluate runs the expression field in the keypad's angle mode.
func (v *calculatorView) evaluate() {
	value, err := calculator.Evaluate(v.input.Text, v.state.AngleMode)
	if err != nil {
		v.result.SetText(v.app.tr.Msg(config.TKeyErrExpression))
		return
	}
	v.result.SetText(calculator.FormatNumber(value))
}

func keypad(columns int, keys []calculator.Key, press func(calculator.Key)) *fyne.Container {
	buttons := make([]fyne.CanvasObject, 0, len(keys))
	for _, k := range keys {
		b := widget.NewButton(string(k), func() { press(k) })
		switch k {
		case calculator.KeyEquals:
			b.Importance = widget.HighImportance
		case calculator.KeyAllClear, calculator.KeyClearEntry:
			b.Importance = widget.WarningImportance
		}
		buttons = append(buttons, b)
	}
	return container.NewGridWithColumns(columns, buttons...)
}

func (v *calculatorView) content() fyne.CanvasObject {
	tr := v.app.tr
	status := container.NewHBox(v.angle, v.memory)
	screen := widget.NewCard("", "", container.NewVBox(v.expression, v.display, status))

	evaluate := widget.NewButton(tr.Msg(config.TKeyBtnEvaluate), v.evaluate)
	evaluate.Importance = widget.HighImportance
	exprRow := container.NewBorder(nil, nil, nil, evaluate, v.input)
	exprCard := widget.NewCard(tr.Msg(config.TKeyLblExpression), "", container.NewVBox(exprRow, v.result))

	return container.NewVBox(
		screen,
		v.scientific,
		v.sciPad,
		keypad(config.LayoutColumnsKeypad, calculator.BasicKeys, v.press),
		exprCard,
	)
}
