package ui

import (
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/tartampluch/go-folio/internal/config"
	"github.com/tartampluch/go-folio/internal/engine"
)

type differenceView struct {
	app    *FolioApp
	form   *engine.RangeForm
	start  *widget.Entry
	end    *widget.Entry
	result *widget.Label

	syncing bool
}

func newDifferenceView(app *FolioApp) *differenceView {
	v := &differenceView{
		app:    app,
		form:   engine.NewRangeForm(app.Clock),
		start:  widget.NewEntry(),
		end:    widget.NewEntry(),
		result: widget.NewLabel(""),
	}
	v.start.SetPlaceHolder(config.DateFormatDisplay)
	v.end.SetPlaceHolder(config.DateFormatDisplay)
	v.result.Wrapping = fyne.TextWrapWord

	v.start.OnChanged = func(s string) {
		if !v.syncing {
			v.form.Start = s
			v.update()
		}
	}
	v.end.OnChanged = func(s string) {
		if !v.syncing {
			v.form.End = s
			v.update()
		}
	}
	v.update()
	return v
}

// apply runs a form action and copies the resulting fields back into the entries.
func (v *differenceView) apply(action func()) {
	action()
	v.syncing = true
	setText(v.start, v.form.Start)
	setText(v.end, v.form.End)
	v.syncing = false
	v.update()
}

func (v *differenceView) update() {
	tr := v.app.tr
	d, ok := v.form.Result()
	if !ok {
		v.result.SetText(tr.Msg(config.TKeyHintDates))
		return
	}
	lines := append([]string{tr.LongDate(d.Start) + " → " + tr.LongDate(d.End)}, tr.DifferenceLines(d)...)
	v.result.SetText(strings.Join(lines, "\n"))
}

func (v *differenceView) content() fyne.CanvasObject {
	tr := v.app.tr
	today := tr.Msg(config.TKeyBtnToday)

	startRow := container.NewBorder(nil, nil, nil,
		widget.NewButton(today, func() { v.apply(v.form.UseTodayForStart) }), v.start)
	endRow := container.NewBorder(nil, nil, nil,
		widget.NewButton(today, func() { v.apply(v.form.UseTodayForEnd) }), v.end)

	form := widget.NewForm(
		widget.NewFormItem(tr.Msg(config.TKeyLblStartDate), startRow),
		widget.NewFormItem(tr.Msg(config.TKeyLblEndDate), endRow),
	)
	actions := container.NewGridWithColumns(config.LayoutColumnsDouble,
		widget.NewButtonWithIcon(tr.Msg(config.TKeyBtnSwap), theme.ViewRefreshIcon(), func() { v.apply(v.form.Swap) }),
		widget.NewButtonWithIcon(tr.Msg(config.TKeyBtnClear), theme.ContentClearIcon(), func() { v.apply(v.form.Clear) }),
	)
	return container.NewVBox(form, actions, widget.NewSeparator(), v.result)
}
