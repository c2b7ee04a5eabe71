package ui

import (
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/tartampluch/go-folio/internal/config"
	"github.com/tartampluch/go-folio/internal/engine"
)

type ageView struct {
	app    *FolioApp
	birth  *widget.Entry
	result *widget.Label
}

func newAgeView(app *FolioApp) *ageView {
	v := &ageView{
		app:    app,
		birth:  widget.NewEntry(),
		result: widget.NewLabel(""),
	}
	v.birth.SetPlaceHolder(config.DateFormatDisplay)
	v.result.Wrapping = fyne.TextWrapWord
	v.birth.OnChanged = func(string) { v.update() }
	v.update()
	return v
}

// update shows the age breakdown, or the input hint while the birth date is not ready.
func (v *ageView) update() {
	now := v.app.Clock.Now()
	birth, err := engine.ParseDate(v.birth.Text, now.Location())
	if err != nil {
		v.result.SetText(v.app.tr.Msg(config.TKeyHintBirthDate))
		return
	}
	age, ok := engine.ComputeAge(birth, now)
	if !ok {
		v.result.SetText(v.app.tr.Msg(config.TKeyHintBirthDate))
		return
	}
	v.result.SetText(strings.Join(v.app.tr.AgeLines(age), "\n"))
}

func (v *ageView) content() fyne.CanvasObject {
	form := widget.NewForm(widget.NewFormItem(v.app.tr.Msg(config.TKeyLblBirthDate), v.birth))
	return container.NewVBox(form, widget.NewSeparator(), v.result)
}
