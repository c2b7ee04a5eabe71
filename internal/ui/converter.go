package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/tartampluch/go-folio/internal/config"
	"github.com/tartampluch/go-folio/internal/prefs"
	"github.com/tartampluch/go-folio/internal/units"
)

// converterView binds the two-field converter form to its widgets.
type converterView struct {
	app  *FolioApp
	pair units.Pair

	category  *widget.Select
	fromUnit  *widget.Select
	toUnit    *widget.Select
	fromEntry *DecimalEntry
	toEntry   *DecimalEntry

	// Localised labels to unit and category keys.
	unitKeys     map[string]string
	categoryKeys map[string]units.Category

	// syncing suppresses the entry callbacks while the form writes into the widgets.
	syncing bool
}

func newConverterView(app *FolioApp) *converterView {
	v := &converterView{
		app:          app,
		pair:         units.NewPair(prefs.Get(app.Prefs, prefs.ConverterCategory), config.ResultDecimals),
		categoryKeys: make(map[string]units.Category),
	}

	labels := make([]string, 0, len(units.Categories))
	for _, c := range units.Categories {
		label := app.tr.Category(c)
		v.categoryKeys[label] = c
		labels = append(labels, label)
	}
	v.category = widget.NewSelect(labels, nil)
	v.fromUnit = widget.NewSelect(nil, func(label string) {
		if key, ok := v.unitKeys[label]; ok && !v.syncing {
			v.pair.SetFromUnit(key)
			v.sync()
		}
	})
	v.toUnit = widget.NewSelect(nil, func(label string) {
		if key, ok := v.unitKeys[label]; ok && !v.syncing {
			v.pair.SetToUnit(key)
			v.sync()
		}
	})

	v.fromEntry = NewDecimalEntry()
	v.fromEntry.OnChanged = func(s string) {
		if !v.syncing {
			v.pair.SetFromText(s)
			v.sync()
		}
	}
	v.toEntry = NewDecimalEntry()
	v.toEntry.OnChanged = func(s string) {
		if !v.syncing {
			v.pair.SetToText(s)
			v.sync()
		}
	}

	v.loadUnits()
	v.category.SetSelected(app.tr.Category(v.pair.Category))
	v.category.OnChanged = func(label string) {
		c, ok := v.categoryKeys[label]
		if !ok || c == v.pair.Category {
			return
		}
		v.pair.SetCategory(c)
		prefs.Set(v.app.Prefs, prefs.ConverterCategory, c)
		v.loadUnits()
	}
	return v
}

// loadUnits fills the unit selects with the current category's table.
func (v *converterView) loadUnits() {
	table, _ := units.Lookup(v.pair.Category)
	v.unitKeys = make(map[string]string, len(table.Units))
	labels := make([]string, 0, len(table.Units))
	for _, key := range table.Keys() {
		label := v.app.tr.Unit(key)
		v.unitKeys[label] = key
		labels = append(labels, label)
	}

	v.syncing = true
	v.fromUnit.Options = labels
	v.toUnit.Options = labels
	v.syncing = false
	v.sync()
}

// sync copies the form state into the widgets.
func (v *converterView) sync() {
	v.syncing = true
	defer func() { v.syncing = false }()

	v.fromUnit.SetSelected(v.app.tr.Unit(v.pair.From))
	v.toUnit.SetSelected(v.app.tr.Unit(v.pair.To))
	setText(&v.fromEntry.Entry, v.pair.FromText)
	setText(&v.toEntry.Entry, v.pair.ToText)
}

// setText leaves the entry alone when nothing changed so that the cursor stays put.
func setText(e *widget.Entry, text string) {
	if e.Text != text {
		e.SetText(text)
	}
}

func (v *converterView) swap() {
	v.pair.Swap()
	v.sync()
}

func (v *converterView) content() fyne.CanvasObject {
	tr := v.app.tr
	swap := widget.NewButtonWithIcon(tr.Msg(config.TKeyBtnSwap), theme.ViewRefreshIcon(), v.swap)

	from := widget.NewCard(tr.Msg(config.TKeyLblFrom), "", container.NewVBox(v.fromUnit, v.fromEntry))
	to := widget.NewCard(tr.Msg(config.TKeyLblTo), "", container.NewVBox(v.toUnit, v.toEntry))

	form := widget.NewForm(widget.NewFormItem(tr.Msg(config.TKeyLblCategory), v.category))
	return container.NewVBox(
		form,
		container.NewGridWithColumns(config.LayoutColumnsDouble, from, to),
		swap,
	)
}
