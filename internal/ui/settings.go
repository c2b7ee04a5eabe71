package ui

import (
	"log/slog"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/tartampluch/go-folio/internal/config"
	"github.com/tartampluch/go-folio/internal/prefs"
)

// settingsWidgets holds references to the form controls read back on save.
type settingsWidgets struct {
	langSelect *widget.Select
	sections   map[string]*widget.Check
}

// ShowSettingsWindow displays the language and section visibility settings.
func (app *FolioApp) ShowSettingsWindow() {
	if app.settingsWindow != nil {
		slog.Debug("Settings window already open, requesting focus", config.LogKeyComponent, config.CompUI)
		app.settingsWindow.RequestFocus()
		return
	}

	slog.Info("Opening settings window", config.LogKeyComponent, config.CompUI)
	w := app.App.NewWindow(app.tr.Msg(config.TKeyWinSettings))
	app.settingsWindow = w

	sw := app.newSettingsWidgets()

	itemLang := widget.NewFormItem(app.tr.Msg(config.TKeyLblLanguage), sw.langSelect)
	general := widget.NewForm(itemLang)

	checks := make([]fyne.CanvasObject, 0, len(config.Sections))
	for _, section := range config.Sections {
		checks = append(checks, sw.sections[section])
	}
	sectionsCard := widget.NewCard(app.tr.Msg(config.TKeyLblSections), "", container.NewVBox(checks...))

	btnSave := widget.NewButtonWithIcon(app.tr.Msg(config.TKeyBtnSave), theme.DocumentSaveIcon(), func() {
		app.saveSettings(sw)
		w.Close()
	})
	btnSave.Importance = widget.HighImportance
	btnCancel := widget.NewButtonWithIcon(app.tr.Msg(config.TKeyBtnCancel), theme.CancelIcon(), func() { w.Close() })

	footer := widget.NewLabel(app.tr.Format(config.TKeyLblFooter, map[string]any{"Version": config.Version}))
	footer.Alignment = fyne.TextAlignCenter
	footer.TextStyle = fyne.TextStyle{Italic: true}

	w.SetContent(container.NewPadded(container.NewVBox(
		general,
		sectionsCard,
		container.NewGridWithColumns(config.LayoutColumnsDouble, btnCancel, btnSave),
		footer,
	)))
	w.SetFixedSize(true)
	w.SetOnClosed(func() { app.settingsWindow = nil })
	w.Show()
}

func (app *FolioApp) newSettingsWidgets() *settingsWidgets {
	sw := &settingsWidgets{
		langSelect: widget.NewSelect(app.Catalog.Languages(), nil),
		sections:   make(map[string]*widget.Check, len(config.Sections)),
	}
	sw.langSelect.SetSelected(prefs.Get(app.Prefs, prefs.Language))

	for _, section := range config.Sections {
		check := widget.NewCheck(app.tr.Msg(sectionTitleKey(section)), nil)
		check.Checked = prefs.Get(app.Prefs, prefs.SectionVisible(section))
		sw.sections[section] = check
	}
	return sw
}

// saveSettings persists the form and rebuilds the main window with it.
func (app *FolioApp) saveSettings(sw *settingsWidgets) {
	slog.Info("Saving preferences", config.LogKeyComponent, config.CompUI)

	if sw.langSelect.Selected != "" {
		prefs.Set(app.Prefs, prefs.Language, sw.langSelect.Selected)
	}
	for section, check := range sw.sections {
		prefs.Set(app.Prefs, prefs.SectionVisible(section), check.Checked)
	}
	app.Refresh()
}
