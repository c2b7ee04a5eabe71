package ui

import (
	"context"
	"log/slog"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/tartampluch/go-folio/internal/config"
	"github.com/tartampluch/go-folio/internal/engine"
	"github.com/tartampluch/go-folio/internal/i18n"
	"github.com/tartampluch/go-folio/internal/prefs"
	"github.com/tartampluch/go-folio/internal/visibility"
	"github.com/tartampluch/go-folio/internal/weather"
)

// WeatherLookup resolves a city to its current conditions and forecast.
type WeatherLookup interface {
	Lookup(ctx context.Context, city string) (weather.Report, error)
}

// FolioApp holds the calculators window and the state shared by its tabs.
type FolioApp struct {
	App      fyne.App
	Window   fyne.Window
	Prefs    prefs.Store
	Ctx      context.Context
	Catalog  *i18n.Catalog
	Observer *visibility.Observer
	Weather  WeatherLookup
	Clock    engine.Clock // Injected clock for testability

	tr          *i18n.Translator
	tabs        *container.AppTabs
	tabSections map[*container.TabItem]string

	// revealed records the sections whose heading already played its animation.
	revealed    map[string]bool
	unsubscribe []func()

	settingsWindow fyne.Window
}

// NewFolioApp constructs the application and wires dependencies. A nil lookup
// disables the weather tab's requests.
func NewFolioApp(a fyne.App, ctx context.Context, lookup WeatherLookup) *FolioApp {
	a.SetIcon(theme.GridIcon())

	app := &FolioApp{
		App:      a,
		Prefs:    a.Preferences(),
		Ctx:      ctx,
		Catalog:  i18n.Load(),
		Observer: visibility.New(config.VisibilityThreshold),
		Weather:  lookup,
		Clock:    engine.RealClock{}, // Default to real clock in production
		revealed: make(map[string]bool),
	}
	app.tr = app.Catalog.For(prefs.Get(app.Prefs, prefs.Language))
	return app
}

// Run shows the calculators window and blocks in the UI loop.
func (app *FolioApp) Run() {
	app.ShowMainWindow()
	app.App.Run()
}

// ShowMainWindow creates the main window on first use and shows it.
func (app *FolioApp) ShowMainWindow() {
	if app.Window == nil {
		app.Window = app.App.NewWindow("")
		app.Window.Resize(fyne.NewSize(config.MainWindowWidth, config.MainWindowHeight))
		app.Window.SetMaster()
	}
	app.Refresh()
	app.Window.Show()
}

// Refresh rebuilds the window content from the current preferences.
func (app *FolioApp) Refresh() {
	app.tr = app.Catalog.For(prefs.Get(app.Prefs, prefs.Language))
	if app.Window == nil {
		return
	}
	app.Window.SetTitle(app.tr.Msg(config.TKeyWinTitle))
	app.Window.SetMainMenu(app.buildMenu())
	app.Window.SetContent(app.buildContent())
	app.reportVisibility()
}

func (app *FolioApp) buildMenu() *fyne.MainMenu {
	settings := fyne.NewMenuItem(app.tr.Msg(config.TKeyMenuSettings), app.ShowSettingsWindow)
	settings.Icon = theme.SettingsIcon()
	return fyne.NewMainMenu(fyne.NewMenu(config.AppName, settings))
}

// buildContent lays out one tab per visible section.
func (app *FolioApp) buildContent() fyne.CanvasObject {
	for _, fn := range app.unsubscribe {
		fn()
	}
	app.unsubscribe = nil
	app.tabSections = make(map[*container.TabItem]string)

	var items []*container.TabItem
	for _, section := range config.Sections {
		if !prefs.Get(app.Prefs, prefs.SectionVisible(section)) {
			continue
		}
		item := container.NewTabItemWithIcon(app.tr.Msg(sectionTitleKey(section)), sectionIcon(section), app.buildSection(section))
		app.tabSections[item] = section
		items = append(items, item)
	}

	if len(items) == 0 {
		hint := widget.NewLabel(app.tr.Msg(config.TKeyHintNoSections))
		hint.Alignment = fyne.TextAlignCenter
		hint.Wrapping = fyne.TextWrapWord
		app.tabs = nil
		return container.NewCenter(hint)
	}

	app.tabs = container.NewAppTabs(items...)
	app.tabs.SetTabLocation(container.TabLocationTop)
	app.tabs.SelectIndex(0)
	app.tabs.OnSelected = func(*container.TabItem) { app.reportVisibility() }
	return app.tabs
}

func (app *FolioApp) buildSection(section string) fyne.CanvasObject {
	var body fyne.CanvasObject
	switch section {
	case config.SectionConverter:
		body = newConverterView(app).content()
	case config.SectionAge:
		body = newAgeView(app).content()
	case config.SectionDifference:
		body = newDifferenceView(app).content()
	case config.SectionCalculator:
		body = newCalculatorView(app).content()
	default:
		body = newWeatherView(app).content()
	}
	title := app.newHeading(section, app.tr.Msg(sectionTitleKey(section)))
	return container.NewBorder(container.NewPadded(title), nil, nil, nil, container.NewVScroll(body))
}

// reportVisibility tells the observer which section is on screen.
func (app *FolioApp) reportVisibility() {
	if app.tabs == nil {
		for _, section := range config.Sections {
			app.Observer.Report(section, 0)
		}
		return
	}
	selected := app.tabs.Selected()
	for item, section := range app.tabSections {
		if item != selected {
			app.Observer.Report(section, 0)
		}
	}
	if section, ok := app.tabSections[selected]; ok {
		slog.Debug("Section selected",
			config.LogKeyComponent, config.CompUI,
			config.LogKeyTarget, section)
		app.Observer.Report(section, 1)
	}
}

// SelectSection brings the tab of section to the front. It reports false when the
// section is hidden.
func (app *FolioApp) SelectSection(section string) bool {
	if app.tabs == nil {
		return false
	}
	for item, s := range app.tabSections {
		if s == section {
			app.tabs.Select(item)
			return true
		}
	}
	return false
}

func sectionTitleKey(section string) string {
	switch section {
	case config.SectionConverter:
		return config.TKeyTabConverter
	case config.SectionAge:
		return config.TKeyTabAge
	case config.SectionDifference:
		return config.TKeyTabDifference
	case config.SectionCalculator:
		return config.TKeyTabCalculator
	default:
		return config.TKeyTabWeather
	}
}

func sectionIcon(section string) fyne.Resource {
	switch section {
	case config.SectionConverter:
		return theme.ViewRefreshIcon()
	case config.SectionAge:
		return theme.AccountIcon()
	case config.SectionDifference:
		return theme.HistoryIcon()
	case config.SectionCalculator:
		return theme.GridIcon()
	default:
		return theme.InfoIcon()
	}
}
