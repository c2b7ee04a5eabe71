package ui

import (
	"context"
	"errors"
	"testing"
	"time"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/tartampluch/go-folio/internal/calculator"
	"github.com/tartampluch/go-folio/internal/config"
	"github.com/tartampluch/go-folio/internal/engine"
	"github.com/tartampluch/go-folio/internal/prefs"
	"github.com/tartampluch/go-folio/internal/units"
	"github.com/tartampluch/go-folio/internal/weather"
)

// -----------------------------------------------------------------------------
// Mocks
// -----------------------------------------------------------------------------

type MockWeather struct {
	mock.Mock
}

func (m *MockWeather) Lookup(ctx context.Context, city string) (weather.Report, error) {
	args := m.Called(ctx, city)
	return args.Get(0).(weather.Report), args.Error(1)
}

// -----------------------------------------------------------------------------
// Test Setup Helper
// -----------------------------------------------------------------------------

var fixedNow = time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)

// setupTestApp initializes a headless Fyne app with the main window built.
func setupTestApp(t *testing.T, lookup WeatherLookup) *FolioApp {
	t.Helper()
	a := test.NewTempApp(t)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	app := NewFolioApp(a, ctx, lookup)
	app.Clock = engine.FixedClock{At: fixedNow}
	app.ShowMainWindow()
	return app
}

// -----------------------------------------------------------------------------
// Window & Sections
// -----------------------------------------------------------------------------

func TestMainWindow_Tabs(t *testing.T) {
	app := setupTestApp(t, nil)

	require.NotNil(t, app.tabs)
	require.Len(t, app.tabs.Items, len(config.Sections))
	assert.Equal(t, "Converter", app.tabs.Items[0].Text)
	assert.Equal(t, "Go Folio calculators", app.Window.Title())

	// The heading of the selected tab is revealed once; the others wait.
	assert.True(t, app.revealed[config.SectionConverter])
	assert.False(t, app.revealed[config.SectionAge])
	assert.True(t, app.Observer.Visible(config.SectionConverter))

	require.True(t, app.SelectSection(config.SectionAge))
	assert.True(t, app.revealed[config.SectionAge])
	assert.True(t, app.Observer.Visible(config.SectionAge))
	assert.False(t, app.Observer.Visible(config.SectionConverter))
}

func TestMainWindow_SectionToggles(t *testing.T) {
	app := setupTestApp(t, nil)

	prefs.Set(app.Prefs, prefs.SectionVisible(config.SectionWeather), false)
	app.Refresh()
	require.NotNil(t, app.tabs)
	assert.Len(t, app.tabs.Items, len(config.Sections)-1)
	assert.False(t, app.SelectSection(config.SectionWeather))

	for _, s := range config.Sections {
		prefs.Set(app.Prefs, prefs.SectionVisible(s), false)
	}
	app.Refresh()
	assert.Nil(t, app.tabs)
	assert.False(t, app.SelectSection(config.SectionConverter))
	assert.False(t, app.Observer.Visible(config.SectionConverter))
}

func TestMainWindow_RevealSurvivesRefresh(t *testing.T) {
	app := setupTestApp(t, nil)
	app.Refresh()

	title := app.newHeading(config.SectionConverter, "Converter")
	assert.Equal(t, float32(config.HeadingTextSize), title.TextSize)

	pending := app.newHeading(config.SectionWeather, "Weather")
	assert.Less(t, pending.TextSize, float32(config.HeadingTextSize))
}

// -----------------------------------------------------------------------------
// Converter
// -----------------------------------------------------------------------------

func TestConverterView(t *testing.T) {
	app := setupTestApp(t, nil)
	v := newConverterView(app)

	assert.Equal(t, units.Length, v.pair.Category)
	assert.Len(t, v.fromUnit.Options, 8)

	v.fromUnit.SetSelected(app.tr.Unit("cm"))
	v.toUnit.SetSelected(app.tr.Unit("in"))
	v.fromEntry.SetText("175")
	assert.Equal(t, "68.897638", v.toEntry.Text)

	// Editing the other side recomputes the first.
	v.toEntry.SetText("1")
	assert.Equal(t, "2.54", v.fromEntry.Text)

	v.swap()
	assert.Equal(t, "in", v.pair.From)
	assert.Equal(t, app.tr.Unit("in"), v.fromUnit.Selected)
	assert.Equal(t, "1", v.fromEntry.Text)
	assert.Equal(t, "2.54", v.toEntry.Text)

	v.fromEntry.SetText("abc")
	assert.Empty(t, v.toEntry.Text)
}

func TestConverterView_CategoryPersists(t *testing.T) {
	app := setupTestApp(t, nil)
	v := newConverterView(app)
	v.fromEntry.SetText("12")

	v.category.SetSelected(app.tr.Category(units.Temperature))
	assert.Equal(t, units.Temperature, v.pair.Category)
	assert.Equal(t, units.Temperature, prefs.Get(app.Prefs, prefs.ConverterCategory))
	assert.Empty(t, v.fromEntry.Text, "switching category clears both fields")

	v.fromEntry.SetText("100")
	v.toUnit.SetSelected(app.tr.Unit("fahrenheit"))
	v.fromUnit.SetSelected(app.tr.Unit("celsius"))
	assert.Equal(t, "212", v.toEntry.Text)

	again := newConverterView(app)
	assert.Equal(t, units.Temperature, again.pair.Category)
	assert.Equal(t, app.tr.Category(units.Temperature), again.category.Selected)
}

// -----------------------------------------------------------------------------
// Age & Difference
// -----------------------------------------------------------------------------

func TestAgeView(t *testing.T) {
	app := setupTestApp(t, nil)
	v := newAgeView(app)
	hint := app.tr.Msg(config.TKeyHintBirthDate)

	assert.Equal(t, hint, v.result.Text)

	v.birth.SetText("1990-05-15")
	assert.Contains(t, v.result.Text, "35 years, 1 months, 0 days")
	assert.Contains(t, v.result.Text, "Born on a Tuesday · Taurus")

	v.birth.SetText("2030-01-01")
	assert.Equal(t, hint, v.result.Text)

	v.birth.SetText("1990-05-")
	assert.Equal(t, hint, v.result.Text)
}

func TestDifferenceView(t *testing.T) {
	app := setupTestApp(t, nil)
	v := newDifferenceView(app)
	hint := app.tr.Msg(config.TKeyHintDates)

	assert.Equal(t, hint, v.result.Text)

	v.start.SetText("2024-01-01")
	assert.Equal(t, hint, v.result.Text)
	v.end.SetText("2024-03-01")
	assert.Contains(t, v.result.Text, "Monday, January 1, 2024 → Friday, March 1, 2024")
	assert.Contains(t, v.result.Text, "44 working days, 16 weekend days")

	v.apply(v.form.Swap)
	assert.Equal(t, "2024-03-01", v.start.Text)
	assert.Equal(t, "2024-01-01", v.end.Text)

	v.apply(v.form.UseTodayForEnd)
	assert.Equal(t, "2025-06-15", v.end.Text)
	assert.Equal(t, "2025-06-15", v.form.End)

	v.apply(v.form.Clear)
	assert.Empty(t, v.start.Text)
	assert.Equal(t, hint, v.result.Text)
}

// -----------------------------------------------------------------------------
// Calculator
// -----------------------------------------------------------------------------

func TestCalculatorView_Keypad(t *testing.T) {
	app := setupTestApp(t, nil)
	v := newCalculatorView(app)
	assert.Equal(t, "0", v.display.Text)

	for _, k := range []calculator.Key{calculator.Key2, calculator.KeyAdd, calculator.Key3, calculator.KeyEquals} {
		v.press(k)
	}
	assert.Equal(t, "5", v.display.Text)

	v.press(calculator.KeyMemoryStore)
	assert.Equal(t, "M = 5", v.memory.Text)
	v.press(calculator.KeyMemoryClear)
	assert.Empty(t, v.memory.Text)

	for _, k := range []calculator.Key{calculator.Key5, calculator.KeyDivide, calculator.Key0, calculator.KeyEquals} {
		v.press(k)
	}
	assert.Equal(t, config.ErrorDisplay, v.display.Text)
}

func TestCalculatorView_AngleModePersists(t *testing.T) {
	app := setupTestApp(t, nil)
	v := newCalculatorView(app)
	assert.Equal(t, string(calculator.Degrees), v.angle.Text)

	v.press(calculator.KeyAngle)
	assert.Equal(t, string(calculator.Radians), v.angle.Text)
	assert.Equal(t, calculator.Radians, prefs.Get(app.Prefs, prefs.AngleMode))

	again := newCalculatorView(app)
	assert.Equal(t, calculator.Radians, again.state.AngleMode)

	// The expression field follows the keypad's angle mode.
	again.input.SetText("cos(pi)")
	again.evaluate()
	assert.Equal(t, "-1", again.result.Text)
}

func TestCalculatorView_Expression(t *testing.T) {
	app := setupTestApp(t, nil)
	v := newCalculatorView(app)
	assert.Equal(t, "2 × (3 + 4)^2 ÷ sin(30)", v.input.PlaceHolder)

	v.input.SetText(v.input.PlaceHolder)
	v.evaluate()
	assert.Equal(t, "196", v.result.Text)

	v.input.SetText("2 +")
	v.evaluate()
	assert.Equal(t, "The expression could not be evaluated.", v.result.Text)
}

func TestCalculatorView_ScientificToggle(t *testing.T) {
	app := setupTestApp(t, nil)
	v := newCalculatorView(app)
	assert.False(t, v.sciPad.Visible())

	v.scientific.SetChecked(true)
	assert.True(t, v.sciPad.Visible())
	assert.True(t, prefs.Get(app.Prefs, prefs.Scientific))

	assert.True(t, newCalculatorView(app).sciPad.Visible())
}

// -----------------------------------------------------------------------------
// Weather
// -----------------------------------------------------------------------------

func TestWeatherView_Lookup(t *testing.T) {
	report := weather.Report{
		Place:   weather.Place{Name: "Paris", Country: "France"},
		Current: weather.Current{Celsius: 20, Fahrenheit: 68, WindKph: 10, WindMph: 6.2, Code: 3},
	}
	m := new(MockWeather)
	m.On("Lookup", mock.Anything, "Paris").Return(report, nil)
	m.On("Lookup", mock.Anything, "Atlantis").Return(weather.Report{}, weather.ErrCityNotFound)
	m.On("Lookup", mock.Anything, "").Return(weather.Report{}, weather.ErrCityRequired)
	m.On("Lookup", mock.Anything, "Oslo").Return(weather.Report{}, errors.New("boom"))

	app := setupTestApp(t, m)
	v := newWeatherView(app)
	ctx := context.Background()

	assert.Contains(t, v.lookup(ctx, "Paris"), "Paris, France: 20 °C / 68 °F, Overcast")
	assert.Equal(t, app.tr.Msg(config.TKeyErrCityNotFound), v.lookup(ctx, "Atlantis"))
	assert.Equal(t, app.tr.Msg(config.TKeyHintCity), v.lookup(ctx, ""))
	assert.Equal(t, app.tr.Msg(config.TKeyErrWeather), v.lookup(ctx, "Oslo"))
	m.AssertExpectations(t)
}

func TestWeatherView_NoService(t *testing.T) {
	app := setupTestApp(t, nil)
	v := newWeatherView(app)
	assert.Equal(t, app.tr.Msg(config.TKeyErrWeather), v.lookup(context.Background(), "Paris"))
}

// -----------------------------------------------------------------------------
// Settings
// -----------------------------------------------------------------------------

func TestSettings_Save(t *testing.T) {
	app := setupTestApp(t, nil)

	app.ShowSettingsWindow()
	first := app.settingsWindow
	require.NotNil(t, first)
	app.ShowSettingsWindow()
	assert.Same(t, first, app.settingsWindow, "settings window is a singleton")

	sw := app.newSettingsWidgets()
	assert.Equal(t, config.DefaultLanguage, sw.langSelect.Selected)
	assert.True(t, sw.sections[config.SectionWeather].Checked)

	sw.langSelect.SetSelected("fr")
	sw.sections[config.SectionWeather].SetChecked(false)
	app.saveSettings(sw)

	assert.Equal(t, "fr", prefs.Get(app.Prefs, prefs.Language))
	assert.False(t, prefs.Get(app.Prefs, prefs.SectionVisible(config.SectionWeather)))
	assert.Equal(t, "Calculatrices Go Folio", app.Window.Title())
	require.NotNil(t, app.tabs)
	assert.Len(t, app.tabs.Items, len(config.Sections)-1)
	assert.Equal(t, "Convertisseur", app.tabs.Items[0].Text)

	first.Close()
	assert.Nil(t, app.settingsWindow)
}
