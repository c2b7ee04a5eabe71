package ui

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/tartampluch/go-folio/internal/config"
	"github.com/tartampluch/go-folio/internal/weather"
)

type weatherView struct {
	app    *FolioApp
	city   *widget.Entry
	button *widget.Button
	result *widget.Label
}

func newWeatherView(app *FolioApp) *weatherView {
	v := &weatherView{
		app:    app,
		city:   widget.NewEntry(),
		result: widget.NewLabel(app.tr.Msg(config.TKeyHintCity)),
	}
	v.result.Wrapping = fyne.TextWrapWord
	v.button = widget.NewButtonWithIcon(app.tr.Msg(config.TKeyBtnLookup), theme.SearchIcon(), v.submit)
	v.city.OnSubmitted = func(string) { v.submit() }
	return v
}

// submit runs the lookup off the UI goroutine and posts the text back.
func (v *weatherView) submit() {
	city := v.city.Text
	v.button.Disable()
	go func() {
		text := v.lookup(v.app.Ctx, city)
		fyne.Do(func() {
			v.result.SetText(text)
			v.button.Enable()
		})
	}()
}

// lookup returns the text shown for city: the report lines or a user-facing error.
func (v *weatherView) lookup(ctx context.Context, city string) string {
	tr := v.app.tr
	if v.app.Weather == nil {
		return tr.Msg(config.TKeyErrWeather)
	}

	report, err := v.app.Weather.Lookup(ctx, city)
	switch {
	case errors.Is(err, weather.ErrCityRequired):
		return tr.Msg(config.TKeyHintCity)
	case errors.Is(err, weather.ErrCityNotFound):
		return tr.Msg(config.TKeyErrCityNotFound)
	case err != nil:
		slog.Warn(config.ErrWeatherDown,
			config.LogKeyComponent, config.CompUI,
			config.LogKeyCity, city,
			config.LogKeyError, err)
		return tr.Msg(config.TKeyErrWeather)
	}
	return strings.Join(tr.WeatherLines(report), "\n")
}

func (v *weatherView) content() fyne.CanvasObject {
	form := widget.NewForm(widget.NewFormItem(v.app.tr.Msg(config.TKeyLblCity),
		container.NewBorder(nil, nil, nil, v.button, v.city)))
	return container.NewVBox(form, widget.NewSeparator(), v.result)
}
