package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/theme"

	"github.com/tartampluch/go-folio/internal/config"
	"github.com/tartampluch/go-folio/internal/visibility"
)

// newHeading returns the title of a section. Until the section is first shown the
// title is drawn smaller; the first visibility report grows it to full size once.
func (app *FolioApp) newHeading(section, title string) *canvas.Text {
	text := canvas.NewText(title, theme.Color(theme.ColorNameForeground))
	text.TextStyle = fyne.TextStyle{Bold: true}
	text.TextSize = config.HeadingTextSize
	if app.revealed[section] {
		return text
	}

	from := float32(config.HeadingTextSize * config.HeadingRevealFrom)
	text.TextSize = from
	unsubscribe := app.Observer.Subscribe(section, func() {
		app.revealed[section] = true
		revealAnimation(text, from, config.HeadingTextSize).Start()
	}, visibility.Once())
	app.unsubscribe = append(app.unsubscribe, unsubscribe)
	return text
}

func revealAnimation(text *canvas.Text, from, to float32) *fyne.Animation {
	anim := fyne.NewAnimation(config.HeadingRevealTime, func(p float32) {
		text.TextSize = from + (to-from)*p
		text.Refresh()
	})
	anim.Curve = fyne.AnimationEaseOut
	return anim
}
