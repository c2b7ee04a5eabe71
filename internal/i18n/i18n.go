// Package i18n loads the embedded translations and renders localised labels,
// numbers and calculator results.
package i18n

import (
	"embed"
	"encoding/json"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	goi18n "github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/tartampluch/go-folio/internal/config"
	"github.com/tartampluch/go-folio/internal/engine"
	"github.com/tartampluch/go-folio/internal/units"
	"github.com/tartampluch/go-folio/internal/weather"
)

//go:embed locales/*.json
var localeFS embed.FS

// Catalog holds every embedded locale. It is read-only after Load and safe to share.
type Catalog struct {
	bundle    *goi18n.Bundle
	languages []string
	matcher   language.Matcher
}

// Load parses the embedded active.<lang>.json files.
// Malformed files are logged and skipped so that the application still starts.
func Load() *Catalog {
	bundle := goi18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("json", json.Unmarshal)

	c := &Catalog{bundle: bundle}

	entries, err := localeFS.ReadDir("locales")
	if err != nil {
		slog.Error(config.ErrLocalesAccess,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyError, err,
		)
	}

	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasPrefix(name, "active.") || !strings.HasSuffix(name, ".json") {
			slog.Debug(config.MsgLocaleSkip,
				config.LogKeyComponent, config.CompI18n,
				config.LogKeyFile, name,
			)
			continue
		}

		langCode := strings.TrimSuffix(strings.TrimPrefix(name, "active."), ".json")
		if langCode == "" {
			slog.Warn(config.MsgLocaleBadName,
				config.LogKeyComponent, config.CompI18n,
				config.LogKeyFile, name,
			)
			continue
		}

		if _, err := bundle.LoadMessageFileFS(localeFS, "locales/"+name); err != nil {
			slog.Error(config.ErrLocaleLoad,
				config.LogKeyComponent, config.CompI18n,
				config.LogKeyFile, name,
				config.LogKeyError, err,
			)
			continue
		}

		c.languages = append(c.languages, langCode)
		slog.Debug(config.MsgLocaleLoaded,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyLang, langCode,
		)
	}

	// The default language goes first so the matcher falls back to it.
	slices.SortFunc(c.languages, func(a, b string) int {
		switch {
		case a == config.DefaultLanguage:
			return -1
		case b == config.DefaultLanguage:
			return 1
		}
		return strings.Compare(a, b)
	})

	tags := make([]language.Tag, 0, len(c.languages))
	for _, l := range c.languages {
		tags = append(tags, language.Make(l))
	}
	if len(tags) == 0 {
		tags = append(tags, language.English)
	}
	c.matcher = language.NewMatcher(tags)
	return c
}

// Languages lists the loaded language codes, default language first.
func (c *Catalog) Languages() []string {
	return slices.Clone(c.languages)
}

// Match picks the best loaded language for an Accept-Language header value.
func (c *Catalog) Match(acceptLanguage string) string {
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return config.DefaultLanguage
	}
	_, idx, conf := c.matcher.Match(tags...)
	if conf == language.No || idx >= len(c.languages) {
		return config.DefaultLanguage
	}
	return c.languages[idx]
}

// Translator renders messages for one language.
type Translator struct {
	lang      string
	localizer *goi18n.Localizer
	printer   *message.Printer
}

// For returns a translator for lang. Unknown languages fall back to the default one.
func (c *Catalog) For(lang string) *Translator {
	if !slices.Contains(c.languages, lang) {
		lang = config.DefaultLanguage
	}
	return &Translator{
		lang:      lang,
		localizer: goi18n.NewLocalizer(c.bundle, lang, config.DefaultLanguage),
		printer:   message.NewPrinter(language.Make(lang)),
	}
}

// Language is the code this translator renders.
func (t *Translator) Language() string { return t.lang }

// Msg translates key. A missing key renders as the key itself.
func (t *Translator) Msg(key string) string {
	return t.localize(&goi18n.LocalizeConfig{MessageID: key})
}

// Format translates key with template data.
func (t *Translator) Format(key string, data map[string]any) string {
	return t.localize(&goi18n.LocalizeConfig{MessageID: key, TemplateData: data})
}

// Plural translates a key with one/other forms. count is exposed to the template as
// .Count and data may add more fields. The form follows the magnitude of count.
func (t *Translator) Plural(key string, count int, data map[string]any) string {
	td := map[string]any{"Count": count}
	for k, v := range data {
		td[k] = v
	}
	magnitude := count
	if magnitude < 0 {
		magnitude = -magnitude
	}
	return t.localize(&goi18n.LocalizeConfig{MessageID: key, PluralCount: magnitude, TemplateData: td})
}

func (t *Translator) localize(lc *goi18n.LocalizeConfig) string {
	if t == nil || t.localizer == nil {
		return lc.MessageID
	}
	msg, err := t.localizer.Localize(lc)
	if err != nil {
		slog.Debug(config.MsgTransMissing,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyKey, lc.MessageID,
			config.LogKeyError, err,
		)
		return lc.MessageID
	}
	return msg
}

// Number formats v with at most decimals fraction digits and the locale's separators.
func (t *Translator) Number(v float64, decimals int) string {
	return t.printer.Sprint(number.Decimal(v, number.MaxFractionDigits(decimals)))
}

// Integer formats n with the locale's grouping.
func (t *Translator) Integer(n int64) string {
	return t.printer.Sprint(number.Decimal(n))
}

// Weekday is the localised name of w.
func (t *Translator) Weekday(w time.Weekday) string {
	return t.Msg(config.TKeyPrefixWeekday + strings.ToLower(w.String()))
}

// Zodiac is the localised name of z.
func (t *Translator) Zodiac(z engine.Zodiac) string {
	return t.Msg(config.TKeyPrefixZodiac + z.Key())
}

// Category is the localised name of c.
func (t *Translator) Category(c units.Category) string {
	return t.Msg(config.TKeyPrefixCat + string(c))
}

// Unit is the localised name of a unit key.
func (t *Translator) Unit(key string) string {
	return t.Msg(config.TKeyPrefixUnit + key)
}

// Conditions describes a WMO weather code.
func (t *Translator) Conditions(code int) string {
	return t.Msg(fmt.Sprintf("%s%d", config.TKeyPrefixWMO, code))
}

// LongDate renders d as a full date with weekday, e.g. "Monday, January 1, 2024"
// or "lundi 1 janvier 2024".
func (t *Translator) LongDate(d time.Time) string {
	if t.lang == config.DefaultLanguage {
		return d.Format(config.DateFormatLong)
	}
	month := t.Msg(fmt.Sprintf("%s%d", config.TKeyPrefixMonth, int(d.Month())))
	return fmt.Sprintf("%s %d %s %d", t.Weekday(d.Weekday()), d.Day(), month, d.Year())
}

// Parts is an engine.PartFormatter producing "3 years", "-1 month" and so on.
func (t *Translator) Parts(p engine.Part, n int) string {
	key := [...]string{config.TKeyDiffYears, config.TKeyDiffMonths, config.TKeyDiffDays}[p]
	return t.Plural(key, n, nil)
}

// Describe renders the years, months and days of a date difference.
func (t *Translator) Describe(d engine.Difference) string {
	return engine.Describe(d, t.Parts)
}

// AgeLines renders the breakdown, totals, birth facts and next birthday of a.
func (t *Translator) AgeLines(a engine.Age) []string {
	return []string{
		t.Format(config.TKeyAgeSummary, map[string]any{
			"Years": a.Years, "Months": a.Months, "Days": a.Days,
		}),
		t.Format(config.TKeyAgeTotals, map[string]any{
			"Days":    t.Integer(a.TotalDays),
			"Hours":   t.Integer(a.TotalHours),
			"Minutes": t.Integer(a.TotalMinutes),
		}),
		t.Format(config.TKeyAgeFacts, map[string]any{
			"Weekday": t.Weekday(a.BirthDay),
			"Zodiac":  t.Zodiac(a.Zodiac),
		}),
		t.Plural(config.TKeyAgeNext, a.DaysUntilNextBirthday, map[string]any{"Age": a.AgeNext}),
	}
}

// DifferenceLines renders the description, totals and working days of d.
func (t *Translator) DifferenceLines(d engine.Difference) []string {
	return []string{
		t.Describe(d),
		t.Format(config.TKeyDiffTotals, map[string]any{
			"Days":      t.Integer(d.TotalDays),
			"Weeks":     t.Integer(d.TotalWeeks),
			"Remainder": t.Integer(d.RemainingDays),
		}),
		t.Format(config.TKeyDiffWorking, map[string]any{
			"Working":  t.Integer(d.WorkingDays),
			"Weekends": t.Integer(d.Weekends),
		}),
	}
}

// WeatherLines renders the current conditions, the wind and one line per forecast day.
func (t *Translator) WeatherLines(r weather.Report) []string {
	lines := []string{
		t.Format(config.TKeyWeatherCurrent, map[string]any{
			"Place":      r.Place.Label(),
			"Celsius":    t.Number(r.Current.Celsius, 1),
			"Fahrenheit": t.Number(r.Current.Fahrenheit, 1),
			"Conditions": t.Conditions(r.Current.Code),
		}),
		t.Format(config.TKeyWeatherWind, map[string]any{
			"Kph": t.Number(r.Current.WindKph, 1),
			"Mph": t.Number(r.Current.WindMph, 1),
		}),
	}
	for _, d := range r.Forecast {
		lines = append(lines, t.Format(config.TKeyWeatherForecast, map[string]any{
			"Date": d.Date,
			"Min":  t.Number(d.MinCelsius, 1),
			"Max":  t.Number(d.MaxCelsius, 1),
		}))
	}
	return lines
}
