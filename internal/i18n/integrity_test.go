package i18n

import (
	"encoding/json"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tartampluch/go-folio/internal/config"
	"github.com/tartampluch/go-folio/internal/engine"
	"github.com/tartampluch/go-folio/internal/units"
)

// requiredKeys lists every message the code looks up.
func requiredKeys() []string {
	keys := []string{
		config.TKeyWinTitle,
		config.TKeyTabConverter,
		config.TKeyTabAge,
		config.TKeyTabDifference,
		config.TKeyTabCalculator,
		config.TKeyTabWeather,
		config.TKeyLblCategory,
		config.TKeyLblFrom,
		config.TKeyLblTo,
		config.TKeyBtnSwap,
		config.TKeyBtnClear,
		config.TKeyBtnToday,
		config.TKeyBtnLookup,
		config.TKeyBtnEvaluate,
		config.TKeyLblBirthDate,
		config.TKeyLblStartDate,
		config.TKeyLblEndDate,
		config.TKeyLblCity,
		config.TKeyLblExpression,
		config.TKeyLblScientific,
		config.TKeyLblBreakdown,
		config.TKeyLblSections,
		config.TKeyLblLanguage,
		config.TKeyLblMemory,
		config.TKeyHintBirthDate,
		config.TKeyHintDates,
		config.TKeyAgeSummary,
		config.TKeyAgeTotals,
		config.TKeyAgeFacts,
		config.TKeyAgeNext,
		config.TKeyDiffTotals,
		config.TKeyDiffWorking,
		config.TKeyDiffYears,
		config.TKeyDiffMonths,
		config.TKeyDiffDays,
		config.TKeyWeatherCurrent,
		config.TKeyWeatherWind,
		config.TKeyWeatherForecast,
		config.TKeyErrCityNotFound,
		config.TKeyErrWeather,
		config.TKeyErrExpression,
		config.TKeyMenuSettings,
		config.TKeyWinSettings,
		config.TKeyBtnSave,
		config.TKeyBtnCancel,
		config.TKeyLblFooter,
		config.TKeyHintNoSections,
		config.TKeyHintCity,
		config.TKeyHintExpression,
	}
	for w := time.Sunday; w <= time.Saturday; w++ {
		keys = append(keys, config.TKeyPrefixWeekday+strings.ToLower(w.String()))
	}
	for m := 1; m <= 12; m++ {
		keys = append(keys, fmt.Sprintf("%s%d", config.TKeyPrefixMonth, m))
	}
	for z := engine.Aries; z <= engine.Pisces; z++ {
		keys = append(keys, config.TKeyPrefixZodiac+z.Key())
	}
	for _, tbl := range units.Tables() {
		keys = append(keys, config.TKeyPrefixCat+string(tbl.Category))
		for _, k := range tbl.Keys() {
			keys = append(keys, config.TKeyPrefixUnit+k)
		}
	}
	return keys
}

// TestI18nIntegrity ensures every looked-up key exists in every locale file.
func TestI18nIntegrity(t *testing.T) {
	entries, err := localeFS.ReadDir("locales")
	require.NoError(t, err)
	require.NotEmpty(t, entries)

	keys := requiredKeys()
	defined := make(map[string]bool, len(keys))
	for _, k := range keys {
		defined[k] = true
	}

	for _, entry := range entries {
		content, err := localeFS.ReadFile("locales/" + entry.Name())
		require.NoError(t, err)

		var jsonMap map[string]any
		require.NoError(t, json.Unmarshal(content, &jsonMap), "%s must be valid JSON", entry.Name())

		for _, k := range keys {
			_, ok := jsonMap[k]
			assert.Truef(t, ok, "key %q is missing in %s", k, entry.Name())
		}

		for k := range jsonMap {
			if !defined[k] && !strings.HasPrefix(k, config.TKeyPrefixWMO) {
				t.Logf("Warning: key %q in %s is not referenced by the code", k, entry.Name())
			}
		}
	}
}
