package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zalando/go-keyring"

	"github.com/tartampluch/go-folio/internal/config"
	"github.com/tartampluch/go-folio/internal/engine"
	"github.com/tartampluch/go-folio/internal/units"
)

var testNow = time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	t.Setenv(config.EnvLanguage, "")

	root := newRootCmd(engine.FixedClock{At: testNow})
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(append([]string{"--" + config.FlagEnvFile, ""}, args...))

	err := root.Execute()
	return out.String(), err
}

func TestConvertCommand(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    string
		wantErr string
	}{
		{"Inferred", []string{"convert", "175", "cm", "in"}, "175 cm = 68.897638 in\n", ""},
		{"Explicit", []string{"convert", "100", "celsius", "fahrenheit", "--category", "temperature"}, "100 celsius = 212 fahrenheit\n", ""},
		{"French", []string{"--lang", "fr", "convert", "1,5", "m", "cm"}, "1,5 m = 150 cm\n", ""},
		{"Mixed", []string{"convert", "1", "cm", "kg"}, "", config.ErrNoCategory},
		{"WrongCategory", []string{"convert", "1", "cm", "in", "--category", "weight"}, "", config.ErrUnknownUnit},
		{"NotANumber", []string{"convert", "abc", "cm", "in"}, "", config.ErrValueNotNumber},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := execute(t, "", tt.args...)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestResolveCategory(t *testing.T) {
	cat, err := resolveCategory("", "kph", "mph")
	require.NoError(t, err)
	assert.Equal(t, units.Speed, cat)

	_, err = resolveCategory("time", "s", "h")
	assert.ErrorContains(t, err, config.ErrUnknownCategory)
}

func TestAgeCommand(t *testing.T) {
	out, err := execute(t, "", "age", "1990-05-15")
	require.NoError(t, err)
	assert.Equal(t, "35 years, 1 months, 0 days\n"+
		"12,815 days, 307,560 hours, 18,453,600 minutes\n"+
		"Born on a Tuesday · Taurus\n"+
		"Next birthday in 334 days: 36\n", out)

	out, err = execute(t, "", "age", "1990-05-15", "--now", "2026-05-14")
	require.NoError(t, err)
	assert.Contains(t, out, "Next birthday tomorrow: 36")

	_, err = execute(t, "", "age", "2030-01-01")
	assert.EqualError(t, err, config.ErrBirthNotReady)
}

func TestAgeCommand_ICS(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ada.ics")

	_, err := execute(t, "", "age", "1990-05-15", "--ics", path, "--name", "Ada", "--reminder", "")
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	ics := string(data)
	assert.Contains(t, ics, "BEGIN:VCALENDAR")
	assert.Contains(t, ics, "SUMMARY:Birthday: Ada (35)")
	assert.NotContains(t, ics, "VALARM")

	out, err := execute(t, "", "age", "1990-05-15", "--ics", path, "--reminder", "soon")
	assert.ErrorContains(t, err, config.ErrReminderFormat)
	assert.Empty(t, out, "nothing is printed before the flags are checked")
}

func TestDiffCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "range.ics")

	out, err := execute(t, "", "diff", "2024-01-01", "2024-03-01", "--ics", path, "--summary", "Trip")
	require.NoError(t, err)
	assert.Equal(t, "2 months\n60 days (8 weeks and 4 days)\n44 working days, 16 weekend days\n", out)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "SUMMARY:Trip")
	assert.Contains(t, string(data), "DTEND;VALUE=DATE:20240302")
	assert.Contains(t, string(data), "TRIGGER:-P1D")

	_, err = execute(t, "", "diff", "2024-01-01", "2024-03-01", "--ics", path, "--reminder", "PXYZ")
	assert.ErrorContains(t, err, config.ErrReminderFormat)

	_, err = execute(t, "", "diff", "2024-01-01", "someday")
	assert.EqualError(t, err, config.ErrRangeNotReady)
}

func TestCalcCommand(t *testing.T) {
	out, err := execute(t, "", "calc", "2", "+", "3", "+", "4", "=")
	require.NoError(t, err)
	assert.Equal(t, "9\n", out)

	out, err = execute(t, "", "calc", "5 / 0 =")
	require.NoError(t, err)
	assert.Equal(t, config.ErrorDisplay+"\n", out)

	_, err = execute(t, "", "calc", "2", "plus")
	assert.ErrorContains(t, err, config.ErrUnknownKey)
}

func TestEvalCommand(t *testing.T) {
	out, err := execute(t, "", "eval", "2 × (3 + 4)")
	require.NoError(t, err)
	assert.Equal(t, "14\n", out)

	out, err = execute(t, "", "eval", "--rad", "cos(pi)")
	require.NoError(t, err)
	assert.Equal(t, "-1\n", out)

	_, err = execute(t, "", "eval", "2", "+")
	assert.ErrorContains(t, err, config.ErrExprSyntax)
}

func TestRelayTokenCommand(t *testing.T) {
	keyring.MockInit()

	out, err := execute(t, "", "relay-token", "set", "from-args")
	require.NoError(t, err)
	assert.Equal(t, config.MsgTokenStored+"\n", out)
	got, err := keyring.Get(config.KeyringService, config.KeyringRelayUser)
	require.NoError(t, err)
	assert.Equal(t, "from-args", got)

	_, err = execute(t, "  from-stdin \n", "relay-token", "set")
	require.NoError(t, err)
	got, _ = keyring.Get(config.KeyringService, config.KeyringRelayUser)
	assert.Equal(t, "from-stdin", got)

	_, err = execute(t, "", "relay-token", "set")
	assert.EqualError(t, err, config.ErrTokenEmpty)
}
