package calendar

import (
	"bytes"
	"testing"
	"time"

	"github.com/emersion/go-ical"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tartampluch/go-folio/internal/config"
	"github.com/tartampluch/go-folio/internal/engine"
)

var stamp = time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func decode(t *testing.T, data []byte) []ical.Event {
	t.Helper()
	cal, err := ical.NewDecoder(bytes.NewReader(data)).Decode()
	require.NoError(t, err)
	return cal.Events()
}

func propValue(e ical.Event, name string) string {
	if p := e.Props.Get(name); p != nil {
		return p.Value
	}
	return ""
}

func TestBirthdayCalendar_ThreeYears(t *testing.T) {
	data, err := BirthdayCalendar("Ada", date(1990, 5, 15), stamp, Options{Stamp: stamp})
	require.NoError(t, err)

	events := decode(t, data)
	require.Len(t, events, 3)

	wantSummaries := []string{"Birthday: Ada (34)", "Birthday: Ada (35)", "Birthday: Ada (36)"}
	wantStarts := []string{"20240515", "20250515", "20260515"}
	for i, e := range events {
		assert.Equal(t, wantSummaries[i], propValue(e, config.PropSummary))
		assert.Equal(t, wantStarts[i], propValue(e, config.PropDTStart))
		assert.NotEmpty(t, propValue(e, config.PropUID))
		assert.Empty(t, e.Children, "no alarm without a reminder")
	}
	assert.Contains(t, string(data), config.ICalProdid)
}

func TestBirthdayCalendar_SkipsYearsBeforeBirth(t *testing.T) {
	data, err := BirthdayCalendar("Baby", date(2025, 2, 1), stamp, Options{Stamp: stamp})
	require.NoError(t, err)

	events := decode(t, data)
	require.Len(t, events, 2)
	assert.Equal(t, "Birthday: Baby (birth)", propValue(events[0], config.PropSummary))
	assert.Equal(t, "Birthday: Baby (1)", propValue(events[1], config.PropSummary))
}

func TestBirthdayCalendar_FutureBirthYieldsStub(t *testing.T) {
	data, err := BirthdayCalendar("Later", date(2030, 1, 1), stamp, Options{Stamp: stamp})
	require.NoError(t, err)
	assert.Equal(t, config.StubVCalendar, string(data))
}

func TestBirthdayCalendar_LeapDay(t *testing.T) {
	data, err := BirthdayCalendar("Leap", date(2000, 2, 29), stamp, Options{Stamp: stamp})
	require.NoError(t, err)

	events := decode(t, data)
	require.Len(t, events, 3)
	assert.Equal(t, "20240229", propValue(events[0], config.PropDTStart))
	assert.Equal(t, "20250301", propValue(events[1], config.PropDTStart))
	assert.Equal(t, "20260301", propValue(events[2], config.PropDTStart))
}

func TestBirthdayCalendar_Reminder(t *testing.T) {
	data, err := BirthdayCalendar("Ada", date(1990, 5, 15), stamp, Options{Reminder: "-P1D", Stamp: stamp})
	require.NoError(t, err)

	events := decode(t, data)
	require.NotEmpty(t, events)
	for _, e := range events {
		require.Len(t, e.Children, 1)
		alarm := e.Children[0]
		assert.Equal(t, config.ICalComponent, alarm.Name)
		assert.Equal(t, "-P1D", alarm.Props.Get(config.PropTrigger).Value)
		assert.Equal(t, config.ICalAction, alarm.Props.Get(config.PropAction).Value)
	}
	assert.Contains(t, string(data), "TRIGGER:-P1D")
}

func TestParseReminder(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"", "", false},
		{"  ", "", false},
		{"-P1D", "-P1D", false},
		{" -p2d ", "-P2D", false},
		{"PT15M", "PT15M", false},
		{"-PT1H30M", "-PT1H30M", false},
		{"P1W", "P1W", false},
		{"PXYZ", "", true},
		{"P", "", true},
		{"-P", "", true},
		{"PT", "", true},
		{"P1DT", "", true},
		{"1D", "", true},
		{"tomorrow", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseReminder(tt.in)
			if tt.wantErr {
				assert.ErrorContains(t, err, config.ErrReminderFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCalendars_RejectBadReminder(t *testing.T) {
	_, err := BirthdayCalendar("Ada", date(1990, 5, 15), stamp, Options{Reminder: "PXYZ", Stamp: stamp})
	assert.ErrorContains(t, err, config.ErrReminderFormat)

	d := engine.ComputeDifference(date(2024, 1, 1), date(2024, 1, 8))
	_, err = RangeCalendar("Trip", "", d, Options{Reminder: "-P", Stamp: stamp})
	assert.ErrorContains(t, err, config.ErrReminderFormat)
}

func TestBirthdayCalendar_CustomSummary(t *testing.T) {
	opts := Options{
		Stamp:   stamp,
		Summary: func(name string, age int) string { return "Anniversaire" },
	}
	data, err := BirthdayCalendar("Ada", date(1990, 5, 15), stamp, opts)
	require.NoError(t, err)
	for _, e := range decode(t, data) {
		assert.Equal(t, "Anniversaire", propValue(e, config.PropSummary))
	}
}

func TestBirthdayCalendar_StableUIDs(t *testing.T) {
	a, err := BirthdayCalendar("Ada", date(1990, 5, 15), stamp, Options{Stamp: stamp})
	require.NoError(t, err)
	b, err := BirthdayCalendar("Ada", date(1990, 5, 15), stamp, Options{Stamp: stamp.Add(time.Hour)})
	require.NoError(t, err)

	ea, eb := decode(t, a), decode(t, b)
	require.Len(t, eb, len(ea))
	seen := map[string]bool{}
	for i := range ea {
		uidA := propValue(ea[i], config.PropUID)
		assert.Equal(t, uidA, propValue(eb[i], config.PropUID))
		assert.False(t, seen[uidA], "UIDs must differ between years")
		seen[uidA] = true
	}
}

func TestRangeCalendar(t *testing.T) {
	d := engine.ComputeDifference(date(2024, 1, 1), date(2024, 1, 8))
	data, err := RangeCalendar("Trip", "7 days", d, Options{Stamp: stamp})
	require.NoError(t, err)

	events := decode(t, data)
	require.Len(t, events, 1)
	e := events[0]
	assert.Equal(t, "Trip", propValue(e, config.PropSummary))
	assert.Equal(t, "7 days", propValue(e, config.PropDescription))
	assert.Equal(t, "20240101", propValue(e, config.PropDTStart))
	assert.Equal(t, "20240109", propValue(e, config.PropDTEnd), "DTEND is exclusive")
}

func TestRangeCalendar_Reversed(t *testing.T) {
	forward := engine.ComputeDifference(date(2024, 1, 1), date(2024, 1, 8))
	backward := engine.ComputeDifference(date(2024, 1, 8), date(2024, 1, 1))
	require.True(t, backward.Reversed)

	a, err := RangeCalendar("", "", forward, Options{Stamp: stamp})
	require.NoError(t, err)
	b, err := RangeCalendar("", "", backward, Options{Stamp: stamp})
	require.NoError(t, err)

	ea, eb := decode(t, a), decode(t, b)
	require.Len(t, eb, 1)
	assert.Equal(t, config.ICalRangeName, propValue(eb[0], config.PropSummary))
	assert.Equal(t, "20240101", propValue(eb[0], config.PropDTStart))
	assert.Equal(t, "20240109", propValue(eb[0], config.PropDTEnd))
	assert.Nil(t, eb[0].Props.Get(config.PropDescription))
	assert.Equal(t, propValue(ea[0], config.PropUID), propValue(eb[0], config.PropUID))
}
