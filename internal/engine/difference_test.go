package engine

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeDifference_OneWeek(t *testing.T) {
	d := ComputeDifference(date(2024, 1, 1), date(2024, 1, 8))

	assert.False(t, d.Reversed)
	assert.Equal(t, 0, d.Years)
	assert.Equal(t, 0, d.Months)
	assert.Equal(t, 7, d.Days)
	assert.Equal(t, int64(7), d.TotalDays)
	assert.Equal(t, int64(1), d.TotalWeeks)
	assert.Equal(t, int64(0), d.RemainingDays)
	assert.Equal(t, int64(168), d.TotalHours)
	assert.Equal(t, int64(10080), d.TotalMinutes)
	assert.Equal(t, int64(604800), d.TotalSeconds)
	assert.Equal(t, int64(5), d.WorkingDays)
	assert.Equal(t, int64(2), d.Weekends)
	assert.Equal(t, "Monday, January 1, 2024", d.StartFormatted)
	assert.Equal(t, "Monday, January 8, 2024", d.EndFormatted)
}

func TestComputeDifference_Symmetry(t *testing.T) {
	pairs := [][2]time.Time{
		{date(2024, 1, 1), date(2024, 1, 8)},
		{date(2020, 2, 29), date(2024, 3, 15)},
		{date(2023, 1, 1), date(2024, 2, 2)},
		{date(1999, 12, 31), date(2000, 1, 1)},
		{date(2024, 3, 1), date(2024, 3, 31)},
	}

	for _, p := range pairs {
		t.Run(p[0].Format("2006-01-02")+"_"+p[1].Format("2006-01-02"), func(t *testing.T) {
			fwd := ComputeDifference(p[0], p[1])
			rev := ComputeDifference(p[1], p[0])

			assert.True(t, rev.Reversed)
			assert.Equal(t, -fwd.Years, rev.Years)
			assert.Equal(t, -fwd.Months, rev.Months)
			assert.Equal(t, -fwd.Days, rev.Days)
			assert.Equal(t, -fwd.TotalDays, rev.TotalDays)
			assert.Equal(t, -fwd.TotalWeeks, rev.TotalWeeks)
			assert.Equal(t, -fwd.RemainingDays, rev.RemainingDays)
			assert.Equal(t, -fwd.TotalSeconds, rev.TotalSeconds)
			assert.Equal(t, -fwd.WorkingDays, rev.WorkingDays)
			assert.Equal(t, -fwd.Weekends, rev.Weekends)
			assert.Equal(t, fwd.TotalDays, fwd.WorkingDays+fwd.Weekends)
		})
	}
}

func TestComputeDifference_SameDay(t *testing.T) {
	d := ComputeDifference(date(2024, 5, 15), time.Date(2024, 5, 15, 18, 30, 0, 0, time.UTC))

	assert.False(t, d.Reversed)
	assert.Zero(t, d.Years)
	assert.Zero(t, d.Months)
	assert.Zero(t, d.Days)
	assert.Zero(t, d.TotalDays)
	assert.Zero(t, d.WorkingDays)
	assert.Zero(t, d.Weekends)
	assert.Equal(t, "0 days", Describe(d, nil))
}

func TestComputeDifference_LongSpan(t *testing.T) {
	d := ComputeDifference(date(1900, 1, 1), date(2100, 1, 1))

	assert.Equal(t, 200, d.Years)
	assert.Equal(t, int64(73049), d.TotalDays)
	assert.Equal(t, int64(10435), d.TotalWeeks)
	assert.Equal(t, int64(4), d.RemainingDays)
	assert.Equal(t, int64(6311433600), d.TotalSeconds)
	assert.Equal(t, int64(52179), d.WorkingDays)
	assert.Equal(t, int64(20870), d.Weekends)
}

func TestComputeDifference_March2024(t *testing.T) {
	d := ComputeDifference(date(2024, 3, 1), date(2024, 3, 31))
	assert.Equal(t, int64(30), d.TotalDays)
	assert.Equal(t, int64(21), d.WorkingDays)
	assert.Equal(t, int64(9), d.Weekends)
	assert.Equal(t, int64(4), d.TotalWeeks)
	assert.Equal(t, int64(2), d.RemainingDays)
}

func TestDescribe(t *testing.T) {
	tests := []struct {
		start, end time.Time
		want       string
	}{
		{date(2020, 2, 29), date(2024, 3, 15), "4 years, 15 days"},
		{date(2024, 3, 15), date(2020, 2, 29), "-4 years, -15 days"},
		{date(2023, 1, 1), date(2024, 2, 2), "1 year, 1 month, 1 day"},
		{date(2024, 2, 2), date(2023, 1, 1), "-1 year, -1 month, -1 day"},
		{date(2024, 1, 1), date(2024, 3, 1), "2 months"},
		{date(2024, 1, 1), date(2025, 1, 1), "1 year"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Describe(ComputeDifference(tt.start, tt.end), EnglishParts))
	}
}

func TestDescribe_CustomFormatter(t *testing.T) {
	d := ComputeDifference(date(2023, 1, 1), date(2024, 2, 2))
	got := Describe(d, func(p Part, n int) string {
		return fmt.Sprintf("%d%c", n, "ymd"[p])
	})
	assert.Equal(t, "1y, 1m, 1d", got)
}

func TestComputeDifferenceISO(t *testing.T) {
	d, ok := ComputeDifferenceISO("2024-01-08", "20240101")
	require.True(t, ok)
	assert.True(t, d.Reversed)
	assert.Equal(t, int64(-7), d.TotalDays)

	for _, in := range [][2]string{{"", "2024-01-01"}, {"2024-01-01", ""}, {"soon", "2024-01-01"}} {
		_, ok := ComputeDifferenceISO(in[0], in[1])
		assert.False(t, ok, "input %q", in)
	}
}

func TestRangeForm(t *testing.T) {
	f := NewRangeForm(FixedClock{At: time.Date(2024, 1, 8, 15, 0, 0, 0, time.UTC)})

	_, ok := f.Result()
	assert.False(t, ok, "empty form is not ready")

	f.Start = "2024-01-01"
	f.UseTodayForEnd()
	assert.Equal(t, "2024-01-08", f.End)

	d, ok := f.Result()
	require.True(t, ok)
	assert.Equal(t, int64(7), d.TotalDays)

	f.Swap()
	d, ok = f.Result()
	require.True(t, ok)
	assert.Equal(t, int64(-7), d.TotalDays)
	assert.Equal(t, -5, int(d.WorkingDays))

	f.UseTodayForStart()
	assert.Equal(t, "2024-01-08", f.Start)

	f.Clear()
	assert.Empty(t, f.Start)
	assert.Empty(t, f.End)
}
