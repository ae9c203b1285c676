package appointment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Hbollas/LashTechBooking/internal/httperr"
)

func chicago(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("America/Chicago")
	require.NoError(t, err)
	return loc
}

func hours(t *testing.T, buffer int) BusinessHours {
	t.Helper()
	bh, err := NewBusinessHours("09:00", "18:00", 30, buffer, chicago(t))
	require.NoError(t, err)
	return bh
}

func day(t *testing.T, bh BusinessHours, date string) time.Time {
	t.Helper()
	d, err := bh.ParseDate(date)
	require.NoError(t, err)
	return d
}

func TestNewBusinessHoursRejectsBadWindow(t *testing.T) {
	loc := chicago(t)

	_, err := NewBusinessHours("18:00", "09:00", 30, 0, loc)
	assert.Error(t, err)

	_, err = NewBusinessHours("09:00", "09:00", 30, 0, loc)
	assert.Error(t, err)

	_, err = NewBusinessHours("9am", "18:00", 30, 0, loc)
	assert.Error(t, err)

	_, err = NewBusinessHours("09:00", "18:00", 0, 0, loc)
	assert.Error(t, err)
}

func TestSlotsLastStartFitsBeforeClosing(t *testing.T) {
	bh := hours(t, 0)
	date := day(t, bh, "2026-06-10")
	now := time.Date(2026, 6, 1, 8, 0, 0, 0, bh.Location())

	got := bh.FormatSlots(bh.Slots(date, 90*time.Minute, now, nil))

	require.NotEmpty(t, got)
	assert.Equal(t, "09:00", got[0])
	assert.Equal(t, "16:30", got[len(got)-1])
	assert.NotContains(t, got, "17:00")
	assert.Len(t, got, 16)
}

func TestSlotsTodayCutoffRoundsUpToStep(t *testing.T) {
	bh := hours(t, 0)
	date := day(t, bh, "2026-06-10")
	now := time.Date(2026, 6, 10, 11, 7, 0, 0, bh.Location())

	got := bh.FormatSlots(bh.Slots(date, 60*time.Minute, now, nil))

	require.NotEmpty(t, got)
	assert.Equal(t, "11:30", got[0])
	for _, s := range []string{"09:00", "10:00", "10:30", "11:00"} {
		assert.NotContains(t, got, s)
	}
}

func TestSlotsTodayAlignedNowIsBookable(t *testing.T) {
	bh := hours(t, 0)
	date := day(t, bh, "2026-06-10")
	now := time.Date(2026, 6, 10, 11, 0, 0, 0, bh.Location())

	got := bh.FormatSlots(bh.Slots(date, 60*time.Minute, now, nil))

	assert.Equal(t, "11:00", got[0])
}

func TestSlotsBufferPushesCutoff(t *testing.T) {
	bh := hours(t, 30)
	date := day(t, bh, "2026-06-10")
	now := time.Date(2026, 6, 10, 11, 7, 0, 0, bh.Location())

	got := bh.FormatSlots(bh.Slots(date, 60*time.Minute, now, nil))

	assert.Equal(t, "12:00", got[0])
}

func TestSlotsPastDateIsEmpty(t *testing.T) {
	bh := hours(t, 0)
	date := day(t, bh, "2026-06-09")
	now := time.Date(2026, 6, 10, 8, 0, 0, 0, bh.Location())

	assert.Empty(t, bh.Slots(date, 30*time.Minute, now, nil))
}

func TestSlotsDurationLongerThanWindow(t *testing.T) {
	bh := hours(t, 0)
	date := day(t, bh, "2026-06-10")
	now := time.Date(2026, 6, 1, 8, 0, 0, 0, bh.Location())

	assert.Empty(t, bh.Slots(date, 10*time.Hour, now, nil))
}

func TestSlotsSkipBusyIntervals(t *testing.T) {
	bh := hours(t, 0)
	date := day(t, bh, "2026-06-10")
	now := time.Date(2026, 6, 1, 8, 0, 0, 0, bh.Location())
	loc := bh.Location()

	busy := []Interval{{
		Start: time.Date(2026, 6, 10, 10, 0, 0, 0, loc),
		End:   time.Date(2026, 6, 10, 11, 0, 0, 0, loc),
	}}

	got := bh.FormatSlots(bh.Slots(date, 60*time.Minute, now, busy))

	for _, s := range []string{"09:30", "10:00", "10:30"} {
		assert.NotContains(t, got, s)
	}
	assert.Contains(t, got, "09:00")
	assert.Contains(t, got, "11:00")
}

func TestSlotsFullyBookedDay(t *testing.T) {
	bh := hours(t, 0)
	date := day(t, bh, "2026-06-10")
	now := time.Date(2026, 6, 1, 8, 0, 0, 0, bh.Location())

	got := bh.Slots(date, 30*time.Minute, now, []Interval{bh.Window(date)})

	assert.Empty(t, got)
}

func TestCheckBookable(t *testing.T) {
	bh := hours(t, 0)
	loc := bh.Location()
	now := time.Date(2026, 6, 10, 11, 7, 0, 0, loc)

	cases := []struct {
		name  string
		start time.Time
		d     time.Duration
		code  string
	}{
		{"offered slot", time.Date(2026, 6, 10, 11, 30, 0, 0, loc), time.Hour, ""},
		{"before cutoff", time.Date(2026, 6, 10, 11, 0, 0, 0, loc), time.Hour, "too_soon"},
		{"past day", time.Date(2026, 6, 9, 11, 0, 0, 0, loc), time.Hour, "too_soon"},
		{"misaligned", time.Date(2026, 6, 11, 11, 15, 0, 0, loc), time.Hour, "slot_not_aligned"},
		{"overruns closing", time.Date(2026, 6, 11, 17, 30, 0, 0, loc), time.Hour, "outside_business_hours"},
		{"before opening", time.Date(2026, 6, 11, 8, 30, 0, 0, loc), time.Hour, "outside_business_hours"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := bh.CheckBookable(tc.start, tc.d, now)
			if tc.code == "" {
				assert.NoError(t, err)
				return
			}
			assert.True(t, httperr.IsBusiness(err, tc.code), "got %v", err)
		})
	}
}

func TestParseStartRejectsLooseTime(t *testing.T) {
	bh := hours(t, 0)

	_, err := bh.ParseStart("2026-06-10", "9:00")
	assert.True(t, httperr.IsKind(err, httperr.KindValidation))

	_, err = bh.ParseStart("2026-13-10", "09:00")
	assert.True(t, httperr.IsKind(err, httperr.KindValidation))

	start, err := bh.ParseStart("2026-06-10", "09:00")
	require.NoError(t, err)
	assert.Equal(t, 14, start.UTC().Hour())
}
