package appointment

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Hbollas/LashTechBooking/internal/httperr"
)

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

type AvailabilityInput struct {
	ServiceID uuid.UUID
	Date      string // YYYY-MM-DD, business-local
}

// BusinessHours describes the single daily opening window of the shop.
// Candidate starts are opening + k*step in the business location.
type BusinessHours struct {
	openMin  int
	closeMin int
	stepMin  int
	buffer   time.Duration
	loc      *time.Location
}

func NewBusinessHours(
	opening string,
	closing string,
	stepMinutes int,
	bufferMinutes int,
	loc *time.Location,
) (BusinessHours, error) {

	openMin, err := parseClock(opening)
	if err != nil {
		return BusinessHours{}, fmt.Errorf("opening time: %w", err)
	}
	closeMin, err := parseClock(closing)
	if err != nil {
		return BusinessHours{}, fmt.Errorf("closing time: %w", err)
	}
	if openMin >= closeMin {
		return BusinessHours{}, fmt.Errorf("opening time %s must be before closing time %s", opening, closing)
	}
	if stepMinutes <= 0 {
		return BusinessHours{}, fmt.Errorf("slot step must be positive, got %d", stepMinutes)
	}
	if bufferMinutes < 0 {
		return BusinessHours{}, fmt.Errorf("slot buffer must not be negative, got %d", bufferMinutes)
	}
	if loc == nil {
		loc = time.UTC
	}

	return BusinessHours{
		openMin:  openMin,
		closeMin: closeMin,
		stepMin:  stepMinutes,
		buffer:   time.Duration(bufferMinutes) * time.Minute,
		loc:      loc,
	}, nil
}

func parseClock(hm string) (int, error) {
	if len(hm) != len(TimeLayout) {
		return 0, fmt.Errorf("%q is not HH:MM", hm)
	}
	t, err := time.Parse(TimeLayout, hm)
	if err != nil {
		return 0, fmt.Errorf("%q is not HH:MM", hm)
	}
	return t.Hour()*60 + t.Minute(), nil
}

func (b BusinessHours) Location() *time.Location {
	return b.loc
}

func (b BusinessHours) Step() time.Duration {
	return time.Duration(b.stepMin) * time.Minute
}

// ParseDate reads a YYYY-MM-DD calendar date in the business location.
func (b BusinessHours) ParseDate(date string) (time.Time, error) {
	d, err := time.ParseInLocation(DateLayout, date, b.loc)
	if err != nil {
		return time.Time{}, httperr.Validation("invalid_date", "Date must be YYYY-MM-DD.")
	}
	return d, nil
}

// ParseStart reads a business-local date and HH:MM time.
func (b BusinessHours) ParseStart(date, clock string) (time.Time, error) {
	if len(clock) != len(TimeLayout) {
		return time.Time{}, httperr.Validation("invalid_date_or_time", "Time must be HH:MM.")
	}
	t, err := time.ParseInLocation(DateLayout+" "+TimeLayout, date+" "+clock, b.loc)
	if err != nil {
		return time.Time{}, httperr.Validation("invalid_date_or_time", "Invalid date or time.")
	}
	return t, nil
}

// Window returns the opening and closing instants of the day containing date.
func (b BusinessHours) Window(date time.Time) Interval {
	y, m, d := date.In(b.loc).Date()
	return Interval{
		Start: time.Date(y, m, d, 0, b.openMin, 0, 0, b.loc),
		End:   time.Date(y, m, d, 0, b.closeMin, 0, 0, b.loc),
	}
}

func (b BusinessHours) candidate(y int, m time.Month, d, k int) time.Time {
	return time.Date(y, m, d, 0, b.openMin+k*b.stepMin, 0, 0, b.loc)
}

// ===============================
// Slot generation
// ===============================

// Slots lists the start instants on date at which a booking of length d fits
// inside business hours, is not before the cutoff for today, and overlaps
// none of busy. Past dates yield nothing.
func (b BusinessHours) Slots(
	date time.Time,
	d time.Duration,
	now time.Time,
	busy []Interval,
) []time.Time {

	if d <= 0 {
		return nil
	}

	y, m, day := date.In(b.loc).Date()
	ny, nm, nd := now.In(b.loc).Date()

	target := time.Date(y, m, day, 0, 0, 0, 0, time.UTC)
	today := time.Date(ny, nm, nd, 0, 0, 0, 0, time.UTC)
	if target.Before(today) {
		return nil
	}

	closing := time.Date(y, m, day, 0, b.closeMin, 0, 0, b.loc)

	var cutoff time.Time
	isToday := target.Equal(today)
	if isToday {
		cutoff = now.Add(b.buffer)
	}

	var slots []time.Time
	for k := 0; ; k++ {
		start := b.candidate(y, m, day, k)
		slot := Interval{Start: start, End: start.Add(d)}

		if slot.End.After(closing) {
			break
		}
		if isToday && start.Before(cutoff) {
			continue
		}
		if overlapsAny(slot, busy) {
			continue
		}

		slots = append(slots, start)
	}

	return slots
}

func overlapsAny(slot Interval, busy []Interval) bool {
	for _, iv := range busy {
		if slot.Overlaps(iv) {
			return true
		}
	}
	return false
}

// CheckBookable verifies that start is a slot Slots could have offered for a
// booking of length d, ignoring existing bookings.
func (b BusinessHours) CheckBookable(start time.Time, d time.Duration, now time.Time) error {
	local := start.In(b.loc)
	y, m, day := local.Date()

	window := b.Window(local)
	if local.Before(window.Start) || local.Add(d).After(window.End) {
		return httperr.Validation("outside_business_hours", "That time is outside business hours.")
	}

	minutes := local.Hour()*60 + local.Minute()
	aligned := local.Second() == 0 &&
		local.Nanosecond() == 0 &&
		(minutes-b.openMin)%b.stepMin == 0 &&
		b.candidate(y, m, day, (minutes-b.openMin)/b.stepMin).Equal(start)
	if !aligned {
		return httperr.Validation("slot_not_aligned", "That time is not an offered slot.")
	}

	if start.Before(now.Add(b.buffer)) {
		return httperr.Validation("too_soon", "That time is no longer available for booking.")
	}

	return nil
}

// FormatSlots renders instants as business-local HH:MM strings.
func (b BusinessHours) FormatSlots(slots []time.Time) []string {
	out := make([]string, 0, len(slots))
	for _, s := range slots {
		out = append(out, s.In(b.loc).Format(TimeLayout))
	}
	return out
}
