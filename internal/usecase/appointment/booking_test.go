package appointment

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/Hbollas/LashTechBooking/internal/domain/appointment"
	"github.com/Hbollas/LashTechBooking/internal/httperr"
	"github.com/Hbollas/LashTechBooking/internal/logging"
	"github.com/Hbollas/LashTechBooking/internal/models"
	"github.com/Hbollas/LashTechBooking/internal/validators"
)

func TestBookAppointmentCreatesPending(t *testing.T) {
	f := newFixture(t)

	ap := f.bookAt(t, f.classic, "2026-06-11", "09:00")

	assert.Equal(t, models.StatusPending, ap.Status)
	assert.False(t, ap.DepositPaid)
	assert.Equal(t, 90*time.Minute, ap.EndUTC.Sub(ap.StartUTC))
	assert.Equal(t, time.UTC, ap.StartUTC.Location())
	assert.Equal(t, 14, ap.StartUTC.Hour())
	assert.Equal(t, "riley@example.com", ap.CustomerEmail)
	assert.Equal(t, byte(7), ap.ID[6]>>4, "ids are UUIDv7")

	stored, err := f.repo.GetAppointment(context.Background(), ap.ID)
	require.NoError(t, err)
	assert.Equal(t, ap.StartUTC, stored.StartUTC)
}

func TestAvailabilityEndToEnd(t *testing.T) {
	f := newFixture(t)
	f.bookAt(t, f.fill, "2026-06-11", "10:00")

	got := f.slotsFor(t, f.fill, "2026-06-11")

	for _, s := range []string{"09:30", "10:00", "10:30"} {
		assert.NotContains(t, got, s)
	}
	assert.Contains(t, got, "09:00")
	assert.Contains(t, got, "11:00")
}

func TestBookingBlocksOtherServices(t *testing.T) {
	f := newFixture(t)
	f.bookAt(t, f.removal, "2026-06-11", "12:00")

	got := f.slotsFor(t, f.classic, "2026-06-11")

	// 90 minute sets starting 11:00 through 12:00 would overlap 12:00-12:30.
	for _, s := range []string{"11:00", "11:30", "12:00"} {
		assert.NotContains(t, got, s)
	}
	assert.Contains(t, got, "10:30")
	assert.Contains(t, got, "12:30")

	_, err := f.book.Execute(context.Background(), BookAppointmentInput{
		ServiceID: f.classic.ID,
		Date:      "2026-06-11",
		Time:      "11:00",
		Customer:  customer(),
	})
	assert.ErrorIs(t, err, domain.ErrTimeConflict)
}

func TestCancelledBookingFreesItsSlot(t *testing.T) {
	f := newFixture(t)
	ap := f.bookAt(t, f.fill, "2026-06-11", "10:00")

	_, err := f.cancel.Execute(context.Background(), nil, ap.ID)
	require.NoError(t, err)

	assert.Contains(t, f.slotsFor(t, f.fill, "2026-06-11"), "10:00")
	f.bookAt(t, f.fill, "2026-06-11", "10:00")
}

func TestSlotsForTodayHonourCutoff(t *testing.T) {
	f := newFixture(t)
	f.clock.At = time.Date(2026, 6, 10, 11, 7, 0, 0, f.hours.Location())
	f.slots = NewListAvailableSlots(f.repo, f.hours, f.clock)

	got := f.slotsFor(t, f.fill, "2026-06-10")

	require.NotEmpty(t, got)
	assert.Equal(t, "11:30", got[0])
	assert.Empty(t, f.slotsFor(t, f.fill, "2026-06-09"))
}

func TestBookAppointmentValidation(t *testing.T) {
	f := newFixture(t)

	cases := []struct {
		name string
		in   BookAppointmentInput
		kind httperr.Kind
		code string
	}{
		{
			name: "unknown service",
			in:   BookAppointmentInput{ServiceID: uuid.New(), Date: "2026-06-11", Time: "09:00", Customer: customer()},
			kind: httperr.KindNotFound,
			code: "service_not_found",
		},
		{
			name: "bad date",
			in:   BookAppointmentInput{ServiceID: f.fill.ID, Date: "06/11/2026", Time: "09:00", Customer: customer()},
			kind: httperr.KindValidation,
			code: "invalid_date_or_time",
		},
		{
			name: "bad time",
			in:   BookAppointmentInput{ServiceID: f.fill.ID, Date: "2026-06-11", Time: "9am", Customer: customer()},
			kind: httperr.KindValidation,
			code: "invalid_date_or_time",
		},
		{
			name: "missing name",
			in: BookAppointmentInput{ServiceID: f.fill.ID, Date: "2026-06-11", Time: "09:00",
				Customer: validators.Customer{Email: "a@example.com"}},
			kind: httperr.KindValidation,
			code: "missing_customer_name",
		},
		{
			name: "malformed email",
			in: BookAppointmentInput{ServiceID: f.fill.ID, Date: "2026-06-11", Time: "09:00",
				Customer: validators.Customer{Name: "A", Email: "nope"}},
			kind: httperr.KindValidation,
			code: "invalid_customer_email",
		},
		{
			name: "malformed phone",
			in: BookAppointmentInput{ServiceID: f.fill.ID, Date: "2026-06-11", Time: "09:00",
				Customer: validators.Customer{Name: "A", Email: "a@example.com", Phone: "call me"}},
			kind: httperr.KindValidation,
			code: "invalid_customer_phone",
		},
		{
			name: "past date",
			in:   BookAppointmentInput{ServiceID: f.fill.ID, Date: "2026-06-09", Time: "09:00", Customer: customer()},
			kind: httperr.KindValidation,
			code: "too_soon",
		},
		{
			name: "overruns closing",
			in:   BookAppointmentInput{ServiceID: f.classic.ID, Date: "2026-06-11", Time: "17:00", Customer: customer()},
			kind: httperr.KindValidation,
			code: "outside_business_hours",
		},
		{
			name: "off step",
			in:   BookAppointmentInput{ServiceID: f.fill.ID, Date: "2026-06-11", Time: "09:10", Customer: customer()},
			kind: httperr.KindValidation,
			code: "slot_not_aligned",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.book.Execute(context.Background(), tc.in)
			require.Error(t, err)
			assert.True(t, httperr.IsKind(err, tc.kind), "got %v", err)
			assert.True(t, httperr.IsBusiness(err, tc.code), "got %v", err)
		})
	}

	all, err := f.repo.ListAppointments(context.Background(), domain.ListFilter{})
	require.NoError(t, err)
	assert.Empty(t, all, "rejected requests must not write")
}

func TestCreateBookingRejectsDurationMismatch(t *testing.T) {
	f := newFixture(t)
	start := time.Date(2026, 6, 11, 9, 0, 0, 0, f.hours.Location())

	_, err := f.create.Execute(context.Background(), CreateBookingInput{
		ServiceID: f.classic.ID,
		Interval:  domain.Interval{Start: start, End: start.Add(60 * time.Minute)},
		Customer:  customer(),
	})

	assert.True(t, httperr.IsBusiness(err, "duration_mismatch"))
}

func TestCreateBookingRejectsInactiveService(t *testing.T) {
	f := newFixture(t)
	retired := offering("Retired Style", 60)
	retired.Active = false
	f.repo.PutOffering(retired)
	start := time.Date(2026, 6, 11, 9, 0, 0, 0, f.hours.Location())

	_, err := f.create.Execute(context.Background(), CreateBookingInput{
		ServiceID: retired.ID,
		Interval:  domain.Interval{Start: start, End: start.Add(time.Hour)},
		Customer:  customer(),
	})

	assert.True(t, httperr.IsKind(err, httperr.KindNotFound))
}

func TestIdenticalConcurrentRequestsHaveOneWinner(t *testing.T) {
	f := newFixture(t)

	const n = 20
	errs := make([]error, n)
	var wg sync.WaitGroup
	start := make(chan struct{})
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			_, errs[i] = f.book.Execute(context.Background(), BookAppointmentInput{
				ServiceID: f.fill.ID,
				Date:      "2026-06-11",
				Time:      "10:00",
				Customer:  customer(),
			})
		}(i)
	}
	close(start)
	wg.Wait()

	wins := 0
	for _, err := range errs {
		if err == nil {
			wins++
			continue
		}
		assert.True(t, httperr.IsKind(err, httperr.KindConflict), "got %v", err)
	}
	assert.Equal(t, 1, wins)
}

func TestConcurrentMixedBookingsNeverOverlap(t *testing.T) {
	f := newFixture(t)
	services := []models.ServiceOffering{f.fill, f.classic, f.removal}

	var wg sync.WaitGroup
	for i := 0; i < 60; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			svc := services[i%len(services)]
			minutes := 9*60 + (i%14)*30
			_, _ = f.book.Execute(context.Background(), BookAppointmentInput{
				ServiceID: svc.ID,
				Date:      "2026-06-11",
				Time:      fmt.Sprintf("%02d:%02d", minutes/60, minutes%60),
				Customer:  customer(),
			})
		}(i)
	}
	wg.Wait()

	all, err := f.repo.ListAppointments(context.Background(), domain.ListFilter{})
	require.NoError(t, err)
	require.NotEmpty(t, all)

	for i := range all {
		for j := i + 1; j < len(all); j++ {
			assert.False(t,
				domain.IntervalOf(all[i]).Overlaps(domain.IntervalOf(all[j])),
				"%s overlaps %s", all[i].StartUTC, all[j].StartUTC,
			)
		}
	}
}

// countingRepo records how often the offering catalog is read.
type countingRepo struct {
	domain.Repository
	lookups atomic.Int32
}

func (r *countingRepo) FindActiveOffering(ctx context.Context, id uuid.UUID) (*models.ServiceOffering, error) {
	r.lookups.Add(1)
	return r.Repository.FindActiveOffering(ctx, id)
}

func TestMalformedInputRejectedBeforeStoreRead(t *testing.T) {
	f := newFixture(t)
	repo := &countingRepo{Repository: f.repo}
	create := NewCreateBooking(repo, f.hours, f.clock, nil, logging.Discard())
	book := NewBookAppointment(create)

	unknown := uuid.New()
	start := time.Date(2026, 6, 11, 9, 0, 0, 0, f.hours.Location())

	cases := []struct {
		name string
		run  func() error
		code string
	}{
		{"bad time", func() error {
			_, err := book.Execute(context.Background(), BookAppointmentInput{
				ServiceID: unknown, Date: "2026-06-11", Time: "9am", Customer: customer(),
			})
			return err
		}, "invalid_date_or_time"},
		{"bad date", func() error {
			_, err := book.Execute(context.Background(), BookAppointmentInput{
				ServiceID: unknown, Date: "tomorrow", Time: "09:00", Customer: customer(),
			})
			return err
		}, "invalid_date_or_time"},
		{"bad email", func() error {
			_, err := book.Execute(context.Background(), BookAppointmentInput{
				ServiceID: unknown, Date: "2026-06-11", Time: "09:00",
				Customer: validators.Customer{Name: "A", Email: "nope"},
			})
			return err
		}, "invalid_customer_email"},
		{"interval bad customer", func() error {
			_, err := create.Execute(context.Background(), CreateBookingInput{
				ServiceID: unknown,
				Interval:  domain.Interval{Start: start, End: start.Add(time.Hour)},
				Customer:  validators.Customer{Email: "a@example.com"},
			})
			return err
		}, "missing_customer_name"},
		{"inverted interval", func() error {
			_, err := create.Execute(context.Background(), CreateBookingInput{
				ServiceID: unknown,
				Interval:  domain.Interval{Start: start, End: start},
				Customer:  customer(),
			})
			return err
		}, "invalid_interval"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.run()
			require.Error(t, err)
			assert.True(t, httperr.IsKind(err, httperr.KindValidation), "got %v", err)
			assert.True(t, httperr.IsBusiness(err, tc.code), "got %v", err)
		})
	}

	assert.Equal(t, int32(0), repo.lookups.Load())

	// Well-formed input reaches the store and reports the unknown service.
	_, err := book.Execute(context.Background(), BookAppointmentInput{
		ServiceID: unknown, Date: "2026-06-11", Time: "09:00", Customer: customer(),
	})
	assert.True(t, httperr.IsKind(err, httperr.KindNotFound))
	assert.Equal(t, int32(1), repo.lookups.Load())
}
