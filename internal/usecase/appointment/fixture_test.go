package appointment

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	domain "github.com/Hbollas/LashTechBooking/internal/domain/appointment"
	"github.com/Hbollas/LashTechBooking/internal/infra/repository"
	"github.com/Hbollas/LashTechBooking/internal/logging"
	"github.com/Hbollas/LashTechBooking/internal/models"
	"github.com/Hbollas/LashTechBooking/internal/timezone"
	"github.com/Hbollas/LashTechBooking/internal/validators"
)

type sentMail struct {
	To, Subject, Body string
}

type fakeNotifier struct {
	mu   sync.Mutex
	sent []sentMail
	err  error
}

func (n *fakeNotifier) Notify(ctx context.Context, recipient, subject, body string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, sentMail{recipient, subject, body})
	return n.err
}

type fixture struct {
	repo     *repository.AppointmentMemoryRepository
	hours    domain.BusinessHours
	clock    timezone.FixedClock
	notifier *fakeNotifier

	fill    models.ServiceOffering
	classic models.ServiceOffering
	removal models.ServiceOffering

	slots   *ListAvailableSlots
	create  *CreateBooking
	book    *BookAppointment
	approve *ApproveAppointment
	cancel  *CancelAppointment
	deposit *ToggleDeposit
	list    *ListAppointments
}

// newFixture pins "now" to 08:00 on 2026-06-10 in Chicago.
func newFixture(t *testing.T) *fixture {
	t.Helper()

	loc, err := time.LoadLocation("America/Chicago")
	require.NoError(t, err)

	hours, err := domain.NewBusinessHours("09:00", "18:00", 30, 0, loc)
	require.NoError(t, err)

	f := &fixture{
		hours:    hours,
		clock:    timezone.FixedClock{At: time.Date(2026, 6, 10, 8, 0, 0, 0, loc)},
		notifier: &fakeNotifier{},
		fill:     offering("Fill (2-3 weeks)", 60),
		classic:  offering("Classic Full Set", 90),
		removal:  offering("Lash Removal", 30),
	}
	f.repo = repository.NewAppointmentMemoryRepository(f.fill, f.classic, f.removal)

	log := logging.Discard()
	f.slots = NewListAvailableSlots(f.repo, hours, f.clock)
	f.create = NewCreateBooking(f.repo, hours, f.clock, nil, log)
	f.book = NewBookAppointment(f.create)
	f.approve = NewApproveAppointment(f.repo, f.clock, hours, f.notifier, nil, log)
	f.cancel = NewCancelAppointment(f.repo, f.clock, hours, f.notifier, nil, log)
	f.deposit = NewToggleDeposit(f.repo, nil)
	f.list = NewListAppointments(f.repo, hours)

	return f
}

func offering(name string, minutes int) models.ServiceOffering {
	return models.ServiceOffering{
		ID:          uuid.New(),
		Name:        name,
		DurationMin: minutes,
		Active:      true,
	}
}

func customer() validators.Customer {
	return validators.Customer{Name: "Riley Park", Email: "riley@example.com", Phone: "555-123-4567"}
}

func (f *fixture) bookAt(t *testing.T, svc models.ServiceOffering, date, clock string) *models.Appointment {
	t.Helper()
	ap, err := f.book.Execute(context.Background(), BookAppointmentInput{
		ServiceID: svc.ID,
		Date:      date,
		Time:      clock,
		Customer:  customer(),
	})
	require.NoError(t, err)
	return ap
}

func (f *fixture) slotsFor(t *testing.T, svc models.ServiceOffering, date string) []string {
	t.Helper()
	got, err := f.slots.Execute(context.Background(), domain.AvailabilityInput{ServiceID: svc.ID, Date: date})
	require.NoError(t, err)
	return got
}

var errSMTPDown = errors.New("smtp down")
