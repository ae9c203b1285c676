package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	domain "github.com/Hbollas/LashTechBooking/internal/domain/appointment"
	"github.com/Hbollas/LashTechBooking/internal/models"
)

// AppointmentMemoryRepository keeps everything in process. One mutex guards
// all state, which makes the conflict check and insert a single atomic step.
type AppointmentMemoryRepository struct {
	mu           sync.Mutex
	offerings    map[uuid.UUID]models.ServiceOffering
	appointments map[uuid.UUID]models.Appointment
}

func NewAppointmentMemoryRepository(offerings ...models.ServiceOffering) *AppointmentMemoryRepository {
	r := &AppointmentMemoryRepository{
		offerings:    make(map[uuid.UUID]models.ServiceOffering),
		appointments: make(map[uuid.UUID]models.Appointment),
	}
	for _, o := range offerings {
		r.offerings[o.ID] = o
	}
	return r
}

func (r *AppointmentMemoryRepository) PutOffering(o models.ServiceOffering) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.offerings[o.ID] = o
}

// --------------------------------------------------
// Service offerings
// --------------------------------------------------

func (r *AppointmentMemoryRepository) FindActiveOffering(
	ctx context.Context,
	id uuid.UUID,
) (*models.ServiceOffering, error) {

	r.mu.Lock()
	defer r.mu.Unlock()

	o, ok := r.offerings[id]
	if !ok || !o.Active {
		return nil, domain.ErrServiceNotFound
	}
	return &o, nil
}

func (r *AppointmentMemoryRepository) ListActiveOfferings(
	ctx context.Context,
) ([]models.ServiceOffering, error) {

	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]models.ServiceOffering, 0, len(r.offerings))
	for _, o := range r.offerings {
		if o.Active {
			out = append(out, o)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// --------------------------------------------------
// Appointment (read)
// --------------------------------------------------

func (r *AppointmentMemoryRepository) QueryAppointments(
	ctx context.Context,
	from time.Time,
	to time.Time,
) ([]models.Appointment, error) {

	r.mu.Lock()
	defer r.mu.Unlock()

	window := domain.Interval{Start: from, End: to}
	var out []models.Appointment
	for _, ap := range r.appointments {
		if ap.Status == models.StatusCancelled {
			continue
		}
		if window.Overlaps(domain.IntervalOf(ap)) {
			out = append(out, ap)
		}
	}
	sortByStart(out)
	return out, nil
}

func (r *AppointmentMemoryRepository) GetAppointment(
	ctx context.Context,
	id uuid.UUID,
) (*models.Appointment, error) {

	r.mu.Lock()
	defer r.mu.Unlock()

	ap, ok := r.appointments[id]
	if !ok {
		return nil, domain.ErrAppointmentNotFound
	}
	ap.ServiceOffering = r.offerings[ap.ServiceOfferingID]
	return &ap, nil
}

func (r *AppointmentMemoryRepository) ListAppointments(
	ctx context.Context,
	filter domain.ListFilter,
) ([]models.Appointment, error) {

	r.mu.Lock()
	defer r.mu.Unlock()

	var out []models.Appointment
	for _, ap := range r.appointments {
		if filter.From != nil && ap.StartUTC.Before(*filter.From) {
			continue
		}
		if filter.To != nil && !ap.StartUTC.Before(*filter.To) {
			continue
		}
		if filter.Status != nil && ap.Status != *filter.Status {
			continue
		}
		ap.ServiceOffering = r.offerings[ap.ServiceOfferingID]
		out = append(out, ap)
	}
	sortByStart(out)
	return out, nil
}

// --------------------------------------------------
// Appointment (create / conflict)
// --------------------------------------------------

func (r *AppointmentMemoryRepository) InsertAppointmentIfNoConflict(
	ctx context.Context,
	ap *models.Appointment,
) error {

	if err := ctx.Err(); err != nil {
		return translateError(err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	existing := make([]models.Appointment, 0, len(r.appointments))
	for _, other := range r.appointments {
		existing = append(existing, other)
	}
	if domain.HasConflict(domain.IntervalOf(*ap), existing) {
		return domain.ErrTimeConflict
	}

	now := time.Now().UTC()
	ap.StartUTC = ap.StartUTC.UTC()
	ap.EndUTC = ap.EndUTC.UTC()
	ap.CreatedAt = now
	ap.UpdatedAt = now

	stored := *ap
	stored.ServiceOffering = models.ServiceOffering{}
	r.appointments[ap.ID] = stored
	return nil
}

// --------------------------------------------------
// Appointment (state change)
// --------------------------------------------------

func (r *AppointmentMemoryRepository) UpdateAppointmentStatus(
	ctx context.Context,
	ap *models.Appointment,
	from domain.Status,
) error {

	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.appointments[ap.ID]
	if !ok {
		return domain.ErrAppointmentNotFound
	}
	if stored.Status != from {
		return domain.ErrStatusChanged
	}

	stored.Status = ap.Status
	stored.ConfirmedAt = ap.ConfirmedAt
	stored.CancelledAt = ap.CancelledAt
	stored.UpdatedAt = time.Now().UTC()
	r.appointments[ap.ID] = stored
	return nil
}

func (r *AppointmentMemoryRepository) FlipDepositFlag(
	ctx context.Context,
	id uuid.UUID,
) (bool, error) {

	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.appointments[id]
	if !ok {
		return false, domain.ErrAppointmentNotFound
	}
	domain.ToggleDeposit(&stored)
	stored.UpdatedAt = time.Now().UTC()
	r.appointments[id] = stored
	return stored.DepositPaid, nil
}

func sortByStart(apps []models.Appointment) {
	sort.Slice(apps, func(i, j int) bool {
		return apps[i].StartUTC.Before(apps[j].StartUTC)
	})
}

var _ domain.Repository = (*AppointmentMemoryRepository)(nil)
