package appointment

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/Hbollas/LashTechBooking/internal/models"
)

// ListFilter narrows the back-office listing. Nil fields are ignored.
type ListFilter struct {
	From   *time.Time
	To     *time.Time
	Status *Status
}

type Repository interface {
	// -------- Service offerings --------
	FindActiveOffering(
		ctx context.Context,
		id uuid.UUID,
	) (*models.ServiceOffering, error)

	ListActiveOfferings(
		ctx context.Context,
	) ([]models.ServiceOffering, error)

	// -------- Appointment (read) --------

	// QueryAppointments returns non-cancelled appointments overlapping [from, to).
	QueryAppointments(
		ctx context.Context,
		from time.Time,
		to time.Time,
	) ([]models.Appointment, error)

	GetAppointment(
		ctx context.Context,
		id uuid.UUID,
	) (*models.Appointment, error)

	ListAppointments(
		ctx context.Context,
		filter ListFilter,
	) ([]models.Appointment, error)

	// -------- Appointment (write) --------

	// InsertAppointmentIfNoConflict checks for overlap and inserts as one
	// atomic unit. Of any set of concurrent overlapping inserts at most one
	// succeeds; the others get ErrTimeConflict.
	InsertAppointmentIfNoConflict(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// UpdateAppointmentStatus persists ap's status fields only if the stored
	// status still equals from.
	UpdateAppointmentStatus(
		ctx context.Context,
		ap *models.Appointment,
		from Status,
	) error

	// FlipDepositFlag inverts the stored deposit flag in one write and
	// returns the new value. Concurrent flips never cancel each other out.
	FlipDepositFlag(
		ctx context.Context,
		id uuid.UUID,
	) (bool, error)
}
