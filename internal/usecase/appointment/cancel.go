package appointment

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/Hbollas/LashTechBooking/internal/audit"
	domain "github.com/Hbollas/LashTechBooking/internal/domain/appointment"
	"github.com/Hbollas/LashTechBooking/internal/models"
	"github.com/Hbollas/LashTechBooking/internal/notify"
	"github.com/Hbollas/LashTechBooking/internal/timezone"
)

type CancelAppointment struct {
	repo     domain.Repository
	clock    timezone.Clock
	hours    domain.BusinessHours
	notifier notify.Notifier
	audit    *audit.Dispatcher
	log      *slog.Logger
}

func NewCancelAppointment(
	repo domain.Repository,
	clock timezone.Clock,
	hours domain.BusinessHours,
	notifier notify.Notifier,
	audit *audit.Dispatcher,
	log *slog.Logger,
) *CancelAppointment {
	if log == nil {
		log = slog.Default()
	}
	return &CancelAppointment{
		repo:     repo,
		clock:    clock,
		hours:    hours,
		notifier: notifier,
		audit:    audit,
		log:      log.With(slog.String("component", "lifecycle")),
	}
}

// Execute cancels a pending or confirmed appointment. The interval it held
// becomes bookable again; the record itself is kept.
func (uc *CancelAppointment) Execute(
	ctx context.Context,
	userID *uint,
	appointmentID uuid.UUID,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointment(ctx, appointmentID)
	if err != nil {
		return nil, err
	}

	from := ap.Status
	if err := domain.Cancel(ap, uc.clock.Now().UTC()); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointmentStatus(ctx, ap, from); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   userID,
		Action:   audit.ActionAppointmentCancelled,
		Entity:   audit.EntityAppointment,
		EntityID: &ap.ID,
		Metadata: map[string]any{"from": from},
	})

	deliver(ctx, uc.notifier, uc.log, notify.AppointmentCancelled(*ap, uc.hours.Location()))

	return ap, nil
}
