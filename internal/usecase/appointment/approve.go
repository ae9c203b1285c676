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

type ApproveAppointment struct {
	repo     domain.Repository
	clock    timezone.Clock
	hours    domain.BusinessHours
	notifier notify.Notifier
	audit    *audit.Dispatcher
	log      *slog.Logger
}

func NewApproveAppointment(
	repo domain.Repository,
	clock timezone.Clock,
	hours domain.BusinessHours,
	notifier notify.Notifier,
	audit *audit.Dispatcher,
	log *slog.Logger,
) *ApproveAppointment {
	if log == nil {
		log = slog.Default()
	}
	return &ApproveAppointment{
		repo:     repo,
		clock:    clock,
		hours:    hours,
		notifier: notifier,
		audit:    audit,
		log:      log.With(slog.String("component", "lifecycle")),
	}
}

func (uc *ApproveAppointment) Execute(
	ctx context.Context,
	userID *uint,
	appointmentID uuid.UUID,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointment(ctx, appointmentID)
	if err != nil {
		return nil, err
	}

	from := ap.Status
	if err := domain.Approve(ap, uc.clock.Now().UTC()); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointmentStatus(ctx, ap, from); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   userID,
		Action:   audit.ActionAppointmentConfirmed,
		Entity:   audit.EntityAppointment,
		EntityID: &ap.ID,
	})

	deliver(ctx, uc.notifier, uc.log, notify.AppointmentConfirmed(*ap, uc.hours.Location()))

	return ap, nil
}
