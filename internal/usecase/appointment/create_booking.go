package appointment

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/Hbollas/LashTechBooking/internal/audit"
	domain "github.com/Hbollas/LashTechBooking/internal/domain/appointment"
	"github.com/Hbollas/LashTechBooking/internal/httperr"
	"github.com/Hbollas/LashTechBooking/internal/models"
	"github.com/Hbollas/LashTechBooking/internal/timezone"
	"github.com/Hbollas/LashTechBooking/internal/validators"
)

// ======================================================
// INPUT
// ======================================================

type CreateBookingInput struct {
	ServiceID uuid.UUID
	Interval  domain.Interval
	Customer  validators.Customer

	PaymentReference string
}

// BookAppointmentInput is the boundary form: business-local date and time.
type BookAppointmentInput struct {
	ServiceID uuid.UUID
	Date      string // YYYY-MM-DD
	Time      string // HH:MM
	Customer  validators.Customer

	PaymentReference string
}

// ======================================================
// USE CASE
// ======================================================

type CreateBooking struct {
	repo  domain.Repository
	hours domain.BusinessHours
	clock timezone.Clock
	audit *audit.Dispatcher
	log   *slog.Logger
}

func NewCreateBooking(
	repo domain.Repository,
	hours domain.BusinessHours,
	clock timezone.Clock,
	audit *audit.Dispatcher,
	log *slog.Logger,
) *CreateBooking {
	if log == nil {
		log = slog.Default()
	}
	return &CreateBooking{
		repo:  repo,
		hours: hours,
		clock: clock,
		audit: audit,
		log:   log.With(slog.String("component", "booking")),
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateBooking) Execute(
	ctx context.Context,
	in CreateBookingInput,
) (*models.Appointment, error) {

	if !in.Interval.Valid() {
		return nil, httperr.Validation("invalid_interval", "End must be after start.")
	}

	customer, err := checkCustomer(in.Customer)
	if err != nil {
		return nil, err
	}

	offering, err := uc.repo.FindActiveOffering(ctx, in.ServiceID)
	if err != nil {
		return nil, err
	}

	return uc.book(ctx, offering, in.Interval, customer, in.PaymentReference)
}

// checkCustomer rejects malformed contact details before any store access.
func checkCustomer(c validators.Customer) (validators.Customer, error) {
	c = c.Normalize()
	if err := validators.ValidateCustomer(c); err != nil {
		return validators.Customer{}, err
	}
	return c, nil
}

func (uc *CreateBooking) book(
	ctx context.Context,
	offering *models.ServiceOffering,
	iv domain.Interval,
	customer validators.Customer,
	paymentRef string,
) (*models.Appointment, error) {

	// --------------------------------------------------
	// Preconditions
	// --------------------------------------------------
	if !iv.Valid() || iv.Duration() != offering.Duration() {
		return nil, httperr.Validation(
			"duration_mismatch",
			"The requested time does not match the service length.",
		)
	}

	if err := uc.hours.CheckBookable(iv.Start, iv.Duration(), uc.clock.Now()); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// Atomic check + insert
	// --------------------------------------------------
	id, err := uuid.NewV7()
	if err != nil {
		return nil, err
	}

	iv = iv.UTC()
	ap := &models.Appointment{
		ID:                id,
		ServiceOfferingID: offering.ID,
		CustomerName:      customer.Name,
		CustomerEmail:     customer.Email,
		CustomerPhone:     customer.Phone,
		StartUTC:          iv.Start,
		EndUTC:            iv.End,
		Status:            domain.InitialStatus(),
		PaymentReference:  paymentRef,
		DepositPaid:       false,
	}

	if err := uc.repo.InsertAppointmentIfNoConflict(ctx, ap); err != nil {
		if httperr.IsKind(err, httperr.KindConflict) {
			uc.audit.Dispatch(audit.Event{
				Action: audit.ActionAppointmentConflict,
				Entity: audit.EntityAppointment,
				Metadata: map[string]any{
					"service_id": offering.ID,
					"start_utc":  iv.Start,
					"end_utc":    iv.End,
				},
			})
		} else {
			uc.log.WarnContext(ctx, "booking insert failed",
				slog.String("service_id", offering.ID.String()),
				slog.Time("start_utc", iv.Start),
				slog.Any("err", err),
			)
		}
		return nil, err
	}

	ap.ServiceOffering = *offering

	uc.audit.Dispatch(audit.Event{
		Action:   audit.ActionAppointmentCreated,
		Entity:   audit.EntityAppointment,
		EntityID: &ap.ID,
	})
	uc.log.InfoContext(ctx, "appointment booked",
		slog.String("appointment_id", ap.ID.String()),
		slog.String("service", offering.Name),
		slog.Time("start_utc", ap.StartUTC),
	)

	return ap, nil
}

// ======================================================
// BOUNDARY (date + time strings)
// ======================================================

type BookAppointment struct {
	create *CreateBooking
}

func NewBookAppointment(create *CreateBooking) *BookAppointment {
	return &BookAppointment{create: create}
}

func (uc *BookAppointment) Execute(
	ctx context.Context,
	in BookAppointmentInput,
) (*models.Appointment, error) {

	start, err := uc.create.hours.ParseStart(in.Date, in.Time)
	if err != nil {
		return nil, err
	}

	customer, err := checkCustomer(in.Customer)
	if err != nil {
		return nil, err
	}

	offering, err := uc.create.repo.FindActiveOffering(ctx, in.ServiceID)
	if err != nil {
		return nil, err
	}

	iv, err := domain.NewInterval(start, offering.Duration())
	if err != nil {
		return nil, err
	}

	return uc.create.book(ctx, offering, iv, customer, in.PaymentReference)
}
