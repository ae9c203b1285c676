package appointment

import (
	"context"

	domain "github.com/Hbollas/LashTechBooking/internal/domain/appointment"
	"github.com/Hbollas/LashTechBooking/internal/timezone"
)

// ListAvailableSlots computes the open start times for one service on one
// business-local date.
type ListAvailableSlots struct {
	repo  domain.Repository
	hours domain.BusinessHours
	clock timezone.Clock
}

func NewListAvailableSlots(
	repo domain.Repository,
	hours domain.BusinessHours,
	clock timezone.Clock,
) *ListAvailableSlots {
	return &ListAvailableSlots{
		repo:  repo,
		hours: hours,
		clock: clock,
	}
}

func (uc *ListAvailableSlots) Execute(
	ctx context.Context,
	in domain.AvailabilityInput,
) ([]string, error) {

	offering, err := uc.repo.FindActiveOffering(ctx, in.ServiceID)
	if err != nil {
		return nil, err
	}

	date, err := uc.hours.ParseDate(in.Date)
	if err != nil {
		return nil, err
	}

	// Every non-cancelled booking blocks the shared resource, whatever
	// service it was made for.
	window := uc.hours.Window(date)
	existing, err := uc.repo.QueryAppointments(ctx, window.Start, window.End)
	if err != nil {
		return nil, err
	}

	slots := uc.hours.Slots(
		date,
		offering.Duration(),
		uc.clock.Now(),
		domain.BusyIntervals(existing),
	)

	return uc.hours.FormatSlots(slots), nil
}
