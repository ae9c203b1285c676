package appointment

import (
	"context"
	"strings"

	domain "github.com/Hbollas/LashTechBooking/internal/domain/appointment"
	"github.com/Hbollas/LashTechBooking/internal/dto"
	"github.com/Hbollas/LashTechBooking/internal/httperr"
)

// ListAppointmentsInput takes business-local dates; To is inclusive.
type ListAppointmentsInput struct {
	From   string
	To     string
	Status string
}

type ListAppointments struct {
	repo  domain.Repository
	hours domain.BusinessHours
}

func NewListAppointments(
	repo domain.Repository,
	hours domain.BusinessHours,
) *ListAppointments {
	return &ListAppointments{
		repo:  repo,
		hours: hours,
	}
}

func (uc *ListAppointments) Execute(
	ctx context.Context,
	in ListAppointmentsInput,
) ([]dto.AppointmentListDTO, error) {

	var filter domain.ListFilter

	if s := strings.TrimSpace(in.From); s != "" {
		from, err := uc.hours.ParseDate(s)
		if err != nil {
			return nil, err
		}
		filter.From = &from
	}

	if s := strings.TrimSpace(in.To); s != "" {
		to, err := uc.hours.ParseDate(s)
		if err != nil {
			return nil, err
		}
		end := to.AddDate(0, 0, 1)
		filter.To = &end
	}

	if filter.From != nil && filter.To != nil && !filter.From.Before(*filter.To) {
		return nil, httperr.Validation("invalid_range", "From must not be after To.")
	}

	if s := strings.TrimSpace(in.Status); s != "" {
		status, err := domain.ParseStatus(s)
		if err != nil {
			return nil, err
		}
		filter.Status = &status
	}

	appointments, err := uc.repo.ListAppointments(ctx, filter)
	if err != nil {
		return nil, err
	}

	loc := uc.hours.Location()
	out := make([]dto.AppointmentListDTO, 0, len(appointments))
	for _, ap := range appointments {
		out = append(out, dto.NewAppointmentListDTO(ap, loc))
	}

	return out, nil
}
