package appointment

import (
	"context"

	"github.com/google/uuid"

	"github.com/Hbollas/LashTechBooking/internal/audit"
	domain "github.com/Hbollas/LashTechBooking/internal/domain/appointment"
	"github.com/Hbollas/LashTechBooking/internal/models"
)

type ToggleDeposit struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewToggleDeposit(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *ToggleDeposit {
	return &ToggleDeposit{
		repo:  repo,
		audit: audit,
	}
}

// Execute flips the deposit flag in the store and returns the appointment
// as it stands afterwards. Status is not consulted.
func (uc *ToggleDeposit) Execute(
	ctx context.Context,
	userID *uint,
	appointmentID uuid.UUID,
) (*models.Appointment, error) {

	paid, err := uc.repo.FlipDepositFlag(ctx, appointmentID)
	if err != nil {
		return nil, err
	}

	ap, err := uc.repo.GetAppointment(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	ap.DepositPaid = paid

	uc.audit.Dispatch(audit.Event{
		UserID:   userID,
		Action:   audit.ActionDepositToggled,
		Entity:   audit.EntityAppointment,
		EntityID: &ap.ID,
		Metadata: map[string]any{"deposit_paid": paid},
	})

	return ap, nil
}
