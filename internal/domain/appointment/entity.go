package appointment

import (
	"time"

	"github.com/Hbollas/LashTechBooking/internal/models"
)

// ===============================
// Domain Actions
// ===============================

func Approve(ap *models.Appointment, now time.Time) error {
	if err := CanTransition(ap.Status, StatusConfirmed); err != nil {
		return err
	}

	ap.Status = StatusConfirmed
	ap.ConfirmedAt = &now
	return nil
}

func Cancel(ap *models.Appointment, now time.Time) error {
	if err := CanTransition(ap.Status, StatusCancelled); err != nil {
		return err
	}

	ap.Status = StatusCancelled
	ap.CancelledAt = &now
	return nil
}

// ToggleDeposit flips the deposit flag. It is independent of status.
func ToggleDeposit(ap *models.Appointment) {
	ap.DepositPaid = !ap.DepositPaid
}

func IntervalOf(ap models.Appointment) Interval {
	return Interval{Start: ap.StartUTC, End: ap.EndUTC}
}
