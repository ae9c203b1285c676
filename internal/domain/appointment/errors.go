package appointment

import "github.com/Hbollas/LashTechBooking/internal/httperr"

var (
	ErrServiceNotFound = httperr.NotFound(
		"service_not_found",
		"Service not found or no longer offered.",
	)
	ErrAppointmentNotFound = httperr.NotFound(
		"appointment_not_found",
		"Appointment not found.",
	)
	ErrTimeConflict = httperr.Conflict(
		"time_conflict",
		"That time was just taken. Please choose another slot.",
	)
	// ErrStatusChanged means another writer moved the appointment first.
	ErrStatusChanged = httperr.InvalidTransition(
		"status_changed",
		"The appointment was updated by someone else. Reload and try again.",
	)
)
