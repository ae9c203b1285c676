package appointment

import (
	"strings"

	"github.com/Hbollas/LashTechBooking/internal/httperr"
	"github.com/Hbollas/LashTechBooking/internal/models"
)

// ===============================
// Appointment Status
// ===============================

type Status = models.AppointmentStatus

const (
	StatusPending   = models.StatusPending
	StatusConfirmed = models.StatusConfirmed
	StatusCancelled = models.StatusCancelled
)

var transitions = map[Status][]Status{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusCancelled},
	StatusCancelled: {},
}

// ===============================
// Validations
// ===============================

// CanTransition rejects every move that is not in the transition table.
func CanTransition(from, to Status) error {
	for _, next := range transitions[from] {
		if next == to {
			return nil
		}
	}
	return httperr.InvalidTransition(
		"invalid_transition",
		"Cannot move appointment from "+string(from)+" to "+string(to)+".",
	)
}

func IsTerminal(s Status) bool {
	return len(transitions[s]) == 0
}

func InitialStatus() Status {
	return StatusPending
}

func ParseStatus(raw string) (Status, error) {
	s := Status(strings.ToLower(strings.TrimSpace(raw)))
	if !s.Valid() {
		return "", httperr.Validation("invalid_status", "Unknown status "+raw+".")
	}
	return s, nil
}
