package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/Hbollas/LashTechBooking/internal/models"
)

// AppointmentPublicDTO is what anyone holding an appointment id may see.
// Contact details and the payment reference stay out of it.
type AppointmentPublicDTO struct {
	ID          uuid.UUID `json:"id"`
	Date        string    `json:"date"`
	StartTime   string    `json:"start_time"`
	EndTime     string    `json:"end_time"`
	StartUTC    time.Time `json:"start_utc"`
	EndUTC      time.Time `json:"end_utc"`
	Status      string    `json:"status"`
	ServiceName string    `json:"service_name"`
	DepositPaid bool      `json:"deposit_paid"`
}

func NewAppointmentPublicDTO(ap models.Appointment, loc *time.Location) AppointmentPublicDTO {
	start := ap.StartUTC.In(loc)
	return AppointmentPublicDTO{
		ID:          ap.ID,
		Date:        start.Format("2006-01-02"),
		StartTime:   start.Format("15:04"),
		EndTime:     ap.EndUTC.In(loc).Format("15:04"),
		StartUTC:    ap.StartUTC,
		EndUTC:      ap.EndUTC,
		Status:      string(ap.Status),
		ServiceName: ap.ServiceOffering.Name,
		DepositPaid: ap.DepositPaid,
	}
}
