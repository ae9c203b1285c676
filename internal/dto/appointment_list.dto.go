package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/Hbollas/LashTechBooking/internal/models"
)

// AppointmentListDTO is one row of the back-office appointment list.
type AppointmentListDTO struct {
	ID            uuid.UUID `json:"id"`
	Date          string    `json:"date"`
	StartTime     string    `json:"start_time"`
	EndTime       string    `json:"end_time"`
	StartUTC      time.Time `json:"start_utc"`
	EndUTC        time.Time `json:"end_utc"`
	Status        string    `json:"status"`
	ServiceName   string    `json:"service_name"`
	CustomerName  string    `json:"customer_name"`
	CustomerEmail string    `json:"customer_email"`
	CustomerPhone string    `json:"customer_phone,omitempty"`
	DepositPaid   bool      `json:"deposit_paid"`
}

func NewAppointmentListDTO(ap models.Appointment, loc *time.Location) AppointmentListDTO {
	start := ap.StartUTC.In(loc)
	return AppointmentListDTO{
		ID:            ap.ID,
		Date:          start.Format("2006-01-02"),
		StartTime:     start.Format("15:04"),
		EndTime:       ap.EndUTC.In(loc).Format("15:04"),
		StartUTC:      ap.StartUTC,
		EndUTC:        ap.EndUTC,
		Status:        string(ap.Status),
		ServiceName:   ap.ServiceOffering.Name,
		CustomerName:  ap.CustomerName,
		CustomerEmail: ap.CustomerEmail,
		CustomerPhone: ap.CustomerPhone,
		DepositPaid:   ap.DepositPaid,
	}
}
