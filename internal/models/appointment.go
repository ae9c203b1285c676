package models

import (
	"time"

	"github.com/google/uuid"
)

type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "pending"
	StatusConfirmed AppointmentStatus = "confirmed"
	StatusCancelled AppointmentStatus = "cancelled"
)

func (s AppointmentStatus) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled:
		return true
	}
	return false
}

type Appointment struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	ServiceOfferingID uuid.UUID       `gorm:"type:uuid;not null;index" json:"service_offering_id"`
	ServiceOffering   ServiceOffering `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"service_offering,omitempty"`

	CustomerName  string `gorm:"size:120;not null" json:"customer_name"`
	CustomerEmail string `gorm:"size:256;not null" json:"customer_email"`
	CustomerPhone string `gorm:"size:32" json:"customer_phone,omitempty"`

	// Stored as UTC instants.
	StartUTC time.Time `gorm:"column:start_utc;not null;index" json:"start_utc"`
	EndUTC   time.Time `gorm:"column:end_utc;not null;check:chk_appointments_range,end_utc > start_utc" json:"end_utc"`

	Status AppointmentStatus `gorm:"size:20;not null;default:'pending';index" json:"status"`

	PaymentReference string `gorm:"size:128" json:"payment_reference,omitempty"`
	DepositPaid      bool   `gorm:"not null;default:false" json:"deposit_paid"`

	ConfirmedAt *time.Time `json:"confirmed_at,omitempty"`
	CancelledAt *time.Time `json:"cancelled_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
