package models

import (
	"time"

	"github.com/google/uuid"
)

// ServiceOffering is a bookable service with a fixed duration. The booking
// core only reads it.
type ServiceOffering struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	Name        string `gorm:"size:100;not null;uniqueIndex" json:"name"`
	Description string `gorm:"size:255" json:"description"`
	DurationMin int    `gorm:"not null;check:duration_min > 0" json:"duration_min"`
	PriceCents  int    `gorm:"not null;default:0;check:price_cents >= 0" json:"price_cents"`
	Active      bool   `gorm:"not null" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (s ServiceOffering) Duration() time.Duration {
	return time.Duration(s.DurationMin) * time.Minute
}
