package models

import (
	"time"

	"github.com/google/uuid"
)

// AuditLog is one back-office or booking event. Metadata holds JSON text.
type AuditLog struct {
	ID uint `gorm:"primaryKey" json:"id"`

	UserID *uint  `gorm:"index" json:"user_id,omitempty"`
	Action string `gorm:"size:50;not null;index" json:"action"`

	Entity   string     `gorm:"size:50;not null" json:"entity"`
	EntityID *uuid.UUID `gorm:"type:uuid;index" json:"entity_id,omitempty"`
	Metadata string     `gorm:"type:text" json:"metadata,omitempty"`

	CreatedAt time.Time `gorm:"index" json:"created_at"`
}
