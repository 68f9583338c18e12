package models

import (
	"time"

	"github.com/google/uuid"
)

type Notification struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	AppointmentID *uuid.UUID `gorm:"type:uuid" json:"appointment_id"`
	Message       string     `gorm:"type:text;not null" json:"message"`
	IsRead        bool       `gorm:"default:false;index" json:"is_read"`
	CreatedAt     time.Time  `gorm:"index" json:"created_at"`
}
