package models

import (
	"time"

	"github.com/google/uuid"
)

type Service struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	Name            string  `gorm:"size:100;not null" json:"name"`
	Price           float64 `gorm:"not null;default:0" json:"price"`
	DurationMinutes int     `gorm:"not null;default:30" json:"duration_minutes"`
	IsActive        bool    `gorm:"not null" json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
