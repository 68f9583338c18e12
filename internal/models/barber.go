package models

import (
	"time"

	"github.com/google/uuid"
)

type Barber struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	Name     string  `gorm:"size:100;not null" json:"name"`
	PhotoURL *string `gorm:"size:500" json:"photo_url"`

	// HH:MM, horário local da barbearia
	WorkStartTime string `gorm:"size:5;not null;default:'09:00'" json:"work_start_time"`
	WorkEndTime   string `gorm:"size:5;not null;default:'18:00'" json:"work_end_time"`

	// 1=segunda .. 7=domingo
	WorkDays []int `gorm:"serializer:json" json:"work_days"`

	IsActive bool `gorm:"not null" json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DefaultWorkDays: segunda a sábado.
var DefaultWorkDays = []int{1, 2, 3, 4, 5, 6}
