package models

import (
	"time"

	"github.com/google/uuid"
)

// Barber e Service são carregados via Preload; ficam nil quando o registro
// referenciado foi removido (não há FK nem cascade).
type Appointment struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	BarberID uuid.UUID `gorm:"type:uuid;not null;index" json:"barber_id"`
	Barber   *Barber   `gorm:"foreignKey:BarberID" json:"barber"`

	ServiceID uuid.UUID `gorm:"type:uuid;not null" json:"service_id"`
	Service   *Service  `gorm:"foreignKey:ServiceID" json:"service"`

	ClientID uuid.UUID `gorm:"type:uuid;not null;index" json:"client_id"`

	AppointmentDate string `gorm:"size:10;not null;index" json:"appointment_date"` // YYYY-MM-DD
	AppointmentTime string `gorm:"size:5;not null" json:"appointment_time"`        // HH:MM

	Status string `gorm:"size:20;not null;default:'scheduled'" json:"status"`

	ClientName  string `gorm:"size:100" json:"client_name"`
	ClientEmail string `gorm:"size:100" json:"client_email"`
	ClientPhone string `gorm:"size:20" json:"client_phone"`

	ReminderEmailSent bool `gorm:"default:false" json:"reminder_email_sent"`

	CancelledAt *time.Time `json:"cancelled_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
