package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	RoleClient = "client"
	RoleBarber = "barber"
)

// User é a conta de acesso. Clientes agendam; "barber" é o papel do painel admin.
type User struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	FullName     string `gorm:"size:100" json:"full_name"`
	Email        string `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`
	Phone        string `gorm:"size:20" json:"phone"`
	Role         string `gorm:"size:20;default:'client'" json:"role"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
