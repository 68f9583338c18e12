package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// newID preenche o ID antes do insert quando o chamador não definiu um.
func newID(id *uuid.UUID) {
	if *id == uuid.Nil {
		*id = uuid.New()
	}
}

func (b *Barber) BeforeCreate(*gorm.DB) error       { newID(&b.ID); return nil }
func (s *Service) BeforeCreate(*gorm.DB) error      { newID(&s.ID); return nil }
func (a *Appointment) BeforeCreate(*gorm.DB) error  { newID(&a.ID); return nil }
func (n *Notification) BeforeCreate(*gorm.DB) error { newID(&n.ID); return nil }
func (u *User) BeforeCreate(*gorm.DB) error         { newID(&u.ID); return nil }
