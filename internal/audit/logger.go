package audit

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barberpro/internal/models"
)

// Ações registradas.
const (
	ActionBookingCreated   = "booking.created"
	ActionBookingConflict  = "booking.conflict"
	ActionBookingCancelled = "booking.cancelled"
	ActionBarberCreated    = "barber.created"
	ActionBarberUpdated    = "barber.updated"
	ActionBarberDeleted    = "barber.deleted"
	ActionServiceCreated   = "service.created"
	ActionServiceUpdated   = "service.updated"
	ActionServiceDeleted   = "service.deleted"
	ActionRemindersRun     = "reminders.run"
)

type Logger struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Logger {
	return &Logger{db: db}
}

func (l *Logger) Log(ctx context.Context, ev Event) error {
	var metaJSON string
	if ev.Metadata != nil {
		if b, err := json.Marshal(ev.Metadata); err == nil {
			metaJSON = string(b)
		}
	}

	entry := models.AuditLog{
		UserID:   ev.UserID,
		Action:   ev.Action,
		Entity:   ev.Entity,
		EntityID: ev.EntityID,
		Metadata: metaJSON,
	}

	return l.db.WithContext(ctx).Create(&entry).Error
}

// ID é um atalho para preencher UserID/EntityID.
func ID(id uuid.UUID) *uuid.UUID {
	if id == uuid.Nil {
		return nil
	}
	return &id
}
