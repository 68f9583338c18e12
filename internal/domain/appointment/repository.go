package appointment

import (
	"context"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/barberpro/internal/models"
)

type Repository interface {
	// -------- Catalog --------
	ListActiveBarbers(ctx context.Context) ([]models.Barber, error)
	ListActiveServices(ctx context.Context) ([]models.Service, error)

	GetBarber(ctx context.Context, id uuid.UUID) (*models.Barber, error)
	GetService(ctx context.Context, id uuid.UUID) (*models.Service, error)

	// -------- Availability --------

	// ListBookedTimes devolve os horários (HH:MM) com agendamento não cancelado.
	ListBookedTimes(
		ctx context.Context,
		barberID uuid.UUID,
		date string,
	) ([]string, error)

	// FindAppointment busca pela chave exata (barbeiro, data, hora),
	// ignorando cancelados. Devolve nil, nil quando não há registro.
	FindAppointment(
		ctx context.Context,
		barberID uuid.UUID,
		date string,
		time string,
	) (*models.Appointment, error)

	// -------- Appointment (create / state change) --------

	// CreateAppointment grava o agendamento e a notificação do painel
	// na mesma transação.
	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
		notification *models.Notification,
	) error

	GetAppointment(ctx context.Context, id uuid.UUID) (*models.Appointment, error)

	UpdateAppointment(ctx context.Context, ap *models.Appointment) error

	// -------- Listings --------
	ListAppointmentsForClient(
		ctx context.Context,
		clientID uuid.UUID,
	) ([]models.Appointment, error)

	ListAppointments(
		ctx context.Context,
		filter ListFilter,
	) ([]models.Appointment, error)

	// -------- Reminders --------
	ListReminderCandidates(ctx context.Context, date string) ([]models.Appointment, error)

	MarkReminderSent(ctx context.Context, id uuid.UUID) error
}

// ListFilter filtra a listagem do painel. Datas vazias não restringem.
type ListFilter struct {
	FromDate string // inclusive
	ToDate   string // exclusive
	BarberID *uuid.UUID
}
