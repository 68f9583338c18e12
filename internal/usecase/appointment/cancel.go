package appointment

import (
	"context"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/barberpro/internal/audit"
	domain "github.com/BruksfildServices01/barberpro/internal/domain/appointment"
	"github.com/BruksfildServices01/barberpro/internal/models"
	"github.com/BruksfildServices01/barberpro/internal/timezone"
)

// CancelAppointment é exclusivo do painel. O horário volta a ficar livre.
type CancelAppointment struct {
	repo  domain.Repository
	clock timezone.Clock
	audit *audit.Dispatcher
}

func NewCancelAppointment(
	repo domain.Repository,
	clock timezone.Clock,
	audit *audit.Dispatcher,
) *CancelAppointment {
	return &CancelAppointment{
		repo:  repo,
		clock: clock,
		audit: audit,
	}
}

func (uc *CancelAppointment) Execute(
	ctx context.Context,
	actorID uuid.UUID,
	appointmentID uuid.UUID,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointment(ctx, appointmentID)
	if err != nil {
		return nil, err
	}

	if err := domain.Cancel(ap, uc.clock.Now()); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   audit.ID(actorID),
		Action:   audit.ActionBookingCancelled,
		Entity:   "appointment",
		EntityID: audit.ID(ap.ID),
	})

	return ap, nil
}
