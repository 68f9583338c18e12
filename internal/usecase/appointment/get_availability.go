package appointment

import (
	"context"
	"fmt"
	"time"

	domain "github.com/BruksfildServices01/barberpro/internal/domain/appointment"
	"github.com/BruksfildServices01/barberpro/internal/httperr"
	"github.com/BruksfildServices01/barberpro/internal/models"
	"github.com/BruksfildServices01/barberpro/internal/timezone"
)

type GetAvailability struct {
	repo       domain.Repository
	clock      timezone.Clock
	windowDays int
}

func NewGetAvailability(
	repo domain.Repository,
	clock timezone.Clock,
	windowDays int,
) *GetAvailability {
	return &GetAvailability{
		repo:       repo,
		clock:      clock,
		windowDays: windowDays,
	}
}

func (uc *GetAvailability) Execute(
	ctx context.Context,
	in domain.AvailabilityInput,
) (*domain.Availability, error) {

	barber, err := uc.repo.GetBarber(ctx, in.BarberID)
	if err != nil {
		return nil, err
	}
	if !barber.IsActive {
		return nil, httperr.ErrBusiness(domain.CodeBarberNotFound)
	}

	return uc.ForBarber(ctx, barber, in.Date)
}

// ForBarber monta a agenda do dia para um barbeiro já carregado.
func (uc *GetAvailability) ForBarber(
	ctx context.Context,
	barber *models.Barber,
	date string,
) (*domain.Availability, error) {

	day, err := time.Parse(domain.DateLayout, date)
	if err != nil {
		return nil, httperr.ErrBusiness(domain.CodeInvalidDate)
	}

	out := &domain.Availability{
		BarberID: barber.ID,
		Date:     date,
		Slots:    []domain.SlotStatus{},
	}

	// --------------------------------------------------
	// Dia inteiro bloqueado (passado, folga, fora da janela)
	// --------------------------------------------------
	if err := domain.CheckDate(day, uc.clock.Now(), barber.WorkDays, uc.windowDays); err != nil {
		code := httperr.Code(err)
		if code == "" {
			return nil, err
		}
		out.Disabled = true
		out.Reason = code
		return out, nil
	}

	start, err := domain.ParseTimeOfDay(barber.WorkStartTime)
	if err != nil {
		return nil, fmt.Errorf("barber %s work_start_time: %w", barber.ID, err)
	}
	end, err := domain.ParseTimeOfDay(barber.WorkEndTime)
	if err != nil {
		return nil, fmt.Errorf("barber %s work_end_time: %w", barber.ID, err)
	}

	booked, err := uc.repo.ListBookedTimes(ctx, barber.ID, date)
	if err != nil {
		return nil, err
	}

	out.Slots = domain.MarkAvailability(
		domain.GenerateSlots(start, end, domain.SlotStep),
		booked,
	)
	return out, nil
}
