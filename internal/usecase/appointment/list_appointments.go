package appointment

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	domain "github.com/BruksfildServices01/barberpro/internal/domain/appointment"
	"github.com/BruksfildServices01/barberpro/internal/dto"
	"github.com/BruksfildServices01/barberpro/internal/httperr"
	"github.com/BruksfildServices01/barberpro/internal/models"
	"github.com/BruksfildServices01/barberpro/internal/timezone"
)

// ======================================================
// ADMIN
// ======================================================

type ListAppointmentsInput struct {
	Date     string // YYYY-MM-DD
	Month    string // YYYY-MM
	BarberID *uuid.UUID
}

type ListAppointments struct {
	repo  domain.Repository
	clock timezone.Clock
}

func NewListAppointments(
	repo domain.Repository,
	clock timezone.Clock,
) *ListAppointments {
	return &ListAppointments{
		repo:  repo,
		clock: clock,
	}
}

// Execute filtra por dia (Date) ou por mês (Month); Date tem precedência.
// Sem filtro devolve tudo.
func (uc *ListAppointments) Execute(
	ctx context.Context,
	in ListAppointmentsInput,
) ([]dto.AppointmentListDTO, error) {

	filter := domain.ListFilter{BarberID: in.BarberID}

	switch {
	case in.Date != "":
		d, err := time.Parse(domain.DateLayout, in.Date)
		if err != nil {
			return nil, httperr.ErrBusiness(domain.CodeInvalidDate)
		}
		filter.FromDate = in.Date
		filter.ToDate = d.AddDate(0, 0, 1).Format(domain.DateLayout)

	case in.Month != "":
		m, err := time.Parse("2006-01", in.Month)
		if err != nil {
			return nil, httperr.ErrBusiness(domain.CodeInvalidDate)
		}
		filter.FromDate = m.Format(domain.DateLayout)
		filter.ToDate = m.AddDate(0, 1, 0).Format(domain.DateLayout)
	}

	appointments, err := uc.repo.ListAppointments(ctx, filter)
	if err != nil {
		return nil, err
	}

	today := uc.clock.Now().Format(domain.DateLayout)

	out := make([]dto.AppointmentListDTO, 0, len(appointments))
	for _, ap := range appointments {
		out = append(out, toListDTO(ap, today))
	}
	return out, nil
}

// ======================================================
// CLIENT
// ======================================================

type ListClientAppointments struct {
	repo  domain.Repository
	clock timezone.Clock
}

func NewListClientAppointments(
	repo domain.Repository,
	clock timezone.Clock,
) *ListClientAppointments {
	return &ListClientAppointments{
		repo:  repo,
		clock: clock,
	}
}

// Execute separa próximos (hoje em diante, ordem crescente) de anteriores
// (mais recente primeiro).
func (uc *ListClientAppointments) Execute(
	ctx context.Context,
	clientID uuid.UUID,
) (*dto.ClientAppointmentsDTO, error) {

	appointments, err := uc.repo.ListAppointmentsForClient(ctx, clientID)
	if err != nil {
		return nil, err
	}

	today := uc.clock.Now().Format(domain.DateLayout)

	out := &dto.ClientAppointmentsDTO{
		Upcoming: []dto.AppointmentListDTO{},
		Past:     []dto.AppointmentListDTO{},
	}
	for _, ap := range appointments {
		row := toListDTO(ap, today)
		if domain.IsUpcoming(ap.AppointmentDate, today) {
			out.Upcoming = append(out.Upcoming, row)
		} else {
			out.Past = append(out.Past, row)
		}
	}

	sort.SliceStable(out.Past, func(i, j int) bool {
		a, b := out.Past[i], out.Past[j]
		if a.Date != b.Date {
			return a.Date > b.Date
		}
		return a.Time > b.Time
	})

	return out, nil
}

// ======================================================
// MAPPING
// ======================================================

func toListDTO(ap models.Appointment, today string) dto.AppointmentListDTO {
	row := dto.AppointmentListDTO{
		ID:          ap.ID,
		Date:        ap.AppointmentDate,
		Time:        domain.NormalizeTime(ap.AppointmentTime),
		Status:      string(domain.DerivedStatus(domain.Status(ap.Status), ap.AppointmentDate, today)),
		ClientName:  ap.ClientName,
		ClientEmail: ap.ClientEmail,
		ClientPhone: ap.ClientPhone,
		BarberID:    ap.BarberID,
	}

	if ap.Barber != nil {
		name := ap.Barber.Name
		row.BarberName = &name
	}
	if ap.Service != nil {
		name, price := ap.Service.Name, ap.Service.Price
		row.ServiceName = &name
		row.ServicePrice = &price
	}
	return row
}
