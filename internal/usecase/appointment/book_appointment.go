package appointment

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/BruksfildServices01/barberpro/internal/audit"
	domain "github.com/BruksfildServices01/barberpro/internal/domain/appointment"
	"github.com/BruksfildServices01/barberpro/internal/domain/booking"
	"github.com/BruksfildServices01/barberpro/internal/httperr"
	"github.com/BruksfildServices01/barberpro/internal/mailer"
	"github.com/BruksfildServices01/barberpro/internal/metrics"
	"github.com/BruksfildServices01/barberpro/internal/models"
	"github.com/BruksfildServices01/barberpro/internal/realtime"
)

// ======================================================
// INPUT
// ======================================================

type BookAppointmentInput struct {
	ClientID uuid.UUID

	ServiceID uuid.UUID
	BarberID  uuid.UUID
	Date      string
	Time      string

	ClientName  string
	ClientEmail string
	ClientPhone string
}

// ConfirmationSender recebe a confirmação depois que o agendamento foi gravado.
// Não pode bloquear nem devolver erro para o fluxo.
type ConfirmationSender interface {
	SendConfirmation(c mailer.Confirmation)
}

// ======================================================
// USE CASE
// ======================================================

// publishTimeout limita o push em tempo real feito depois da gravação.
const publishTimeout = 2 * time.Second

type BookAppointment struct {
	repo         domain.Repository
	availability *GetAvailability
	hub          realtime.Hub
	mail         ConfirmationSender
	audit        *audit.Dispatcher
	metrics      *metrics.Metrics
	log          zerolog.Logger

	publishTimeout time.Duration
}

func NewBookAppointment(
	repo domain.Repository,
	availability *GetAvailability,
	hub realtime.Hub,
	mail ConfirmationSender,
	audit *audit.Dispatcher,
	m *metrics.Metrics,
	log zerolog.Logger,
) *BookAppointment {
	return &BookAppointment{
		repo:         repo,
		availability: availability,
		hub:          hub,
		mail:         mail,
		audit:        audit,
		metrics:      m,
		log:          log.With().Str("usecase", "book_appointment").Logger(),

		publishTimeout: publishTimeout,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *BookAppointment) Execute(
	ctx context.Context,
	in BookAppointmentInput,
) (*models.Appointment, error) {

	ap, err := uc.execute(ctx, in)
	uc.metrics.Booking(bookingResult(err))
	return ap, err
}

func (uc *BookAppointment) execute(
	ctx context.Context,
	in BookAppointmentInput,
) (*models.Appointment, error) {

	flow := booking.NewFlow()

	// --------------------------------------------------
	// 1️⃣ Serviço
	// --------------------------------------------------
	if err := flow.SelectService(in.ServiceID); err != nil {
		return nil, err
	}
	service, err := uc.repo.GetService(ctx, in.ServiceID)
	if err != nil {
		return nil, err
	}
	if !service.IsActive {
		return nil, httperr.ErrBusiness(domain.CodeServiceNotFound)
	}

	// --------------------------------------------------
	// 2️⃣ Barbeiro
	// --------------------------------------------------
	if err := flow.SelectBarber(in.BarberID); err != nil {
		return nil, err
	}
	barber, err := uc.repo.GetBarber(ctx, in.BarberID)
	if err != nil {
		return nil, err
	}
	if !barber.IsActive {
		return nil, httperr.ErrBusiness(domain.CodeBarberNotFound)
	}

	// --------------------------------------------------
	// 3️⃣ Data / hora contra a agenda do dia
	// --------------------------------------------------
	var avail *domain.Availability
	if in.Date != "" && in.Time != "" {
		if _, err := domain.ParseTimeOfDay(in.Time); err != nil {
			return nil, httperr.ErrBusiness(domain.CodeInvalidTime)
		}
		avail, err = uc.availability.ForBarber(ctx, barber, in.Date)
		if err != nil {
			return nil, err
		}
	}
	if err := flow.SelectDateTime(in.Date, in.Time, avail); err != nil {
		uc.recordConflict(in, err)
		return nil, err
	}

	// --------------------------------------------------
	// 4️⃣ Confirmação: guarda de conflito + gravação
	// --------------------------------------------------
	clientName := ClientDisplayName(in.ClientName, in.ClientEmail)

	var created *models.Appointment
	var notification *models.Notification

	err = flow.Submit(ctx, func(ctx context.Context, sel booking.Selection) error {
		existing, err := uc.repo.FindAppointment(ctx, sel.BarberID, sel.Date, sel.Time)
		if err != nil {
			return httperr.Wrap(domain.CodeAvailabilityCheckFailed, err)
		}
		if existing != nil {
			return httperr.ErrBusiness(domain.CodeSlotTaken)
		}

		ap := &models.Appointment{
			BarberID:        sel.BarberID,
			ServiceID:       sel.ServiceID,
			ClientID:        in.ClientID,
			AppointmentDate: sel.Date,
			AppointmentTime: sel.Time,
			Status:          string(domain.InitialStatus()),
			ClientName:      clientName,
			ClientEmail:     in.ClientEmail,
			ClientPhone:     in.ClientPhone,
		}
		n := &models.Notification{
			Message: NotificationMessage(clientName, service.Name, barber.Name, sel.Date, sel.Time),
		}

		if err := uc.repo.CreateAppointment(ctx, ap, n); err != nil {
			if httperr.IsConflict(err) {
				return httperr.ErrBusiness(domain.CodeSlotTaken)
			}
			return httperr.Wrap(domain.CodeInsertFailed, err)
		}

		created, notification = ap, n
		return nil
	})
	if err != nil {
		uc.recordConflict(in, err)
		return nil, err
	}

	created.Barber = barber
	created.Service = service

	// --------------------------------------------------
	// 5️⃣ Efeitos colaterais (não afetam o resultado)
	// --------------------------------------------------
	uc.afterCreate(ctx, created, notification)

	return created, nil
}

// recordConflict audita tentativas em horário já reservado.
func (uc *BookAppointment) recordConflict(in BookAppointmentInput, err error) {
	if !httperr.IsBusiness(err, domain.CodeSlotTaken) {
		return
	}
	uc.audit.Dispatch(audit.Event{
		UserID:   audit.ID(in.ClientID),
		Action:   audit.ActionBookingConflict,
		Entity:   "barber",
		EntityID: audit.ID(in.BarberID),
		Metadata: map[string]string{"date": in.Date, "time": in.Time},
	})
}

func (uc *BookAppointment) afterCreate(ctx context.Context, ap *models.Appointment, n *models.Notification) {
	if uc.hub != nil && n != nil {
		// o agendamento já está gravado: o push não segura a resposta
		pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), uc.publishTimeout)
		err := uc.hub.Publish(pubCtx, *n)
		cancel()
		if err != nil {
			uc.log.Warn().Err(err).Msg("publish notification failed")
		}
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   audit.ID(ap.ClientID),
		Action:   audit.ActionBookingCreated,
		Entity:   "appointment",
		EntityID: audit.ID(ap.ID),
		Metadata: map[string]string{"date": ap.AppointmentDate, "time": ap.AppointmentTime},
	})

	if uc.mail != nil && ap.ClientEmail != "" {
		uc.mail.SendConfirmation(mailer.Confirmation{
			ClientName:  ap.ClientName,
			ClientEmail: ap.ClientEmail,
			ServiceName: ap.Service.Name,
			BarberName:  ap.Barber.Name,
			Date:        ap.AppointmentDate,
			Time:        ap.AppointmentTime,
		})
	}

	uc.log.Info().
		Str("appointment_id", ap.ID.String()).
		Str("barber_id", ap.BarberID.String()).
		Str("date", ap.AppointmentDate).
		Str("time", ap.AppointmentTime).
		Msg("appointment booked")
}

// ======================================================
// HELPERS
// ======================================================

// ClientDisplayName: nome do perfil → parte local do e-mail → "Cliente".
func ClientDisplayName(name, email string) string {
	if n := strings.TrimSpace(name); n != "" {
		return n
	}
	if local, _, ok := strings.Cut(strings.TrimSpace(email), "@"); ok && local != "" {
		return local
	}
	return "Cliente"
}

// NotificationMessage é o texto exibido no painel do barbeiro.
func NotificationMessage(client, service, barber, date, tm string) string {
	shown := date
	if d, err := time.Parse(domain.DateLayout, date); err == nil {
		shown = d.Format("02/01/2006")
	}
	return fmt.Sprintf("Novo agendamento: %s - %s com %s em %s às %s", client, service, barber, shown, tm)
}

func bookingResult(err error) string {
	switch httperr.Code(err) {
	case "":
		if err != nil {
			return metrics.BookingFailed
		}
		return metrics.BookingCreated
	case domain.CodeSlotTaken:
		return metrics.BookingConflict
	case domain.CodeAvailabilityCheckFailed, domain.CodeInsertFailed:
		return metrics.BookingFailed
	default:
		return metrics.BookingRejected
	}
}
