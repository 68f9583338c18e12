package appointment

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/BruksfildServices01/barberpro/internal/audit"
	domain "github.com/BruksfildServices01/barberpro/internal/domain/appointment"
	"github.com/BruksfildServices01/barberpro/internal/mailer"
	"github.com/BruksfildServices01/barberpro/internal/metrics"
	"github.com/BruksfildServices01/barberpro/internal/timezone"
)

type ReminderResult struct {
	AppointmentID uuid.UUID `json:"appointment_id"`
	Success       bool      `json:"success"`
	Error         string    `json:"error,omitempty"`
}

type ReminderReport struct {
	Date      string           `json:"date"`
	Processed int              `json:"processed"`
	Sent      int              `json:"sent"`
	Results   []ReminderResult `json:"results"`
}

// SendReminders avisa os clientes com horário amanhã (fuso da barbearia).
// Falha em um agendamento não interrompe os demais; a flag só é marcada
// depois do envio.
type SendReminders struct {
	repo    domain.Repository
	sender  mailer.Sender
	clock   timezone.Clock
	audit   *audit.Dispatcher
	metrics *metrics.Metrics
	log     zerolog.Logger
}

func NewSendReminders(
	repo domain.Repository,
	sender mailer.Sender,
	clock timezone.Clock,
	audit *audit.Dispatcher,
	m *metrics.Metrics,
	log zerolog.Logger,
) *SendReminders {
	return &SendReminders{
		repo:    repo,
		sender:  sender,
		clock:   clock,
		audit:   audit,
		metrics: m,
		log:     log.With().Str("usecase", "send_reminders").Logger(),
	}
}

func (uc *SendReminders) Execute(ctx context.Context) (*ReminderReport, error) {
	now := uc.clock.Now()
	tomorrow := now.AddDate(0, 0, 1).Format(domain.DateLayout)

	candidates, err := uc.repo.ListReminderCandidates(ctx, tomorrow)
	if err != nil {
		return nil, err
	}

	uc.log.Info().Str("date", tomorrow).Int("count", len(candidates)).Msg("sending reminders")

	report := &ReminderReport{Date: tomorrow, Results: []ReminderResult{}}

	for _, ap := range candidates {
		res := ReminderResult{AppointmentID: ap.ID}

		c := mailer.Confirmation{
			ClientName:  ClientDisplayName(ap.ClientName, ap.ClientEmail),
			ClientEmail: ap.ClientEmail,
			Date:        ap.AppointmentDate,
			Time:        domain.NormalizeTime(ap.AppointmentTime),
		}
		if ap.Barber != nil {
			c.BarberName = ap.Barber.Name
		}
		if ap.Service != nil {
			c.ServiceName = ap.Service.Name
		}

		if err := uc.sendOne(ctx, ap.ID, c, now); err != nil {
			res.Error = err.Error()
			uc.log.Error().Err(err).Str("appointment_id", ap.ID.String()).Msg("reminder failed")
		} else {
			res.Success = true
			report.Sent++
		}

		report.Results = append(report.Results, res)
		report.Processed++
	}

	uc.audit.Dispatch(audit.Event{
		Action:   audit.ActionRemindersRun,
		Entity:   "appointment",
		Metadata: map[string]any{"date": tomorrow, "processed": report.Processed, "sent": report.Sent},
	})

	return report, nil
}

func (uc *SendReminders) sendOne(ctx context.Context, id uuid.UUID, c mailer.Confirmation, now time.Time) error {
	if c.ClientEmail == "" {
		return fmt.Errorf("appointment has no client email")
	}

	msg, err := mailer.RenderReminder(c, now)
	if err != nil {
		return err
	}

	err = uc.sender.Send(ctx, msg)
	uc.metrics.Email("reminder", err)
	if err != nil {
		return err
	}

	if err := uc.repo.MarkReminderSent(ctx, id); err != nil {
		return fmt.Errorf("mark reminder sent: %w", err)
	}
	return nil
}
