// Command reminders envia os lembretes dos agendamentos de amanhã.
// Feito para rodar uma vez por dia via cron.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/BruksfildServices01/barberpro/internal/audit"
	"github.com/BruksfildServices01/barberpro/internal/config"
	dbpkg "github.com/BruksfildServices01/barberpro/internal/db"
	infraRepo "github.com/BruksfildServices01/barberpro/internal/infra/repository"
	"github.com/BruksfildServices01/barberpro/internal/logger"
	"github.com/BruksfildServices01/barberpro/internal/mailer"
	"github.com/BruksfildServices01/barberpro/internal/timezone"
	ucAppointment "github.com/BruksfildServices01/barberpro/internal/usecase/appointment"
)

func main() {
	cfg := config.Load()
	log := logger.New(cfg.LogLevel, cfg.LogPretty)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db := dbpkg.NewDB(cfg, log)

	auditDispatcher := audit.NewDispatcher(audit.New(db), log)
	defer auditDispatcher.Close()

	uc := ucAppointment.NewSendReminders(
		infraRepo.NewAppointmentGormRepository(db),
		mailer.NewSender(cfg.ResendAPIKey, cfg.ResendBaseURL, cfg.EmailFrom, log),
		timezone.NewShopClock(cfg.Timezone),
		auditDispatcher,
		nil,
		log,
	)

	report, err := uc.Execute(ctx)
	if err != nil {
		log.Error().Err(err).Msg("reminders failed")
		auditDispatcher.Close()
		os.Exit(1)
	}

	log.Info().
		Str("date", report.Date).
		Int("processed", report.Processed).
		Int("sent", report.Sent).
		Msg("reminders done")
}
