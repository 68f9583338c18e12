package mailer

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/BruksfildServices01/barberpro/internal/metrics"
)

// Dispatcher envia confirmações em segundo plano. O agendamento já está
// gravado quando a confirmação entra na fila: falhas aqui só viram log.
type Dispatcher struct {
	sender  Sender
	log     zerolog.Logger
	metrics *metrics.Metrics
	timeout time.Duration
	now     func() time.Time

	queue chan Confirmation
	wg    sync.WaitGroup
	once  sync.Once
}

func NewDispatcher(sender Sender, log zerolog.Logger, m *metrics.Metrics, size int) *Dispatcher {
	if size <= 0 {
		size = 100
	}
	d := &Dispatcher{
		sender:  sender,
		log:     log.With().Str("component", "mailer").Logger(),
		metrics: m,
		timeout: 15 * time.Second,
		now:     time.Now,
		queue:   make(chan Confirmation, size),
	}

	d.wg.Add(1)
	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer d.wg.Done()
	for c := range d.queue {
		d.deliver(c)
	}
}

func (d *Dispatcher) deliver(c Confirmation) {
	msg, err := RenderConfirmation(c, d.now())
	if err != nil {
		d.log.Error().Err(err).Msg("render confirmation")
		d.metrics.Email("confirmation", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
	defer cancel()

	err = d.sender.Send(ctx, msg)
	d.metrics.Email("confirmation", err)
	if err != nil {
		d.log.Error().Err(err).Str("to", c.ClientEmail).Msg("confirmation email failed")
		return
	}
	d.log.Info().Str("to", c.ClientEmail).Str("date", c.Date).Str("time", c.Time).Msg("confirmation email sent")
}

// SendConfirmation nunca bloqueia: fila cheia descarta o e-mail.
func (d *Dispatcher) SendConfirmation(c Confirmation) {
	if c.ClientEmail == "" {
		return
	}
	select {
	case d.queue <- c:
	default:
		d.metrics.EmailDropped()
		d.log.Warn().Str("to", c.ClientEmail).Msg("email queue full, dropping confirmation")
	}
}

// Close drena a fila e espera os envios pendentes.
func (d *Dispatcher) Close() {
	d.once.Do(func() { close(d.queue) })
	d.wg.Wait()
}
