package audit

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type Event struct {
	UserID   *uuid.UUID
	Action   string
	Entity   string
	EntityID *uuid.UUID
	Metadata any
}

type sink interface {
	Log(ctx context.Context, ev Event) error
}

// Dispatcher grava eventos em segundo plano. Um Dispatcher nil descarta tudo.
type Dispatcher struct {
	sink  sink
	log   zerolog.Logger
	queue chan Event
	wg    sync.WaitGroup
	once  sync.Once
}

func NewDispatcher(logger *Logger, log zerolog.Logger) *Dispatcher {
	return newDispatcher(logger, log, 100)
}

func newDispatcher(s sink, log zerolog.Logger, size int) *Dispatcher {
	d := &Dispatcher{
		sink:  s,
		log:   log.With().Str("component", "audit").Logger(),
		queue: make(chan Event, size),
	}

	d.wg.Add(1)
	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer d.wg.Done()
	for ev := range d.queue {
		if err := d.sink.Log(context.Background(), ev); err != nil {
			d.log.Error().Err(err).Str("action", ev.Action).Msg("audit write failed")
		}
	}
}

func (d *Dispatcher) Dispatch(ev Event) {
	if d == nil {
		return
	}
	select {
	case d.queue <- ev:
		// enviado
	default:
		// fila cheia → descartamos audit (nunca quebrar API)
		d.log.Warn().Str("action", ev.Action).Msg("audit queue full, dropping event")
	}
}

// Close drena a fila e espera o worker terminar.
func (d *Dispatcher) Close() {
	if d == nil {
		return
	}
	d.once.Do(func() { close(d.queue) })
	d.wg.Wait()
}
