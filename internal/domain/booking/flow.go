package booking

import (
	"context"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/barberpro/internal/domain/appointment"
	"github.com/BruksfildServices01/barberpro/internal/httperr"
)

// ---------- Stages ----------

type Stage int

const (
	SelectingService Stage = iota
	SelectingBarber
	SelectingDateTime
	Confirming
	Submitted
)

func (s Stage) String() string {
	switch s {
	case SelectingService:
		return "selecting_service"
	case SelectingBarber:
		return "selecting_barber"
	case SelectingDateTime:
		return "selecting_datetime"
	case Confirming:
		return "confirming"
	case Submitted:
		return "submitted"
	}
	return "unknown"
}

type Selection struct {
	ServiceID uuid.UUID
	BarberID  uuid.UUID
	Date      string // YYYY-MM-DD
	Time      string // HH:MM
}

// ---------- Flow ----------

// Flow conduz uma reserva pelas etapas serviço → barbeiro → data/hora →
// confirmação. Só avança com seleção válida; Back volta uma etapa.
// Não é seguro para uso concorrente: cada requisição monta o seu.
type Flow struct {
	stage   Stage
	history []Stage
	sel     Selection
}

func NewFlow() *Flow {
	return &Flow{stage: SelectingService}
}

func (f *Flow) Stage() Stage         { return f.stage }
func (f *Flow) Selection() Selection { return f.sel }

func (f *Flow) goTo(to Stage) {
	f.history = append(f.history, f.stage)
	f.stage = to
}

// Back volta para a etapa anterior. Depois de Submitted não há volta.
func (f *Flow) Back() {
	if f.stage == Submitted {
		return
	}
	if n := len(f.history); n > 0 {
		f.stage = f.history[n-1]
		f.history = f.history[:n-1]
		return
	}
	f.stage = SelectingService
}

func (f *Flow) expect(s Stage) error {
	if f.stage != s {
		return httperr.ErrBusiness(appointment.CodeInvalidState)
	}
	return nil
}

func (f *Flow) SelectService(id uuid.UUID) error {
	if err := f.expect(SelectingService); err != nil {
		return err
	}
	if id == uuid.Nil {
		return httperr.ErrBusiness(appointment.CodeMissingSelection)
	}
	f.sel.ServiceID = id
	f.goTo(SelectingBarber)
	return nil
}

func (f *Flow) SelectBarber(id uuid.UUID) error {
	if err := f.expect(SelectingBarber); err != nil {
		return err
	}
	if id == uuid.Nil {
		return httperr.ErrBusiness(appointment.CodeMissingSelection)
	}
	f.sel.BarberID = id
	f.goTo(SelectingDateTime)
	return nil
}

// SelectDateTime exige serviço e barbeiro já escolhidos e um horário livre
// na agenda informada. Dia bloqueado devolve o motivo do bloqueio; horário
// da grade já reservado devolve slot_taken.
func (f *Flow) SelectDateTime(date, t string, avail *appointment.Availability) error {
	if err := f.expect(SelectingDateTime); err != nil {
		return err
	}
	if f.sel.ServiceID == uuid.Nil || f.sel.BarberID == uuid.Nil || date == "" || t == "" {
		return httperr.ErrBusiness(appointment.CodeMissingSelection)
	}

	if avail == nil || avail.Date != date || avail.BarberID != f.sel.BarberID {
		return httperr.ErrBusiness(appointment.CodeSlotUnavailable)
	}
	if avail.Disabled && avail.Reason != "" {
		return httperr.ErrBusiness(avail.Reason)
	}
	slot, ok := avail.Slot(t)
	if !ok {
		return httperr.ErrBusiness(appointment.CodeSlotUnavailable)
	}
	if !slot.Available {
		return httperr.ErrBusiness(appointment.CodeSlotTaken)
	}

	f.sel.Date = date
	f.sel.Time = appointment.NormalizeTime(t)
	f.goTo(Confirming)
	return nil
}

// Submit persiste via persist. Em caso de erro a etapa continua Confirming
// para que o cliente possa tentar de novo ou voltar.
func (f *Flow) Submit(ctx context.Context, persist func(context.Context, Selection) error) error {
	if err := f.expect(Confirming); err != nil {
		return err
	}
	if err := persist(ctx, f.sel); err != nil {
		return err
	}
	f.goTo(Submitted)
	return nil
}
