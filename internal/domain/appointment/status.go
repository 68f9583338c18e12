package appointment

import "github.com/BruksfildServices01/barberpro/internal/httperr"

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusScheduled Status = "scheduled"
	StatusCancelled Status = "cancelled"
	StatusCompleted Status = "completed"
)

// ===============================
// Validations
// ===============================

// CanCancel define se um agendamento pode ser cancelado
func CanCancel(current Status) error {
	if current != StatusScheduled {
		return httperr.ErrBusiness(CodeInvalidState)
	}
	return nil
}

func InitialStatus() Status {
	return StatusScheduled
}

// DerivedStatus é o status exibido nos painéis. "completed" não é gravado por
// nenhum job: é inferido quando a data já passou e o agendamento não foi cancelado.
// date e today no formato YYYY-MM-DD.
func DerivedStatus(stored Status, date, today string) Status {
	switch {
	case stored == StatusCancelled:
		return StatusCancelled
	case stored == StatusCompleted || date < today:
		return StatusCompleted
	default:
		return StatusScheduled
	}
}

// IsUpcoming: hoje conta como próximo.
func IsUpcoming(date, today string) bool {
	return date >= today
}
