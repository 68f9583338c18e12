package appointment

import "github.com/google/uuid"

type AvailabilityInput struct {
	BarberID uuid.UUID
	Date     string // YYYY-MM-DD
}

type SlotStatus struct {
	Time      string `json:"time"`
	Available bool   `json:"available"`
}

// Availability é a agenda de um barbeiro em um dia. Disabled indica que o
// dia inteiro está bloqueado; nesse caso Slots vem vazio e Reason traz o código.
type Availability struct {
	BarberID uuid.UUID    `json:"barber_id"`
	Date     string       `json:"date"`
	Disabled bool         `json:"disabled"`
	Reason   string       `json:"reason,omitempty"`
	Slots    []SlotStatus `json:"slots"`
}

// Slot procura o horário na agenda; ok=false quando ele não faz parte da
// grade do dia (fora do expediente, desalinhado ou dia bloqueado).
func (a *Availability) Slot(t string) (SlotStatus, bool) {
	if a == nil || a.Disabled {
		return SlotStatus{}, false
	}
	t = NormalizeTime(t)
	for _, s := range a.Slots {
		if s.Time == t {
			return s, true
		}
	}
	return SlotStatus{}, false
}

// IsBookable diz se o horário aparece na agenda e está livre.
func (a *Availability) IsBookable(t string) bool {
	s, ok := a.Slot(t)
	return ok && s.Available
}
