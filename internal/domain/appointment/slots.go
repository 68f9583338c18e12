package appointment

import (
	"time"

	"github.com/BruksfildServices01/barberpro/internal/httperr"
	"github.com/BruksfildServices01/barberpro/internal/timezone"
)

// SlotStep é a largura fixa de cada horário oferecido.
const SlotStep = 30 * time.Minute

const DateLayout = "2006-01-02"

// GenerateSlots devolve start, start+step, ... enquanto t < end.
// O próprio end nunca entra; start >= end produz lista vazia.
func GenerateSlots(start, end TimeOfDay, step time.Duration) []TimeOfDay {
	if step < time.Minute || start >= end {
		return []TimeOfDay{}
	}

	slots := make([]TimeOfDay, 0, int(end-start)/int(step/time.Minute)+1)
	for t := start; t < end; t = t.Add(step) {
		slots = append(slots, t)
	}
	return slots
}

// MarkAvailability marca cada slot como livre ou ocupado sem removê-lo,
// para que o cliente veja o formato completo da agenda.
func MarkAvailability(slots []TimeOfDay, booked []string) []SlotStatus {
	taken := make(map[string]struct{}, len(booked))
	for _, b := range booked {
		taken[NormalizeTime(b)] = struct{}{}
	}

	out := make([]SlotStatus, 0, len(slots))
	for _, s := range slots {
		label := s.String()
		_, isTaken := taken[label]
		out = append(out, SlotStatus{Time: label, Available: !isTaken})
	}
	return out
}

// ISOWeekday: 1=segunda .. 7=domingo (time.Sunday=0 vira 7).
func ISOWeekday(d time.Time) int {
	wd := int(d.Weekday())
	if wd == 0 {
		return 7
	}
	return wd
}

func worksOn(workDays []int, weekday int) bool {
	for _, d := range workDays {
		if d == weekday {
			return true
		}
	}
	return false
}

// CheckDate decide se uma data pode receber agendamentos. A comparação é por
// dia de calendário no fuso de today. windowDays <= 0 desliga o limite futuro.
func CheckDate(date, today time.Time, workDays []int, windowDays int) error {
	// date vem do parse (UTC): mesmo dia civil, no fuso da barbearia
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, today.Location())
	start := timezone.StartOfDay(today)

	if day.Before(start) {
		return httperr.ErrBusiness(CodeDateInPast)
	}
	if !worksOn(workDays, ISOWeekday(day)) {
		return httperr.ErrBusiness(CodeNotAWorkDay)
	}
	if windowDays > 0 && day.After(start.AddDate(0, 0, windowDays)) {
		return httperr.ErrBusiness(CodeBeyondBookingWindow)
	}
	return nil
}
