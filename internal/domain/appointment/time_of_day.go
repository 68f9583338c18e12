package appointment

import (
	"fmt"
	"strings"
	"time"
)

// TimeOfDay é um horário do dia em minutos desde a meia-noite.
type TimeOfDay int

// ParseTimeOfDay aceita "HH:MM" e "HH:MM:SS" (segundos são descartados).
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	s = strings.TrimSpace(s)
	layout := "15:04"
	if strings.Count(s, ":") == 2 {
		layout = "15:04:05"
	}
	t, err := time.Parse(layout, s)
	if err != nil {
		return 0, fmt.Errorf("invalid time of day %q: %w", s, err)
	}
	return TimeOfDay(t.Hour()*60 + t.Minute()), nil
}

func (t TimeOfDay) Add(d time.Duration) TimeOfDay {
	return t + TimeOfDay(d/time.Minute)
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", int(t)/60, int(t)%60)
}

// NormalizeTime converte "HH:MM:SS" em "HH:MM"; valores inválidos são devolvidos como vieram.
func NormalizeTime(s string) string {
	t, err := ParseTimeOfDay(s)
	if err != nil {
		return s
	}
	return t.String()
}
