package timezone

import (
	"time"
	_ "time/tzdata"
)

const DefaultTimezone = "America/Sao_Paulo"

func IsValid(tz string) bool {
	if tz == "" {
		return false
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}

func Location(tz string) *time.Location {
	if IsValid(tz) {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}

	if loc, err := time.LoadLocation(DefaultTimezone); err == nil {
		return loc
	}
	return time.UTC
}

// StartOfDay devolve a meia-noite do dia de t, no fuso de t.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// ======================================================
// CLOCK
// ======================================================

type Clock interface {
	Now() time.Time
}

// ShopClock é o relógio da barbearia: hora atual no fuso configurado.
type ShopClock struct {
	loc *time.Location
}

func NewShopClock(tz string) ShopClock {
	return ShopClock{loc: Location(tz)}
}

func (c ShopClock) Now() time.Time {
	return time.Now().In(c.loc)
}

// FixedClock é usado em testes e jobs que precisam de um "agora" estável.
type FixedClock struct {
	T time.Time
}

func (c FixedClock) Now() time.Time {
	return c.T
}
