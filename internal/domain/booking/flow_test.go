package booking

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/barberpro/internal/domain/appointment"
	"github.com/BruksfildServices01/barberpro/internal/httperr"
)

func availability(barberID uuid.UUID, date string, free ...string) *appointment.Availability {
	a := &appointment.Availability{BarberID: barberID, Date: date}
	a.Slots = append(a.Slots, appointment.SlotStatus{Time: "09:00", Available: false})
	for _, t := range free {
		a.Slots = append(a.Slots, appointment.SlotStatus{Time: t, Available: true})
	}
	return a
}

func readyToConfirm(t *testing.T) (*Flow, uuid.UUID) {
	t.Helper()
	f := NewFlow()
	barber := uuid.New()
	require.NoError(t, f.SelectService(uuid.New()))
	require.NoError(t, f.SelectBarber(barber))
	require.NoError(t, f.SelectDateTime("2026-10-20", "10:00", availability(barber, "2026-10-20", "10:00")))
	return f, barber
}

func TestFlowHappyPath(t *testing.T) {
	f, barber := readyToConfirm(t)
	assert.Equal(t, Confirming, f.Stage())

	var got Selection
	err := f.Submit(context.Background(), func(_ context.Context, s Selection) error {
		got = s
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, Submitted, f.Stage())
	assert.Equal(t, barber, got.BarberID)
	assert.Equal(t, "2026-10-20", got.Date)
	assert.Equal(t, "10:00", got.Time)
}

func TestFlowRejectsMissingSelections(t *testing.T) {
	f := NewFlow()

	err := f.SelectService(uuid.Nil)
	assert.True(t, httperr.IsBusiness(err, appointment.CodeMissingSelection))
	assert.Equal(t, SelectingService, f.Stage())

	require.NoError(t, f.SelectService(uuid.New()))
	err = f.SelectBarber(uuid.Nil)
	assert.True(t, httperr.IsBusiness(err, appointment.CodeMissingSelection))
	assert.Equal(t, SelectingBarber, f.Stage())
}

func TestFlowCannotSkipStages(t *testing.T) {
	f := NewFlow()

	err := f.SelectDateTime("2026-10-20", "10:00", nil)
	assert.True(t, httperr.IsBusiness(err, appointment.CodeInvalidState))

	err = f.Submit(context.Background(), func(context.Context, Selection) error { return nil })
	assert.True(t, httperr.IsBusiness(err, appointment.CodeInvalidState))
	assert.Equal(t, SelectingService, f.Stage())
}

func TestFlowRejectsTakenSlot(t *testing.T) {
	f := NewFlow()
	barber := uuid.New()
	require.NoError(t, f.SelectService(uuid.New()))
	require.NoError(t, f.SelectBarber(barber))

	avail := availability(barber, "2026-10-20", "10:00")

	// 09:00 está na grade mas já reservado
	err := f.SelectDateTime("2026-10-20", "09:00", avail)
	assert.True(t, httperr.IsBusiness(err, appointment.CodeSlotTaken))

	err = f.SelectDateTime("2026-10-20", "11:00", avail)
	assert.True(t, httperr.IsBusiness(err, appointment.CodeSlotUnavailable))

	err = f.SelectDateTime("2026-10-20", "", avail)
	assert.True(t, httperr.IsBusiness(err, appointment.CodeMissingSelection))

	assert.Equal(t, SelectingDateTime, f.Stage())
}

func TestFlowDisabledDayReportsReason(t *testing.T) {
	f := NewFlow()
	barber := uuid.New()
	require.NoError(t, f.SelectService(uuid.New()))
	require.NoError(t, f.SelectBarber(barber))

	avail := &appointment.Availability{
		BarberID: barber,
		Date:     "2026-10-18",
		Disabled: true,
		Reason:   appointment.CodeNotAWorkDay,
	}

	err := f.SelectDateTime("2026-10-18", "10:00", avail)
	assert.True(t, httperr.IsBusiness(err, appointment.CodeNotAWorkDay))
}

func TestFlowSubmitFailureKeepsConfirming(t *testing.T) {
	f, _ := readyToConfirm(t)
	boom := httperr.ErrBusiness(appointment.CodeSlotTaken)

	err := f.Submit(context.Background(), func(context.Context, Selection) error { return boom })

	assert.True(t, errors.Is(err, boom))
	assert.Equal(t, Confirming, f.Stage())

	require.NoError(t, f.Submit(context.Background(), func(context.Context, Selection) error { return nil }))
	assert.Equal(t, Submitted, f.Stage())
}

func TestFlowBack(t *testing.T) {
	f, _ := readyToConfirm(t)

	f.Back()
	assert.Equal(t, SelectingDateTime, f.Stage())
	f.Back()
	assert.Equal(t, SelectingBarber, f.Stage())
	f.Back()
	assert.Equal(t, SelectingService, f.Stage())
	f.Back()
	assert.Equal(t, SelectingService, f.Stage())
}

func TestFlowBackAfterSubmitIsNoop(t *testing.T) {
	f, _ := readyToConfirm(t)
	require.NoError(t, f.Submit(context.Background(), func(context.Context, Selection) error { return nil }))

	f.Back()
	assert.Equal(t, Submitted, f.Stage())
}
