package appointment

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/barberpro/internal/domain/appointment"
	"github.com/BruksfildServices01/barberpro/internal/httperr"
	"github.com/BruksfildServices01/barberpro/internal/mailer"
	"github.com/BruksfildServices01/barberpro/internal/metrics"
	"github.com/BruksfildServices01/barberpro/internal/models"
	"github.com/BruksfildServices01/barberpro/internal/realtime"
	"github.com/BruksfildServices01/barberpro/internal/timezone"
)

var errDuplicate = fmt.Errorf("insert appointment: %w", gorm.ErrDuplicatedKey)

// sábado, 17/10/2026 10h em São Paulo
var testClock = timezone.FixedClock{T: time.Date(2026, 10, 17, 10, 0, 0, 0, timezone.Location("America/Sao_Paulo"))}

type recordingMail struct {
	mu   sync.Mutex
	sent []mailer.Confirmation
}

func (m *recordingMail) SendConfirmation(c mailer.Confirmation) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, c)
}

type fixture struct {
	repo    *fakeRepo
	barber  *models.Barber
	service *models.Service
	mail    *recordingMail
	hub     *realtime.MemoryHub
	uc      *BookAppointment
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	repo := newFakeRepo()
	barber := repo.addBarber(models.Barber{
		Name: "Rafa", WorkStartTime: "09:00", WorkEndTime: "18:00",
		WorkDays: []int{1, 2, 3, 4, 5, 6}, IsActive: true,
	})
	service := repo.addService(models.Service{Name: "Corte", Price: 45, DurationMinutes: 30, IsActive: true})

	mail := &recordingMail{}
	hub := realtime.NewMemoryHub()
	avail := NewGetAvailability(repo, testClock, 60)
	uc := NewBookAppointment(repo, avail, hub, mail, nil, metrics.New(prometheus.NewRegistry()), zerolog.Nop())

	return fixture{repo: repo, barber: barber, service: service, mail: mail, hub: hub, uc: uc}
}

func (f fixture) input(date, tm string) BookAppointmentInput {
	return BookAppointmentInput{
		ClientID:    uuid.New(),
		ServiceID:   f.service.ID,
		BarberID:    f.barber.ID,
		Date:        date,
		Time:        tm,
		ClientName:  "Ana Souza",
		ClientEmail: "ana@example.com",
		ClientPhone: "11999990000",
	}
}

func TestBookAppointmentSuccess(t *testing.T) {
	f := newFixture(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	feed, err := f.hub.Subscribe(ctx)
	require.NoError(t, err)

	ap, err := f.uc.Execute(ctx, f.input("2026-10-20", "10:00"))

	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusScheduled), ap.Status)
	assert.Equal(t, "Rafa", ap.Barber.Name)
	require.Len(t, f.repo.appointments, 1)

	require.Len(t, f.repo.notifications, 1)
	assert.Equal(t, "Novo agendamento: Ana Souza - Corte com Rafa em 20/10/2026 às 10:00", f.repo.notifications[0].Message)

	select {
	case n := <-feed:
		assert.Equal(t, f.repo.notifications[0].Message, n.Message)
	case <-time.After(time.Second):
		t.Fatal("notification not published")
	}

	require.Len(t, f.mail.sent, 1)
	assert.Equal(t, mailer.Confirmation{
		ClientName: "Ana Souza", ClientEmail: "ana@example.com",
		ServiceName: "Corte", BarberName: "Rafa", Date: "2026-10-20", Time: "10:00",
	}, f.mail.sent[0])
}

func TestBookAppointmentSecondBookingConflicts(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.uc.Execute(ctx, f.input("2026-10-20", "10:00"))
	require.NoError(t, err)

	// a agenda já marca o horário como ocupado: conflito, não validação
	_, err = f.uc.Execute(ctx, f.input("2026-10-20", "10:00"))
	assert.True(t, httperr.IsBusiness(err, domain.CodeSlotTaken), "got %v", err)
	assert.Equal(t, metrics.BookingConflict, bookingResult(err))

	assert.Len(t, f.repo.appointments, 1)
	assert.Len(t, f.mail.sent, 1)
}

func TestBookAppointmentGuardCatchesRace(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	// outra requisição grava entre a guarda e o insert
	in := f.input("2026-10-20", "11:00")
	racer := f.input("2026-10-20", "11:00")
	f.repo.beforeCreate = func() {
		f.repo.beforeCreate = nil
		_, err := f.uc.Execute(ctx, racer)
		require.NoError(t, err)
	}

	_, err := f.uc.Execute(ctx, in)
	assert.True(t, httperr.IsBusiness(err, domain.CodeSlotTaken), "got %v", err)
	assert.Len(t, f.repo.appointments, 1)
	assert.Len(t, f.repo.notifications, 1)
}

func TestBookAppointmentGuardLookupFailure(t *testing.T) {
	f := newFixture(t)
	f.repo.findErr = errors.New("connection refused")

	_, err := f.uc.Execute(context.Background(), f.input("2026-10-20", "10:00"))

	assert.True(t, httperr.IsBusiness(err, domain.CodeAvailabilityCheckFailed), "got %v", err)
	assert.Empty(t, f.repo.appointments)
	assert.Empty(t, f.mail.sent)
}

func TestBookAppointmentInsertFailure(t *testing.T) {
	f := newFixture(t)
	f.repo.createErr = errors.New("disk full")

	_, err := f.uc.Execute(context.Background(), f.input("2026-10-20", "10:00"))

	assert.True(t, httperr.IsBusiness(err, domain.CodeInsertFailed), "got %v", err)
	assert.Empty(t, f.mail.sent)
}

func TestBookAppointmentUniqueViolationIsSlotTaken(t *testing.T) {
	f := newFixture(t)
	f.repo.createErr = errDuplicate

	_, err := f.uc.Execute(context.Background(), f.input("2026-10-20", "10:00"))

	assert.True(t, httperr.IsBusiness(err, domain.CodeSlotTaken), "got %v", err)
}

func TestBookAppointmentValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	tests := []struct {
		name string
		edit func(*BookAppointmentInput)
		code string
	}{
		{"no service", func(in *BookAppointmentInput) { in.ServiceID = uuid.Nil }, domain.CodeMissingSelection},
		{"no barber", func(in *BookAppointmentInput) { in.BarberID = uuid.Nil }, domain.CodeMissingSelection},
		{"no time", func(in *BookAppointmentInput) { in.Time = "" }, domain.CodeMissingSelection},
		{"unknown service", func(in *BookAppointmentInput) { in.ServiceID = uuid.New() }, domain.CodeServiceNotFound},
		{"unknown barber", func(in *BookAppointmentInput) { in.BarberID = uuid.New() }, domain.CodeBarberNotFound},
		{"bad date", func(in *BookAppointmentInput) { in.Date = "20/10/2026" }, domain.CodeInvalidDate},
		{"bad time", func(in *BookAppointmentInput) { in.Time = "10h" }, domain.CodeInvalidTime},
		{"past date", func(in *BookAppointmentInput) { in.Date = "2026-10-16" }, domain.CodeDateInPast},
		{"sunday", func(in *BookAppointmentInput) { in.Date = "2026-10-18" }, domain.CodeNotAWorkDay},
		{"too far", func(in *BookAppointmentInput) { in.Date = "2027-01-05" }, domain.CodeBeyondBookingWindow},
		{"off grid", func(in *BookAppointmentInput) { in.Time = "10:15" }, domain.CodeSlotUnavailable},
		{"after hours", func(in *BookAppointmentInput) { in.Time = "18:00" }, domain.CodeSlotUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := f.input("2026-10-20", "10:00")
			tt.edit(&in)

			_, err := f.uc.Execute(ctx, in)
			assert.True(t, httperr.IsBusiness(err, tt.code), "got %v", err)
		})
	}

	assert.Empty(t, f.repo.appointments)
}

func TestBookAppointmentInactiveBarber(t *testing.T) {
	f := newFixture(t)
	f.repo.barbers[f.barber.ID].IsActive = false

	_, err := f.uc.Execute(context.Background(), f.input("2026-10-20", "10:00"))
	assert.True(t, httperr.IsBusiness(err, domain.CodeBarberNotFound))
}

func TestBookAppointmentCancelledSlotIsFreeAgain(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	ap, err := f.uc.Execute(ctx, f.input("2026-10-20", "10:00"))
	require.NoError(t, err)

	_, err = NewCancelAppointment(f.repo, testClock, nil).Execute(ctx, uuid.New(), ap.ID)
	require.NoError(t, err)

	_, err = f.uc.Execute(ctx, f.input("2026-10-20", "10:00"))
	require.NoError(t, err)
	assert.Len(t, f.repo.appointments, 2)
}

func TestClientDisplayName(t *testing.T) {
	assert.Equal(t, "Ana", ClientDisplayName("  Ana ", "x@y.com"))
	assert.Equal(t, "joao.silva", ClientDisplayName("", "joao.silva@example.com"))
	assert.Equal(t, "Cliente", ClientDisplayName("", ""))
	assert.Equal(t, "Cliente", ClientDisplayName("", "@example.com"))
}

func TestBookingResult(t *testing.T) {
	assert.Equal(t, metrics.BookingCreated, bookingResult(nil))
	assert.Equal(t, metrics.BookingConflict, bookingResult(httperr.ErrBusiness(domain.CodeSlotTaken)))
	assert.Equal(t, metrics.BookingFailed, bookingResult(httperr.Wrap(domain.CodeInsertFailed, errors.New("x"))))
	assert.Equal(t, metrics.BookingFailed, bookingResult(errors.New("x")))
	assert.Equal(t, metrics.BookingRejected, bookingResult(httperr.ErrBusiness(domain.CodeDateInPast)))
}

// stuckHub simula um Redis que não responde: só volta quando ctx expira.
type stuckHub struct {
	realtime.Hub
	hadDeadline bool
}

func (h *stuckHub) Publish(ctx context.Context, _ models.Notification) error {
	_, h.hadDeadline = ctx.Deadline()
	<-ctx.Done()
	return ctx.Err()
}

func TestBookAppointmentSlowHubDoesNotHoldResponse(t *testing.T) {
	f := newFixture(t)
	hub := &stuckHub{}
	f.uc.hub = hub
	f.uc.publishTimeout = 20 * time.Millisecond

	start := time.Now()
	ap, err := f.uc.Execute(context.Background(), f.input("2026-10-20", "10:00"))

	require.NoError(t, err)
	assert.NotNil(t, ap)
	assert.True(t, hub.hadDeadline)
	assert.Less(t, time.Since(start), time.Second)
	assert.Len(t, f.mail.sent, 1)
}
