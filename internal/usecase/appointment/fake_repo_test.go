package appointment

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	domain "github.com/BruksfildServices01/barberpro/internal/domain/appointment"
	"github.com/BruksfildServices01/barberpro/internal/httperr"
	"github.com/BruksfildServices01/barberpro/internal/models"
)

// fakeRepo guarda tudo em memória. Os campos *Err forçam falhas.
type fakeRepo struct {
	mu sync.Mutex

	barbers       map[uuid.UUID]*models.Barber
	services      map[uuid.UUID]*models.Service
	appointments  []*models.Appointment
	notifications []*models.Notification
	reminded      []uuid.UUID

	findErr   error
	createErr error
	listErr   error

	// simula outra requisição gravando entre a guarda e o insert
	beforeCreate func()
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		barbers:  map[uuid.UUID]*models.Barber{},
		services: map[uuid.UUID]*models.Service{},
	}
}

func (r *fakeRepo) addBarber(b models.Barber) *models.Barber {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	r.barbers[b.ID] = &b
	return &b
}

func (r *fakeRepo) addService(s models.Service) *models.Service {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	r.services[s.ID] = &s
	return &s
}

func (r *fakeRepo) ListActiveBarbers(context.Context) ([]models.Barber, error) {
	var out []models.Barber
	for _, b := range r.barbers {
		if b.IsActive {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (r *fakeRepo) ListActiveServices(context.Context) ([]models.Service, error) {
	var out []models.Service
	for _, s := range r.services {
		if s.IsActive {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (r *fakeRepo) GetBarber(_ context.Context, id uuid.UUID) (*models.Barber, error) {
	if b, ok := r.barbers[id]; ok {
		cp := *b
		return &cp, nil
	}
	return nil, httperr.ErrBusiness(domain.CodeBarberNotFound)
}

func (r *fakeRepo) GetService(_ context.Context, id uuid.UUID) (*models.Service, error) {
	if s, ok := r.services[id]; ok {
		cp := *s
		return &cp, nil
	}
	return nil, httperr.ErrBusiness(domain.CodeServiceNotFound)
}

func (r *fakeRepo) active(barberID uuid.UUID, date string) []*models.Appointment {
	var out []*models.Appointment
	for _, ap := range r.appointments {
		if ap.BarberID == barberID && ap.AppointmentDate == date && ap.Status != string(domain.StatusCancelled) {
			out = append(out, ap)
		}
	}
	return out
}

func (r *fakeRepo) ListBookedTimes(_ context.Context, barberID uuid.UUID, date string) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.listErr != nil {
		return nil, r.listErr
	}
	var out []string
	for _, ap := range r.active(barberID, date) {
		out = append(out, ap.AppointmentTime)
	}
	sort.Strings(out)
	return out, nil
}

func (r *fakeRepo) FindAppointment(_ context.Context, barberID uuid.UUID, date, t string) (*models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.findErr != nil {
		return nil, r.findErr
	}
	for _, ap := range r.active(barberID, date) {
		if ap.AppointmentTime == t {
			cp := *ap
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeRepo) CreateAppointment(_ context.Context, ap *models.Appointment, n *models.Notification) error {
	if r.beforeCreate != nil {
		r.beforeCreate()
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	for _, other := range r.active(ap.BarberID, ap.AppointmentDate) {
		if other.AppointmentTime == ap.AppointmentTime {
			return errDuplicate
		}
	}

	ap.ID = uuid.New()
	cp := *ap
	r.appointments = append(r.appointments, &cp)
	if n != nil {
		n.ID = uuid.New()
		n.AppointmentID = &cp.ID
		r.notifications = append(r.notifications, n)
	}
	return nil
}

func (r *fakeRepo) GetAppointment(_ context.Context, id uuid.UUID) (*models.Appointment, error) {
	for _, ap := range r.appointments {
		if ap.ID == id {
			cp := *ap
			return &cp, nil
		}
	}
	return nil, httperr.ErrBusiness(domain.CodeAppointmentNotFound)
}

func (r *fakeRepo) UpdateAppointment(_ context.Context, ap *models.Appointment) error {
	for i, existing := range r.appointments {
		if existing.ID == ap.ID {
			cp := *ap
			r.appointments[i] = &cp
			return nil
		}
	}
	return httperr.ErrBusiness(domain.CodeAppointmentNotFound)
}

func (r *fakeRepo) withRefs(ap *models.Appointment) models.Appointment {
	cp := *ap
	cp.Barber = r.barbers[ap.BarberID]
	cp.Service = r.services[ap.ServiceID]
	return cp
}

func (r *fakeRepo) ListAppointmentsForClient(_ context.Context, clientID uuid.UUID) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, ap := range r.appointments {
		if ap.ClientID == clientID {
			out = append(out, r.withRefs(ap))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].AppointmentDate+out[i].AppointmentTime < out[j].AppointmentDate+out[j].AppointmentTime
	})
	return out, nil
}

func (r *fakeRepo) ListAppointments(_ context.Context, f domain.ListFilter) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, ap := range r.appointments {
		if f.FromDate != "" && ap.AppointmentDate < f.FromDate {
			continue
		}
		if f.ToDate != "" && ap.AppointmentDate >= f.ToDate {
			continue
		}
		if f.BarberID != nil && ap.BarberID != *f.BarberID {
			continue
		}
		out = append(out, r.withRefs(ap))
	}
	return out, nil
}

func (r *fakeRepo) ListReminderCandidates(_ context.Context, date string) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, ap := range r.appointments {
		if ap.AppointmentDate == date && ap.Status == string(domain.StatusScheduled) && !ap.ReminderEmailSent {
			out = append(out, r.withRefs(ap))
		}
	}
	return out, nil
}

func (r *fakeRepo) MarkReminderSent(_ context.Context, id uuid.UUID) error {
	for _, ap := range r.appointments {
		if ap.ID == id {
			ap.ReminderEmailSent = true
			r.reminded = append(r.reminded, id)
		}
	}
	return nil
}

var _ domain.Repository = (*fakeRepo)(nil)
