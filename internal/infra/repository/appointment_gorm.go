package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/barberpro/internal/domain/appointment"
	"github.com/BruksfildServices01/barberpro/internal/httperr"
	"github.com/BruksfildServices01/barberpro/internal/models"
)

type AppointmentGormRepository struct {
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

// notFound traduz ErrRecordNotFound no código de negócio do recurso.
func notFound(err error, code string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return httperr.ErrBusiness(code)
	}
	return err
}

// --------------------------------------------------
// Catalog
// --------------------------------------------------

func (r *AppointmentGormRepository) ListActiveBarbers(
	ctx context.Context,
) ([]models.Barber, error) {

	var barbers []models.Barber
	if err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("name ASC").
		Find(&barbers).Error; err != nil {
		return nil, err
	}
	return barbers, nil
}

func (r *AppointmentGormRepository) ListActiveServices(
	ctx context.Context,
) ([]models.Service, error) {

	var services []models.Service
	if err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("name ASC").
		Find(&services).Error; err != nil {
		return nil, err
	}
	return services, nil
}

func (r *AppointmentGormRepository) GetBarber(
	ctx context.Context,
	id uuid.UUID,
) (*models.Barber, error) {

	var barber models.Barber
	if err := r.db.WithContext(ctx).First(&barber, "id = ?", id).Error; err != nil {
		return nil, notFound(err, domain.CodeBarberNotFound)
	}
	return &barber, nil
}

func (r *AppointmentGormRepository) GetService(
	ctx context.Context,
	id uuid.UUID,
) (*models.Service, error) {

	var service models.Service
	if err := r.db.WithContext(ctx).First(&service, "id = ?", id).Error; err != nil {
		return nil, notFound(err, domain.CodeServiceNotFound)
	}
	return &service, nil
}

// --------------------------------------------------
// Availability
// --------------------------------------------------

func (r *AppointmentGormRepository) ListBookedTimes(
	ctx context.Context,
	barberID uuid.UUID,
	date string,
) ([]string, error) {

	var times []string
	if err := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where(
			"barber_id = ? AND appointment_date = ? AND status <> ?",
			barberID, date, string(domain.StatusCancelled),
		).
		Order("appointment_time ASC").
		Pluck("appointment_time", &times).Error; err != nil {
		return nil, err
	}
	return times, nil
}

func (r *AppointmentGormRepository) FindAppointment(
	ctx context.Context,
	barberID uuid.UUID,
	date string,
	t string,
) (*models.Appointment, error) {

	var apps []models.Appointment
	if err := r.db.WithContext(ctx).
		Where(
			"barber_id = ? AND appointment_date = ? AND appointment_time = ? AND status <> ?",
			barberID, date, t, string(domain.StatusCancelled),
		).
		Limit(1).
		Find(&apps).Error; err != nil {
		return nil, err
	}

	if len(apps) == 0 {
		return nil, nil
	}
	return &apps[0], nil
}

// --------------------------------------------------
// Appointment
// --------------------------------------------------

func (r *AppointmentGormRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
	notification *models.Notification,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(ap).Error; err != nil {
			return err
		}

		if notification == nil {
			return nil
		}
		notification.AppointmentID = &ap.ID
		return tx.Create(notification).Error
	})
}

func (r *AppointmentGormRepository) GetAppointment(
	ctx context.Context,
	id uuid.UUID,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Barber").
		Preload("Service").
		First(&ap, "id = ?", id).Error; err != nil {
		return nil, notFound(err, domain.CodeAppointmentNotFound)
	}
	return &ap, nil
}

func (r *AppointmentGormRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(ap).Error
}

// --------------------------------------------------
// Listings
// --------------------------------------------------

func (r *AppointmentGormRepository) ListAppointmentsForClient(
	ctx context.Context,
	clientID uuid.UUID,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Barber").
		Preload("Service").
		Where("client_id = ?", clientID).
		Order("appointment_date ASC, appointment_time ASC").
		Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

func (r *AppointmentGormRepository) ListAppointments(
	ctx context.Context,
	filter domain.ListFilter,
) ([]models.Appointment, error) {

	q := r.db.WithContext(ctx).
		Preload("Barber").
		Preload("Service")

	if filter.FromDate != "" {
		q = q.Where("appointment_date >= ?", filter.FromDate)
	}
	if filter.ToDate != "" {
		q = q.Where("appointment_date < ?", filter.ToDate)
	}
	if filter.BarberID != nil {
		q = q.Where("barber_id = ?", *filter.BarberID)
	}

	var apps []models.Appointment
	if err := q.
		Order("appointment_date ASC, appointment_time ASC").
		Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

// --------------------------------------------------
// Reminders
// --------------------------------------------------

func (r *AppointmentGormRepository) ListReminderCandidates(
	ctx context.Context,
	date string,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Barber").
		Preload("Service").
		Where(
			"appointment_date = ? AND status = ? AND reminder_email_sent = ?",
			date, string(domain.StatusScheduled), false,
		).
		Order("appointment_time ASC").
		Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

func (r *AppointmentGormRepository) MarkReminderSent(
	ctx context.Context,
	id uuid.UUID,
) error {
	return r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("id = ?", id).
		Update("reminder_email_sent", true).Error
}

// Compile-time check
var _ domain.Repository = (*AppointmentGormRepository)(nil)
