package dto

import "github.com/google/uuid"

// AppointmentListDTO é a linha exibida nos painéis. Status já vem derivado;
// BarberName/ServiceName são nulos quando o cadastro foi removido.
type AppointmentListDTO struct {
	ID           uuid.UUID `json:"id"`
	Date         string    `json:"appointment_date"`
	Time         string    `json:"appointment_time"`
	Status       string    `json:"status"`
	ClientName   string    `json:"client_name"`
	ClientEmail  string    `json:"client_email,omitempty"`
	ClientPhone  string    `json:"client_phone,omitempty"`
	BarberID     uuid.UUID `json:"barber_id"`
	BarberName   *string   `json:"barber_name"`
	ServiceName  *string   `json:"service_name"`
	ServicePrice *float64  `json:"service_price"`
}

type ClientAppointmentsDTO struct {
	Upcoming []AppointmentListDTO `json:"upcoming"`
	Past     []AppointmentListDTO `json:"past"`
}
