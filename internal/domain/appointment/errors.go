package appointment

// Códigos de erro de negócio do fluxo de agendamento.
const (
	// validação (nenhuma chamada ao backend é feita)
	CodeMissingSelection    = "missing_selection"
	CodeInvalidDate         = "invalid_date"
	CodeInvalidTime         = "invalid_time"
	CodeDateInPast          = "date_in_past"
	CodeNotAWorkDay         = "not_a_work_day"
	CodeBeyondBookingWindow = "beyond_booking_window"
	CodeSlotUnavailable     = "slot_unavailable"
	CodeServiceNotFound     = "service_not_found"
	CodeBarberNotFound      = "barber_not_found"

	// guarda de conflito / persistência
	CodeAvailabilityCheckFailed = "availability_check_failed"
	CodeSlotTaken               = "slot_taken"
	CodeInsertFailed            = "insert_failed"

	CodeAppointmentNotFound = "appointment_not_found"
	CodeInvalidState        = "invalid_state"
)
