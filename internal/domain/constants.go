package domain

// DateFormat формат даты приёма (YYYY-MM-DD)
const DateFormat = "2006-01-02"

// Event routing keys
const (
	EventAppointmentFinalized = "appointment.finalized"
)
