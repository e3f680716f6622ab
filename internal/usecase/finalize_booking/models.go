package finalize_booking

import "github.com/m04kA/SMC-AppointmentService/internal/domain"

// Request запрос финализации после возврата из платёжного шлюза
type Request struct {
	SessionID string
	Principal domain.Principal
}

// Response созданная или ранее зарегистрированная запись
type Response struct {
	Appointment *domain.Appointment
}
