package payment_success

import "github.com/m04kA/SMC-AppointmentService/internal/service/appointments/models"

// SuccessResponse HTTP response model
// Appointment пуст, если запись уже была создана и её не удалось прочитать
type SuccessResponse struct {
	AlreadyRegistered bool                        `json:"alreadyRegistered"`
	Appointment       *models.AppointmentResponse `json:"appointment,omitempty"`
}
