package register_walkin

import "github.com/m04kA/SMC-AppointmentService/internal/domain"

// Request модель регистрации записи врачом без аккаунта пациента
type Request struct {
	Principal domain.Principal `json:"-"`

	RequesterName     string `json:"requesterName" validate:"required,max=120"`
	AppointmentDate   string `json:"appointmentDate" validate:"required,datetime=2006-01-02"`
	AppointmentTime   string `json:"appointmentTime" validate:"required,datetime=15:04"`
	VisitReason       string `json:"visitReason" validate:"max=500"`
	ConsultationNotes string `json:"consultationNotes" validate:"max=1000"`
}
