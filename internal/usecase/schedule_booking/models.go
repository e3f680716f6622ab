package schedule_booking

import "github.com/m04kA/SMC-AppointmentService/internal/domain"

// Request модель формы записи к врачу
type Request struct {
	SessionID string           `validate:"required"`
	DoctorID  int64            `validate:"gt=0"`
	Principal domain.Principal // Пользователь, отправивший форму

	RequesterName     string `validate:"required,max=120"`
	DateOfBirth       string `validate:"omitempty,datetime=2006-01-02"`
	NationalID        string `validate:"required,max=32"`
	Phone             string `validate:"required,max=32"`
	ConsultationNotes string `validate:"max=1000"`
	VisitReason       string `validate:"required,max=500"`
	Insurer           string `validate:"max=120"`
	RequestedDate     string `validate:"required,datetime=2006-01-02"` // "2025-01-10"
	RequestedTime     string `validate:"required,datetime=15:04"`      // "09:00"
}

// Response модель ответа: рассчитанная стоимость сохранённого черновика
type Response struct {
	DoctorID   int64
	DoctorName string
	Commission string
	Discount   string
	FinalPrice string
}
