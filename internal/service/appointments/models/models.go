package models

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid appointment status")
)

// UpdateStatusRequest запрос на обновление статуса записи
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// AppointmentResponse ответ с данными записи на приём
type AppointmentResponse struct {
	ID                int64   `json:"id"`
	PatientID         *int64  `json:"patientId,omitempty"`
	DoctorID          int64   `json:"doctorId"`
	RequesterName     string  `json:"requesterName"`
	DoctorName        string  `json:"doctorName"`
	AppointmentDate   string  `json:"appointmentDate"` // "2025-01-10"
	AppointmentTime   string  `json:"appointmentTime"` // "09:00"
	VisitReason       string  `json:"visitReason"`
	ConsultationNotes *string `json:"consultationNotes,omitempty"`
	Insurer           *string `json:"insurer,omitempty"`
	Price             *string `json:"price,omitempty"` // пусто для walk-in
	WalkIn            bool    `json:"walkIn"`
	Status            string  `json:"status"`
	CreatedAt         string  `json:"createdAt"`
	UpdatedAt         string  `json:"updatedAt"`
}

// FromDomainAppointment конвертирует domain модель в ответ
func FromDomainAppointment(a *domain.Appointment) *AppointmentResponse {
	resp := &AppointmentResponse{
		ID:                a.ID,
		PatientID:         a.PatientID,
		DoctorID:          a.DoctorID,
		RequesterName:     a.RequesterName,
		DoctorName:        a.DoctorName,
		AppointmentDate:   a.AppointmentDate.Format(domain.DateFormat),
		AppointmentTime:   a.AppointmentTime.String(),
		VisitReason:       a.VisitReason,
		ConsultationNotes: a.ConsultationNotes,
		Insurer:           a.Insurer,
		WalkIn:            a.IsWalkIn(),
		Status:            string(a.Status),
		CreatedAt:         a.CreatedAt.Format(time.RFC3339),
		UpdatedAt:         a.UpdatedAt.Format(time.RFC3339),
	}

	if a.Price.Valid {
		price := domain.FormatMoney(a.Price.Decimal)
		resp.Price = &price
	}

	return resp
}

// ToDomainStatus конвертирует строку в статус записи
func ToDomainStatus(s string) (domain.AppointmentStatus, error) {
	status := domain.AppointmentStatus(s)
	if !status.IsValid() {
		return "", ErrInvalidStatus
	}
	return status, nil
}
