package models

import "github.com/m04kA/SMC-AppointmentService/internal/domain"

// DoctorResponse карточка врача в каталоге
type DoctorResponse struct {
	ID                int64  `json:"id"`
	FullName          string `json:"fullName"`
	Specialty         string `json:"specialty"`
	ConsultationPrice string `json:"consultationPrice"` // "100.00"
	FinalPrice        string `json:"finalPrice"`        // с комиссией, без купона
	Recommended       bool   `json:"recommended"`
	AcceptingPatients bool   `json:"acceptingPatients"`
}

// FromDomainDoctor конвертирует domain модель в ответ
func FromDomainDoctor(d *domain.Doctor) DoctorResponse {
	quote := domain.ComputePrice(d.ConsultationPrice(), d.Recommended, false)
	return DoctorResponse{
		ID:                d.ID,
		FullName:          d.FullName,
		Specialty:         d.Specialty,
		ConsultationPrice: domain.FormatMoney(d.ConsultationPrice()),
		FinalPrice:        domain.FormatMoney(quote.FinalPrice),
		Recommended:       d.Recommended,
		AcceptingPatients: d.AcceptingPatients,
	}
}
