package domain

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// AppointmentStatus статус записи на приём
type AppointmentStatus string

const (
	StatusUnconfirmed AppointmentStatus = "unconfirmed"
	StatusConfirmed   AppointmentStatus = "confirmed"
)

// IsValid проверяет, что статус входит в допустимый набор
func (s AppointmentStatus) IsValid() bool {
	return s == StatusUnconfirmed || s == StatusConfirmed
}

// Appointment запись на приём к врачу
type Appointment struct {
	ID              int64
	PatientID       *int64 // nil для записи без аккаунта пациента (walk-in)
	DoctorID        int64
	AppointmentDate time.Time
	AppointmentTime types.TimeString
	Status          AppointmentStatus

	// Денормализованные данные
	RequesterName     string
	DoctorName        string
	VisitReason       string
	ConsultationNotes *string
	Insurer           *string
	Price             decimal.NullDecimal // пусто для walk-in

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsWalkIn returns true if the appointment was registered by the doctor without a patient account
func (a *Appointment) IsWalkIn() bool {
	return a.PatientID == nil
}

// CanBeConfirmed returns true if the operator can move the appointment to confirmed
func (a *Appointment) CanBeConfirmed() bool {
	return a.Status == StatusUnconfirmed
}

// BelongsToPatient returns true if the appointment was booked by the given patient
func (a *Appointment) BelongsToPatient(patientID int64) bool {
	return a.PatientID != nil && *a.PatientID == patientID
}

// Slot returns the uniqueness key of the appointment
func (a *Appointment) Slot() AppointmentSlot {
	return AppointmentSlot{
		DoctorID:  a.DoctorID,
		PatientID: a.PatientID,
		Date:      a.AppointmentDate,
		Time:      a.AppointmentTime,
	}
}

// AppointmentSlot ключ уникальности записи: (врач, пациент, дата, время)
type AppointmentSlot struct {
	DoctorID  int64
	PatientID *int64
	Date      time.Time
	Time      types.TimeString
}
