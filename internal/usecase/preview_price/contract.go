package preview_price

import (
	"context"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// DoctorRepository интерфейс репозитория врачей
type DoctorRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Doctor, error)
}

// PatientRepository интерфейс репозитория пациентов
type PatientRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Patient, error)
}

// BookingSession интерфейс сервиса незавершённого бронирования
type BookingSession interface {
	Get(ctx context.Context, sessionID string) (*domain.PendingBooking, error)
	Put(ctx context.Context, sessionID string, booking *domain.PendingBooking) error
	ApplyCoupon(ctx context.Context, sessionID string, patient *domain.Patient) (*domain.PendingBooking, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
