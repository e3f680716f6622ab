package finalize_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/integrations/notifier"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	Create(ctx context.Context, a *domain.Appointment) (*domain.Appointment, error)
	GetBySlot(ctx context.Context, slot domain.AppointmentSlot) (*domain.Appointment, error)
}

// PatientRepository интерфейс репозитория пациентов
type PatientRepository interface {
	ConsumeCoupon(ctx context.Context, patientID int64) error
}

// DoctorRepository интерфейс репозитория врачей
type DoctorRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Doctor, error)
}

// BookingSession интерфейс сервиса незавершённого бронирования
type BookingSession interface {
	Get(ctx context.Context, sessionID string) (*domain.PendingBooking, error)
	Clear(ctx context.Context, sessionID string) error
}

// EventPublisher интерфейс публикации событий
type EventPublisher interface {
	PublishAppointmentFinalized(ctx context.Context, event notifier.AppointmentFinalized) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Metrics интерфейс метрик финализации
type Metrics interface {
	IncAppointmentsFinalized()
	IncFinalizeDuplicates()
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
