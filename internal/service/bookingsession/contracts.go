package bookingsession

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// Store интерфейс хранилища незавершённых бронирований
type Store interface {
	Put(ctx context.Context, sessionID string, booking *domain.PendingBooking) error
	Get(ctx context.Context, sessionID string) (*domain.PendingBooking, error)
	Delete(ctx context.Context, sessionID string) error
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
