package initiate_checkout

import (
	"context"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/integrations/paymentgateway"
)

// DoctorRepository интерфейс репозитория врачей
type DoctorRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Doctor, error)
}

// BookingSession интерфейс сервиса незавершённого бронирования
type BookingSession interface {
	Get(ctx context.Context, sessionID string) (*domain.PendingBooking, error)
	Put(ctx context.Context, sessionID string, booking *domain.PendingBooking) error
}

// PaymentGateway интерфейс клиента платёжного шлюза
type PaymentGateway interface {
	CreateCheckoutSession(ctx context.Context, amountMinorUnits int64, description, successURL, cancelURL string) (*paymentgateway.CheckoutSession, error)
}

// Metrics интерфейс метрик оплаты
type Metrics interface {
	IncCheckoutSessions()
	IncCheckoutFailures(reason string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
