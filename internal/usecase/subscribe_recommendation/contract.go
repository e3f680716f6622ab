package subscribe_recommendation

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/integrations/paymentgateway"
)

// DoctorRepository интерфейс репозитория врачей
type DoctorRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Doctor, error)
}

// CheckoutStore интерфейс хранилища начатых оплат подписки
type CheckoutStore interface {
	Put(ctx context.Context, sessionID string, checkout *domain.RecommendationCheckout) error
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
