package confirm_recommendation

import (
	"context"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// DoctorRepository интерфейс репозитория врачей
type DoctorRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Doctor, error)
	SetRecommended(ctx context.Context, id int64) error
}

// CheckoutStore интерфейс хранилища начатых оплат подписки
type CheckoutStore interface {
	Get(ctx context.Context, sessionID string) (*domain.RecommendationCheckout, error)
	Delete(ctx context.Context, sessionID string) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Metrics интерфейс метрик подписки
type Metrics interface {
	IncRecommendationSubscriptions()
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
