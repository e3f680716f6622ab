package subscribe_recommendation

import (
	"context"

	subscribeRecommendation "github.com/m04kA/SMC-AppointmentService/internal/usecase/subscribe_recommendation"
)

// UseCase интерфейс use case оплаты подписки
type UseCase interface {
	Execute(ctx context.Context, req *subscribeRecommendation.Request) (*subscribeRecommendation.Response, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
