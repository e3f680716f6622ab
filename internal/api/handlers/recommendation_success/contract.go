package recommendation_success

import (
	"context"

	confirmRecommendation "github.com/m04kA/SMC-AppointmentService/internal/usecase/confirm_recommendation"
)

// UseCase интерфейс use case подтверждения подписки
type UseCase interface {
	Execute(ctx context.Context, req *confirmRecommendation.Request) (*confirmRecommendation.Response, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
