package initiate_checkout

import (
	"context"

	initiateCheckout "github.com/m04kA/SMC-AppointmentService/internal/usecase/initiate_checkout"
)

// UseCase интерфейс use case начала оплаты
type UseCase interface {
	Execute(ctx context.Context, req *initiateCheckout.Request) (*initiateCheckout.Response, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
