package preview_price

import (
	"context"

	previewPrice "github.com/m04kA/SMC-AppointmentService/internal/usecase/preview_price"
)

// UseCase интерфейс use case предпросмотра цены
type UseCase interface {
	Execute(ctx context.Context, req *previewPrice.Request) (*previewPrice.Response, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
