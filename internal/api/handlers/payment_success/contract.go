package payment_success

import (
	"context"

	finalizeBooking "github.com/m04kA/SMC-AppointmentService/internal/usecase/finalize_booking"
)

// UseCase интерфейс use case финализации
type UseCase interface {
	Execute(ctx context.Context, req *finalizeBooking.Request) (*finalizeBooking.Response, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
