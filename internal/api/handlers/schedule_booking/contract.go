package schedule_booking

import (
	"context"

	scheduleBooking "github.com/m04kA/SMC-AppointmentService/internal/usecase/schedule_booking"
)

// UseCase интерфейс use case записи к врачу
type UseCase interface {
	Execute(ctx context.Context, req *scheduleBooking.Request) (*scheduleBooking.Response, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
