package register_walkin

import (
	"context"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	registerWalkIn "github.com/m04kA/SMC-AppointmentService/internal/usecase/register_walkin"
)

type UseCase interface {
	Execute(ctx context.Context, req *registerWalkIn.Request) (*domain.Appointment, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
