package principals

import (
	"context"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// PatientRepository интерфейс поиска пациента по пользователю
type PatientRepository interface {
	GetByUserID(ctx context.Context, userID int64) (*domain.Patient, error)
}

// DoctorRepository интерфейс поиска врача по пользователю
type DoctorRepository interface {
	GetByUserID(ctx context.Context, userID int64) (*domain.Doctor, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
