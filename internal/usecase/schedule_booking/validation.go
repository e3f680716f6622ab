package schedule_booking

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

var validate = validator.New()

// validateRequest валидирует форму записи
func validateRequest(req *Request) error {
	if err := validate.Struct(req); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return nil
}

// validateDate проверяет, что дата приёма не в прошлом
func validateDate(requestedDate string, now time.Time) error {
	date, err := time.Parse(domain.DateFormat, requestedDate)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	// Даты хранятся без зоны, сравниваем с текущими сутками по UTC
	now = now.UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if date.Before(today) {
		return ErrInvalidDate
	}
	return nil
}
