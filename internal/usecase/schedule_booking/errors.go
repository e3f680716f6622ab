package schedule_booking

import "errors"

var (
	// ErrDoctorNotFound возвращается, когда врач не найден
	ErrDoctorNotFound = errors.New("schedule_booking: doctor not found")

	// ErrDoctorUnavailable возвращается, когда врач не принимает новых пациентов
	ErrDoctorUnavailable = errors.New("schedule_booking: doctor is not accepting patients")

	// ErrInvalidDate возвращается, когда дата приёма в прошлом
	ErrInvalidDate = errors.New("schedule_booking: invalid appointment date")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("schedule_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("schedule_booking: internal error")
)
