package preview_price

import "errors"

var (
	// ErrNoPendingBooking возвращается, когда в сессии нет черновика записи
	ErrNoPendingBooking = errors.New("preview_price: no pending booking")

	// ErrDoctorNotFound возвращается, когда врач из черновика не найден
	ErrDoctorNotFound = errors.New("preview_price: doctor not found")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("preview_price: internal error")
)
