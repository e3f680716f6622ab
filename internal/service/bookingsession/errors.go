package bookingsession

import "errors"

var (
	// ErrNoPendingBooking возвращается, когда в сессии нет незавершённого бронирования
	ErrNoPendingBooking = errors.New("bookingsession.service: no pending booking")

	// ErrCouponNotEligible возвращается, когда купон пациента недоступен
	ErrCouponNotEligible = errors.New("bookingsession.service: coupon is not eligible")

	// ErrInvalidSession возвращается при пустом идентификаторе сессии
	ErrInvalidSession = errors.New("bookingsession.service: invalid session id")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("bookingsession.service: internal error")
)
