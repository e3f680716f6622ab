package finalize_booking

import "errors"

var (
	// ErrNoPendingBooking возвращается, когда в сессии нет черновика записи
	ErrNoPendingBooking = errors.New("finalize_booking: no pending booking")

	// ErrNotSubmitted возвращается, когда для черновика не создана сессия оплаты по текущей цене
	ErrNotSubmitted = errors.New("finalize_booking: pending booking not submitted to checkout")

	// ErrAlreadyExists возвращается при повторной финализации той же записи
	ErrAlreadyExists = errors.New("finalize_booking: appointment already exists")

	// ErrCouponUnavailable возвращается, когда купон был израсходован после применения
	ErrCouponUnavailable = errors.New("finalize_booking: coupon already used")

	// ErrInvalidPrice возвращается, когда сохранённая цена повреждена
	ErrInvalidPrice = errors.New("finalize_booking: invalid price")

	// ErrInvalidInput возвращается, когда черновик содержит некорректную дату
	ErrInvalidInput = errors.New("finalize_booking: invalid pending booking")

	// ErrAccessDenied возвращается, когда черновик принадлежит другому пациенту
	ErrAccessDenied = errors.New("finalize_booking: access denied")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("finalize_booking: internal error")
)
