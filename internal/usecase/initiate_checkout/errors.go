package initiate_checkout

import "errors"

var (
	// ErrNoPendingBooking возвращается, когда в сессии нет черновика записи
	ErrNoPendingBooking = errors.New("initiate_checkout: no pending booking")

	// ErrInvalidPrice возвращается, когда сохранённая цена повреждена
	ErrInvalidPrice = errors.New("initiate_checkout: invalid price")

	// ErrAmountTooLow возвращается, когда сумма ниже минимальной для шлюза
	ErrAmountTooLow = errors.New("initiate_checkout: amount too low")

	// ErrGateway возвращается при ошибке платёжного шлюза
	ErrGateway = errors.New("initiate_checkout: payment gateway error")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("initiate_checkout: internal error")
)

// Причины отказа для метрик
const (
	reasonInvalidPrice = "invalid_price"
	reasonAmountTooLow = "amount_too_low"
	reasonGateway      = "gateway"
)
