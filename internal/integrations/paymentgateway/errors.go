package paymentgateway

import "errors"

var (
	// ErrAmountTooLow возвращается, когда сумма меньше минимальной для шлюза
	ErrAmountTooLow = errors.New("paymentgateway client: amount too low")

	// ErrGateway возвращается при любой другой ошибке шлюза, в том числе при открытом circuit breaker
	ErrGateway = errors.New("paymentgateway client: gateway error")

	// ErrInvalidResponse возвращается при некорректном ответе шлюза
	ErrInvalidResponse = errors.New("paymentgateway client: invalid response")

	// errRejected отказ шлюза по вине запроса (4xx), не считается отказом сервиса для circuit breaker
	errRejected = errors.New("paymentgateway client: request rejected")
)
