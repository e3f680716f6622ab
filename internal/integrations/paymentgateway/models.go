package paymentgateway

import "time"

// gatewayCodeAmountTooSmall код ошибки шлюза для слишком маленькой суммы
const gatewayCodeAmountTooSmall = "amount_too_small"

// Config параметры платёжного шлюза, определяются один раз при старте
type Config struct {
	BaseURL        string
	SecretKey      string
	Currency       string
	MinAmountMinor int64
	Timeout        time.Duration
}

// CheckoutSession созданная сессия оплаты
type CheckoutSession struct {
	ID          string
	RedirectURL string
}

// checkoutSessionResponse ответ шлюза на создание сессии
type checkoutSessionResponse struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// ErrorResponse модель ошибки от шлюза
type ErrorResponse struct {
	Error struct {
		Type    string `json:"type"`
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}
