package subscribe_recommendation

import "errors"

var (
	// ErrAccessDenied возвращается, когда подписку оформляет не врач
	ErrAccessDenied = errors.New("subscribe_recommendation: access denied")

	// ErrDoctorNotFound возвращается, когда врач не найден
	ErrDoctorNotFound = errors.New("subscribe_recommendation: doctor not found")

	// ErrAlreadyRecommended возвращается, когда врач уже рекомендован
	ErrAlreadyRecommended = errors.New("subscribe_recommendation: doctor already recommended")

	// ErrAmountTooLow возвращается, когда сумма подписки ниже минимальной для шлюза
	ErrAmountTooLow = errors.New("subscribe_recommendation: amount too low")

	// ErrGateway возвращается при ошибке платёжного шлюза
	ErrGateway = errors.New("subscribe_recommendation: payment gateway error")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("subscribe_recommendation: internal error")
)

// Причины отказа для метрик
const (
	reasonAmountTooLow = "recommendation_amount_too_low"
	reasonGateway      = "recommendation_gateway"
)
