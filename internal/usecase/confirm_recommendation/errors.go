package confirm_recommendation

import "errors"

var (
	// ErrAccessDenied возвращается, когда оплату подтверждает не тот врач
	ErrAccessDenied = errors.New("confirm_recommendation: access denied")

	// ErrNoPendingCheckout возвращается, когда в сессии нет начатой оплаты подписки
	ErrNoPendingCheckout = errors.New("confirm_recommendation: no pending checkout")

	// ErrAlreadyRecommended возвращается при повторном подтверждении
	ErrAlreadyRecommended = errors.New("confirm_recommendation: doctor already recommended")

	// ErrDoctorNotFound возвращается, когда врач не найден
	ErrDoctorNotFound = errors.New("confirm_recommendation: doctor not found")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("confirm_recommendation: internal error")
)
