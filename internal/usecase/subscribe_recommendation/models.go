package subscribe_recommendation

import "github.com/m04kA/SMC-AppointmentService/internal/domain"

// Request запрос врача на оплату подписки
type Request struct {
	SessionID string
	Principal domain.Principal
}

// Response адрес страницы оплаты
type Response struct {
	CheckoutSessionID string
	RedirectURL       string
	AmountMinorUnits  int64
}

// Config стоимость подписки и адреса возврата из шлюза
type Config struct {
	AmountMinorUnits int64
	SuccessURL       string
	CancelURL        string
}
