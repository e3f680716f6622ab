package initiate_checkout

import "github.com/m04kA/SMC-AppointmentService/internal/domain"

// Request запрос на начало оплаты
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

// URLs адреса возврата из платёжного шлюза
type URLs struct {
	SuccessURL string
	CancelURL  string
}
