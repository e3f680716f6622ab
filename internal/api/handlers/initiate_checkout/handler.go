package initiate_checkout

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	initiateCheckout "github.com/m04kA/SMC-AppointmentService/internal/usecase/initiate_checkout"
)

const (
	msgNoPendingBooking = "нет незавершённой записи, начните запись заново"
	msgInvalidPrice     = "некорректная стоимость записи, начните запись заново"
	msgAmountTooLow     = "сумма меньше минимальной для оплаты"
	msgGateway          = "платёжный сервис недоступен, попробуйте позже"
	msgMissingUser      = "отсутствует пользователь или сессия"
)

type Handler struct {
	useCase UseCase
	logger  Logger
}

func NewHandler(useCase UseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/booking/checkout
// При успехе перенаправляет на страницу оплаты шлюза (303)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.GetPrincipal(r.Context())
	sessionID, hasSession := middleware.GetSessionID(r.Context())
	if !ok || !hasSession {
		handlers.RespondUnauthorized(w, msgMissingUser)
		return
	}

	resp, err := h.useCase.Execute(r.Context(), &initiateCheckout.Request{
		SessionID: sessionID,
		Principal: principal,
	})
	if err != nil {
		switch {
		case errors.Is(err, initiateCheckout.ErrNoPendingBooking):
			handlers.RespondErrorWithRedirect(w, http.StatusConflict, msgNoPendingBooking, handlers.PathDoctors)

		case errors.Is(err, initiateCheckout.ErrInvalidPrice):
			handlers.RespondErrorWithRedirect(w, http.StatusUnprocessableEntity, msgInvalidPrice, handlers.PathHome)

		case errors.Is(err, initiateCheckout.ErrAmountTooLow):
			handlers.RespondErrorWithRedirect(w, http.StatusUnprocessableEntity, msgAmountTooLow, handlers.PathPreview)

		case errors.Is(err, initiateCheckout.ErrGateway):
			h.logger.Warn("POST /booking/checkout - Gateway failure: user_id=%d, error=%v", principal.UserID, err)
			handlers.RespondErrorWithRedirect(w, http.StatusBadGateway, msgGateway, handlers.PathHome)

		default:
			h.logger.Error("POST /booking/checkout - Failed to start checkout: user_id=%d, error=%v", principal.UserID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /booking/checkout - Checkout session created: session=%s, amount=%d",
		resp.CheckoutSessionID, resp.AmountMinorUnits)
	handlers.RespondRedirect(w, r, resp.RedirectURL)
}
