package subscribe_recommendation

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	subscribeRecommendation "github.com/m04kA/SMC-AppointmentService/internal/usecase/subscribe_recommendation"
)

const (
	msgForbidden          = "подписка доступна только врачам"
	msgDoctorNotFound     = "профиль врача не найден"
	msgAlreadyRecommended = "вы уже в списке рекомендованных врачей"
	msgAmountTooLow       = "сумма меньше минимальной для оплаты"
	msgGateway            = "платёжный сервис недоступен, попробуйте позже"
	msgMissingUser        = "отсутствует пользователь или сессия"
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

// Handle POST /api/v1/doctors/me/recommendation/checkout
// При успехе перенаправляет на страницу оплаты шлюза (303)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.GetPrincipal(r.Context())
	sessionID, hasSession := middleware.GetSessionID(r.Context())
	if !ok || !hasSession {
		handlers.RespondUnauthorized(w, msgMissingUser)
		return
	}

	resp, err := h.useCase.Execute(r.Context(), &subscribeRecommendation.Request{
		SessionID: sessionID,
		Principal: principal,
	})
	if err != nil {
		switch {
		case errors.Is(err, subscribeRecommendation.ErrAccessDenied):
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, subscribeRecommendation.ErrDoctorNotFound):
			handlers.RespondNotFound(w, msgDoctorNotFound)

		case errors.Is(err, subscribeRecommendation.ErrAlreadyRecommended):
			handlers.RespondErrorWithRedirect(w, http.StatusConflict, msgAlreadyRecommended, handlers.PathHome)

		case errors.Is(err, subscribeRecommendation.ErrAmountTooLow):
			h.logger.Error("POST /doctors/me/recommendation/checkout - Subscription amount below gateway minimum")
			handlers.RespondErrorWithRedirect(w, http.StatusUnprocessableEntity, msgAmountTooLow, handlers.PathHome)

		case errors.Is(err, subscribeRecommendation.ErrGateway):
			h.logger.Warn("POST /doctors/me/recommendation/checkout - Gateway failure: user_id=%d, error=%v", principal.UserID, err)
			handlers.RespondErrorWithRedirect(w, http.StatusBadGateway, msgGateway, handlers.PathHome)

		default:
			h.logger.Error("POST /doctors/me/recommendation/checkout - Failed to start checkout: user_id=%d, error=%v",
				principal.UserID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /doctors/me/recommendation/checkout - Checkout session created: session=%s, amount=%d",
		resp.CheckoutSessionID, resp.AmountMinorUnits)
	handlers.RespondRedirect(w, r, resp.RedirectURL)
}
