package recommendation_success

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	confirmRecommendation "github.com/m04kA/SMC-AppointmentService/internal/usecase/confirm_recommendation"
)

const (
	msgNoPendingCheckout = "оплата подписки не найдена, оформите подписку заново"
	msgDoctorNotFound    = "профиль врача не найден"
	msgForbidden         = "доступ запрещен"
	msgMissingUser       = "отсутствует пользователь или сессия"
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

// Handle GET /api/v1/doctors/me/recommendation/success
// 200 и карточка врача, в том числе при повторном возврате из шлюза
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.GetPrincipal(r.Context())
	sessionID, hasSession := middleware.GetSessionID(r.Context())
	if !ok || !hasSession {
		handlers.RespondUnauthorized(w, msgMissingUser)
		return
	}

	resp, err := h.useCase.Execute(r.Context(), &confirmRecommendation.Request{
		SessionID: sessionID,
		Principal: principal,
	})
	if err != nil {
		switch {
		case errors.Is(err, confirmRecommendation.ErrAlreadyRecommended):
			h.logger.Info("GET /doctors/me/recommendation/success - Already recommended: user_id=%d", principal.UserID)
			handlers.RespondJSON(w, http.StatusOK, toResponse(resp, true))

		case errors.Is(err, confirmRecommendation.ErrNoPendingCheckout):
			handlers.RespondErrorWithRedirect(w, http.StatusConflict, msgNoPendingCheckout, handlers.PathHome)

		case errors.Is(err, confirmRecommendation.ErrDoctorNotFound):
			handlers.RespondNotFound(w, msgDoctorNotFound)

		case errors.Is(err, confirmRecommendation.ErrAccessDenied):
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("GET /doctors/me/recommendation/success - Failed to confirm: user_id=%d, error=%v",
				principal.UserID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /doctors/me/recommendation/success - Doctor recommended: doctor_id=%d, user_id=%d",
		resp.Doctor.ID, principal.UserID)
	handlers.RespondJSON(w, http.StatusOK, toResponse(resp, false))
}
