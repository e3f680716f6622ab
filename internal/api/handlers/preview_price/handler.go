package preview_price

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	previewPrice "github.com/m04kA/SMC-AppointmentService/internal/usecase/preview_price"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgNoPendingBooking   = "нет незавершённой записи, начните запись заново"
	msgDoctorNotFound     = "врач не найден"
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

// Handle GET|POST /api/v1/booking/preview
// POST с {"applyCoupon": true} применяет купон пациента
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.GetPrincipal(r.Context())
	sessionID, hasSession := middleware.GetSessionID(r.Context())
	if !ok || !hasSession {
		handlers.RespondUnauthorized(w, msgMissingUser)
		return
	}

	req := &previewPrice.Request{
		SessionID: sessionID,
		Principal: principal,
	}

	if r.Method == http.MethodPost {
		var body ApplyCouponRequest
		if err := handlers.DecodeJSON(r, &body); err != nil && !errors.Is(err, handlers.ErrEmptyBody) {
			h.logger.Warn("POST /booking/preview - Invalid request body: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)
			return
		}
		req.ApplyCoupon = body.ApplyCoupon
	}

	resp, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, previewPrice.ErrNoPendingBooking):
			handlers.RespondErrorWithRedirect(w, http.StatusConflict, msgNoPendingBooking, handlers.PathDoctors)

		case errors.Is(err, previewPrice.ErrDoctorNotFound):
			handlers.RespondErrorWithRedirect(w, http.StatusNotFound, msgDoctorNotFound, handlers.PathDoctors)

		default:
			h.logger.Error("%s /booking/preview - Failed to preview price: user_id=%d, error=%v",
				r.Method, principal.UserID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, toResponse(resp))
}
