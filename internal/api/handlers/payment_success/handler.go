package payment_success

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	"github.com/m04kA/SMC-AppointmentService/internal/service/appointments/models"
	finalizeBooking "github.com/m04kA/SMC-AppointmentService/internal/usecase/finalize_booking"
)

const (
	msgNoPendingBooking  = "нет незавершённой записи, начните запись заново"
	msgCouponUnavailable = "купон уже использован, пересчитайте стоимость"
	msgNotSubmitted      = "запись не оплачена по текущей стоимости, подтвердите стоимость заново"
	msgInvalidPrice      = "некорректная стоимость записи, начните запись заново"
	msgInvalidBooking    = "некорректные данные записи, начните запись заново"
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

// Handle GET /api/v1/booking/success
// 201 при создании записи, 200 если запись уже была создана
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.GetPrincipal(r.Context())
	sessionID, hasSession := middleware.GetSessionID(r.Context())
	if !ok || !hasSession {
		handlers.RespondUnauthorized(w, msgMissingUser)
		return
	}

	resp, err := h.useCase.Execute(r.Context(), &finalizeBooking.Request{
		SessionID: sessionID,
		Principal: principal,
	})
	if err != nil {
		switch {
		case errors.Is(err, finalizeBooking.ErrAlreadyExists):
			h.logger.Info("GET /booking/success - Appointment already registered: user_id=%d", principal.UserID)
			handlers.RespondJSON(w, http.StatusOK, toResponse(resp, true))

		case errors.Is(err, finalizeBooking.ErrNoPendingBooking):
			handlers.RespondErrorWithRedirect(w, http.StatusConflict, msgNoPendingBooking, handlers.PathDoctors)

		case errors.Is(err, finalizeBooking.ErrNotSubmitted):
			handlers.RespondErrorWithRedirect(w, http.StatusConflict, msgNotSubmitted, handlers.PathPreview)

		case errors.Is(err, finalizeBooking.ErrCouponUnavailable):
			handlers.RespondErrorWithRedirect(w, http.StatusConflict, msgCouponUnavailable, handlers.PathPreview)

		case errors.Is(err, finalizeBooking.ErrInvalidPrice):
			handlers.RespondErrorWithRedirect(w, http.StatusUnprocessableEntity, msgInvalidPrice, handlers.PathHome)

		case errors.Is(err, finalizeBooking.ErrInvalidInput):
			handlers.RespondErrorWithRedirect(w, http.StatusUnprocessableEntity, msgInvalidBooking, handlers.PathHome)

		case errors.Is(err, finalizeBooking.ErrAccessDenied):
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("GET /booking/success - Failed to finalize: user_id=%d, error=%v", principal.UserID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /booking/success - Appointment created: appointment_id=%d, user_id=%d",
		resp.Appointment.ID, principal.UserID)
	handlers.RespondJSON(w, http.StatusCreated, toResponse(resp, false))
}

func toResponse(resp *finalizeBooking.Response, already bool) *SuccessResponse {
	out := &SuccessResponse{AlreadyRegistered: already}
	if resp != nil && resp.Appointment != nil {
		out.Appointment = models.FromDomainAppointment(resp.Appointment)
	}
	return out
}
