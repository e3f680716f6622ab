package register_walkin

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	"github.com/m04kA/SMC-AppointmentService/internal/service/appointments/models"
	registerWalkIn "github.com/m04kA/SMC-AppointmentService/internal/usecase/register_walkin"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "некорректные данные записи"
	msgInvalidDate        = "дата приёма не может быть в прошлом"
	msgAlreadyExists      = "запись на это время уже существует"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgForbidden          = "регистрировать записи может только врач"
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

// Handle POST /api/v1/appointments/walk-in
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.GetPrincipal(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req registerWalkIn.Request
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /appointments/walk-in - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.Principal = principal

	appointment, err := h.useCase.Execute(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, registerWalkIn.ErrAccessDenied):
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, registerWalkIn.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, registerWalkIn.ErrInvalidDate):
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, registerWalkIn.ErrAlreadyExists):
			handlers.RespondError(w, http.StatusConflict, msgAlreadyExists)

		default:
			h.logger.Error("POST /appointments/walk-in - Failed to register: user_id=%d, error=%v", principal.UserID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /appointments/walk-in - Appointment registered: appointment_id=%d", appointment.ID)
	handlers.RespondJSON(w, http.StatusCreated, models.FromDomainAppointment(appointment))
}
