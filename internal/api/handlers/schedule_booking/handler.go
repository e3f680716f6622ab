package schedule_booking

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	scheduleBooking "github.com/m04kA/SMC-AppointmentService/internal/usecase/schedule_booking"
)

const (
	msgInvalidDoctorID    = "некорректный ID врача"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "некорректные данные формы"
	msgInvalidDate        = "дата приёма не может быть в прошлом"
	msgDoctorNotFound     = "врач не найден"
	msgDoctorUnavailable  = "врач не принимает новых пациентов"
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

// Handle POST /api/v1/doctors/{doctorId}/schedule
// При успехе перенаправляет на предпросмотр цены (303)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	doctorID, err := strconv.ParseInt(mux.Vars(r)["doctorId"], 10, 64)
	if err != nil || doctorID <= 0 {
		h.logger.Warn("POST /doctors/{id}/schedule - Invalid doctor ID: %v", mux.Vars(r)["doctorId"])
		handlers.RespondBadRequest(w, msgInvalidDoctorID)
		return
	}

	principal, ok := middleware.GetPrincipal(r.Context())
	sessionID, hasSession := middleware.GetSessionID(r.Context())
	if !ok || !hasSession {
		handlers.RespondUnauthorized(w, msgMissingUser)
		return
	}

	var body ScheduleRequest
	if err := handlers.DecodeJSON(r, &body); err != nil {
		h.logger.Warn("POST /doctors/{id}/schedule - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	_, err = h.useCase.Execute(r.Context(), &scheduleBooking.Request{
		SessionID:         sessionID,
		DoctorID:          doctorID,
		Principal:         principal,
		RequesterName:     body.RequesterName,
		DateOfBirth:       body.DateOfBirth,
		NationalID:        body.NationalID,
		Phone:             body.Phone,
		ConsultationNotes: body.ConsultationNotes,
		VisitReason:       body.VisitReason,
		Insurer:           body.Insurer,
		RequestedDate:     body.RequestedDate,
		RequestedTime:     body.RequestedTime,
	})
	if err != nil {
		switch {
		case errors.Is(err, scheduleBooking.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, scheduleBooking.ErrInvalidDate):
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, scheduleBooking.ErrDoctorNotFound):
			handlers.RespondNotFound(w, msgDoctorNotFound)

		case errors.Is(err, scheduleBooking.ErrDoctorUnavailable):
			handlers.RespondErrorWithRedirect(w, http.StatusConflict, msgDoctorUnavailable, handlers.PathDoctors)

		default:
			h.logger.Error("POST /doctors/{id}/schedule - Failed to schedule: doctor_id=%d, error=%v", doctorID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /doctors/{id}/schedule - Pending booking stored: doctor_id=%d, user_id=%d",
		doctorID, principal.UserID)
	handlers.RespondRedirect(w, r, handlers.PathPreview)
}
