package list_doctors

import (
	"net/http"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

type Handler struct {
	service DoctorService
	logger  Logger
}

func NewHandler(service DoctorService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/doctors?q=&specialty=
// Рекомендованные врачи идут первыми
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := domain.DoctorFilter{
		Query:     query.Get("q"),
		Specialty: query.Get("specialty"),
	}

	doctors, err := h.service.List(r.Context(), filter)
	if err != nil {
		h.logger.Error("GET /doctors - Failed to list doctors: error=%v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, doctors)
}
