package payment_cancel

import (
	"net/http"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
)

const msgCancelled = "оплата отменена, запись не создана"

// CancelResponse HTTP response model
type CancelResponse struct {
	Message  string `json:"message"`
	Redirect string `json:"redirect"`
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
}

type Handler struct {
	logger Logger
}

func NewHandler(logger Logger) *Handler {
	return &Handler{logger: logger}
}

// Handle GET /api/v1/booking/cancel
// Черновик записи не изменяется, пользователь может вернуться к предпросмотру
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserID(r.Context())
	h.logger.Info("GET /booking/cancel - Checkout cancelled: user_id=%d", userID)

	handlers.RespondJSON(w, http.StatusOK, CancelResponse{
		Message:  msgCancelled,
		Redirect: handlers.PathPreview,
	})
}
