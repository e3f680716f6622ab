package confirm_recommendation

import "github.com/m04kA/SMC-AppointmentService/internal/domain"

// Request возврат врача из платёжного шлюза
type Request struct {
	SessionID string
	Principal domain.Principal
}

// Response врач после подтверждения подписки
type Response struct {
	Doctor *domain.Doctor
}
