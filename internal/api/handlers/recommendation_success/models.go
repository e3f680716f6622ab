package recommendation_success

import (
	"github.com/m04kA/SMC-AppointmentService/internal/service/doctors/models"
	confirmRecommendation "github.com/m04kA/SMC-AppointmentService/internal/usecase/confirm_recommendation"
)

// SuccessResponse HTTP response model
type SuccessResponse struct {
	AlreadyRecommended bool                   `json:"alreadyRecommended"`
	Doctor             *models.DoctorResponse `json:"doctor,omitempty"`
}

func toResponse(resp *confirmRecommendation.Response, already bool) SuccessResponse {
	out := SuccessResponse{AlreadyRecommended: already}
	if resp != nil && resp.Doctor != nil {
		doctor := models.FromDomainDoctor(resp.Doctor)
		out.Doctor = &doctor
	}
	return out
}
