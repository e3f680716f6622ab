package doctors

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/service/doctors/models"
)

// Service сервис каталога врачей
type Service struct {
	doctorRepo DoctorRepository
	logger     Logger
}

// NewService создает новый экземпляр сервиса врачей
func NewService(doctorRepo DoctorRepository, logger Logger) *Service {
	return &Service{
		doctorRepo: doctorRepo,
		logger:     logger,
	}
}

// List возвращает врачей по фильтру, рекомендованные первыми
func (s *Service) List(ctx context.Context, filter domain.DoctorFilter) ([]models.DoctorResponse, error) {
	doctors, err := s.doctorRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("List: failed to list doctors (q=%q, specialty=%q): %v", filter.Query, filter.Specialty, err)
		return nil, fmt.Errorf("%w: failed to list doctors: %v", ErrInternal, err)
	}

	resp := make([]models.DoctorResponse, 0, len(doctors))
	for i := range doctors {
		resp = append(resp, models.FromDomainDoctor(&doctors[i]))
	}
	return resp, nil
}
