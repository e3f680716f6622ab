package principals

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	doctorRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/doctor"
	patientRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/patient"
)

// Service определяет роль пользователя запроса
type Service struct {
	patientRepo PatientRepository
	doctorRepo  DoctorRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса
func NewService(patientRepo PatientRepository, doctorRepo DoctorRepository, logger Logger) *Service {
	return &Service{
		patientRepo: patientRepo,
		doctorRepo:  doctorRepo,
		logger:      logger,
	}
}

// Resolve возвращает principal для userID
// Пациент имеет приоритет, пользователь без профиля получает PrincipalUnknown
func (s *Service) Resolve(ctx context.Context, userID int64) (domain.Principal, error) {
	patient, err := s.patientRepo.GetByUserID(ctx, userID)
	if err == nil {
		return domain.NewPatientPrincipal(userID, patient.ID), nil
	}
	if !errors.Is(err, patientRepo.ErrPatientNotFound) {
		s.logger.Error("Resolve: failed to get patient by user_id=%d: %v", userID, err)
		return domain.Principal{}, fmt.Errorf("%w: Resolve - patient lookup: %v", ErrInternal, err)
	}

	doctor, err := s.doctorRepo.GetByUserID(ctx, userID)
	if err == nil {
		return domain.NewDoctorPrincipal(userID, doctor.ID), nil
	}
	if !errors.Is(err, doctorRepo.ErrDoctorNotFound) {
		s.logger.Error("Resolve: failed to get doctor by user_id=%d: %v", userID, err)
		return domain.Principal{}, fmt.Errorf("%w: Resolve - doctor lookup: %v", ErrInternal, err)
	}

	return domain.NewUnknownPrincipal(userID), nil
}
