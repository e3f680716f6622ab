package appointments

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-AppointmentService/internal/service/appointments/models"
)

// Service сервис для работы с записями на приём
type Service struct {
	appointmentRepo AppointmentRepository
	txManager       TransactionManager
	logger          Logger
}

// NewService создает новый экземпляр сервиса записей
func NewService(appointmentRepo AppointmentRepository, txManager TransactionManager, logger Logger) *Service {
	return &Service{
		appointmentRepo: appointmentRepo,
		txManager:       txManager,
		logger:          logger,
	}
}

// GetByID получает запись по ID
// Запись видна пациенту, который её создал, и врачу, к которому она относится
func (s *Service) GetByID(ctx context.Context, id int64, principal domain.Principal) (*models.AppointmentResponse, error) {
	s.logger.Info("GetByID: fetching appointment id=%d for user=%d (%s)", id, principal.UserID, principal.Kind)

	appointment, err := s.getAppointment(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}

	if !canView(appointment, principal) {
		s.logger.Warn("GetByID: access denied for user=%d to appointment id=%d", principal.UserID, id)
		return nil, ErrAccessDenied
	}

	return models.FromDomainAppointment(appointment), nil
}

// UpdateStatus меняет статус записи
// Подтвердить запись может только врач, к которому она относится
func (s *Service) UpdateStatus(ctx context.Context, id int64, principal domain.Principal, req *models.UpdateStatusRequest) (*models.AppointmentResponse, error) {
	s.logger.Info("UpdateStatus: appointment id=%d, user=%d, status=%s", id, principal.UserID, req.Status)

	newStatus, err := models.ToDomainStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%s", req.Status)
		return nil, ErrInvalidStatus
	}

	var result *domain.Appointment

	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		appointment, err := s.getAppointment(txCtx, "UpdateStatus", id)
		if err != nil {
			return err
		}

		doctorID, ok := principal.AsDoctor()
		if !ok || appointment.DoctorID != doctorID {
			s.logger.Warn("UpdateStatus: user=%d is not the doctor of appointment id=%d", principal.UserID, id)
			return ErrAccessDenied
		}

		if appointment.Status == newStatus {
			result = appointment
			return nil
		}

		if newStatus != domain.StatusConfirmed || !appointment.CanBeConfirmed() {
			s.logger.Warn("UpdateStatus: transition %s -> %s is not allowed for appointment id=%d",
				appointment.Status, newStatus, id)
			return ErrInvalidTransition
		}

		if err := s.appointmentRepo.UpdateStatus(txCtx, id, newStatus); err != nil {
			if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
				return ErrAppointmentNotFound
			}
			s.logger.Error("UpdateStatus: repository error for appointment id=%d: %v", id, err)
			return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
		}

		appointment.Status = newStatus
		result = appointment
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("UpdateStatus: appointment id=%d is %s", id, result.Status)
	return models.FromDomainAppointment(result), nil
}

func (s *Service) getAppointment(ctx context.Context, op string, id int64) (*domain.Appointment, error) {
	appointment, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("%s: appointment id=%d not found", op, id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("%s: repository error for appointment id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return appointment, nil
}

func canView(a *domain.Appointment, principal domain.Principal) bool {
	if patientID, ok := principal.AsPatient(); ok {
		return a.BelongsToPatient(patientID)
	}
	if doctorID, ok := principal.AsDoctor(); ok {
		return a.DoctorID == doctorID
	}
	return false
}
