package register_walkin

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-AppointmentService/pkg/ptr"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// UseCase use case регистрации записи врачом (walk-in)
type UseCase struct {
	appointmentRepo AppointmentRepository
	doctorRepo      DoctorRepository
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	doctorRepo DoctorRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		doctorRepo:      doctorRepo,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute регистрирует запись без пациента и без цены
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*domain.Appointment, error) {
	doctorID, ok := req.Principal.AsDoctor()
	if !ok {
		uc.logger.Warn("RegisterWalkIn: user=%d is not a doctor", req.Principal.UserID)
		return nil, ErrAccessDenied
	}

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("RegisterWalkIn: validation failed: %v", err)
		return nil, err
	}

	date, err := parseDate(req.AppointmentDate, uc.timeProvider.Now())
	if err != nil {
		uc.logger.Warn("RegisterWalkIn: date validation failed: %v", err)
		return nil, err
	}

	appointmentTime, err := types.NewTimeStringFromString(req.AppointmentTime)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	doctor, err := uc.doctorRepo.GetByID(ctx, doctorID)
	if err != nil {
		uc.logger.Error("RegisterWalkIn: failed to get doctor id=%d: %v", doctorID, err)
		return nil, fmt.Errorf("%w: failed to get doctor: %v", ErrInternal, err)
	}

	appointment := &domain.Appointment{
		DoctorID:        doctor.ID,
		AppointmentDate: date,
		AppointmentTime: appointmentTime,
		Status:          domain.StatusUnconfirmed,
		RequesterName:   req.RequesterName,
		DoctorName:      doctor.FullName,
		VisitReason:     req.VisitReason,
	}
	if req.ConsultationNotes != "" {
		appointment.ConsultationNotes = ptr.Ptr(req.ConsultationNotes)
	}

	var created *domain.Appointment
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		_, err := uc.appointmentRepo.GetBySlot(txCtx, appointment.Slot())
		if err == nil {
			return ErrAlreadyExists
		}
		if !errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			return fmt.Errorf("%w: failed to check existing appointment: %w", ErrInternal, err)
		}

		created, err = uc.appointmentRepo.Create(txCtx, appointment)
		if err != nil {
			if errors.Is(err, appointmentRepo.ErrAlreadyExists) {
				return ErrAlreadyExists
			}
			return fmt.Errorf("%w: failed to create appointment: %w", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrAlreadyExists) {
			uc.logger.Warn("RegisterWalkIn: appointment already exists for doctor=%d, date=%s, time=%s",
				doctorID, req.AppointmentDate, req.AppointmentTime)
		} else {
			uc.logger.Error("RegisterWalkIn: %v", err)
		}
		return nil, err
	}

	uc.logger.Info("RegisterWalkIn: appointment id=%d registered by doctor=%d", created.ID, doctorID)
	return created, nil
}
