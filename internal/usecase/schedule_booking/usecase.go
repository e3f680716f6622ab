package schedule_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	doctorRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/doctor"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// UseCase use case приёма формы записи к врачу
type UseCase struct {
	doctorRepo   DoctorRepository
	sessions     BookingSession
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(doctorRepo DoctorRepository, sessions BookingSession, logger Logger) *UseCase {
	return &UseCase{
		doctorRepo:   doctorRepo,
		sessions:     sessions,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute сохраняет черновик записи в сессии с рассчитанной ценой
// Предыдущий черновик сессии перезаписывается
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ScheduleBooking: user=%d, doctor=%d, date=%s, time=%s",
		req.Principal.UserID, req.DoctorID, req.RequestedDate, req.RequestedTime)

	// 1. Валидация формы
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("ScheduleBooking: validation failed: %v", err)
		return nil, err
	}

	if err := validateDate(req.RequestedDate, uc.timeProvider.Now()); err != nil {
		uc.logger.Warn("ScheduleBooking: date validation failed: %v", err)
		return nil, err
	}

	requestedTime, err := types.NewTimeStringFromString(req.RequestedTime)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	// 2. Получаем врача
	doctor, err := uc.doctorRepo.GetByID(ctx, req.DoctorID)
	if err != nil {
		if errors.Is(err, doctorRepo.ErrDoctorNotFound) {
			uc.logger.Warn("ScheduleBooking: doctor id=%d not found", req.DoctorID)
			return nil, ErrDoctorNotFound
		}
		uc.logger.Error("ScheduleBooking: failed to get doctor id=%d: %v", req.DoctorID, err)
		return nil, fmt.Errorf("%w: failed to get doctor: %v", ErrInternal, err)
	}

	if !doctor.AcceptingPatients {
		uc.logger.Warn("ScheduleBooking: doctor id=%d is not accepting patients", doctor.ID)
		return nil, ErrDoctorUnavailable
	}

	// 3. Рассчитываем цену без купона
	quote := domain.ComputePrice(doctor.ConsultationPrice(), doctor.Recommended, false)

	booking := &domain.PendingBooking{
		RequesterName:     req.RequesterName,
		DateOfBirth:       req.DateOfBirth,
		NationalID:        req.NationalID,
		Phone:             req.Phone,
		ConsultationNotes: req.ConsultationNotes,
		VisitReason:       req.VisitReason,
		Insurer:           req.Insurer,
		RequestedDate:     req.RequestedDate,
		RequestedTime:     requestedTime,
		DoctorID:          doctor.ID,
		PatientID:         req.Principal.PatientRef(),
		State:             domain.PendingDraft,
	}
	booking.ApplyQuote(quote)

	// 4. Сохраняем черновик в сессии
	if err := uc.sessions.Put(ctx, req.SessionID, booking); err != nil {
		uc.logger.Error("ScheduleBooking: failed to store pending booking: %v", err)
		return nil, fmt.Errorf("%w: failed to store pending booking: %v", ErrInternal, err)
	}

	uc.logger.Info("ScheduleBooking: pending booking stored for doctor=%d, price=%s", doctor.ID, booking.Price)

	return &Response{
		DoctorID:   doctor.ID,
		DoctorName: doctor.FullName,
		Commission: domain.FormatMoney(quote.Commission),
		Discount:   booking.Discount,
		FinalPrice: booking.Price,
	}, nil
}
