package finalize_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/appointment"
	patientRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/patient"
	"github.com/m04kA/SMC-AppointmentService/internal/integrations/notifier"
	"github.com/m04kA/SMC-AppointmentService/internal/service/bookingsession"
)

// UseCase use case финализации бронирования
// Превращает черновик сессии в запись на приём ровно один раз
type UseCase struct {
	appointmentRepo AppointmentRepository
	patientRepo     PatientRepository
	doctorRepo      DoctorRepository
	sessions        BookingSession
	publisher       EventPublisher
	txManager       TransactionManager
	metrics         Metrics
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	patientRepo PatientRepository,
	doctorRepo DoctorRepository,
	sessions BookingSession,
	publisher EventPublisher,
	txManager TransactionManager,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		patientRepo:     patientRepo,
		doctorRepo:      doctorRepo,
		sessions:        sessions,
		publisher:       publisher,
		txManager:       txManager,
		metrics:         metrics,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute создает запись из черновика сессии
//
// Повторный вызов для той же (врач, пациент, дата, время) возвращает ErrAlreadyExists
// и ранее созданную запись в Response, если её удалось прочитать.
// Создание записи и расход купона выполняются в одной сериализуемой транзакции.
// Черновик удаляется после коммита, а также при ErrAlreadyExists.
// Черновик без сессии оплаты (не в состоянии submitted) отклоняется с ErrNotSubmitted.
//
// Финализация запускается редиректом браузера из платёжного шлюза,
// серверного подтверждения оплаты нет.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Загружаем черновик, без него ничего не пишем
	booking, err := uc.sessions.Get(ctx, req.SessionID)
	if err != nil {
		if errors.Is(err, bookingsession.ErrNoPendingBooking) {
			uc.logger.Warn("FinalizeBooking: no pending booking for user=%d", req.Principal.UserID)
			return nil, ErrNoPendingBooking
		}
		return nil, fmt.Errorf("%w: failed to load pending booking: %v", ErrInternal, err)
	}

	if booking.PatientID != nil {
		if patientID, ok := req.Principal.AsPatient(); !ok || patientID != *booking.PatientID {
			uc.logger.Warn("FinalizeBooking: pending booking of patient=%d finalized by user=%d",
				*booking.PatientID, req.Principal.UserID)
			return nil, ErrAccessDenied
		}
	}

	// Финализировать можно только черновик, отправленный на оплату по текущей цене
	if !booking.Submitted() {
		uc.logger.Warn("FinalizeBooking: pending booking in state=%s has no checkout, user=%d",
			booking.State, req.Principal.UserID)
		return nil, ErrNotSubmitted
	}

	price, err := booking.FinalPrice()
	if err != nil {
		uc.logger.Warn("FinalizeBooking: invalid stored price=%q", booking.Price)
		return nil, ErrInvalidPrice
	}

	slot, err := booking.Slot()
	if err != nil {
		uc.logger.Warn("FinalizeBooking: invalid stored date=%q: %v", booking.RequestedDate, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	doctor, err := uc.doctorRepo.GetByID(ctx, booking.DoctorID)
	if err != nil {
		uc.logger.Error("FinalizeBooking: failed to get doctor id=%d: %v", booking.DoctorID, err)
		return nil, fmt.Errorf("%w: failed to get doctor: %v", ErrInternal, err)
	}

	var (
		created  *domain.Appointment
		existing *domain.Appointment
	)

	// 2. Проверка, создание записи и расход купона в одной транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		found, err := uc.appointmentRepo.GetBySlot(txCtx, slot)
		switch {
		case err == nil:
			existing = found
			return ErrAlreadyExists
		case !errors.Is(err, appointmentRepo.ErrAppointmentNotFound):
			uc.logger.Error("FinalizeBooking: failed to check existing appointment: %v", err)
			return fmt.Errorf("%w: failed to check existing appointment: %w", ErrInternal, err)
		}

		appointment := newAppointment(booking, doctor, slot, price)

		result, err := uc.appointmentRepo.Create(txCtx, appointment)
		if err != nil {
			if errors.Is(err, appointmentRepo.ErrAlreadyExists) {
				return ErrAlreadyExists
			}
			uc.logger.Error("FinalizeBooking: failed to create appointment: %v", err)
			return fmt.Errorf("%w: failed to create appointment: %w", ErrInternal, err)
		}

		if booking.CouponApplied && booking.PatientID != nil {
			if err := uc.patientRepo.ConsumeCoupon(txCtx, *booking.PatientID); err != nil {
				if errors.Is(err, patientRepo.ErrCouponUnavailable) {
					uc.logger.Warn("FinalizeBooking: coupon of patient=%d is already used", *booking.PatientID)
					return ErrCouponUnavailable
				}
				uc.logger.Error("FinalizeBooking: failed to consume coupon: %v", err)
				return fmt.Errorf("%w: failed to consume coupon: %w", ErrInternal, err)
			}
		}

		created = result
		return nil
	})

	if errors.Is(err, ErrAlreadyExists) {
		return uc.handleDuplicate(ctx, req, slot, existing)
	}
	if err != nil {
		return nil, err
	}

	// 3. Удаляем черновик после коммита
	if err := uc.sessions.Clear(ctx, req.SessionID); err != nil {
		uc.logger.Error("FinalizeBooking: appointment id=%d created but pending booking not cleared: %v", created.ID, err)
	}

	uc.metrics.IncAppointmentsFinalized()
	uc.publish(ctx, created, booking.CouponApplied)

	uc.logger.Info("FinalizeBooking: appointment id=%d created for doctor=%d, date=%s, time=%s",
		created.ID, created.DoctorID, booking.RequestedDate, created.AppointmentTime)

	return &Response{Appointment: created}, nil
}

// handleDuplicate обрабатывает повторную финализацию
func (uc *UseCase) handleDuplicate(ctx context.Context, req *Request, slot domain.AppointmentSlot, existing *domain.Appointment) (*Response, error) {
	uc.metrics.IncFinalizeDuplicates()

	if err := uc.sessions.Clear(ctx, req.SessionID); err != nil {
		uc.logger.Error("FinalizeBooking: failed to clear pending booking after duplicate: %v", err)
	}

	// Гонка разрешилась уникальным ограничением, читаем запись победителя
	if existing == nil {
		found, err := uc.appointmentRepo.GetBySlot(ctx, slot)
		if err != nil {
			uc.logger.Warn("FinalizeBooking: duplicate detected but existing appointment not readable: %v", err)
		} else {
			existing = found
		}
	}

	uc.logger.Info("FinalizeBooking: appointment already exists for doctor=%d, date=%s, time=%s",
		slot.DoctorID, slot.Date.Format(domain.DateFormat), slot.Time)

	return &Response{Appointment: existing}, ErrAlreadyExists
}

func (uc *UseCase) publish(ctx context.Context, a *domain.Appointment, couponApplied bool) {
	event := notifier.AppointmentFinalized{
		AppointmentID:   a.ID,
		DoctorID:        a.DoctorID,
		PatientID:       a.PatientID,
		AppointmentDate: a.AppointmentDate.Format(domain.DateFormat),
		AppointmentTime: a.AppointmentTime.String(),
		Price:           domain.FormatMoney(a.Price.Decimal),
		CouponApplied:   couponApplied,
		OccurredAt:      uc.timeProvider.Now(),
	}

	if err := uc.publisher.PublishAppointmentFinalized(ctx, event); err != nil {
		uc.logger.Error("FinalizeBooking: failed to publish event for appointment id=%d: %v", a.ID, err)
	}
}

func newAppointment(booking *domain.PendingBooking, doctor *domain.Doctor, slot domain.AppointmentSlot, price decimal.Decimal) *domain.Appointment {
	a := &domain.Appointment{
		PatientID:       booking.PatientID,
		DoctorID:        booking.DoctorID,
		AppointmentDate: slot.Date,
		AppointmentTime: slot.Time,
		Status:          domain.StatusUnconfirmed,
		RequesterName:   booking.RequesterName,
		DoctorName:      doctor.FullName,
		VisitReason:     booking.VisitReason,
		Price:           decimal.NewNullDecimal(price),
	}
	if booking.ConsultationNotes != "" {
		notes := booking.ConsultationNotes
		a.ConsultationNotes = &notes
	}
	if booking.Insurer != "" {
		insurer := booking.Insurer
		a.Insurer = &insurer
	}
	return a
}
