package preview_price

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	doctorRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/doctor"
	patientRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/patient"
	"github.com/m04kA/SMC-AppointmentService/internal/service/bookingsession"
)

// UseCase use case предпросмотра цены записи
// Не выполняет записей в постоянное хранилище
type UseCase struct {
	doctorRepo  DoctorRepository
	patientRepo PatientRepository
	sessions    BookingSession
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(doctorRepo DoctorRepository, patientRepo PatientRepository, sessions BookingSession, logger Logger) *UseCase {
	return &UseCase{
		doctorRepo:  doctorRepo,
		patientRepo: patientRepo,
		sessions:    sessions,
		logger:      logger,
	}
}

// Execute пересчитывает цену черновика, при запросе применяет купон
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Загружаем черновик
	booking, err := uc.sessions.Get(ctx, req.SessionID)
	if err != nil {
		if errors.Is(err, bookingsession.ErrNoPendingBooking) {
			uc.logger.Warn("PreviewPrice: no pending booking for user=%d", req.Principal.UserID)
			return nil, ErrNoPendingBooking
		}
		return nil, fmt.Errorf("%w: failed to load pending booking: %v", ErrInternal, err)
	}

	// 2. Пациент черновика (для купона)
	patient, err := uc.bookingPatient(ctx, booking, req.Principal)
	if err != nil {
		return nil, err
	}

	// 3. Применяем купон, если запрошено
	couponRejected := false
	if req.ApplyCoupon {
		updated, err := uc.sessions.ApplyCoupon(ctx, req.SessionID, patient)
		switch {
		case err == nil:
			booking = updated
		case errors.Is(err, bookingsession.ErrCouponNotEligible):
			uc.logger.Info("PreviewPrice: coupon not eligible for user=%d", req.Principal.UserID)
			couponRejected = true
		case errors.Is(err, bookingsession.ErrNoPendingBooking):
			return nil, ErrNoPendingBooking
		default:
			return nil, fmt.Errorf("%w: failed to apply coupon: %v", ErrInternal, err)
		}
	}

	// 4. Пересчитываем цену
	doctor, err := uc.doctorRepo.GetByID(ctx, booking.DoctorID)
	if err != nil {
		if errors.Is(err, doctorRepo.ErrDoctorNotFound) {
			uc.logger.Warn("PreviewPrice: doctor id=%d not found", booking.DoctorID)
			return nil, ErrDoctorNotFound
		}
		uc.logger.Error("PreviewPrice: failed to get doctor id=%d: %v", booking.DoctorID, err)
		return nil, fmt.Errorf("%w: failed to get doctor: %v", ErrInternal, err)
	}

	quote := domain.ComputePrice(doctor.ConsultationPrice(), doctor.Recommended, booking.CouponApplied)

	// Черновик хранит последнюю показанную цену, её и отправим на оплату
	price, discount := domain.FormatMoney(quote.FinalPrice), domain.FormatMoney(quote.Discount)
	if booking.Price != price || booking.Discount != discount || booking.State == domain.PendingDraft {
		booking.ApplyQuote(quote)
		if err := uc.sessions.Put(ctx, req.SessionID, booking); err != nil {
			uc.logger.Error("PreviewPrice: failed to update pending booking: %v", err)
			return nil, fmt.Errorf("%w: failed to update pending booking: %v", ErrInternal, err)
		}
	}

	return &Response{
		Booking:         booking,
		DoctorName:      doctor.FullName,
		Specialty:       doctor.Specialty,
		BasePrice:       domain.FormatMoney(doctor.ConsultationPrice()),
		Commission:      domain.FormatMoney(quote.Commission),
		Discount:        discount,
		FinalPrice:      price,
		CouponApplied:   booking.CouponApplied,
		CouponAvailable: patient != nil && patient.HasCoupon() && !booking.CouponApplied,
		CouponRejected:  couponRejected,
	}, nil
}

// bookingPatient возвращает пациента черновика, если запрос сделал он же
func (uc *UseCase) bookingPatient(ctx context.Context, booking *domain.PendingBooking, principal domain.Principal) (*domain.Patient, error) {
	patientID, ok := principal.AsPatient()
	if !ok || booking.PatientID == nil || *booking.PatientID != patientID {
		return nil, nil
	}

	patient, err := uc.patientRepo.GetByID(ctx, patientID)
	if err != nil {
		if errors.Is(err, patientRepo.ErrPatientNotFound) {
			uc.logger.Warn("PreviewPrice: patient id=%d not found", patientID)
			return nil, nil
		}
		uc.logger.Error("PreviewPrice: failed to get patient id=%d: %v", patientID, err)
		return nil, fmt.Errorf("%w: failed to get patient: %v", ErrInternal, err)
	}

	return patient, nil
}
