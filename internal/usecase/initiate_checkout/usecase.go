package initiate_checkout

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/integrations/paymentgateway"
	"github.com/m04kA/SMC-AppointmentService/internal/service/bookingsession"
)

// UseCase use case начала оплаты записи
type UseCase struct {
	doctorRepo DoctorRepository
	sessions   BookingSession
	gateway    PaymentGateway
	urls       URLs
	metrics    Metrics
	logger     Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	doctorRepo DoctorRepository,
	sessions BookingSession,
	gateway PaymentGateway,
	urls URLs,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		doctorRepo: doctorRepo,
		sessions:   sessions,
		gateway:    gateway,
		urls:       urls,
		metrics:    metrics,
		logger:     logger,
	}
}

// Execute создает сессию оплаты на итоговую цену черновика
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Загружаем черновик
	booking, err := uc.sessions.Get(ctx, req.SessionID)
	if err != nil {
		if errors.Is(err, bookingsession.ErrNoPendingBooking) {
			uc.logger.Warn("InitiateCheckout: no pending booking for user=%d", req.Principal.UserID)
			return nil, ErrNoPendingBooking
		}
		return nil, fmt.Errorf("%w: failed to load pending booking: %v", ErrInternal, err)
	}

	// 2. Переводим цену в центы
	price, err := booking.FinalPrice()
	if err != nil {
		uc.logger.Warn("InitiateCheckout: invalid stored price=%q for user=%d", booking.Price, req.Principal.UserID)
		uc.metrics.IncCheckoutFailures(reasonInvalidPrice)
		return nil, ErrInvalidPrice
	}
	amount := domain.ToMinorUnits(price)

	description, err := uc.describe(ctx, booking)
	if err != nil {
		return nil, err
	}

	// 3. Создаём сессию оплаты
	session, err := uc.gateway.CreateCheckoutSession(ctx, amount, description, uc.urls.SuccessURL, uc.urls.CancelURL)
	if err != nil {
		switch {
		case errors.Is(err, paymentgateway.ErrAmountTooLow):
			uc.logger.Warn("InitiateCheckout: amount=%d is below gateway minimum", amount)
			uc.metrics.IncCheckoutFailures(reasonAmountTooLow)
			return nil, ErrAmountTooLow
		default:
			uc.logger.Error("InitiateCheckout: gateway error for amount=%d: %v", amount, err)
			uc.metrics.IncCheckoutFailures(reasonGateway)
			return nil, fmt.Errorf("%w: %v", ErrGateway, err)
		}
	}

	// 4. Отмечаем черновик как отправленный на оплату
	booking.State = domain.PendingSubmitted
	booking.CheckoutSessionID = session.ID
	if err := uc.sessions.Put(ctx, req.SessionID, booking); err != nil {
		uc.logger.Error("InitiateCheckout: failed to update pending booking: %v", err)
		return nil, fmt.Errorf("%w: failed to update pending booking: %v", ErrInternal, err)
	}

	uc.metrics.IncCheckoutSessions()
	uc.logger.Info("InitiateCheckout: checkout session=%s created, amount=%d", session.ID, amount)

	return &Response{
		CheckoutSessionID: session.ID,
		RedirectURL:       session.RedirectURL,
		AmountMinorUnits:  amount,
	}, nil
}

// describe формирует описание позиции для страницы оплаты
func (uc *UseCase) describe(ctx context.Context, booking *domain.PendingBooking) (string, error) {
	doctor, err := uc.doctorRepo.GetByID(ctx, booking.DoctorID)
	if err != nil {
		uc.logger.Error("InitiateCheckout: failed to get doctor id=%d: %v", booking.DoctorID, err)
		return "", fmt.Errorf("%w: failed to get doctor: %v", ErrInternal, err)
	}
	return fmt.Sprintf("Appointment with %s on %s %s", doctor.FullName, booking.RequestedDate, booking.RequestedTime), nil
}
