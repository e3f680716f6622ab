package subscribe_recommendation

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	doctorRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/doctor"
	"github.com/m04kA/SMC-AppointmentService/internal/integrations/paymentgateway"
)

const checkoutDescription = "Recommended doctor listing for %s"

// UseCase use case оплаты подписки врача на рекомендацию
type UseCase struct {
	doctorRepo   DoctorRepository
	checkouts    CheckoutStore
	gateway      PaymentGateway
	cfg          Config
	metrics      Metrics
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	doctorRepo DoctorRepository,
	checkouts CheckoutStore,
	gateway PaymentGateway,
	cfg Config,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		doctorRepo:   doctorRepo,
		checkouts:    checkouts,
		gateway:      gateway,
		cfg:          cfg,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute создает сессию оплаты подписки на фиксированную сумму
// Сессия запоминается в хранилище сессий, без неё возврат из шлюза не засчитывается
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	doctorID, ok := req.Principal.AsDoctor()
	if !ok {
		uc.logger.Warn("SubscribeRecommendation: user=%d is not a doctor", req.Principal.UserID)
		return nil, ErrAccessDenied
	}

	doctor, err := uc.doctorRepo.GetByID(ctx, doctorID)
	if err != nil {
		if errors.Is(err, doctorRepo.ErrDoctorNotFound) {
			uc.logger.Warn("SubscribeRecommendation: doctor id=%d not found", doctorID)
			return nil, ErrDoctorNotFound
		}
		uc.logger.Error("SubscribeRecommendation: failed to get doctor id=%d: %v", doctorID, err)
		return nil, fmt.Errorf("%w: failed to get doctor: %v", ErrInternal, err)
	}

	if doctor.Recommended {
		uc.logger.Info("SubscribeRecommendation: doctor id=%d is already recommended", doctorID)
		return nil, ErrAlreadyRecommended
	}

	amount := uc.cfg.AmountMinorUnits
	session, err := uc.gateway.CreateCheckoutSession(ctx, amount,
		fmt.Sprintf(checkoutDescription, doctor.FullName), uc.cfg.SuccessURL, uc.cfg.CancelURL)
	if err != nil {
		switch {
		case errors.Is(err, paymentgateway.ErrAmountTooLow):
			uc.logger.Warn("SubscribeRecommendation: amount=%d is below gateway minimum", amount)
			uc.metrics.IncCheckoutFailures(reasonAmountTooLow)
			return nil, ErrAmountTooLow
		default:
			uc.logger.Error("SubscribeRecommendation: gateway error for doctor=%d: %v", doctorID, err)
			uc.metrics.IncCheckoutFailures(reasonGateway)
			return nil, fmt.Errorf("%w: %v", ErrGateway, err)
		}
	}

	checkout := &domain.RecommendationCheckout{
		DoctorID:          doctorID,
		CheckoutSessionID: session.ID,
		AmountMinorUnits:  amount,
		CreatedAt:         uc.timeProvider.Now(),
	}
	if err := uc.checkouts.Put(ctx, req.SessionID, checkout); err != nil {
		uc.logger.Error("SubscribeRecommendation: failed to store checkout session=%s: %v", session.ID, err)
		return nil, fmt.Errorf("%w: failed to store checkout: %v", ErrInternal, err)
	}

	uc.metrics.IncCheckoutSessions()
	uc.logger.Info("SubscribeRecommendation: checkout session=%s created for doctor=%d, amount=%d",
		session.ID, doctorID, amount)

	return &Response{
		CheckoutSessionID: session.ID,
		RedirectURL:       session.RedirectURL,
		AmountMinorUnits:  amount,
	}, nil
}
