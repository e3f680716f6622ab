package confirm_recommendation

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	sessionStore "github.com/m04kA/SMC-AppointmentService/internal/infra/session"
	doctorRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/doctor"
)

// UseCase use case подтверждения подписки врача на рекомендацию
type UseCase struct {
	doctorRepo DoctorRepository
	checkouts  CheckoutStore
	txManager  TransactionManager
	metrics    Metrics
	logger     Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	doctorRepo DoctorRepository,
	checkouts CheckoutStore,
	txManager TransactionManager,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		doctorRepo: doctorRepo,
		checkouts:  checkouts,
		txManager:  txManager,
		metrics:    metrics,
		logger:     logger,
	}
}

// Execute отмечает врача рекомендованным после возврата из шлюза
//
// Засчитывается только оплата, начатая в этой же сессии этим же врачом.
// Повторный вызов возвращает ErrAlreadyRecommended и врача в Response.
// Как и для записи на приём, серверного подтверждения оплаты нет.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	doctorID, ok := req.Principal.AsDoctor()
	if !ok {
		uc.logger.Warn("ConfirmRecommendation: user=%d is not a doctor", req.Principal.UserID)
		return nil, ErrAccessDenied
	}

	// 1. Загружаем начатую оплату
	checkout, err := uc.checkouts.Get(ctx, req.SessionID)
	if err != nil {
		if errors.Is(err, sessionStore.ErrNotFound) {
			return uc.handleMissingCheckout(ctx, doctorID)
		}
		return nil, fmt.Errorf("%w: failed to load checkout: %v", ErrInternal, err)
	}

	if checkout.DoctorID != doctorID {
		uc.logger.Warn("ConfirmRecommendation: checkout of doctor=%d confirmed by doctor=%d",
			checkout.DoctorID, doctorID)
		return nil, ErrAccessDenied
	}

	// 2. Отмечаем врача в транзакции
	var (
		doctor  *domain.Doctor
		already bool
	)
	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		found, err := uc.getDoctor(txCtx, doctorID)
		if err != nil {
			return err
		}

		if found.Recommended {
			doctor, already = found, true
			return nil
		}

		if err := uc.doctorRepo.SetRecommended(txCtx, doctorID); err != nil {
			if errors.Is(err, doctorRepo.ErrDoctorNotFound) {
				return ErrDoctorNotFound
			}
			uc.logger.Error("ConfirmRecommendation: failed to mark doctor id=%d: %v", doctorID, err)
			return fmt.Errorf("%w: failed to mark doctor: %w", ErrInternal, err)
		}

		found.Recommended = true
		doctor = found
		return nil
	})
	if err != nil {
		return nil, err
	}

	// 3. Оплата засчитана, удаляем её из сессии
	if err := uc.checkouts.Delete(ctx, req.SessionID); err != nil {
		uc.logger.Error("ConfirmRecommendation: doctor id=%d marked but checkout not cleared: %v", doctorID, err)
	}

	if already {
		uc.logger.Info("ConfirmRecommendation: doctor id=%d was already recommended", doctorID)
		return &Response{Doctor: doctor}, ErrAlreadyRecommended
	}

	uc.metrics.IncRecommendationSubscriptions()
	uc.logger.Info("ConfirmRecommendation: doctor id=%d is now recommended, checkout=%s",
		doctorID, checkout.CheckoutSessionID)

	return &Response{Doctor: doctor}, nil
}

// handleMissingCheckout отличает повторный возврат из шлюза от возврата без оплаты
func (uc *UseCase) handleMissingCheckout(ctx context.Context, doctorID int64) (*Response, error) {
	doctor, err := uc.getDoctor(ctx, doctorID)
	if err != nil {
		return nil, err
	}

	if doctor.Recommended {
		return &Response{Doctor: doctor}, ErrAlreadyRecommended
	}

	uc.logger.Warn("ConfirmRecommendation: no pending checkout for doctor=%d", doctorID)
	return nil, ErrNoPendingCheckout
}

func (uc *UseCase) getDoctor(ctx context.Context, id int64) (*domain.Doctor, error) {
	doctor, err := uc.doctorRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, doctorRepo.ErrDoctorNotFound) {
			uc.logger.Warn("ConfirmRecommendation: doctor id=%d not found", id)
			return nil, ErrDoctorNotFound
		}
		uc.logger.Error("ConfirmRecommendation: failed to get doctor id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: failed to get doctor: %v", ErrInternal, err)
	}
	return doctor, nil
}
