package bookingsession

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	sessionStore "github.com/m04kA/SMC-AppointmentService/internal/infra/session"
)

// Service сервис незавершённых бронирований сессии
type Service struct {
	store        Store
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса
func NewService(store Store, logger Logger) *Service {
	return &Service{
		store:        store,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Put сохраняет бронирование сессии, последнее сохранение выигрывает
func (s *Service) Put(ctx context.Context, sessionID string, booking *domain.PendingBooking) error {
	if sessionID == "" {
		return ErrInvalidSession
	}

	now := s.timeProvider.Now()
	if booking.CreatedAt.IsZero() {
		booking.CreatedAt = now
	}
	booking.UpdatedAt = now

	if err := s.store.Put(ctx, sessionID, booking); err != nil {
		s.logger.Error("Put: failed to store pending booking for session=%s: %v", sessionID, err)
		return fmt.Errorf("%w: Put - store error: %v", ErrInternal, err)
	}

	return nil
}

// Get возвращает бронирование сессии или ErrNoPendingBooking
func (s *Service) Get(ctx context.Context, sessionID string) (*domain.PendingBooking, error) {
	if sessionID == "" {
		return nil, ErrNoPendingBooking
	}

	booking, err := s.store.Get(ctx, sessionID)
	if err != nil {
		if errors.Is(err, sessionStore.ErrNotFound) {
			return nil, ErrNoPendingBooking
		}
		s.logger.Error("Get: failed to load pending booking for session=%s: %v", sessionID, err)
		return nil, fmt.Errorf("%w: Get - store error: %v", ErrInternal, err)
	}

	return booking, nil
}

// ApplyCoupon отмечает купон как применённый в сессии
// Купон пациента при этом не расходуется, это делает финализация бронирования
func (s *Service) ApplyCoupon(ctx context.Context, sessionID string, patient *domain.Patient) (*domain.PendingBooking, error) {
	booking, err := s.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if patient == nil || !patient.HasCoupon() {
		s.logger.Warn("ApplyCoupon: coupon not eligible for session=%s", sessionID)
		return booking, ErrCouponNotEligible
	}

	if booking.CouponApplied {
		return booking, nil
	}

	// Цена изменится, прежняя сессия оплаты больше не действительна
	booking.CouponApplied = true
	booking.State = domain.PendingPriceComputed
	booking.CheckoutSessionID = ""
	if err := s.Put(ctx, sessionID, booking); err != nil {
		return nil, err
	}

	s.logger.Info("ApplyCoupon: coupon applied for session=%s, patient=%d", sessionID, patient.ID)
	return booking, nil
}

// Clear удаляет бронирование сессии
func (s *Service) Clear(ctx context.Context, sessionID string) error {
	if err := s.store.Delete(ctx, sessionID); err != nil {
		s.logger.Error("Clear: failed to delete pending booking for session=%s: %v", sessionID, err)
		return fmt.Errorf("%w: Clear - store error: %v", ErrInternal, err)
	}
	return nil
}
