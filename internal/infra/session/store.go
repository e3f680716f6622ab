package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

const keyPrefix = "booking:pending:"

// Store хранилище незавершённых бронирований в Redis
// На одну сессию хранится не более одного бронирования
type Store struct {
	client *redis.Client
	ttl    time.Duration
}

// NewStore создает хранилище с заданным временем жизни записи
func NewStore(client *redis.Client, ttl time.Duration) *Store {
	return &Store{
		client: client,
		ttl:    ttl,
	}
}

// Put сохраняет бронирование, перезаписывая предыдущее, и продлевает TTL
func (s *Store) Put(ctx context.Context, sessionID string, booking *domain.PendingBooking) error {
	data, err := json.Marshal(booking)
	if err != nil {
		return fmt.Errorf("%w: Put - session=%s: %v", ErrMarshal, sessionID, err)
	}

	if err := s.client.Set(ctx, key(sessionID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("%w: Put - session=%s: %v", ErrRedis, sessionID, err)
	}

	return nil
}

// Get возвращает бронирование сессии или ErrNotFound
func (s *Store) Get(ctx context.Context, sessionID string) (*domain.PendingBooking, error) {
	data, err := s.client.Get(ctx, key(sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Get - session=%s: %v", ErrRedis, sessionID, err)
	}

	var booking domain.PendingBooking
	if err := json.Unmarshal(data, &booking); err != nil {
		return nil, fmt.Errorf("%w: Get - session=%s: %v", ErrUnmarshal, sessionID, err)
	}

	return &booking, nil
}

// Delete удаляет бронирование сессии, отсутствие ключа не считается ошибкой
func (s *Store) Delete(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, key(sessionID)).Err(); err != nil {
		return fmt.Errorf("%w: Delete - session=%s: %v", ErrRedis, sessionID, err)
	}
	return nil
}

func key(sessionID string) string {
	return keyPrefix + sessionID
}
