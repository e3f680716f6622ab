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

const recommendationKeyPrefix = "recommendation:pending:"

// RecommendationStore хранилище начатых оплат подписки на рекомендацию
type RecommendationStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRecommendationStore создает хранилище с заданным временем жизни записи
func NewRecommendationStore(client *redis.Client, ttl time.Duration) *RecommendationStore {
	return &RecommendationStore{
		client: client,
		ttl:    ttl,
	}
}

// Put сохраняет сессию оплаты, перезаписывая предыдущую
func (s *RecommendationStore) Put(ctx context.Context, sessionID string, checkout *domain.RecommendationCheckout) error {
	data, err := json.Marshal(checkout)
	if err != nil {
		return fmt.Errorf("%w: RecommendationStore.Put - session=%s: %v", ErrMarshal, sessionID, err)
	}

	if err := s.client.Set(ctx, recommendationKey(sessionID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("%w: RecommendationStore.Put - session=%s: %v", ErrRedis, sessionID, err)
	}

	return nil
}

// Get возвращает сессию оплаты или ErrNotFound
func (s *RecommendationStore) Get(ctx context.Context, sessionID string) (*domain.RecommendationCheckout, error) {
	data, err := s.client.Get(ctx, recommendationKey(sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: RecommendationStore.Get - session=%s: %v", ErrRedis, sessionID, err)
	}

	var checkout domain.RecommendationCheckout
	if err := json.Unmarshal(data, &checkout); err != nil {
		return nil, fmt.Errorf("%w: RecommendationStore.Get - session=%s: %v", ErrUnmarshal, sessionID, err)
	}

	return &checkout, nil
}

// Delete удаляет сессию оплаты, отсутствие ключа не считается ошибкой
func (s *RecommendationStore) Delete(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, recommendationKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("%w: RecommendationStore.Delete - session=%s: %v", ErrRedis, sessionID, err)
	}
	return nil
}

func recommendationKey(sessionID string) string {
	return recommendationKeyPrefix + sessionID
}
