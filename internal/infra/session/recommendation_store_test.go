package session

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

func newRecommendationStore(t *testing.T) (*RecommendationStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRecommendationStore(client, 30*time.Minute), mr
}

func TestRecommendationStore_Lifecycle(t *testing.T) {
	store, mr := newRecommendationStore(t)
	ctx := context.Background()

	_, err := store.Get(ctx, "sid")
	require.ErrorIs(t, err, ErrNotFound)

	checkout := &domain.RecommendationCheckout{
		DoctorID:          4,
		CheckoutSessionID: "cs_299",
		AmountMinorUnits:  299,
		CreatedAt:         time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC),
	}
	require.NoError(t, store.Put(ctx, "sid", checkout))
	assert.Equal(t, 30*time.Minute, mr.TTL("recommendation:pending:sid"))

	// Черновик записи хранится под другим ключом
	assert.False(t, mr.Exists("booking:pending:sid"))

	got, err := store.Get(ctx, "sid")
	require.NoError(t, err)
	assert.Equal(t, int64(4), got.DoctorID)
	assert.Equal(t, "cs_299", got.CheckoutSessionID)
	assert.Equal(t, int64(299), got.AmountMinorUnits)

	require.NoError(t, store.Delete(ctx, "sid"))
	require.NoError(t, store.Delete(ctx, "sid"))
	_, err = store.Get(ctx, "sid")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRecommendationStore_CorruptedValue(t *testing.T) {
	store, mr := newRecommendationStore(t)
	require.NoError(t, mr.Set("recommendation:pending:sid", "{broken"))

	_, err := store.Get(context.Background(), "sid")
	assert.ErrorIs(t, err, ErrUnmarshal)
}

func TestRecommendationStore_RedisDown(t *testing.T) {
	store, mr := newRecommendationStore(t)
	mr.Close()

	err := store.Put(context.Background(), "sid", &domain.RecommendationCheckout{DoctorID: 4})
	assert.ErrorIs(t, err, ErrRedis)
}
