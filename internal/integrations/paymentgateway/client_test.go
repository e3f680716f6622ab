package paymentgateway

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/pkg/logger"
)

type stateRecorder struct {
	states []int
}

func (s *stateRecorder) SetGatewayBreakerState(state int) {
	s.states = append(s.states, state)
}

func newTestClient(baseURL string, observer BreakerObserver) *Client {
	return NewClient(
		Config{
			BaseURL:        baseURL,
			SecretKey:      "sk_test_123",
			Currency:       "usd",
			MinAmountMinor: 50,
			Timeout:        2 * time.Second,
		},
		BreakerConfig{
			MaxRequests:         1,
			Interval:            time.Minute,
			Timeout:             time.Minute,
			ConsecutiveFailures: 2,
		},
		observer,
		logger.NewNop(),
	)
}

func TestClient_CreateCheckoutSession(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/checkout/sessions", r.URL.Path)
		assert.Equal(t, "Bearer sk_test_123", r.Header.Get("Authorization"))
		assert.NotEmpty(t, r.Header.Get("Idempotency-Key"))

		require.NoError(t, r.ParseForm())
		assert.Equal(t, "payment", r.PostForm.Get("mode"))
		assert.Equal(t, "1000", r.PostForm.Get("line_items[0][price_data][unit_amount]"))
		assert.Equal(t, "usd", r.PostForm.Get("line_items[0][price_data][currency]"))
		assert.Equal(t, "Consulta con Dr. House", r.PostForm.Get("line_items[0][price_data][product_data][name]"))
		assert.Equal(t, "http://app/success", r.PostForm.Get("success_url"))
		assert.Equal(t, "http://app/cancel", r.PostForm.Get("cancel_url"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"cs_test_1","url":"https://checkout.example.com/pay/cs_test_1"}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL, nil)

	session, err := client.CreateCheckoutSession(context.Background(), 1000, "Consulta con Dr. House", "http://app/success", "http://app/cancel")
	require.NoError(t, err)

	assert.Equal(t, "cs_test_1", session.ID)
	assert.Equal(t, "https://checkout.example.com/pay/cs_test_1", session.RedirectURL)
}

func TestClient_AmountBelowMinimum(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
	}))
	defer server.Close()

	client := newTestClient(server.URL, nil)

	for _, amount := range []int64{-1, 0, 49} {
		_, err := client.CreateCheckoutSession(context.Background(), amount, "x", "s", "c")
		assert.ErrorIs(t, err, ErrAmountTooLow, "amount=%d", amount)
	}
	assert.Equal(t, int32(0), atomic.LoadInt32(&calls))
}

func TestClient_GatewayAmountTooSmall(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"type":"invalid_request_error","code":"amount_too_small","message":"Amount must be at least $0.50"}}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL, nil)

	_, err := client.CreateCheckoutSession(context.Background(), 60, "x", "s", "c")
	assert.ErrorIs(t, err, ErrAmountTooLow)
	assert.NotErrorIs(t, err, ErrGateway)
}

func TestClient_GatewayRejectionDoesNotTripBreaker(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"type":"invalid_request_error","message":"Invalid API Key"}}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL, nil)

	for i := 0; i < 3; i++ {
		_, err := client.CreateCheckoutSession(context.Background(), 100, "x", "s", "c")
		assert.ErrorIs(t, err, ErrGateway)
	}
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestClient_ServerErrorOpensBreaker(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	recorder := &stateRecorder{}
	client := newTestClient(server.URL, recorder)

	for i := 0; i < 2; i++ {
		_, err := client.CreateCheckoutSession(context.Background(), 100, "x", "s", "c")
		assert.ErrorIs(t, err, ErrGateway)
	}

	_, err := client.CreateCheckoutSession(context.Background(), 100, "x", "s", "c")
	assert.ErrorIs(t, err, ErrGateway)

	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
	assert.Equal(t, []int{2}, recorder.states)
}

func TestClient_InvalidResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id":"cs_test_1"}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL, nil)

	_, err := client.CreateCheckoutSession(context.Background(), 100, "x", "s", "c")
	assert.ErrorIs(t, err, ErrGateway)
	assert.ErrorIs(t, err, ErrInvalidResponse)
}
