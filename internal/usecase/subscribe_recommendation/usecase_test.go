package subscribe_recommendation

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	doctorRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/doctor"
	"github.com/m04kA/SMC-AppointmentService/internal/integrations/paymentgateway"
	"github.com/m04kA/SMC-AppointmentService/pkg/logger"
)

type fakeDoctors map[int64]*domain.Doctor

func (f fakeDoctors) GetByID(_ context.Context, id int64) (*domain.Doctor, error) {
	d, ok := f[id]
	if !ok {
		return nil, doctorRepo.ErrDoctorNotFound
	}
	cp := *d
	return &cp, nil
}

type fakeCheckouts struct {
	items map[string]domain.RecommendationCheckout
	err   error
}

func (f *fakeCheckouts) Put(_ context.Context, sid string, c *domain.RecommendationCheckout) error {
	if f.err != nil {
		return f.err
	}
	f.items[sid] = *c
	return nil
}

type fakeGateway struct {
	amount     int64
	desc       string
	successURL string
	cancelURL  string
	err        error
	calls      int
}

func (f *fakeGateway) CreateCheckoutSession(_ context.Context, amount int64, desc, successURL, cancelURL string) (*paymentgateway.CheckoutSession, error) {
	f.calls++
	f.amount = amount
	f.desc = desc
	f.successURL = successURL
	f.cancelURL = cancelURL
	if f.err != nil {
		return nil, f.err
	}
	return &paymentgateway.CheckoutSession{ID: "cs_299", RedirectURL: "https://pay.example.com/cs_299"}, nil
}

type fakeMetrics struct {
	sessions int
	failures []string
}

func (f *fakeMetrics) IncCheckoutSessions()              { f.sessions++ }
func (f *fakeMetrics) IncCheckoutFailures(reason string) { f.failures = append(f.failures, reason) }

type fixedTime struct{ t time.Time }

func (f fixedTime) Now() time.Time { return f.t }

type env struct {
	uc        *UseCase
	checkouts *fakeCheckouts
	gateway   *fakeGateway
	metrics   *fakeMetrics
}

func newEnv(gatewayErr error) *env {
	e := &env{
		checkouts: &fakeCheckouts{items: map[string]domain.RecommendationCheckout{}},
		gateway:   &fakeGateway{err: gatewayErr},
		metrics:   &fakeMetrics{},
	}
	doctors := fakeDoctors{
		3: {ID: 3, FullName: "Dr. House", Recommended: true},
		4: {ID: 4, FullName: "Dr. Grey"},
	}
	e.uc = NewUseCase(doctors, e.checkouts, e.gateway, Config{
		AmountMinorUnits: 299,
		SuccessURL:       "http://app/api/v1/doctors/me/recommendation/success",
		CancelURL:        "http://app/api/v1/booking/cancel",
	}, e.metrics, logger.NewNop())
	e.uc.timeProvider = fixedTime{t: time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)}
	return e
}

func doctor() domain.Principal { return domain.NewDoctorPrincipal(200, 4) }

func TestExecute_CreatesCheckout(t *testing.T) {
	e := newEnv(nil)

	resp, err := e.uc.Execute(context.Background(), &Request{SessionID: "sid", Principal: doctor()})
	require.NoError(t, err)

	assert.Equal(t, "cs_299", resp.CheckoutSessionID)
	assert.Equal(t, "https://pay.example.com/cs_299", resp.RedirectURL)
	assert.Equal(t, int64(299), resp.AmountMinorUnits)

	assert.Equal(t, int64(299), e.gateway.amount)
	assert.Contains(t, e.gateway.desc, "Dr. Grey")
	assert.Equal(t, "http://app/api/v1/doctors/me/recommendation/success", e.gateway.successURL)
	assert.Equal(t, "http://app/api/v1/booking/cancel", e.gateway.cancelURL)

	stored, ok := e.checkouts.items["sid"]
	require.True(t, ok)
	assert.Equal(t, int64(4), stored.DoctorID)
	assert.Equal(t, "cs_299", stored.CheckoutSessionID)
	assert.Equal(t, int64(299), stored.AmountMinorUnits)
	assert.Equal(t, 1, e.metrics.sessions)
}

func TestExecute_Rejections(t *testing.T) {
	tests := []struct {
		name      string
		principal domain.Principal
		wantErr   error
	}{
		{name: "patient", principal: domain.NewPatientPrincipal(100, 7), wantErr: ErrAccessDenied},
		{name: "unknown user", principal: domain.NewUnknownPrincipal(300), wantErr: ErrAccessDenied},
		{name: "doctor without profile", principal: domain.NewDoctorPrincipal(201, 99), wantErr: ErrDoctorNotFound},
		{name: "already recommended", principal: domain.NewDoctorPrincipal(202, 3), wantErr: ErrAlreadyRecommended},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newEnv(nil)

			_, err := e.uc.Execute(context.Background(), &Request{SessionID: "sid", Principal: tt.principal})
			require.ErrorIs(t, err, tt.wantErr)
			assert.Zero(t, e.gateway.calls)
			assert.Empty(t, e.checkouts.items)
		})
	}
}

func TestExecute_GatewayErrors(t *testing.T) {
	tests := []struct {
		name       string
		gatewayErr error
		wantErr    error
		wantReason string
	}{
		{
			name:       "amount too low",
			gatewayErr: fmt.Errorf("%w: amount=299, minimum=500", paymentgateway.ErrAmountTooLow),
			wantErr:    ErrAmountTooLow,
			wantReason: reasonAmountTooLow,
		},
		{
			name:       "gateway down",
			gatewayErr: paymentgateway.ErrGateway,
			wantErr:    ErrGateway,
			wantReason: reasonGateway,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newEnv(tt.gatewayErr)

			_, err := e.uc.Execute(context.Background(), &Request{SessionID: "sid", Principal: doctor()})
			require.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, e.checkouts.items)
			assert.Equal(t, []string{tt.wantReason}, e.metrics.failures)
			assert.Zero(t, e.metrics.sessions)
		})
	}
}

func TestExecute_StoreFailure(t *testing.T) {
	e := newEnv(nil)
	e.checkouts.err = errors.New("redis down")

	_, err := e.uc.Execute(context.Background(), &Request{SessionID: "sid", Principal: doctor()})
	require.ErrorIs(t, err, ErrInternal)
	assert.Zero(t, e.metrics.sessions)
}
