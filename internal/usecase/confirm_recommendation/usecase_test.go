package confirm_recommendation

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	sessionStore "github.com/m04kA/SMC-AppointmentService/internal/infra/session"
	doctorRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/doctor"
	"github.com/m04kA/SMC-AppointmentService/pkg/logger"
)

// doctorStore хранилище врачей с откатом изменений при ошибке транзакции
type doctorStore struct {
	doctors map[int64]domain.Doctor
	setErr  error
	writes  int
}

func (s *doctorStore) GetByID(_ context.Context, id int64) (*domain.Doctor, error) {
	d, ok := s.doctors[id]
	if !ok {
		return nil, doctorRepo.ErrDoctorNotFound
	}
	return &d, nil
}

func (s *doctorStore) SetRecommended(_ context.Context, id int64) error {
	s.writes++
	if s.setErr != nil {
		return s.setErr
	}
	d, ok := s.doctors[id]
	if !ok {
		return doctorRepo.ErrDoctorNotFound
	}
	d.Recommended = true
	s.doctors[id] = d
	return nil
}

type txManager struct{ s *doctorStore }

func (m *txManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	snapshot := make(map[int64]domain.Doctor, len(m.s.doctors))
	for k, v := range m.s.doctors {
		snapshot[k] = v
	}
	if err := fn(ctx); err != nil {
		m.s.doctors = snapshot
		return err
	}
	return nil
}

type fakeCheckouts struct {
	items     map[string]domain.RecommendationCheckout
	getErr    error
	deleteErr error
}

func (f *fakeCheckouts) Get(_ context.Context, sid string) (*domain.RecommendationCheckout, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	c, ok := f.items[sid]
	if !ok {
		return nil, sessionStore.ErrNotFound
	}
	return &c, nil
}

func (f *fakeCheckouts) Delete(_ context.Context, sid string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	delete(f.items, sid)
	return nil
}

type fakeMetrics struct{ subscriptions int }

func (f *fakeMetrics) IncRecommendationSubscriptions() { f.subscriptions++ }

type env struct {
	uc        *UseCase
	doctors   *doctorStore
	checkouts *fakeCheckouts
	metrics   *fakeMetrics
}

func newEnv(withCheckout bool) *env {
	e := &env{
		doctors: &doctorStore{doctors: map[int64]domain.Doctor{
			4: {ID: 4, FullName: "Dr. Grey"},
			5: {ID: 5, FullName: "Dr. Yang"},
		}},
		checkouts: &fakeCheckouts{items: map[string]domain.RecommendationCheckout{}},
		metrics:   &fakeMetrics{},
	}
	if withCheckout {
		e.checkouts.items["sid"] = domain.RecommendationCheckout{DoctorID: 4, CheckoutSessionID: "cs_299", AmountMinorUnits: 299}
	}
	e.uc = NewUseCase(e.doctors, e.checkouts, &txManager{s: e.doctors}, e.metrics, logger.NewNop())
	return e
}

func doctor() domain.Principal { return domain.NewDoctorPrincipal(200, 4) }

func TestExecute_MarksDoctorRecommended(t *testing.T) {
	e := newEnv(true)

	resp, err := e.uc.Execute(context.Background(), &Request{SessionID: "sid", Principal: doctor()})
	require.NoError(t, err)
	require.NotNil(t, resp.Doctor)
	assert.True(t, resp.Doctor.Recommended)

	assert.True(t, e.doctors.doctors[4].Recommended)
	assert.False(t, e.doctors.doctors[5].Recommended)
	assert.Empty(t, e.checkouts.items)
	assert.Equal(t, 1, e.metrics.subscriptions)
}

func TestExecute_IsIdempotent(t *testing.T) {
	e := newEnv(true)

	_, err := e.uc.Execute(context.Background(), &Request{SessionID: "sid", Principal: doctor()})
	require.NoError(t, err)

	// Повторный возврат из шлюза после удаления оплаты из сессии
	resp, err := e.uc.Execute(context.Background(), &Request{SessionID: "sid", Principal: doctor()})
	require.ErrorIs(t, err, ErrAlreadyRecommended)
	require.NotNil(t, resp)
	assert.True(t, resp.Doctor.Recommended)

	// Повторный возврат с ещё не удалённой оплатой
	e.checkouts.items["sid"] = domain.RecommendationCheckout{DoctorID: 4, CheckoutSessionID: "cs_299"}
	_, err = e.uc.Execute(context.Background(), &Request{SessionID: "sid", Principal: doctor()})
	require.ErrorIs(t, err, ErrAlreadyRecommended)

	assert.Equal(t, 1, e.doctors.writes)
	assert.Equal(t, 1, e.metrics.subscriptions)
	assert.Empty(t, e.checkouts.items)
}

func TestExecute_RequiresCheckout(t *testing.T) {
	e := newEnv(false)

	resp, err := e.uc.Execute(context.Background(), &Request{SessionID: "sid", Principal: doctor()})
	require.ErrorIs(t, err, ErrNoPendingCheckout)
	assert.Nil(t, resp)
	assert.Zero(t, e.doctors.writes)
	assert.False(t, e.doctors.doctors[4].Recommended)
}

func TestExecute_Rejections(t *testing.T) {
	tests := []struct {
		name      string
		principal domain.Principal
		wantErr   error
	}{
		{name: "patient", principal: domain.NewPatientPrincipal(100, 7), wantErr: ErrAccessDenied},
		{name: "other doctor", principal: domain.NewDoctorPrincipal(201, 5), wantErr: ErrAccessDenied},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newEnv(true)

			_, err := e.uc.Execute(context.Background(), &Request{SessionID: "sid", Principal: tt.principal})
			require.ErrorIs(t, err, tt.wantErr)
			assert.Zero(t, e.doctors.writes)
			assert.False(t, e.doctors.doctors[5].Recommended)
			assert.Contains(t, e.checkouts.items, "sid")
		})
	}
}

func TestExecute_UpdateFailureKeepsCheckout(t *testing.T) {
	e := newEnv(true)
	e.doctors.setErr = errors.New("connection reset")

	_, err := e.uc.Execute(context.Background(), &Request{SessionID: "sid", Principal: doctor()})
	require.ErrorIs(t, err, ErrInternal)
	assert.False(t, e.doctors.doctors[4].Recommended)
	assert.Contains(t, e.checkouts.items, "sid")
	assert.Zero(t, e.metrics.subscriptions)
}

func TestExecute_StoreFailures(t *testing.T) {
	e := newEnv(true)
	e.checkouts.getErr = errors.New("redis down")

	_, err := e.uc.Execute(context.Background(), &Request{SessionID: "sid", Principal: doctor()})
	require.ErrorIs(t, err, ErrInternal)

	// Ошибка удаления после коммита не отменяет подписку
	e = newEnv(true)
	e.checkouts.deleteErr = errors.New("redis down")

	resp, err := e.uc.Execute(context.Background(), &Request{SessionID: "sid", Principal: doctor()})
	require.NoError(t, err)
	assert.True(t, resp.Doctor.Recommended)
	assert.True(t, e.doctors.doctors[4].Recommended)
}
