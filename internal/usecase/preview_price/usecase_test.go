package preview_price

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	doctorRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/doctor"
	patientRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/patient"
	sessionStore "github.com/m04kA/SMC-AppointmentService/internal/infra/session"
	"github.com/m04kA/SMC-AppointmentService/internal/service/bookingsession"
	"github.com/m04kA/SMC-AppointmentService/pkg/logger"
	"github.com/m04kA/SMC-AppointmentService/pkg/ptr"
)

type fakeDoctors map[int64]*domain.Doctor

func (f fakeDoctors) GetByID(_ context.Context, id int64) (*domain.Doctor, error) {
	d, ok := f[id]
	if !ok {
		return nil, doctorRepo.ErrDoctorNotFound
	}
	return d, nil
}

type fakePatients map[int64]*domain.Patient

func (f fakePatients) GetByID(_ context.Context, id int64) (*domain.Patient, error) {
	p, ok := f[id]
	if !ok {
		return nil, patientRepo.ErrPatientNotFound
	}
	cp := *p
	return &cp, nil
}

type memoryStore map[string]domain.PendingBooking

func (m memoryStore) Put(_ context.Context, sid string, b *domain.PendingBooking) error {
	m[sid] = *b
	return nil
}

func (m memoryStore) Get(_ context.Context, sid string) (*domain.PendingBooking, error) {
	b, ok := m[sid]
	if !ok {
		return nil, sessionStore.ErrNotFound
	}
	return &b, nil
}

func (m memoryStore) Delete(_ context.Context, sid string) error {
	delete(m, sid)
	return nil
}

func setup(couponStatus domain.CouponStatus) (*UseCase, memoryStore) {
	store := memoryStore{
		"sid": {
			RequesterName: "Ana Perez",
			RequestedDate: "2025-01-10",
			RequestedTime: "09:00",
			DoctorID:      4,
			PatientID:     ptr.Ptr(int64(7)),
			Price:         "2.00",
			Discount:      "0.00",
			State:         domain.PendingPriceComputed,
		},
	}
	doctors := fakeDoctors{
		4: {ID: 4, FullName: "Dr. Grey", BasePrice: decimal.NewNullDecimal(decimal.RequireFromString("100.00"))},
	}
	patients := fakePatients{
		7: {ID: 7, UserID: 100, CouponStatus: couponStatus},
	}

	sessions := bookingsession.NewService(store, logger.NewNop())
	return NewUseCase(doctors, patients, sessions, logger.NewNop()), store
}

func TestUseCase_Preview(t *testing.T) {
	uc, _ := setup(domain.CouponEligible)

	resp, err := uc.Execute(context.Background(), &Request{
		SessionID: "sid",
		Principal: domain.NewPatientPrincipal(100, 7),
	})
	require.NoError(t, err)

	assert.Equal(t, "100.00", resp.BasePrice)
	assert.Equal(t, "2.00", resp.Commission)
	assert.Equal(t, "0.00", resp.Discount)
	assert.Equal(t, "2.00", resp.FinalPrice)
	assert.True(t, resp.CouponAvailable)
	assert.False(t, resp.CouponApplied)
}

func TestUseCase_ApplyCoupon(t *testing.T) {
	uc, store := setup(domain.CouponEligible)

	resp, err := uc.Execute(context.Background(), &Request{
		SessionID:   "sid",
		Principal:   domain.NewPatientPrincipal(100, 7),
		ApplyCoupon: true,
	})
	require.NoError(t, err)

	assert.Equal(t, "2.00", resp.Commission)
	assert.Equal(t, "0.30", resp.Discount)
	assert.Equal(t, "1.70", resp.FinalPrice)
	assert.True(t, resp.CouponApplied)
	assert.False(t, resp.CouponAvailable)

	assert.True(t, store["sid"].CouponApplied)
	assert.Equal(t, "1.70", store["sid"].Price)
	assert.Equal(t, "0.30", store["sid"].Discount)
}

func TestUseCase_ApplyCoupon_InvalidatesCheckout(t *testing.T) {
	uc, store := setup(domain.CouponEligible)
	submitted := store["sid"]
	submitted.State = domain.PendingSubmitted
	submitted.CheckoutSessionID = "cs_200_cents"
	store["sid"] = submitted

	resp, err := uc.Execute(context.Background(), &Request{
		SessionID:   "sid",
		Principal:   domain.NewPatientPrincipal(100, 7),
		ApplyCoupon: true,
	})
	require.NoError(t, err)
	assert.Equal(t, "1.70", resp.FinalPrice)

	assert.Equal(t, domain.PendingPriceComputed, store["sid"].State)
	assert.Empty(t, store["sid"].CheckoutSessionID)
	assert.Equal(t, "1.70", store["sid"].Price)
}

func TestUseCase_Preview_KeepsCheckoutWhenPriceUnchanged(t *testing.T) {
	uc, store := setup(domain.CouponEligible)
	submitted := store["sid"]
	submitted.State = domain.PendingSubmitted
	submitted.CheckoutSessionID = "cs_200_cents"
	store["sid"] = submitted

	_, err := uc.Execute(context.Background(), &Request{
		SessionID: "sid",
		Principal: domain.NewPatientPrincipal(100, 7),
	})
	require.NoError(t, err)

	assert.Equal(t, domain.PendingSubmitted, store["sid"].State)
	assert.Equal(t, "cs_200_cents", store["sid"].CheckoutSessionID)
}

func TestUseCase_ApplyCoupon_UsedCouponHasNoEffect(t *testing.T) {
	uc, store := setup(domain.CouponUsed)

	resp, err := uc.Execute(context.Background(), &Request{
		SessionID:   "sid",
		Principal:   domain.NewPatientPrincipal(100, 7),
		ApplyCoupon: true,
	})
	require.NoError(t, err)

	assert.True(t, resp.CouponRejected)
	assert.Equal(t, "0.00", resp.Discount)
	assert.Equal(t, "2.00", resp.FinalPrice)
	assert.False(t, store["sid"].CouponApplied)
}

func TestUseCase_ApplyCoupon_OtherUser(t *testing.T) {
	uc, store := setup(domain.CouponEligible)

	resp, err := uc.Execute(context.Background(), &Request{
		SessionID:   "sid",
		Principal:   domain.NewDoctorPrincipal(200, 4),
		ApplyCoupon: true,
	})
	require.NoError(t, err)

	assert.True(t, resp.CouponRejected)
	assert.False(t, store["sid"].CouponApplied)
}

func TestUseCase_NoPendingBooking(t *testing.T) {
	uc, _ := setup(domain.CouponEligible)

	_, err := uc.Execute(context.Background(), &Request{
		SessionID: "other",
		Principal: domain.NewPatientPrincipal(100, 7),
	})
	assert.ErrorIs(t, err, ErrNoPendingBooking)
}
