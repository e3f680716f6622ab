package payment_success

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	finalizeBooking "github.com/m04kA/SMC-AppointmentService/internal/usecase/finalize_booking"
	"github.com/m04kA/SMC-AppointmentService/pkg/logger"
)

type fakeUseCase struct {
	resp *finalizeBooking.Response
	err  error
}

func (f fakeUseCase) Execute(_ context.Context, _ *finalizeBooking.Request) (*finalizeBooking.Response, error) {
	return f.resp, f.err
}

func appointment() *domain.Appointment {
	return &domain.Appointment{
		ID:              11,
		DoctorID:        4,
		AppointmentDate: time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC),
		AppointmentTime: "09:00",
		Status:          domain.StatusUnconfirmed,
		Price:           decimal.NewNullDecimal(decimal.RequireFromString("102")),
	}
}

func serve(t *testing.T, uc UseCase, withIdentity bool) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/booking/success", nil)
	if withIdentity {
		ctx := middleware.WithPrincipal(req.Context(), domain.NewPatientPrincipal(70, 7))
		ctx = middleware.WithSessionID(ctx, "sid")
		req = req.WithContext(ctx)
	}
	rec := httptest.NewRecorder()
	NewHandler(uc, logger.NewNop()).Handle(rec, req)
	return rec
}

func TestHandle(t *testing.T) {
	tests := []struct {
		name         string
		uc           fakeUseCase
		wantStatus   int
		wantAlready  bool
		wantRedirect string
	}{
		{
			name:       "created",
			uc:         fakeUseCase{resp: &finalizeBooking.Response{Appointment: appointment()}},
			wantStatus: http.StatusCreated,
		},
		{
			name: "already registered",
			uc: fakeUseCase{
				resp: &finalizeBooking.Response{Appointment: appointment()},
				err:  finalizeBooking.ErrAlreadyExists,
			},
			wantStatus:  http.StatusOK,
			wantAlready: true,
		},
		{
			name:         "no pending booking",
			uc:           fakeUseCase{err: finalizeBooking.ErrNoPendingBooking},
			wantStatus:   http.StatusConflict,
			wantRedirect: handlers.PathDoctors,
		},
		{
			name:         "not submitted to checkout",
			uc:           fakeUseCase{err: finalizeBooking.ErrNotSubmitted},
			wantStatus:   http.StatusConflict,
			wantRedirect: handlers.PathPreview,
		},
		{
			name:         "coupon unavailable",
			uc:           fakeUseCase{err: finalizeBooking.ErrCouponUnavailable},
			wantStatus:   http.StatusConflict,
			wantRedirect: handlers.PathPreview,
		},
		{
			name:       "access denied",
			uc:         fakeUseCase{err: finalizeBooking.ErrAccessDenied},
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "internal",
			uc:         fakeUseCase{err: finalizeBooking.ErrInternal},
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(t, tt.uc, true)
			require.Equal(t, tt.wantStatus, rec.Code)

			if tt.wantStatus < http.StatusBadRequest {
				var body SuccessResponse
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
				assert.Equal(t, tt.wantAlready, body.AlreadyRegistered)
				require.NotNil(t, body.Appointment)
				assert.Equal(t, int64(11), body.Appointment.ID)
				require.NotNil(t, body.Appointment.Price)
				assert.Equal(t, "102.00", *body.Appointment.Price)
				return
			}

			var body handlers.ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.NotEmpty(t, body.Error)
			assert.Equal(t, tt.wantRedirect, body.Redirect)
		})
	}
}

func TestHandle_MissingSession(t *testing.T) {
	rec := serve(t, fakeUseCase{}, false)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
