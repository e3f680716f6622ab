package initiate_checkout

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	initiateCheckout "github.com/m04kA/SMC-AppointmentService/internal/usecase/initiate_checkout"
	"github.com/m04kA/SMC-AppointmentService/pkg/logger"
)

type fakeUseCase struct {
	err error
}

func (f fakeUseCase) Execute(_ context.Context, _ *initiateCheckout.Request) (*initiateCheckout.Response, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &initiateCheckout.Response{
		CheckoutSessionID: "cs_1",
		RedirectURL:       "https://pay.example.com/cs_1",
		AmountMinorUnits:  10200,
	}, nil
}

func TestHandle(t *testing.T) {
	tests := []struct {
		name         string
		err          error
		wantStatus   int
		wantLocation string
	}{
		{name: "redirects to gateway", wantStatus: http.StatusSeeOther, wantLocation: "https://pay.example.com/cs_1"},
		{name: "no pending booking", err: initiateCheckout.ErrNoPendingBooking, wantStatus: http.StatusConflict},
		{name: "invalid price", err: initiateCheckout.ErrInvalidPrice, wantStatus: http.StatusUnprocessableEntity},
		{name: "amount too low", err: initiateCheckout.ErrAmountTooLow, wantStatus: http.StatusUnprocessableEntity},
		{
			name:       "gateway",
			err:        fmt.Errorf("%w: timeout", initiateCheckout.ErrGateway),
			wantStatus: http.StatusBadGateway,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/v1/booking/checkout", nil)
			ctx := middleware.WithPrincipal(req.Context(), domain.NewPatientPrincipal(70, 7))
			ctx = middleware.WithSessionID(ctx, "sid")
			rec := httptest.NewRecorder()

			NewHandler(fakeUseCase{err: tt.err}, logger.NewNop()).Handle(rec, req.WithContext(ctx))

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantLocation != "" {
				assert.Equal(t, tt.wantLocation, rec.Header().Get("Location"))
			}
		})
	}
}
