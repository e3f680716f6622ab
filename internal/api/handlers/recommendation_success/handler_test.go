package recommendation_success

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	confirmRecommendation "github.com/m04kA/SMC-AppointmentService/internal/usecase/confirm_recommendation"
	"github.com/m04kA/SMC-AppointmentService/pkg/logger"
)

type fakeUseCase struct {
	resp *confirmRecommendation.Response
	err  error
}

func (f fakeUseCase) Execute(_ context.Context, _ *confirmRecommendation.Request) (*confirmRecommendation.Response, error) {
	return f.resp, f.err
}

func recommended() *confirmRecommendation.Response {
	return &confirmRecommendation.Response{
		Doctor: &domain.Doctor{ID: 4, FullName: "Dr. Grey", Recommended: true, AcceptingPatients: true},
	}
}

func TestHandle(t *testing.T) {
	tests := []struct {
		name         string
		uc           fakeUseCase
		wantStatus   int
		wantAlready  bool
		wantRedirect string
	}{
		{name: "recommended", uc: fakeUseCase{resp: recommended()}, wantStatus: http.StatusOK},
		{
			name:        "already recommended",
			uc:          fakeUseCase{resp: recommended(), err: confirmRecommendation.ErrAlreadyRecommended},
			wantStatus:  http.StatusOK,
			wantAlready: true,
		},
		{
			name:         "no pending checkout",
			uc:           fakeUseCase{err: confirmRecommendation.ErrNoPendingCheckout},
			wantStatus:   http.StatusConflict,
			wantRedirect: handlers.PathHome,
		},
		{name: "doctor not found", uc: fakeUseCase{err: confirmRecommendation.ErrDoctorNotFound}, wantStatus: http.StatusNotFound},
		{name: "access denied", uc: fakeUseCase{err: confirmRecommendation.ErrAccessDenied}, wantStatus: http.StatusForbidden},
		{name: "internal", uc: fakeUseCase{err: confirmRecommendation.ErrInternal}, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/doctors/me/recommendation/success", nil)
			ctx := middleware.WithPrincipal(req.Context(), domain.NewDoctorPrincipal(200, 4))
			ctx = middleware.WithSessionID(ctx, "sid")
			rec := httptest.NewRecorder()

			NewHandler(tt.uc, logger.NewNop()).Handle(rec, req.WithContext(ctx))
			require.Equal(t, tt.wantStatus, rec.Code)

			if tt.wantStatus == http.StatusOK {
				var body SuccessResponse
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
				assert.Equal(t, tt.wantAlready, body.AlreadyRecommended)
				require.NotNil(t, body.Doctor)
				assert.Equal(t, int64(4), body.Doctor.ID)
				assert.True(t, body.Doctor.Recommended)
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
	req := httptest.NewRequest(http.MethodGet, "/api/v1/doctors/me/recommendation/success", nil)
	rec := httptest.NewRecorder()

	NewHandler(fakeUseCase{}, logger.NewNop()).Handle(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
