package activatesubscription_test

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/headliner-backend/internal/http/handlers/user/activatesubscription"
	"github.com/magabrotheeeer/headliner-backend/internal/http/middlewarectx"
	"github.com/magabrotheeeer/headliner-backend/internal/storage"
)

type ServiceMock struct{ mock.Mock }

func (m *ServiceMock) ActivateSubscription(ctx context.Context, email string, activatedAt time.Time, durationSeconds int64) error {
	return m.Called(ctx, email, activatedAt, durationSeconds).Error(0)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func newRequest(email, actorEmail string, body []byte) *http.Request {
	req := httptest.NewRequest(http.MethodPatch, "/user/active-subscription/"+email, bytes.NewReader(body))
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("email", email)
	ctx := context.WithValue(req.Context(), chi.RouteCtxKey, rctx)
	if actorEmail != "" {
		ctx = context.WithValue(ctx, middlewarectx.Email, actorEmail)
	}
	return req.WithContext(ctx)
}

func TestActivateSubscriptionHandler(t *testing.T) {
	tests := []struct {
		name            string
		email           string
		actorEmail      string
		body            []byte
		wantActivatedAt time.Time
		serviceErr      error
		skipMock        bool
		wantStatus      int
	}{
		{
			name:            "явный момент активации доходит до сервиса",
			email:           "reader@example.com",
			actorEmail:      "reader@example.com",
			body:            []byte(`{"activatedAt":"2025-06-01T12:00:00Z","durationSeconds":3600}`),
			wantActivatedAt: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
			wantStatus:      http.StatusOK,
		},
		{
			name:            "без момента активации передаётся нулевое время",
			email:           "reader@example.com",
			actorEmail:      "reader@example.com",
			body:            []byte(`{"durationSeconds":3600}`),
			wantActivatedAt: time.Time{},
			wantStatus:      http.StatusOK,
		},
		{
			name:       "чужая учётная запись",
			email:      "reader@example.com",
			actorEmail: "intruder@example.com",
			body:       []byte(`{"durationSeconds":3600}`),
			skipMock:   true,
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "без личности в контексте",
			email:      "reader@example.com",
			body:       []byte(`{"durationSeconds":3600}`),
			skipMock:   true,
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "нулевая длительность отклоняется валидацией",
			email:      "reader@example.com",
			actorEmail: "reader@example.com",
			body:       []byte(`{"durationSeconds":0}`),
			skipMock:   true,
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name:            "неизвестный пользователь",
			email:           "ghost@example.com",
			actorEmail:      "ghost@example.com",
			body:            []byte(`{"durationSeconds":3600}`),
			wantActivatedAt: time.Time{},
			serviceErr:      storage.ErrNotFound,
			wantStatus:      http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := new(ServiceMock)
			if !tt.skipMock {
				service.On("ActivateSubscription", mock.Anything, tt.email, tt.wantActivatedAt, int64(3600)).
					Return(tt.serviceErr)
			}

			handler := activatesubscription.New(newNoopLogger(), service)
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, newRequest(tt.email, tt.actorEmail, tt.body))

			assert.Equal(t, tt.wantStatus, rr.Code)
			if tt.skipMock {
				service.AssertNotCalled(t, "ActivateSubscription")
			} else {
				service.AssertExpectations(t)
			}
		})
	}
}
