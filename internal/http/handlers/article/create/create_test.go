package create_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/headliner-backend/internal/entitlement"
	"github.com/magabrotheeeer/headliner-backend/internal/http/handlers/article/create"
	"github.com/magabrotheeeer/headliner-backend/internal/http/middlewarectx"
	"github.com/magabrotheeeer/headliner-backend/internal/models"
	"github.com/magabrotheeeer/headliner-backend/internal/storage"
)

type ServiceMock struct{ mock.Mock }

func (m *ServiceMock) Create(ctx context.Context, actorEmail string, req models.DummyArticle) (string, error) {
	args := m.Called(ctx, actorEmail, req)
	return args.String(0), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func validBody() []byte {
	body, _ := json.Marshal(models.DummyArticle{
		Title:       "Go 1.25 released",
		Description: "What changed in the runtime",
		Publisher:   "The Go Blog",
		Tags:        []string{"go"},
		CreatedBy:   "writer@example.com",
	})
	return body
}

func newRequest(body []byte, email string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/articles", bytes.NewReader(body))
	if email != "" {
		ctx := context.WithValue(req.Context(), middlewarectx.Email, email)
		req = req.WithContext(ctx)
	}
	return req
}

func TestCreateHandler(t *testing.T) {
	tests := []struct {
		name       string
		body       []byte
		ctxEmail   string
		serviceID  string
		serviceErr error
		skipMock   bool
		wantStatus int
		wantInBody string
	}{
		{
			name:       "успешная публикация",
			body:       validBody(),
			ctxEmail:   "writer@example.com",
			serviceID:  "id-1",
			wantStatus: http.StatusOK,
			wantInBody: `"id":"id-1"`,
		},
		{
			name:       "исчерпанная квота отдаётся с HTTP 200 и кодом 4099",
			body:       validBody(),
			ctxEmail:   "writer@example.com",
			serviceErr: entitlement.ErrQuotaExceeded,
			wantStatus: http.StatusOK,
			wantInBody: `"code":4099`,
		},
		{
			name:       "чужой автор",
			body:       validBody(),
			ctxEmail:   "intruder@example.com",
			serviceErr: entitlement.ErrForbidden,
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "автор не найден",
			body:       validBody(),
			ctxEmail:   "writer@example.com",
			serviceErr: storage.ErrNotFound,
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "без личности в контексте",
			body:       validBody(),
			skipMock:   true,
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "некорректный JSON",
			body:       []byte("{broken"),
			ctxEmail:   "writer@example.com",
			skipMock:   true,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "невалидное тело",
			body:       []byte(`{"title":"only title"}`),
			ctxEmail:   "writer@example.com",
			skipMock:   true,
			wantStatus: http.StatusUnprocessableEntity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := new(ServiceMock)
			if !tt.skipMock {
				service.On("Create", mock.Anything, tt.ctxEmail, mock.AnythingOfType("models.DummyArticle")).
					Return(tt.serviceID, tt.serviceErr)
			}

			handler := create.New(newNoopLogger(), service)
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, newRequest(tt.body, tt.ctxEmail))

			assert.Equal(t, tt.wantStatus, rr.Code)
			if tt.wantInBody != "" {
				assert.Contains(t, rr.Body.String(), tt.wantInBody)
			}
			if tt.skipMock {
				service.AssertNotCalled(t, "Create")
			}
		})
	}
}

func TestCreateHandlerQuotaBody(t *testing.T) {
	service := new(ServiceMock)
	service.On("Create", mock.Anything, "writer@example.com", mock.Anything).
		Return("", entitlement.ErrQuotaExceeded)

	handler := create.New(newNoopLogger(), service)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, newRequest(validBody(), "writer@example.com"))

	require.Equal(t, http.StatusOK, rr.Code)

	var resp struct {
		Success bool   `json:"success"`
		Code    int    `json:"code"`
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, 4099, resp.Code)
	assert.NotEmpty(t, resp.Message)
}
