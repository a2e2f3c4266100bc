package middlewarectx

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/headliner-backend/internal/entitlement"
	"github.com/magabrotheeeer/headliner-backend/internal/lib/jwt"
)

type ParserMock struct{ mock.Mock }

func (m *ParserMock) ParseToken(token string) (*jwt.CustomClaims, error) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*jwt.CustomClaims), args.Error(1)
}

type RoleServiceMock struct{ mock.Mock }

func (m *RoleServiceMock) EffectiveRole(ctx context.Context, email string) (entitlement.Role, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(entitlement.Role), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func TestJWTMiddleware(t *testing.T) {
	tests := []struct {
		name       string
		authHeader string
		claims     *jwt.CustomClaims
		parseErr   error
		wantStatus int
		wantEmail  string
	}{
		{
			name:       "валидный токен кладёт почту в контекст",
			authHeader: "Bearer good-token",
			claims:     &jwt.CustomClaims{Email: "reader@example.com", Role: "user"},
			wantStatus: http.StatusOK,
			wantEmail:  "reader@example.com",
		},
		{
			name:       "отсутствующий заголовок",
			authHeader: "",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "заголовок без Bearer",
			authHeader: "Token abc",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "просроченный токен",
			authHeader: "Bearer stale-token",
			parseErr:   errors.New("token is expired"),
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parser := new(ParserMock)
			if tt.claims != nil || tt.parseErr != nil {
				parser.On("ParseToken", mock.AnythingOfType("string")).Return(tt.claims, tt.parseErr)
			}

			var gotEmail string
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotEmail, _ = r.Context().Value(Email).(string)
			})

			req := httptest.NewRequest(http.MethodGet, "/articles", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			rr := httptest.NewRecorder()
			JWTMiddleware(parser, newNoopLogger())(next).ServeHTTP(rr, req)

			assert.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, tt.wantEmail, gotEmail)
		})
	}
}

func TestRequireRole(t *testing.T) {
	t.Run("без почты в контексте отвечает 401", func(t *testing.T) {
		roles := new(RoleServiceMock)
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("next handler must not be called")
		})

		req := httptest.NewRequest(http.MethodGet, "/users", nil)
		rr := httptest.NewRecorder()
		RequireAdmin(newNoopLogger(), roles)(next).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		roles.AssertNotCalled(t, "EffectiveRole")
	})

	t.Run("недостаточная роль отвечает 403", func(t *testing.T) {
		roles := new(RoleServiceMock)
		roles.On("EffectiveRole", mock.Anything, "reader@example.com").Return(entitlement.RoleUser, nil)

		req := httptest.NewRequest(http.MethodGet, "/users", nil)
		req = req.WithContext(context.WithValue(req.Context(), Email, "reader@example.com"))
		rr := httptest.NewRecorder()
		RequireAdmin(newNoopLogger(), roles)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("next handler must not be called")
		})).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusForbidden, rr.Code)
	})

	t.Run("роль вычисляется заново и кладётся в контекст", func(t *testing.T) {
		roles := new(RoleServiceMock)
		roles.On("EffectiveRole", mock.Anything, "reader@example.com").Return(entitlement.RolePremium, nil)

		var gotRole entitlement.Role
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotRole, _ = r.Context().Value(Role).(entitlement.Role)
		})

		req := httptest.NewRequest(http.MethodGet, "/articles/premium", nil)
		req = req.WithContext(context.WithValue(req.Context(), Email, "reader@example.com"))
		rr := httptest.NewRecorder()
		RequirePremium(newNoopLogger(), roles)(next).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, entitlement.RolePremium, gotRole)
	})

	t.Run("admin без подписки не проходит premium-маршрут", func(t *testing.T) {
		roles := new(RoleServiceMock)
		roles.On("EffectiveRole", mock.Anything, "admin@example.com").Return(entitlement.RoleAdmin, nil)

		req := httptest.NewRequest(http.MethodGet, "/articles/premium", nil)
		req = req.WithContext(context.WithValue(req.Context(), Email, "admin@example.com"))
		rr := httptest.NewRecorder()
		RequirePremium(newNoopLogger(), roles)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("next handler must not be called")
		})).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusForbidden, rr.Code)
	})
}
