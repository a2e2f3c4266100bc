// Package middlewarectx содержит HTTP middleware для проверки JWT токенов и
// решений доступа.
//
// JWTMiddleware проверяет наличие и валидность JWT токена в заголовке
// Authorization и в случае успеха добавляет в контекст почту пользователя.
// Middleware доступа вычисляют эффективную роль по живой записи пользователя
// и применяют требуемое правило — токен источником роли не считается.
package middlewarectx

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/headliner-backend/internal/http/response"
	"github.com/magabrotheeeer/headliner-backend/internal/lib/jwt"
	"github.com/magabrotheeeer/headliner-backend/internal/lib/sl"
)

// Key тип для ключей контекста HTTP-запроса.
type Key string

const (
	// Email — ключ для почты пользователя в контексте
	Email Key = "email"
	// Role — ключ для эффективной роли пользователя в контексте
	Role Key = "role"
)

// TokenParser описывает интерфейс разбора JWT токена.
type TokenParser interface {
	ParseToken(token string) (*jwt.CustomClaims, error)
}

// OptionalAuth разбирает Bearer-токен, если он есть, и кладёт в контекст почту
// и эффективную роль. Запрос без токена или с невалидным токеном проходит
// анонимно — маршруты с частично публичной видимостью решают доступ сами.
func OptionalAuth(parser TokenParser, roles RoleService, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if !strings.HasPrefix(authHeader, "Bearer ") {
				next.ServeHTTP(w, r)
				return
			}
			claims, err := parser.ParseToken(strings.TrimPrefix(authHeader, "Bearer "))
			if err != nil {
				log.Debug("ignoring invalid bearer token", sl.Err(err))
				next.ServeHTTP(w, r)
				return
			}
			ctx := context.WithValue(r.Context(), Email, claims.Email)
			role, err := roles.EffectiveRole(ctx, claims.Email)
			if err != nil {
				log.Warn("failed to resolve role", sl.Err(err))
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}
			next.ServeHTTP(w, r.WithContext(context.WithValue(ctx, Role, role)))
		})
	}
}

// JWTMiddleware возвращает HTTP middleware, который проверяет JWT в заголовке Authorization.
//
// Если токен валиден, добавляет почту пользователя в контекст запроса,
// иначе возвращает ошибку с HTTP статусом 401 Unauthorized.
func JWTMiddleware(parser TokenParser, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.JWTMiddleware"
			authHeader := r.Header.Get("Authorization")

			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			if !strings.HasPrefix(authHeader, "Bearer ") {
				log.Error("missing or invalid authorization header")
				w.WriteHeader(http.StatusUnauthorized)
				render.JSON(w, r, response.Error("missing or invalid authorization header"))
				return
			}
			tokenStr := strings.TrimPrefix(authHeader, "Bearer ")

			claims, err := parser.ParseToken(tokenStr)
			if err != nil {
				log.Error("invalid or expired token", sl.Err(err))
				w.WriteHeader(http.StatusUnauthorized)
				render.JSON(w, r, response.Error("invalid or expired token"))
				return
			}
			ctx := context.WithValue(r.Context(), Email, claims.Email)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
