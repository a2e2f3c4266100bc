package middlewarectx

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"github.com/magabrotheeeer/headliner-backend/internal/entitlement"
	"github.com/magabrotheeeer/headliner-backend/internal/http/response"
	"github.com/magabrotheeeer/headliner-backend/internal/lib/sl"
)

// RoleService вычисляет эффективную роль пользователя на текущий момент.
type RoleService interface {
	EffectiveRole(ctx context.Context, email string) (entitlement.Role, error)
}

// RequireRole возвращает middleware, пропускающий только пользователей,
// чья эффективная роль удовлетворяет требуемому правилу. Вычисленная роль
// кладётся в контекст под ключом Role.
func RequireRole(log *slog.Logger, roles RoleService, perm entitlement.Permission) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			email, ok := r.Context().Value(Email).(string)
			if !ok || email == "" {
				log.Error("user identification missing")
				w.WriteHeader(http.StatusUnauthorized)
				render.JSON(w, r, response.Error("user identification missing"))
				return
			}

			role, err := roles.EffectiveRole(r.Context(), email)
			if err != nil {
				log.Error("failed to resolve user role", sl.Err(err))
				w.WriteHeader(http.StatusInternalServerError)
				render.JSON(w, r, response.Error("internal service error"))
				return
			}

			if err := entitlement.Authorize(role, perm); err != nil {
				if errors.Is(err, entitlement.ErrForbidden) {
					log.Error("access denied",
						slog.String("email", email), slog.String("role", string(role)))
					w.WriteHeader(http.StatusForbidden)
					render.JSON(w, r, response.Error("access denied"))
					return
				}
				log.Error("authorization failed", sl.Err(err))
				w.WriteHeader(http.StatusInternalServerError)
				render.JSON(w, r, response.Error("internal service error"))
				return
			}

			ctx := context.WithValue(r.Context(), Role, role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin пропускает только администраторов.
func RequireAdmin(log *slog.Logger, roles RoleService) func(http.Handler) http.Handler {
	return RequireRole(log, roles, entitlement.PermAdminOnly)
}

// RequirePremium пропускает только пользователей с действующей подпиской.
// Административная роль подписку не заменяет: admin без действующего окна
// не проходит.
func RequirePremium(log *slog.Logger, roles RoleService) func(http.Handler) http.Handler {
	return RequireRole(log, roles, entitlement.PermPremiumOnly)
}
