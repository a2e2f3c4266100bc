package entitlement

import (
	"time"

	"github.com/magabrotheeeer/headliner-backend/internal/models"
)

// Role — эффективная роль, используемая во всех решениях о доступе.
type Role string

const (
	// RoleUser — обычный пользователь без действующей подписки.
	RoleUser Role = "user"
	// RoleAdmin — администратор; управляет ролями и модерацией.
	RoleAdmin Role = "admin"
	// RolePremium — пользователь с открытым окном подписки.
	RolePremium Role = "premium"
)

// EffectiveRole вычисляет эффективную роль пользователя на момент now.
//
// База — сохранённая роль (по умолчанию user). Пока окно подписки открыто,
// эффективная роль — premium, независимо от базовой; наличие факта активации
// с истёкшим окном премиума не даёт. Обработчики никогда не выводят роль
// самостоятельно — только через эту функцию.
func EffectiveRole(u *models.User, now time.Time) Role {
	window := SubscriptionWindow(u.PremiumActivatedAt, u.SubscriptionDurationSeconds, now)
	if window.Valid {
		return RolePremium
	}
	switch u.Role {
	case string(RoleAdmin):
		return RoleAdmin
	default:
		return RoleUser
	}
}
