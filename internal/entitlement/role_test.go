package entitlement

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/magabrotheeeer/headliner-backend/internal/models"
)

func TestEffectiveRole(t *testing.T) {
	activatedAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	hour := int64(3600)

	tests := []struct {
		name string
		user models.User
		now  time.Time
		want Role
	}{
		{
			name: "обычный пользователь без подписки",
			user: models.User{Role: "user"},
			now:  activatedAt,
			want: RoleUser,
		},
		{
			name: "администратор без подписки",
			user: models.User{Role: "admin"},
			now:  activatedAt,
			want: RoleAdmin,
		},
		{
			name: "открытое окно даёт premium",
			user: models.User{
				Role:                        "user",
				PremiumActivatedAt:          &activatedAt,
				SubscriptionDurationSeconds: &hour,
			},
			now:  activatedAt.Add(30 * time.Minute),
			want: RolePremium,
		},
		{
			name: "открытое окно перекрывает даже admin",
			user: models.User{
				Role:                        "admin",
				PremiumActivatedAt:          &activatedAt,
				SubscriptionDurationSeconds: &hour,
			},
			now:  activatedAt.Add(30 * time.Minute),
			want: RolePremium,
		},
		{
			name: "истёкшее окно возвращает базовую роль",
			user: models.User{
				Role:                        "user",
				PremiumActivatedAt:          &activatedAt,
				SubscriptionDurationSeconds: &hour,
			},
			now:  activatedAt.Add(time.Hour + time.Second),
			want: RoleUser,
		},
		{
			name: "неизвестная базовая роль трактуется как user",
			user: models.User{Role: "moderator"},
			now:  activatedAt,
			want: RoleUser,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EffectiveRole(&tt.user, tt.now))
		})
	}
}
