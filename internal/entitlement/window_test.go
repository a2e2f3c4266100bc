package entitlement

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSubscriptionWindow(t *testing.T) {
	activatedAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	hour := int64(3600)

	tests := []struct {
		name        string
		activatedAt *time.Time
		duration    *int64
		now         time.Time
		wantValid   bool
		wantExpires bool
	}{
		{
			name:        "окно открыто внутри срока",
			activatedAt: &activatedAt,
			duration:    &hour,
			now:         activatedAt.Add(30 * time.Minute),
			wantValid:   true,
			wantExpires: true,
		},
		{
			name:        "окно закрыто после истечения",
			activatedAt: &activatedAt,
			duration:    &hour,
			now:         activatedAt.Add(time.Hour + time.Second),
			wantValid:   false,
			wantExpires: true,
		},
		{
			name:        "граница истечения не включается",
			activatedAt: &activatedAt,
			duration:    &hour,
			now:         activatedAt.Add(time.Hour),
			wantValid:   false,
			wantExpires: true,
		},
		{
			name:      "подписка никогда не активировалась",
			now:       activatedAt,
			wantValid: false,
		},
		{
			name:        "нет длительности",
			activatedAt: &activatedAt,
			now:         activatedAt,
			wantValid:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SubscriptionWindow(tt.activatedAt, tt.duration, tt.now)
			assert.Equal(t, tt.wantValid, got.Valid)
			if tt.wantExpires {
				assert.NotNil(t, got.ExpiresAt)
				assert.Equal(t, activatedAt.Add(time.Hour), *got.ExpiresAt)
			} else {
				assert.Nil(t, got.ExpiresAt)
			}
		})
	}
}
