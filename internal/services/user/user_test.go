package user

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/headliner-backend/internal/entitlement"
	"github.com/magabrotheeeer/headliner-backend/internal/models"
	"github.com/magabrotheeeer/headliner-backend/internal/storage"
)

type RepoMock struct{ mock.Mock }

func (m *RepoMock) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}
func (m *RepoMock) ListUsers(ctx context.Context) ([]*models.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.User), args.Error(1)
}
func (m *RepoMock) UpdateUserRole(ctx context.Context, email, role string) (int, error) {
	args := m.Called(ctx, email, role)
	return args.Int(0), args.Error(1)
}
func (m *RepoMock) ActivateSubscription(ctx context.Context, email string, activatedAt time.Time, durationSeconds int64) (int, error) {
	args := m.Called(ctx, email, activatedAt, durationSeconds)
	return args.Int(0), args.Error(1)
}

type CacheMock struct{ mock.Mock }

func (m *CacheMock) Get(ctx context.Context, key string, result any) (bool, error) {
	args := m.Called(ctx, key, result)
	return args.Bool(0), args.Error(1)
}
func (m *CacheMock) Set(ctx context.Context, key string, value any, expiration time.Duration) error {
	return m.Called(ctx, key, value, expiration).Error(0)
}
func (m *CacheMock) Invalidate(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func newService(repo *RepoMock, cache *CacheMock, now time.Time) *Service {
	s := New(repo, cache, newNoopLogger())
	s.now = func() time.Time { return now }
	return s
}

func TestEffectiveRoleFollowsSubscriptionWindow(t *testing.T) {
	activatedAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	hour := int64(3600)
	record := &models.User{
		Email:                       "reader@example.com",
		Role:                        "user",
		PremiumActivatedAt:          &activatedAt,
		SubscriptionDurationSeconds: &hour,
	}

	tests := []struct {
		name string
		now  time.Time
		want entitlement.Role
	}{
		{name: "внутри окна роль premium", now: activatedAt.Add(30 * time.Minute), want: entitlement.RolePremium},
		{name: "после истечения роль user", now: activatedAt.Add(time.Hour + time.Second), want: entitlement.RoleUser},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(RepoMock)
			cache := new(CacheMock)
			cache.On("Get", mock.Anything, "user:reader@example.com", mock.Anything).Return(false, nil)
			cache.On("Set", mock.Anything, "user:reader@example.com", mock.Anything, userCacheTTL).Return(nil)
			repo.On("GetUserByEmail", mock.Anything, "reader@example.com").Return(record, nil)

			svc := newService(repo, cache, tt.now)
			role, err := svc.EffectiveRole(context.Background(), "reader@example.com")
			require.NoError(t, err)
			assert.Equal(t, tt.want, role)
		})
	}
}

func TestGetStatus(t *testing.T) {
	activatedAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	hour := int64(3600)
	record := &models.User{
		Email:                       "reader@example.com",
		Role:                        "user",
		PremiumActivatedAt:          &activatedAt,
		SubscriptionDurationSeconds: &hour,
	}

	repo := new(RepoMock)
	cache := new(CacheMock)
	cache.On("Get", mock.Anything, "user:reader@example.com", mock.Anything).Return(false, nil)
	cache.On("Set", mock.Anything, "user:reader@example.com", mock.Anything, userCacheTTL).Return(nil)
	repo.On("GetUserByEmail", mock.Anything, "reader@example.com").Return(record, nil)

	svc := newService(repo, cache, activatedAt.Add(30*time.Minute))
	status, err := svc.GetStatus(context.Background(), "reader@example.com")
	require.NoError(t, err)
	assert.Equal(t, entitlement.RolePremium, status.Role)
	assert.True(t, status.Valid)
	require.NotNil(t, status.ExpiresAt)
	assert.Equal(t, activatedAt.Add(time.Hour), *status.ExpiresAt)
}

func TestUpdateRole(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("успешная смена роли инвалидирует кеш", func(t *testing.T) {
		repo := new(RepoMock)
		cache := new(CacheMock)
		repo.On("UpdateUserRole", mock.Anything, "reader@example.com", "admin").Return(1, nil)
		cache.On("Invalidate", mock.Anything, "user:reader@example.com").Return(nil)

		svc := newService(repo, cache, now)
		require.NoError(t, svc.UpdateRole(context.Background(), "reader@example.com", "admin"))
		cache.AssertExpectations(t)
	})

	t.Run("неизвестная роль отклоняется без записи", func(t *testing.T) {
		repo := new(RepoMock)
		cache := new(CacheMock)

		svc := newService(repo, cache, now)
		err := svc.UpdateRole(context.Background(), "reader@example.com", "premium")
		assert.ErrorIs(t, err, ErrInvalidRole)
		repo.AssertNotCalled(t, "UpdateUserRole")
	})

	t.Run("неизвестный пользователь", func(t *testing.T) {
		repo := new(RepoMock)
		cache := new(CacheMock)
		repo.On("UpdateUserRole", mock.Anything, "ghost@example.com", "admin").Return(0, nil)

		svc := newService(repo, cache, now)
		err := svc.UpdateRole(context.Background(), "ghost@example.com", "admin")
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})
}

func TestActivateSubscription(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("нулевой момент активации заменяется текущим", func(t *testing.T) {
		repo := new(RepoMock)
		cache := new(CacheMock)
		repo.On("ActivateSubscription", mock.Anything, "reader@example.com", now, int64(3600)).Return(1, nil)
		cache.On("Invalidate", mock.Anything, "user:reader@example.com").Return(nil)

		svc := newService(repo, cache, now)
		require.NoError(t, svc.ActivateSubscription(context.Background(), "reader@example.com", time.Time{}, 3600))
		repo.AssertExpectations(t)
	})

	t.Run("явный момент активации сохраняется как есть", func(t *testing.T) {
		activatedAt := time.Date(2025, 5, 20, 9, 30, 0, 0, time.UTC)
		repo := new(RepoMock)
		cache := new(CacheMock)
		repo.On("ActivateSubscription", mock.Anything, "reader@example.com", activatedAt, int64(3600)).Return(1, nil)
		cache.On("Invalidate", mock.Anything, "user:reader@example.com").Return(nil)

		svc := newService(repo, cache, now)
		require.NoError(t, svc.ActivateSubscription(context.Background(), "reader@example.com", activatedAt, 3600))
		repo.AssertExpectations(t)
	})

	t.Run("неположительная длительность отклоняется", func(t *testing.T) {
		repo := new(RepoMock)
		cache := new(CacheMock)

		svc := newService(repo, cache, now)
		assert.Error(t, svc.ActivateSubscription(context.Background(), "reader@example.com", time.Time{}, 0))
		repo.AssertNotCalled(t, "ActivateSubscription")
	})
}

func TestGetUsesCache(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	repo := new(RepoMock)
	cache := new(CacheMock)
	cache.On("Get", mock.Anything, "user:reader@example.com", mock.Anything).
		Run(func(args mock.Arguments) {
			out := args.Get(2).(*models.User)
			out.Email = "reader@example.com"
			out.Role = "user"
		}).Return(true, nil)

	svc := newService(repo, cache, now)
	u, err := svc.Get(context.Background(), "reader@example.com")
	require.NoError(t, err)
	assert.Equal(t, "reader@example.com", u.Email)
	repo.AssertNotCalled(t, "GetUserByEmail")
}

func TestGetPropagatesStorageError(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	repo := new(RepoMock)
	cache := new(CacheMock)
	cache.On("Get", mock.Anything, "user:ghost@example.com", mock.Anything).Return(false, nil)
	repo.On("GetUserByEmail", mock.Anything, "ghost@example.com").
		Return(nil, errors.Join(storage.ErrNotFound))

	svc := newService(repo, cache, now)
	_, err := svc.Get(context.Background(), "ghost@example.com")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}
