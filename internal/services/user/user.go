// Package user содержит бизнес-логику работы с пользователями: чтение
// записей, смену базовой роли, активацию подписки и вычисление эффективной
// роли. Все решения о роли проходят через entitlement — обработчики не
// выводят роль самостоятельно.
package user

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/headliner-backend/internal/entitlement"
	"github.com/magabrotheeeer/headliner-backend/internal/lib/sl"
	"github.com/magabrotheeeer/headliner-backend/internal/models"
	"github.com/magabrotheeeer/headliner-backend/internal/storage"
)

// ErrInvalidRole возвращается при попытке установить неизвестную базовую роль.
var ErrInvalidRole = errors.New("invalid role")

const userCacheTTL = 5 * time.Minute

// Repository определяет методы для работы с пользователями в хранилище.
type Repository interface {
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	ListUsers(ctx context.Context) ([]*models.User, error)
	UpdateUserRole(ctx context.Context, email, role string) (int, error)
	ActivateSubscription(ctx context.Context, email string, activatedAt time.Time, durationSeconds int64) (int, error)
}

// Cache описывает методы кэширования записей пользователей.
type Cache interface {
	Get(ctx context.Context, key string, result any) (bool, error)
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
	Invalidate(ctx context.Context, key string) error
}

// Status описывает текущее положение пользователя: эффективную роль и окно
// подписки.
type Status struct {
	Role      entitlement.Role `json:"role"`
	Valid     bool             `json:"valid"`
	ExpiresAt *time.Time       `json:"expiresAt,omitempty"`
}

// Service реализует бизнес-логику работы с пользователями.
type Service struct {
	repo  Repository
	cache Cache
	log   *slog.Logger
	now   func() time.Time
}

// New создает новый Service.
func New(repo Repository, cache Cache, log *slog.Logger) *Service {
	return &Service{
		repo:  repo,
		cache: cache,
		log:   log,
		now:   time.Now,
	}
}

// Get возвращает пользователя по почте, используя кеш или хранилище.
// Кешируется сама запись; роль по ней всегда вычисляется заново, поэтому
// истечение окна подписки кеш не переживает.
func (s *Service) Get(ctx context.Context, email string) (*models.User, error) {
	var cached models.User
	cacheKey := cacheKey(email)
	found, err := s.cache.Get(ctx, cacheKey, &cached)
	if err != nil {
		s.log.Warn("failed to read user from cache", slog.String("key", cacheKey), sl.Err(err))
	}
	if found {
		return &cached, nil
	}

	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, cacheKey, user, userCacheTTL); err != nil {
		s.log.Warn("failed to cache user", slog.String("key", cacheKey), sl.Err(err))
	}
	return user, nil
}

// List возвращает всех пользователей.
func (s *Service) List(ctx context.Context) ([]*models.User, error) {
	return s.repo.ListUsers(ctx)
}

// UpdateRole устанавливает базовую роль пользователя и инвалидирует кеш.
func (s *Service) UpdateRole(ctx context.Context, email, role string) error {
	if role != string(entitlement.RoleUser) && role != string(entitlement.RoleAdmin) {
		return ErrInvalidRole
	}
	count, err := s.repo.UpdateUserRole(ctx, email, role)
	if err != nil {
		return err
	}
	if count == 0 {
		return storage.ErrNotFound
	}
	s.invalidate(ctx, email)
	s.log.Info("updated user role", slog.String("email", email), slog.String("role", role))
	return nil
}

// ActivateSubscription записывает активацию подписки: момент и длительность
// задаются всегда вместе. Нулевой момент активации означает "сейчас".
func (s *Service) ActivateSubscription(ctx context.Context, email string, activatedAt time.Time, durationSeconds int64) error {
	if durationSeconds <= 0 {
		return fmt.Errorf("subscription duration must be positive")
	}
	if activatedAt.IsZero() {
		activatedAt = s.now()
	}
	count, err := s.repo.ActivateSubscription(ctx, email, activatedAt, durationSeconds)
	if err != nil {
		return err
	}
	if count == 0 {
		return storage.ErrNotFound
	}
	s.invalidate(ctx, email)
	s.log.Info("activated subscription",
		slog.String("email", email),
		slog.Int64("duration_seconds", durationSeconds))
	return nil
}

// EffectiveRole вычисляет эффективную роль пользователя на текущий момент.
func (s *Service) EffectiveRole(ctx context.Context, email string) (entitlement.Role, error) {
	user, err := s.Get(ctx, email)
	if err != nil {
		return "", err
	}
	return entitlement.EffectiveRole(user, s.now()), nil
}

// GetStatus возвращает эффективную роль вместе с окном подписки.
func (s *Service) GetStatus(ctx context.Context, email string) (*Status, error) {
	user, err := s.Get(ctx, email)
	if err != nil {
		return nil, err
	}
	now := s.now()
	window := entitlement.SubscriptionWindow(user.PremiumActivatedAt, user.SubscriptionDurationSeconds, now)
	return &Status{
		Role:      entitlement.EffectiveRole(user, now),
		Valid:     window.Valid,
		ExpiresAt: window.ExpiresAt,
	}, nil
}

func (s *Service) invalidate(ctx context.Context, email string) {
	key := cacheKey(email)
	if err := s.cache.Invalidate(ctx, key); err != nil {
		s.log.Warn("failed to invalidate user cache", slog.String("key", key), sl.Err(err))
	}
}

func cacheKey(email string) string {
	return "user:" + email
}
