package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/magabrotheeeer/headliner-backend/internal/models"
)

// CreateUser сохраняет нового пользователя. Создание идемпотентно по email:
// повторная попытка для существующей почты ничего не пишет и возвращает
// created = false без ошибки.
func (s *Storage) CreateUser(ctx context.Context, user models.User) (string, bool, error) {
	const op = "storage.CreateUser"
	select {
	case <-ctx.Done():
		return "", false, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO users (email, username, password_hash, role)
			  VALUES ($1, $2, $3, $4)
			  ON CONFLICT (email) DO NOTHING
			  RETURNING uid`
	var newID string
	err := s.Db.QueryRowContext(ctx, query,
		user.Email, user.Username, user.PasswordHash, user.Role).Scan(&newID)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("%s: %w", op, err)
	}
	return newID, true, nil
}

// GetUserByEmail возвращает пользователя по почте или ErrNotFound.
func (s *Storage) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	const op = "storage.GetUserByEmail"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT uid, email, username, password_hash, role,
			      premium_activated_at, subscription_duration_seconds, created_at
			  FROM users
			  WHERE email = $1`
	row := s.Db.QueryRowContext(ctx, query, email)

	u, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}

// ListUsers возвращает всех пользователей.
func (s *Storage) ListUsers(ctx context.Context) ([]*models.User, error) {
	const op = "storage.ListUsers"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT uid, email, username, password_hash, role,
			      premium_activated_at, subscription_duration_seconds, created_at
			  FROM users
			  ORDER BY created_at`
	rows, err := s.Db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, u)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// UpdateUserRole устанавливает базовую роль пользователя целиком.
// Возвращает количество изменённых строк.
func (s *Storage) UpdateUserRole(ctx context.Context, email, role string) (int, error) {
	const op = "storage.UpdateUserRole"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE users SET role = $1 WHERE email = $2`
	result, err := s.Db.ExecContext(ctx, query, role, email)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// ActivateSubscription записывает момент активации и длительность подписки
// одним обновлением: поля задаются только парой.
func (s *Storage) ActivateSubscription(ctx context.Context, email string, activatedAt time.Time, durationSeconds int64) (int, error) {
	const op = "storage.ActivateSubscription"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE users
			  SET premium_activated_at = $1, subscription_duration_seconds = $2
			  WHERE email = $3`
	result, err := s.Db.ExecContext(ctx, query, activatedAt, durationSeconds, email)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*models.User, error) {
	u := &models.User{}
	var activatedAt sql.NullTime
	var durationSeconds sql.NullInt64
	if err := row.Scan(&u.UUID, &u.Email, &u.Username, &u.PasswordHash, &u.Role,
		&activatedAt, &durationSeconds, &u.CreatedAt); err != nil {
		return nil, err
	}
	if activatedAt.Valid {
		u.PremiumActivatedAt = &activatedAt.Time
	}
	if durationSeconds.Valid {
		u.SubscriptionDurationSeconds = &durationSeconds.Int64
	}
	return u, nil
}
