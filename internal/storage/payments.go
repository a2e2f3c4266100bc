package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/headliner-backend/internal/models"
)

// CreatePayment сохраняет запись о созданном платёжном намерении.
func (s *Storage) CreatePayment(ctx context.Context, p models.Payment) (string, error) {
	const op = "storage.CreatePayment"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO payments (provider_id, email, amount_cents, currency,
			      status, duration_seconds, created_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)
			  RETURNING id`
	var newID string
	err := s.Db.QueryRowContext(ctx, query,
		p.ProviderID, p.Email, p.AmountCents, p.Currency,
		p.Status, p.DurationSeconds, p.CreatedAt).Scan(&newID)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// SettlePayment помечает платёж успешным по идентификатору провайдера и
// возвращает запись для активации подписки. ErrNotFound, если intent неизвестен.
func (s *Storage) SettlePayment(ctx context.Context, providerID string) (*models.Payment, error) {
	const op = "storage.SettlePayment"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE payments
			  SET status = 'succeeded'
			  WHERE provider_id = $1
			  RETURNING id, provider_id, email, amount_cents, currency, status,
			      duration_seconds, created_at`
	row := s.Db.QueryRowContext(ctx, query, providerID)

	p := &models.Payment{}
	err := row.Scan(&p.ID, &p.ProviderID, &p.Email, &p.AmountCents, &p.Currency,
		&p.Status, &p.DurationSeconds, &p.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return p, nil
}

// ListPaymentsByEmail возвращает платежи пользователя от новых к старым.
func (s *Storage) ListPaymentsByEmail(ctx context.Context, email string) ([]*models.Payment, error) {
	const op = "storage.ListPaymentsByEmail"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, provider_id, email, amount_cents, currency, status,
			      duration_seconds, created_at
			  FROM payments
			  WHERE email = $1
			  ORDER BY created_at DESC`
	rows, err := s.Db.QueryContext(ctx, query, email)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Payment
	for rows.Next() {
		var item models.Payment
		if err := rows.Scan(&item.ID, &item.ProviderID, &item.Email, &item.AmountCents,
			&item.Currency, &item.Status, &item.DurationSeconds, &item.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
