package storage

import (
	"context"
	"fmt"

	"github.com/magabrotheeeer/headliner-backend/internal/models"
)

// CreatePublisher вставляет нового издателя и возвращает его ID.
func (s *Storage) CreatePublisher(ctx context.Context, p models.Publisher) (string, error) {
	const op = "storage.CreatePublisher"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO publishers (name, image) VALUES ($1, $2) RETURNING id`
	var newID string
	if err := s.Db.QueryRowContext(ctx, query, p.Name, p.Image).Scan(&newID); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// ListPublishers возвращает всех издателей.
func (s *Storage) ListPublishers(ctx context.Context) ([]*models.Publisher, error) {
	const op = "storage.ListPublishers"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, name, image FROM publishers ORDER BY name`
	rows, err := s.Db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Publisher
	for rows.Next() {
		var item models.Publisher
		if err := rows.Scan(&item.ID, &item.Name, &item.Image); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// UpdatePublisher обновляет имя и изображение издателя.
// Возвращает число изменённых строк.
func (s *Storage) UpdatePublisher(ctx context.Context, id string, p models.DummyPublisher) (int, error) {
	const op = "storage.UpdatePublisher"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE publishers SET name = $1, image = $2 WHERE id = $3`
	result, err := s.Db.ExecContext(ctx, query, p.Name, p.Image, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// DeletePublisher удаляет издателя по ID и возвращает число удалённых строк.
func (s *Storage) DeletePublisher(ctx context.Context, id string) (int, error) {
	const op = "storage.DeletePublisher"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM publishers WHERE id = $1`
	result, err := s.Db.ExecContext(ctx, query, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}
