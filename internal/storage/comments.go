package storage

import (
	"context"
	"fmt"

	"github.com/magabrotheeeer/headliner-backend/internal/models"
)

// CreateComment вставляет новый комментарий и возвращает его ID.
func (s *Storage) CreateComment(ctx context.Context, c models.Comment) (string, error) {
	const op = "storage.CreateComment"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO comments (article_id, author_email, body, commented_at)
			  VALUES ($1, $2, $3, $4)
			  RETURNING id`
	var newID string
	err := s.Db.QueryRowContext(ctx, query,
		c.ArticleID, c.AuthorEmail, c.Body, c.CommentedAt).Scan(&newID)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// ListCommentsByArticle возвращает комментарии к статье от старых к новым.
func (s *Storage) ListCommentsByArticle(ctx context.Context, articleID string) ([]*models.Comment, error) {
	const op = "storage.ListCommentsByArticle"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, article_id, author_email, body, commented_at
			  FROM comments
			  WHERE article_id = $1
			  ORDER BY commented_at`
	rows, err := s.Db.QueryContext(ctx, query, articleID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Comment
	for rows.Next() {
		var item models.Comment
		if err := rows.Scan(&item.ID, &item.ArticleID, &item.AuthorEmail,
			&item.Body, &item.CommentedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
