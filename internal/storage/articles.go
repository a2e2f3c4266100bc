package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/magabrotheeeer/headliner-backend/internal/models"
	"github.com/magabrotheeeer/headliner-backend/internal/moderation"
)

const articleColumns = `id, title, description, publisher, tags, image_url,
			      is_premium, approved, declined, decline_message, view_count,
			      created_by, created_at`

// CreateArticle вставляет новую статью и возвращает её ID.
func (s *Storage) CreateArticle(ctx context.Context, a models.Article) (string, error) {
	const op = "storage.CreateArticle"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	tags, err := json.Marshal(a.Tags)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	approved, declined, declineMessage := a.Status.Flags()

	query := `INSERT INTO articles (title, description, publisher, tags, image_url,
			      is_premium, approved, declined, decline_message, view_count,
			      created_by, created_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
			  RETURNING id`
	var newID string
	err = s.Db.QueryRowContext(ctx, query,
		a.Title, a.Description, a.Publisher, tags, a.ImageURL,
		a.IsPremium, approved, declined, nullableString(declineMessage, declined),
		a.ViewCount, a.CreatedBy, a.CreatedAt).Scan(&newID)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// GetArticle возвращает статью по ID или ErrNotFound.
func (s *Storage) GetArticle(ctx context.Context, id string) (*models.Article, error) {
	const op = "storage.GetArticle"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + articleColumns + ` FROM articles WHERE id = $1`
	row := s.Db.QueryRowContext(ctx, query, id)

	a, err := scanArticle(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return a, nil
}

// CountArticlesByAuthor возвращает живой счётчик статей автора в любом
// состоянии модерации. Используется проверкой квоты перед вставкой.
func (s *Storage) CountArticlesByAuthor(ctx context.Context, email string) (int, error) {
	const op = "storage.CountArticlesByAuthor"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var count int
	query := `SELECT COUNT(*) FROM articles WHERE created_by = $1`
	if err := s.Db.QueryRowContext(ctx, query, email).Scan(&count); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return count, nil
}

// ListArticlesByAuthor возвращает статьи автора в любом состоянии модерации.
func (s *Storage) ListArticlesByAuthor(ctx context.Context, email string) ([]*models.Article, error) {
	const op = "storage.ListArticlesByAuthor"
	query := `SELECT ` + articleColumns + `
			  FROM articles
			  WHERE created_by = $1
			  ORDER BY created_at DESC`
	return s.queryArticles(ctx, op, query, email)
}

// ListApprovedArticles возвращает одобренные статьи с необязательными
// фильтрами по издателю, тегу и подстроке заголовка.
func (s *Storage) ListApprovedArticles(ctx context.Context, filter models.ArticleFilter) ([]*models.Article, error) {
	const op = "storage.ListApprovedArticles"
	query := `SELECT ` + articleColumns + `
			  FROM articles
			  WHERE approved = true
			  	AND ($1 = '' OR publisher = $1)
			  	AND ($2 = '' OR tags @> jsonb_build_array($2::text))
			  	AND ($3 = '' OR title ILIKE '%' || $3 || '%')
			  ORDER BY created_at DESC`
	return s.queryArticles(ctx, op, query, filter.Publisher, filter.Tag, filter.Search)
}

// ListPremiumArticles возвращает одобренные премиум-статьи.
func (s *Storage) ListPremiumArticles(ctx context.Context) ([]*models.Article, error) {
	const op = "storage.ListPremiumArticles"
	query := `SELECT ` + articleColumns + `
			  FROM articles
			  WHERE approved = true AND is_premium = true
			  ORDER BY created_at DESC`
	return s.queryArticles(ctx, op, query)
}

// ListTrendingArticles возвращает одобренные статьи с наибольшим числом
// просмотров.
func (s *Storage) ListTrendingArticles(ctx context.Context, limit int) ([]*models.Article, error) {
	const op = "storage.ListTrendingArticles"
	query := `SELECT ` + articleColumns + `
			  FROM articles
			  WHERE approved = true
			  ORDER BY view_count DESC
			  LIMIT $1`
	return s.queryArticles(ctx, op, query, limit)
}

// SampleRecentApproved возвращает случайную выборку одобренных статей,
// созданных не раньше since.
func (s *Storage) SampleRecentApproved(ctx context.Context, since time.Time, limit int) ([]*models.Article, error) {
	const op = "storage.SampleRecentApproved"
	query := `SELECT ` + articleColumns + `
			  FROM articles
			  WHERE approved = true AND created_at >= $1
			  ORDER BY random()
			  LIMIT $2`
	return s.queryArticles(ctx, op, query, since, limit)
}

// ListArticlesWithAuthors возвращает статьи вместе с записями их авторов.
func (s *Storage) ListArticlesWithAuthors(ctx context.Context) ([]*models.ArticleWithAuthor, error) {
	const op = "storage.ListArticlesWithAuthors"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT a.id, a.title, a.description, a.publisher, a.tags, a.image_url,
			      a.is_premium, a.approved, a.declined, a.decline_message, a.view_count,
			      a.created_by, a.created_at,
			      u.email, u.username, u.role, u.premium_activated_at,
			      u.subscription_duration_seconds, u.created_at
			  FROM articles a
			  JOIN users u ON u.email = a.created_by
			  ORDER BY a.created_at DESC`
	rows, err := s.Db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.ArticleWithAuthor
	for rows.Next() {
		var item models.ArticleWithAuthor
		var tags []byte
		var approved, declined bool
		var declineMessage sql.NullString
		var activatedAt sql.NullTime
		var durationSeconds sql.NullInt64
		if err := rows.Scan(&item.Article.ID, &item.Article.Title, &item.Article.Description,
			&item.Article.Publisher, &tags, &item.Article.ImageURL,
			&item.Article.IsPremium, &approved, &declined, &declineMessage,
			&item.Article.ViewCount, &item.Article.CreatedBy, &item.Article.CreatedAt,
			&item.Author.Email, &item.Author.Username, &item.Author.Role,
			&activatedAt, &durationSeconds, &item.Author.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if err := json.Unmarshal(tags, &item.Article.Tags); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		item.Article.Status = moderation.FromFlags(approved, declined, declineMessage.String)
		if activatedAt.Valid {
			item.Author.PremiumActivatedAt = &activatedAt.Time
		}
		if durationSeconds.Valid {
			item.Author.SubscriptionDurationSeconds = &durationSeconds.Int64
		}
		result = append(result, &item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// UpdateArticleContent обновляет редактируемые поля статьи; поля модерации и
// счётчик просмотров не затрагиваются. Возвращает число изменённых строк.
func (s *Storage) UpdateArticleContent(ctx context.Context, id string, content models.DummyArticleContent) (int, error) {
	const op = "storage.UpdateArticleContent"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	tags, err := json.Marshal(content.Tags)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	query := `UPDATE articles
			  SET title = $1, description = $2, publisher = $3, tags = $4, image_url = $5
			  WHERE id = $6`
	result, err := s.Db.ExecContext(ctx, query,
		content.Title, content.Description, content.Publisher, tags, content.ImageURL, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// SetApproval записывает статус модерации целиком: оба флага и сообщение
// выставляются одним обновлением, рассинхронизация флагов невозможна.
func (s *Storage) SetApproval(ctx context.Context, id string, status moderation.Status) (int, error) {
	const op = "storage.SetApproval"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	approved, declined, declineMessage := status.Flags()
	query := `UPDATE articles
			  SET approved = $1, declined = $2, decline_message = $3
			  WHERE id = $4`
	result, err := s.Db.ExecContext(ctx, query,
		approved, declined, nullableString(declineMessage, declined), id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// SetPremium помечает статью премиальной.
func (s *Storage) SetPremium(ctx context.Context, id string) (int, error) {
	const op = "storage.SetPremium"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE articles SET is_premium = true WHERE id = $1`
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

// IncrementViewCount атомарно увеличивает счётчик просмотров, чтобы
// конкурентные просмотры не теряли обновления.
func (s *Storage) IncrementViewCount(ctx context.Context, id string) (int, error) {
	const op = "storage.IncrementViewCount"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE articles SET view_count = view_count + 1 WHERE id = $1`
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

// DeleteArticle удаляет статью по ID и возвращает число удалённых строк.
func (s *Storage) DeleteArticle(ctx context.Context, id string) (int, error) {
	const op = "storage.DeleteArticle"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM articles WHERE id = $1`
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

func (s *Storage) queryArticles(ctx context.Context, op, query string, args ...any) ([]*models.Article, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	rows, err := s.Db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Article
	for rows.Next() {
		a, err := scanArticle(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, a)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

func scanArticle(row rowScanner) (*models.Article, error) {
	a := &models.Article{}
	var tags []byte
	var approved, declined bool
	var declineMessage sql.NullString
	if err := row.Scan(&a.ID, &a.Title, &a.Description, &a.Publisher, &tags, &a.ImageURL,
		&a.IsPremium, &approved, &declined, &declineMessage, &a.ViewCount,
		&a.CreatedBy, &a.CreatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(tags, &a.Tags); err != nil {
		return nil, err
	}
	a.Status = moderation.FromFlags(approved, declined, declineMessage.String)
	return a, nil
}

func nullableString(value string, valid bool) sql.NullString {
	return sql.NullString{String: value, Valid: valid}
}
