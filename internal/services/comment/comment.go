// Package comment содержит бизнес-логику комментариев к статьям.
package comment

import (
	"context"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/headliner-backend/internal/models"
)

// Repository определяет методы для работы с комментариями в хранилище.
type Repository interface {
	CreateComment(ctx context.Context, c models.Comment) (string, error)
	ListCommentsByArticle(ctx context.Context, articleID string) ([]*models.Comment, error)
}

// ArticleReader проверяет существование статьи перед комментированием.
type ArticleReader interface {
	GetArticle(ctx context.Context, id string) (*models.Article, error)
}

// Service реализует бизнес-логику комментариев.
type Service struct {
	repo     Repository
	articles ArticleReader
	log      *slog.Logger
	now      func() time.Time
}

// New создает новый Service.
func New(repo Repository, articles ArticleReader, log *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		articles: articles,
		log:      log,
		now:      time.Now,
	}
}

// Create добавляет комментарий к статье от имени authorEmail. Статья должна
// существовать; состояние модерации значения не имеет.
func (s *Service) Create(ctx context.Context, authorEmail string, req models.DummyComment) (string, error) {
	if _, err := s.articles.GetArticle(ctx, req.ArticleID); err != nil {
		return "", err
	}

	id, err := s.repo.CreateComment(ctx, models.Comment{
		ArticleID:   req.ArticleID,
		AuthorEmail: authorEmail,
		Body:        req.Body,
		CommentedAt: s.now(),
	})
	if err != nil {
		return "", err
	}
	s.log.Info("created comment",
		slog.String("id", id),
		slog.String("article_id", req.ArticleID),
		slog.String("author", authorEmail))
	return id, nil
}

// ListByArticle возвращает комментарии к статье от старых к новым.
func (s *Service) ListByArticle(ctx context.Context, articleID string) ([]*models.Comment, error) {
	return s.repo.ListCommentsByArticle(ctx, articleID)
}
