// Package article содержит бизнес-логику публикации и модерации статей:
// создание с проверкой квоты, решения модерации, публичные выборки и счётчик
// просмотров.
package article

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/headliner-backend/internal/entitlement"
	"github.com/magabrotheeeer/headliner-backend/internal/lib/sl"
	"github.com/magabrotheeeer/headliner-backend/internal/models"
	"github.com/magabrotheeeer/headliner-backend/internal/moderation"
	"github.com/magabrotheeeer/headliner-backend/internal/storage"
)

const (
	trendingCacheKey = "articles:trending"
	trendingCacheTTL = time.Minute
	trendingLimit    = 6
	featuredLimit    = 4
	featuredMaxAge   = 7 * 24 * time.Hour
)

// Repository определяет методы для работы со статьями в хранилище.
type Repository interface {
	CreateArticle(ctx context.Context, a models.Article) (string, error)
	GetArticle(ctx context.Context, id string) (*models.Article, error)
	CountArticlesByAuthor(ctx context.Context, email string) (int, error)
	ListArticlesByAuthor(ctx context.Context, email string) ([]*models.Article, error)
	ListApprovedArticles(ctx context.Context, filter models.ArticleFilter) ([]*models.Article, error)
	ListPremiumArticles(ctx context.Context) ([]*models.Article, error)
	ListTrendingArticles(ctx context.Context, limit int) ([]*models.Article, error)
	SampleRecentApproved(ctx context.Context, since time.Time, limit int) ([]*models.Article, error)
	ListArticlesWithAuthors(ctx context.Context) ([]*models.ArticleWithAuthor, error)
	UpdateArticleContent(ctx context.Context, id string, content models.DummyArticleContent) (int, error)
	SetApproval(ctx context.Context, id string, status moderation.Status) (int, error)
	SetPremium(ctx context.Context, id string) (int, error)
	IncrementViewCount(ctx context.Context, id string) (int, error)
	DeleteArticle(ctx context.Context, id string) (int, error)
}

// UserReader возвращает запись пользователя для проверки автора и его роли.
type UserReader interface {
	Get(ctx context.Context, email string) (*models.User, error)
}

// Cache описывает методы кэширования выборок.
type Cache interface {
	Get(ctx context.Context, key string, result any) (bool, error)
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
	Invalidate(ctx context.Context, key string) error
}

// Events публикует доменные события модерации.
type Events interface {
	Publish(routingKey string, message any) error
}

// ModerationEvent — событие решения модерации, публикуемое в брокер.
type ModerationEvent struct {
	ArticleID string    `json:"articleId"`
	Decision  string    `json:"decision"` // approved или declined
	Message   string    `json:"message,omitempty"`
	DecidedAt time.Time `json:"decidedAt"`
}

// Service реализует бизнес-логику работы со статьями.
type Service struct {
	repo   Repository
	users  UserReader
	cache  Cache
	events Events
	log    *slog.Logger
	now    func() time.Time
}

// New создает новый Service.
func New(repo Repository, users UserReader, cache Cache, events Events, log *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		users:  users,
		cache:  cache,
		events: events,
		log:    log,
		now:    time.Now,
	}
}

// Create публикует новую статью от имени actorEmail.
//
// Порядок проверок фиксирован: совпадение личности с createdBy, затем чтение
// записи автора, затем квота по живому счётчику, и только после этого —
// запись. Отклонённая отправка не оставляет частичного состояния. Гонка между
// подсчётом и вставкой принята: в худшем случае не-премиум автор ненадолго
// получает лишнюю статью, глобальных инвариантов это не нарушает.
func (s *Service) Create(ctx context.Context, actorEmail string, req models.DummyArticle) (string, error) {
	if err := entitlement.AuthorizeSelf(actorEmail, req.CreatedBy); err != nil {
		return "", err
	}

	author, err := s.users.Get(ctx, req.CreatedBy)
	if err != nil {
		return "", err
	}

	count, err := s.repo.CountArticlesByAuthor(ctx, req.CreatedBy)
	if err != nil {
		return "", err
	}

	role := entitlement.EffectiveRole(author, s.now())
	if err := entitlement.CanSubmit(role, count); err != nil {
		return "", err
	}

	entry := models.Article{
		Title:       req.Title,
		Description: req.Description,
		Publisher:   req.Publisher,
		Tags:        req.Tags,
		ImageURL:    req.ImageURL,
		IsPremium:   req.IsPremium,
		Status:      moderation.Pending(),
		CreatedBy:   req.CreatedBy,
		CreatedAt:   s.now(),
	}
	if entry.Tags == nil {
		entry.Tags = []string{}
	}

	id, err := s.repo.CreateArticle(ctx, entry)
	if err != nil {
		return "", err
	}
	s.log.Info("created new article", slog.String("id", id), slog.String("author", req.CreatedBy))
	return id, nil
}

// Approve одобряет статью. Повторное одобрение идемпотентно; прежнее
// отклонение сбрасывается тем же обновлением.
func (s *Service) Approve(ctx context.Context, id string) error {
	a, err := s.repo.GetArticle(ctx, id)
	if err != nil {
		return err
	}
	alreadyApproved := a.Status.IsApproved()

	if _, err := s.repo.SetApproval(ctx, id, a.Status.Approve()); err != nil {
		return err
	}
	s.invalidateTrending(ctx)

	if !alreadyApproved {
		s.publish(ModerationEvent{
			ArticleID: id,
			Decision:  "approved",
			DecidedAt: s.now(),
		})
	}
	s.log.Info("approved article", slog.String("id", id))
	return nil
}

// Decline отклоняет статью с обязательным сообщением модератора. Повторное
// отклонение перезаписывает сообщение; прежнее одобрение сбрасывается.
func (s *Service) Decline(ctx context.Context, id, message string) error {
	a, err := s.repo.GetArticle(ctx, id)
	if err != nil {
		return err
	}

	status, err := a.Status.Decline(message)
	if err != nil {
		return err
	}
	if _, err := s.repo.SetApproval(ctx, id, status); err != nil {
		return err
	}
	s.invalidateTrending(ctx)

	s.publish(ModerationEvent{
		ArticleID: id,
		Decision:  "declined",
		Message:   message,
		DecidedAt: s.now(),
	})
	s.log.Info("declined article", slog.String("id", id))
	return nil
}

// MakePremium помечает статью премиальной.
func (s *Service) MakePremium(ctx context.Context, id string) error {
	count, err := s.repo.SetPremium(ctx, id)
	if err != nil {
		return err
	}
	if count == 0 {
		return notFound(id)
	}
	return nil
}

// IncrementView атомарно увеличивает счётчик просмотров статьи.
func (s *Service) IncrementView(ctx context.Context, id string) error {
	count, err := s.repo.IncrementViewCount(ctx, id)
	if err != nil {
		return err
	}
	if count == 0 {
		return notFound(id)
	}
	s.invalidateTrending(ctx)
	return nil
}

// Get возвращает статью по ID с учётом видимости: неодобренная статья
// доступна только своему автору или администратору.
func (s *Service) Get(ctx context.Context, id, actorEmail string, actorRole entitlement.Role) (*models.Article, error) {
	a, err := s.repo.GetArticle(ctx, id)
	if err != nil {
		return nil, err
	}
	if !a.Status.IsApproved() {
		if err := entitlement.AuthorizeOwnerOrAdmin(actorRole, actorEmail, a.CreatedBy); err != nil {
			return nil, err
		}
	}
	return a, nil
}

// ListPublic возвращает одобренные статьи с фильтрами.
func (s *Service) ListPublic(ctx context.Context, filter models.ArticleFilter) ([]*models.Article, error) {
	return s.repo.ListApprovedArticles(ctx, filter)
}

// ListPremium возвращает одобренные премиум-статьи.
func (s *Service) ListPremium(ctx context.Context) ([]*models.Article, error) {
	return s.repo.ListPremiumArticles(ctx)
}

// Trending возвращает одобренные статьи с наибольшим числом просмотров,
// кешируя выборку на минуту.
func (s *Service) Trending(ctx context.Context) ([]*models.Article, error) {
	var cached []*models.Article
	found, err := s.cache.Get(ctx, trendingCacheKey, &cached)
	if err != nil {
		s.log.Warn("failed to read trending from cache", sl.Err(err))
	}
	if found {
		return cached, nil
	}

	result, err := s.repo.ListTrendingArticles(ctx, trendingLimit)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(ctx, trendingCacheKey, result, trendingCacheTTL); err != nil {
		s.log.Warn("failed to cache trending", sl.Err(err))
	}
	return result, nil
}

// Featured возвращает случайную выборку недавних одобренных статей.
func (s *Service) Featured(ctx context.Context) ([]*models.Article, error) {
	since := s.now().Add(-featuredMaxAge)
	return s.repo.SampleRecentApproved(ctx, since, featuredLimit)
}

// ListByAuthor возвращает статьи автора в любом состоянии модерации.
func (s *Service) ListByAuthor(ctx context.Context, email string) ([]*models.Article, error) {
	return s.repo.ListArticlesByAuthor(ctx, email)
}

// ListWithAuthors возвращает статьи вместе с записями их авторов.
func (s *Service) ListWithAuthors(ctx context.Context) ([]*models.ArticleWithAuthor, error) {
	return s.repo.ListArticlesWithAuthors(ctx)
}

// UpdateContent обновляет редактируемые поля статьи. Разрешено автору статьи
// или администратору.
func (s *Service) UpdateContent(ctx context.Context, id, actorEmail string, actorRole entitlement.Role, content models.DummyArticleContent) error {
	a, err := s.repo.GetArticle(ctx, id)
	if err != nil {
		return err
	}
	if err := entitlement.AuthorizeOwnerOrAdmin(actorRole, actorEmail, a.CreatedBy); err != nil {
		return err
	}
	_, err = s.repo.UpdateArticleContent(ctx, id, content)
	return err
}

// Delete удаляет статью. Разрешено автору статьи или администратору.
func (s *Service) Delete(ctx context.Context, id, actorEmail string, actorRole entitlement.Role) error {
	a, err := s.repo.GetArticle(ctx, id)
	if err != nil {
		return err
	}
	if err := entitlement.AuthorizeOwnerOrAdmin(actorRole, actorEmail, a.CreatedBy); err != nil {
		return err
	}
	count, err := s.repo.DeleteArticle(ctx, id)
	if err != nil {
		return err
	}
	if count == 0 {
		return notFound(id)
	}
	s.invalidateTrending(ctx)
	s.log.Info("deleted article", slog.String("id", id))
	return nil
}

func (s *Service) invalidateTrending(ctx context.Context) {
	if err := s.cache.Invalidate(ctx, trendingCacheKey); err != nil {
		s.log.Warn("failed to invalidate trending cache", sl.Err(err))
	}
}

func (s *Service) publish(event ModerationEvent) {
	if err := s.events.Publish("moderation", event); err != nil {
		s.log.Warn("failed to publish moderation event",
			slog.String("article_id", event.ArticleID), sl.Err(err))
	}
}

func notFound(id string) error {
	return fmt.Errorf("article %s: %w", id, storage.ErrNotFound)
}
