package article

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/headliner-backend/internal/entitlement"
	"github.com/magabrotheeeer/headliner-backend/internal/models"
	"github.com/magabrotheeeer/headliner-backend/internal/moderation"
)

type RepoMock struct{ mock.Mock }

func (m *RepoMock) CreateArticle(ctx context.Context, a models.Article) (string, error) {
	args := m.Called(ctx, a)
	return args.String(0), args.Error(1)
}
func (m *RepoMock) GetArticle(ctx context.Context, id string) (*models.Article, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Article), args.Error(1)
}
func (m *RepoMock) CountArticlesByAuthor(ctx context.Context, email string) (int, error) {
	args := m.Called(ctx, email)
	return args.Int(0), args.Error(1)
}
func (m *RepoMock) ListArticlesByAuthor(ctx context.Context, email string) ([]*models.Article, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Article), args.Error(1)
}
func (m *RepoMock) ListApprovedArticles(ctx context.Context, filter models.ArticleFilter) ([]*models.Article, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Article), args.Error(1)
}
func (m *RepoMock) ListPremiumArticles(ctx context.Context) ([]*models.Article, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Article), args.Error(1)
}
func (m *RepoMock) ListTrendingArticles(ctx context.Context, limit int) ([]*models.Article, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Article), args.Error(1)
}
func (m *RepoMock) SampleRecentApproved(ctx context.Context, since time.Time, limit int) ([]*models.Article, error) {
	args := m.Called(ctx, since, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Article), args.Error(1)
}
func (m *RepoMock) ListArticlesWithAuthors(ctx context.Context) ([]*models.ArticleWithAuthor, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.ArticleWithAuthor), args.Error(1)
}
func (m *RepoMock) UpdateArticleContent(ctx context.Context, id string, content models.DummyArticleContent) (int, error) {
	args := m.Called(ctx, id, content)
	return args.Int(0), args.Error(1)
}
func (m *RepoMock) SetApproval(ctx context.Context, id string, status moderation.Status) (int, error) {
	args := m.Called(ctx, id, status)
	return args.Int(0), args.Error(1)
}
func (m *RepoMock) SetPremium(ctx context.Context, id string) (int, error) {
	args := m.Called(ctx, id)
	return args.Int(0), args.Error(1)
}
func (m *RepoMock) IncrementViewCount(ctx context.Context, id string) (int, error) {
	args := m.Called(ctx, id)
	return args.Int(0), args.Error(1)
}
func (m *RepoMock) DeleteArticle(ctx context.Context, id string) (int, error) {
	args := m.Called(ctx, id)
	return args.Int(0), args.Error(1)
}

type UsersMock struct{ mock.Mock }

func (m *UsersMock) Get(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
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

type EventsMock struct{ mock.Mock }

func (m *EventsMock) Publish(routingKey string, message any) error {
	return m.Called(routingKey, message).Error(0)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

type fixture struct {
	repo   *RepoMock
	users  *UsersMock
	cache  *CacheMock
	events *EventsMock
	svc    *Service
	now    time.Time
}

func newFixture() *fixture {
	f := &fixture{
		repo:   new(RepoMock),
		users:  new(UsersMock),
		cache:  new(CacheMock),
		events: new(EventsMock),
		now:    time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
	f.svc = New(f.repo, f.users, f.cache, f.events, newNoopLogger())
	f.svc.now = func() time.Time { return f.now }
	return f
}

func dummyArticle(author string) models.DummyArticle {
	return models.DummyArticle{
		Title:       "Go 1.25 released",
		Description: "What changed in the runtime",
		Publisher:   "The Go Blog",
		Tags:        []string{"go"},
		CreatedBy:   author,
	}
}

func TestCreateQuota(t *testing.T) {
	freeAuthor := &models.User{Email: "writer@example.com", Role: "user"}

	t.Run("первая статья обычного автора проходит", func(t *testing.T) {
		f := newFixture()
		f.users.On("Get", mock.Anything, "writer@example.com").Return(freeAuthor, nil)
		f.repo.On("CountArticlesByAuthor", mock.Anything, "writer@example.com").Return(0, nil)
		f.repo.On("CreateArticle", mock.Anything, mock.AnythingOfType("models.Article")).Return("id-1", nil)

		id, err := f.svc.Create(context.Background(), "writer@example.com", dummyArticle("writer@example.com"))
		require.NoError(t, err)
		assert.Equal(t, "id-1", id)
	})

	t.Run("вторая статья обычного автора отклоняется без записи", func(t *testing.T) {
		f := newFixture()
		f.users.On("Get", mock.Anything, "writer@example.com").Return(freeAuthor, nil)
		f.repo.On("CountArticlesByAuthor", mock.Anything, "writer@example.com").Return(1, nil)

		_, err := f.svc.Create(context.Background(), "writer@example.com", dummyArticle("writer@example.com"))
		assert.ErrorIs(t, err, entitlement.ErrQuotaExceeded)
		f.repo.AssertNotCalled(t, "CreateArticle")
	})

	t.Run("автор с действующей подпиской не ограничен", func(t *testing.T) {
		activatedAt := time.Date(2025, 6, 1, 11, 0, 0, 0, time.UTC)
		day := int64(86400)
		premiumAuthor := &models.User{
			Email:                       "pro@example.com",
			Role:                        "user",
			PremiumActivatedAt:          &activatedAt,
			SubscriptionDurationSeconds: &day,
		}

		f := newFixture()
		f.users.On("Get", mock.Anything, "pro@example.com").Return(premiumAuthor, nil)
		f.repo.On("CountArticlesByAuthor", mock.Anything, "pro@example.com").Return(7, nil)
		f.repo.On("CreateArticle", mock.Anything, mock.AnythingOfType("models.Article")).Return("id-8", nil)

		_, err := f.svc.Create(context.Background(), "pro@example.com", dummyArticle("pro@example.com"))
		require.NoError(t, err)
	})

	t.Run("чужое имя автора отклоняется до всех проверок", func(t *testing.T) {
		f := newFixture()

		_, err := f.svc.Create(context.Background(), "intruder@example.com", dummyArticle("writer@example.com"))
		assert.ErrorIs(t, err, entitlement.ErrForbidden)
		f.users.AssertNotCalled(t, "Get")
		f.repo.AssertNotCalled(t, "CreateArticle")
	})
}

func TestCreateStoresPendingStatus(t *testing.T) {
	f := newFixture()
	f.users.On("Get", mock.Anything, "writer@example.com").
		Return(&models.User{Email: "writer@example.com", Role: "user"}, nil)
	f.repo.On("CountArticlesByAuthor", mock.Anything, "writer@example.com").Return(0, nil)
	f.repo.On("CreateArticle", mock.Anything, mock.MatchedBy(func(a models.Article) bool {
		return !a.Status.IsApproved() && !a.Status.IsDeclined() && a.CreatedAt.Equal(f.now)
	})).Return("id-1", nil)

	_, err := f.svc.Create(context.Background(), "writer@example.com", dummyArticle("writer@example.com"))
	require.NoError(t, err)
	f.repo.AssertExpectations(t)
}

func TestApprove(t *testing.T) {
	t.Run("первое одобрение публикует событие", func(t *testing.T) {
		f := newFixture()
		pending := &models.Article{ID: "id-1", Status: moderation.Pending(), CreatedBy: "writer@example.com"}
		f.repo.On("GetArticle", mock.Anything, "id-1").Return(pending, nil)
		f.repo.On("SetApproval", mock.Anything, "id-1", mock.AnythingOfType("moderation.Status")).Return(1, nil)
		f.cache.On("Invalidate", mock.Anything, trendingCacheKey).Return(nil)
		f.events.On("Publish", "moderation", mock.AnythingOfType("article.ModerationEvent")).Return(nil)

		require.NoError(t, f.svc.Approve(context.Background(), "id-1"))
		f.events.AssertExpectations(t)
	})

	t.Run("повторное одобрение не публикует событие", func(t *testing.T) {
		f := newFixture()
		approved := &models.Article{ID: "id-1", Status: moderation.Pending().Approve(), CreatedBy: "writer@example.com"}
		f.repo.On("GetArticle", mock.Anything, "id-1").Return(approved, nil)
		f.repo.On("SetApproval", mock.Anything, "id-1", mock.AnythingOfType("moderation.Status")).Return(1, nil)
		f.cache.On("Invalidate", mock.Anything, trendingCacheKey).Return(nil)

		require.NoError(t, f.svc.Approve(context.Background(), "id-1"))
		f.events.AssertNotCalled(t, "Publish")
	})
}

func TestDecline(t *testing.T) {
	t.Run("отклонение требует сообщения", func(t *testing.T) {
		f := newFixture()
		pending := &models.Article{ID: "id-1", Status: moderation.Pending()}
		f.repo.On("GetArticle", mock.Anything, "id-1").Return(pending, nil)

		err := f.svc.Decline(context.Background(), "id-1", "")
		assert.ErrorIs(t, err, moderation.ErrEmptyDeclineMessage)
		f.repo.AssertNotCalled(t, "SetApproval")
	})

	t.Run("отклонение снимает одобрение и публикует событие", func(t *testing.T) {
		f := newFixture()
		approved := &models.Article{ID: "id-1", Status: moderation.Pending().Approve()}
		f.repo.On("GetArticle", mock.Anything, "id-1").Return(approved, nil)
		f.repo.On("SetApproval", mock.Anything, "id-1", mock.MatchedBy(func(s moderation.Status) bool {
			msg, ok := s.DeclineMessage()
			return s.IsDeclined() && !s.IsApproved() && ok && msg == "plagiarism"
		})).Return(1, nil)
		f.cache.On("Invalidate", mock.Anything, trendingCacheKey).Return(nil)
		f.events.On("Publish", "moderation", mock.AnythingOfType("article.ModerationEvent")).Return(nil)

		require.NoError(t, f.svc.Decline(context.Background(), "id-1", "plagiarism"))
		f.repo.AssertExpectations(t)
	})
}

func TestGetVisibility(t *testing.T) {
	pending := &models.Article{ID: "id-1", Status: moderation.Pending(), CreatedBy: "writer@example.com"}
	approved := &models.Article{ID: "id-2", Status: moderation.Pending().Approve(), CreatedBy: "writer@example.com"}

	tests := []struct {
		name       string
		article    *models.Article
		actorEmail string
		actorRole  entitlement.Role
		wantErr    error
	}{
		{name: "одобренная статья видна всем", article: approved, actorEmail: "stranger@example.com", actorRole: entitlement.RoleUser},
		{name: "неодобренная видна автору", article: pending, actorEmail: "writer@example.com", actorRole: entitlement.RoleUser},
		{name: "неодобренная видна администратору", article: pending, actorEmail: "admin@example.com", actorRole: entitlement.RoleAdmin},
		{name: "неодобренная скрыта от остальных", article: pending, actorEmail: "stranger@example.com", actorRole: entitlement.RoleUser, wantErr: entitlement.ErrForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			f.repo.On("GetArticle", mock.Anything, tt.article.ID).Return(tt.article, nil)

			got, err := f.svc.Get(context.Background(), tt.article.ID, tt.actorEmail, tt.actorRole)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.article, got)
			}
		})
	}
}

func TestTrendingUsesCache(t *testing.T) {
	f := newFixture()
	f.cache.On("Get", mock.Anything, trendingCacheKey, mock.Anything).
		Run(func(args mock.Arguments) {
			out := args.Get(2).(*[]*models.Article)
			*out = []*models.Article{{ID: "cached"}}
		}).Return(true, nil)

	got, err := f.svc.Trending(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "cached", got[0].ID)
	f.repo.AssertNotCalled(t, "ListTrendingArticles")
}

func TestDeleteAuthorization(t *testing.T) {
	article := &models.Article{ID: "id-1", Status: moderation.Pending(), CreatedBy: "writer@example.com"}

	t.Run("чужую статью обычный пользователь не удаляет", func(t *testing.T) {
		f := newFixture()
		f.repo.On("GetArticle", mock.Anything, "id-1").Return(article, nil)

		err := f.svc.Delete(context.Background(), "id-1", "stranger@example.com", entitlement.RoleUser)
		assert.ErrorIs(t, err, entitlement.ErrForbidden)
		f.repo.AssertNotCalled(t, "DeleteArticle")
	})

	t.Run("администратор удаляет любую статью", func(t *testing.T) {
		f := newFixture()
		f.repo.On("GetArticle", mock.Anything, "id-1").Return(article, nil)
		f.repo.On("DeleteArticle", mock.Anything, "id-1").Return(1, nil)
		f.cache.On("Invalidate", mock.Anything, trendingCacheKey).Return(nil)

		require.NoError(t, f.svc.Delete(context.Background(), "id-1", "admin@example.com", entitlement.RoleAdmin))
	})
}
