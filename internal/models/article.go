package models

import (
	"time"

	"github.com/magabrotheeeer/headliner-backend/internal/moderation"
)

// Article представляет публикуемую статью.
type Article struct {
	ID          string            `json:"id"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Publisher   string            `json:"publisher"`
	Tags        []string          `json:"tags"`
	ImageURL    string            `json:"imageUrl"`
	IsPremium   bool              `json:"isPremium"`
	Status      moderation.Status `json:"approvalStatus"`
	ViewCount   int64             `json:"viewCount"`
	CreatedBy   string            `json:"createdBy"` // email автора
	CreatedAt   time.Time         `json:"createdAt"`
}

// DummyArticle представляет данные новой статьи из запроса.
type DummyArticle struct {
	Title       string   `json:"title" validate:"required"`
	Description string   `json:"description" validate:"required"`
	Publisher   string   `json:"publisher" validate:"required"`
	Tags        []string `json:"tags"`
	ImageURL    string   `json:"imageUrl"`
	IsPremium   bool     `json:"isPremium"`
	CreatedBy   string   `json:"createdBy" validate:"required,email"`
}

// DummyArticleContent представляет редактируемые поля статьи.
// Поля модерации и счётчик просмотров через эту структуру не меняются.
type DummyArticleContent struct {
	Title       string   `json:"title" validate:"required"`
	Description string   `json:"description" validate:"required"`
	Publisher   string   `json:"publisher" validate:"required"`
	Tags        []string `json:"tags"`
	ImageURL    string   `json:"imageUrl"`
}

// ArticleFilter задаёт фильтры выборки одобренных статей.
type ArticleFilter struct {
	Publisher string // точное совпадение издателя
	Tag       string // статья содержит тег
	Search    string // подстрока в заголовке, без учёта регистра
}

// ArticleWithAuthor объединяет статью с публичными данными её автора.
type ArticleWithAuthor struct {
	Article Article    `json:"article"`
	Author  UserPublic `json:"author"`
}
