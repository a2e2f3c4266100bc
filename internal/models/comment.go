package models

import "time"

// Comment представляет комментарий к статье. Модерации не подлежит.
type Comment struct {
	ID          string    `json:"id"`
	ArticleID   string    `json:"articleId"`
	AuthorEmail string    `json:"authorEmail"`
	Body        string    `json:"body"`
	CommentedAt time.Time `json:"commentedAt"`
}

// DummyComment представляет данные нового комментария из запроса.
type DummyComment struct {
	ArticleID string `json:"articleId" validate:"required,uuid"`
	Body      string `json:"body" validate:"required"`
}
