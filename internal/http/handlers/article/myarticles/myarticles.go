// Package myarticles реализует HTTP-обработчик списка статей текущего автора
// в любом состоянии модерации.
package myarticles

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/headliner-backend/internal/http/middlewarectx"
	"github.com/magabrotheeeer/headliner-backend/internal/http/response"
	"github.com/magabrotheeeer/headliner-backend/internal/lib/sl"
	"github.com/magabrotheeeer/headliner-backend/internal/models"
)

// Handler обрабатывает запросы списка собственных статей.
type Handler struct {
	log     *slog.Logger // Логгер для записи информации и ошибок
	service Service      // Сервис бизнес-логики статей
}

// Service описывает интерфейс выборки статей автора.
type Service interface {
	ListByAuthor(ctx context.Context, email string) ([]*models.Article, error)
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Мои статьи
// @Description Возвращает статьи текущего пользователя в любом состоянии модерации.
// @Tags Articles
// @Produce  json
// @Success 200 {object} map[string]any "Список статей"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /article/my-articles [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.article.myarticles"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	email, ok := r.Context().Value(middlewarectx.Email).(string)
	if !ok || email == "" {
		log.Error("user identification missing")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("user identification missing"))
		return
	}

	articles, err := h.service.ListByAuthor(r.Context(), email)
	if err != nil {
		log.Error("failed to list author articles", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list articles"))
		return
	}

	log.Info("listed author articles", slog.String("email", email), slog.Int("count", len(articles)))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"articles": articles,
	}))
}
