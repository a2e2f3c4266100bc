// Package details реализует HTTP-обработчик карточки статьи. Неодобренная
// статья видна только своему автору или администратору.
package details

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/headliner-backend/internal/entitlement"
	"github.com/magabrotheeeer/headliner-backend/internal/http/middlewarectx"
	"github.com/magabrotheeeer/headliner-backend/internal/http/response"
	"github.com/magabrotheeeer/headliner-backend/internal/lib/sl"
	"github.com/magabrotheeeer/headliner-backend/internal/models"
	"github.com/magabrotheeeer/headliner-backend/internal/storage"
)

// Handler обрабатывает запросы карточки статьи.
type Handler struct {
	log     *slog.Logger // Логгер для записи информации и ошибок
	service Service      // Сервис бизнес-логики статей
}

// Service описывает интерфейс чтения статьи с учётом видимости.
type Service interface {
	Get(ctx context.Context, id, actorEmail string, actorRole entitlement.Role) (*models.Article, error)
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Карточка статьи
// @Description Возвращает статью по ID. Неодобренная статья видна автору и администраторам.
// @Tags Articles
// @Produce  json
// @Param id path string true "ID статьи"
// @Success 200 {object} map[string]any "Статья"
// @Failure 403 {object} response.ErrorResponse "Статья недоступна"
// @Failure 404 {object} response.ErrorResponse "Статья не найдена"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /article-details/{id} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.article.details"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id := chi.URLParam(r, "id")
	actorEmail, _ := r.Context().Value(middlewarectx.Email).(string)
	actorRole, _ := r.Context().Value(middlewarectx.Role).(entitlement.Role)

	a, err := h.service.Get(r.Context(), id, actorEmail, actorRole)
	if errors.Is(err, storage.ErrNotFound) {
		log.Error("article not found", slog.String("id", id))
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Error("article not found"))
		return
	}
	if errors.Is(err, entitlement.ErrForbidden) {
		log.Error("article access denied", slog.String("id", id), slog.String("actor", actorEmail))
		w.WriteHeader(http.StatusForbidden)
		render.JSON(w, r, response.Error("access denied"))
		return
	}
	if err != nil {
		log.Error("failed to read article", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not read article"))
		return
	}

	log.Info("read article", slog.String("id", id))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"article": a,
	}))
}
