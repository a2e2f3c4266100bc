// Package approve реализует HTTP-обработчик одобрения статьи модератором.
// Повторное одобрение идемпотентно. Маршрут доступен только администраторам.
package approve

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/headliner-backend/internal/http/response"
	"github.com/magabrotheeeer/headliner-backend/internal/lib/sl"
	"github.com/magabrotheeeer/headliner-backend/internal/storage"
)

// Handler обрабатывает запросы на одобрение статьи.
type Handler struct {
	log     *slog.Logger // Логгер для записи информации и ошибок
	service Service      // Сервис бизнес-логики статей
}

// Service описывает интерфейс одобрения статьи.
type Service interface {
	Approve(ctx context.Context, id string) error
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Одобрить статью
// @Description Переводит статью в одобренное состояние, снимая прежнее отклонение. Только для администраторов.
// @Tags Moderation
// @Produce  json
// @Param id path string true "ID статьи"
// @Success 200 {object} response.Response "Статья одобрена"
// @Failure 404 {object} response.ErrorResponse "Статья не найдена"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /article/allow-approval/{id} [patch]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.article.approve"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id := chi.URLParam(r, "id")

	err := h.service.Approve(r.Context(), id)
	if errors.Is(err, storage.ErrNotFound) {
		log.Error("article not found", slog.String("id", id))
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Error("article not found"))
		return
	}
	if err != nil {
		log.Error("failed to approve article", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not approve article"))
		return
	}

	log.Info("article approved", slog.String("id", id))
	render.JSON(w, r, response.OK())
}
