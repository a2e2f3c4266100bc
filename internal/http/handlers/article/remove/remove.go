// Package remove реализует HTTP-обработчик удаления статьи. Удаление
// разрешено автору статьи или администратору.
package remove

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
	"github.com/magabrotheeeer/headliner-backend/internal/storage"
)

// Handler обрабатывает запросы на удаление статьи.
type Handler struct {
	log     *slog.Logger // Логгер для записи информации и ошибок
	service Service      // Сервис бизнес-логики статей
}

// Service описывает интерфейс удаления статьи.
type Service interface {
	Delete(ctx context.Context, id, actorEmail string, actorRole entitlement.Role) error
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Удалить статью
// @Description Удаляет статью. Разрешено автору или администратору.
// @Tags Articles
// @Produce  json
// @Param id path string true "ID статьи"
// @Success 200 {object} response.Response "Статья удалена"
// @Failure 403 {object} response.ErrorResponse "Нет прав на удаление"
// @Failure 404 {object} response.ErrorResponse "Статья не найдена"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /article/{id} [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.article.remove"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id := chi.URLParam(r, "id")
	actorEmail, _ := r.Context().Value(middlewarectx.Email).(string)
	actorRole, _ := r.Context().Value(middlewarectx.Role).(entitlement.Role)

	err := h.service.Delete(r.Context(), id, actorEmail, actorRole)
	if errors.Is(err, storage.ErrNotFound) {
		log.Error("article not found", slog.String("id", id))
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Error("article not found"))
		return
	}
	if errors.Is(err, entitlement.ErrForbidden) {
		log.Error("delete denied", slog.String("id", id), slog.String("actor", actorEmail))
		w.WriteHeader(http.StatusForbidden)
		render.JSON(w, r, response.Error("access denied"))
		return
	}
	if err != nil {
		log.Error("failed to delete article", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not delete article"))
		return
	}

	log.Info("article deleted", slog.String("id", id))
	render.JSON(w, r, response.OK())
}
