// Package remove реализует HTTP-обработчик удаления издателя из справочника.
// Маршрут доступен только администраторам.
package remove

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

// Handler обрабатывает запросы на удаление издателя.
type Handler struct {
	log     *slog.Logger // Логгер для записи информации и ошибок
	service Service      // Сервис бизнес-логики издателей
}

// Service описывает интерфейс удаления издателя.
type Service interface {
	Delete(ctx context.Context, id string) error
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Удалить издателя
// @Description Удаляет издателя из справочника. Только для администраторов.
// @Tags Publishers
// @Produce  json
// @Param id path string true "ID издателя"
// @Success 200 {object} response.Response "Издатель удалён"
// @Failure 404 {object} response.ErrorResponse "Издатель не найден"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /publishers/{id} [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.publisher.remove"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id := chi.URLParam(r, "id")

	err := h.service.Delete(r.Context(), id)
	if errors.Is(err, storage.ErrNotFound) {
		log.Error("publisher not found", slog.String("id", id))
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Error("publisher not found"))
		return
	}
	if err != nil {
		log.Error("failed to delete publisher", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not delete publisher"))
		return
	}

	log.Info("publisher deleted", slog.String("id", id))
	render.JSON(w, r, response.OK())
}
