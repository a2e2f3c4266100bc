// Package makepremium реализует HTTP-обработчик пометки статьи премиальной.
// Маршрут доступен только администраторам.
package makepremium

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

// Handler обрабатывает запросы на пометку статьи премиальной.
type Handler struct {
	log     *slog.Logger // Логгер для записи информации и ошибок
	service Service      // Сервис бизнес-логики статей
}

// Service описывает интерфейс пометки статьи премиальной.
type Service interface {
	MakePremium(ctx context.Context, id string) error
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Сделать статью премиальной
// @Description Помечает статью премиальной. Только для администраторов.
// @Tags Moderation
// @Produce  json
// @Param id path string true "ID статьи"
// @Success 200 {object} response.Response "Статья помечена премиальной"
// @Failure 404 {object} response.ErrorResponse "Статья не найдена"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /make-premium/{id} [patch]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.article.makepremium"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id := chi.URLParam(r, "id")

	err := h.service.MakePremium(r.Context(), id)
	if errors.Is(err, storage.ErrNotFound) {
		log.Error("article not found", slog.String("id", id))
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Error("article not found"))
		return
	}
	if err != nil {
		log.Error("failed to make article premium", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not make article premium"))
		return
	}

	log.Info("article marked premium", slog.String("id", id))
	render.JSON(w, r, response.OK())
}
