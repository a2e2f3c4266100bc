// Package list реализует HTTP-обработчик списка комментариев к статье.
package list

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/headliner-backend/internal/http/response"
	"github.com/magabrotheeeer/headliner-backend/internal/lib/sl"
	"github.com/magabrotheeeer/headliner-backend/internal/models"
)

// Handler обрабатывает запросы списка комментариев.
type Handler struct {
	log     *slog.Logger // Логгер для записи информации и ошибок
	service Service      // Сервис бизнес-логики комментариев
}

// Service описывает интерфейс получения комментариев статьи.
type Service interface {
	ListByArticle(ctx context.Context, articleID string) ([]*models.Comment, error)
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Комментарии к статье
// @Description Возвращает комментарии к статье от старых к новым.
// @Tags Comments
// @Produce  json
// @Param id path string true "ID статьи"
// @Success 200 {object} map[string]any "Список комментариев"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /comments/{id} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.comment.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	articleID := chi.URLParam(r, "id")

	comments, err := h.service.ListByArticle(r.Context(), articleID)
	if err != nil {
		log.Error("failed to list comments", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list comments"))
		return
	}

	log.Info("listed comments", slog.String("article_id", articleID), slog.Int("count", len(comments)))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"comments": comments,
	}))
}
