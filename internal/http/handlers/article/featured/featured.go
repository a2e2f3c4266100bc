// Package featured реализует HTTP-обработчик случайной подборки недавних
// одобренных статей для витрины.
package featured

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/headliner-backend/internal/http/response"
	"github.com/magabrotheeeer/headliner-backend/internal/lib/sl"
	"github.com/magabrotheeeer/headliner-backend/internal/models"
)

// Handler обрабатывает запросы подборки для витрины.
type Handler struct {
	log     *slog.Logger // Логгер для записи информации и ошибок
	service Service      // Сервис бизнес-логики статей
}

// Service описывает интерфейс случайной подборки статей.
type Service interface {
	Featured(ctx context.Context) ([]*models.Article, error)
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Подборка для витрины
// @Description Возвращает случайную выборку недавних одобренных статей.
// @Tags Articles
// @Produce  json
// @Success 200 {object} map[string]any "Список статей"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /articles/featured [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.article.featured"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	articles, err := h.service.Featured(r.Context())
	if err != nil {
		log.Error("failed to list featured articles", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list featured articles"))
		return
	}

	log.Info("listed featured articles", slog.Int("count", len(articles)))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"articles": articles,
	}))
}
