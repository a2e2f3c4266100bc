// Package premium реализует HTTP-обработчик ленты премиум-статей. Маршрут
// доступен только пользователям с действующей подпиской.
package premium

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

// Handler обрабатывает запросы ленты премиум-статей.
type Handler struct {
	log     *slog.Logger // Логгер для записи информации и ошибок
	service Service      // Сервис бизнес-логики статей
}

// Service описывает интерфейс выборки премиум-статей.
type Service interface {
	ListPremium(ctx context.Context) ([]*models.Article, error)
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Лента премиум-статей
// @Description Возвращает одобренные премиум-статьи. Только для действующих подписчиков.
// @Tags Articles
// @Produce  json
// @Success 200 {object} map[string]any "Список статей"
// @Failure 403 {object} response.ErrorResponse "Нет действующей подписки"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /articles/premium [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.article.premium"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	articles, err := h.service.ListPremium(r.Context())
	if err != nil {
		log.Error("failed to list premium articles", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list premium articles"))
		return
	}

	log.Info("listed premium articles", slog.Int("count", len(articles)))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"articles": articles,
	}))
}
