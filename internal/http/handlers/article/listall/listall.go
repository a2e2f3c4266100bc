// Package listall реализует HTTP-обработчик публичной ленты одобренных
// статей с фильтрами по издателю, тегу и подстроке заголовка.
package listall

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

// Handler обрабатывает запросы публичной ленты статей.
type Handler struct {
	log     *slog.Logger // Логгер для записи информации и ошибок
	service Service      // Сервис бизнес-логики статей
}

// Service описывает интерфейс выборки одобренных статей.
type Service interface {
	ListPublic(ctx context.Context, filter models.ArticleFilter) ([]*models.Article, error)
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Лента одобренных статей
// @Description Возвращает одобренные статьи с необязательными фильтрами publisher, tag и search.
// @Tags Articles
// @Produce  json
// @Param publisher query string false "Точное имя издателя"
// @Param tag query string false "Тег статьи"
// @Param search query string false "Подстрока заголовка без учёта регистра"
// @Success 200 {object} map[string]any "Список статей"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /articles/all [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.article.listall"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	filter := models.ArticleFilter{
		Publisher: r.URL.Query().Get("publisher"),
		Tag:       r.URL.Query().Get("tag"),
		Search:    r.URL.Query().Get("search"),
	}

	articles, err := h.service.ListPublic(r.Context(), filter)
	if err != nil {
		log.Error("failed to list articles", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list articles"))
		return
	}

	log.Info("listed articles", slog.Int("count", len(articles)))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"articles": articles,
	}))
}
