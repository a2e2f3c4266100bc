// Package update реализует HTTP-обработчик правки содержимого статьи.
// Правка разрешена автору статьи или администратору; поля модерации и счётчик
// просмотров через этот маршрут не меняются.
package update

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/headliner-backend/internal/entitlement"
	"github.com/magabrotheeeer/headliner-backend/internal/http/middlewarectx"
	"github.com/magabrotheeeer/headliner-backend/internal/http/response"
	"github.com/magabrotheeeer/headliner-backend/internal/lib/sl"
	"github.com/magabrotheeeer/headliner-backend/internal/models"
	"github.com/magabrotheeeer/headliner-backend/internal/storage"
)

// Handler обрабатывает запросы на правку статьи.
type Handler struct {
	log      *slog.Logger        // Логгер для записи информации и ошибок
	service  Service             // Сервис бизнес-логики статей
	validate *validator.Validate // Валидатор структуры входящих данных
}

// Service описывает интерфейс правки содержимого статьи.
type Service interface {
	UpdateContent(ctx context.Context, id, actorEmail string, actorRole entitlement.Role, content models.DummyArticleContent) error
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Править статью
// @Description Обновляет редактируемые поля статьи. Разрешено автору или администратору.
// @Tags Articles
// @Accept  json
// @Produce  json
// @Param id path string true "ID статьи"
// @Param request body models.DummyArticleContent true "Новое содержимое"
// @Success 200 {object} response.Response "Статья обновлена"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 403 {object} response.ErrorResponse "Нет прав на правку"
// @Failure 404 {object} response.ErrorResponse "Статья не найдена"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /update-article/{id} [put]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.article.update"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id := chi.URLParam(r, "id")

	var req models.DummyArticleContent
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}
	log.Info("all fields are validated")

	actorEmail, _ := r.Context().Value(middlewarectx.Email).(string)
	actorRole, _ := r.Context().Value(middlewarectx.Role).(entitlement.Role)

	err := h.service.UpdateContent(r.Context(), id, actorEmail, actorRole, req)
	if errors.Is(err, storage.ErrNotFound) {
		log.Error("article not found", slog.String("id", id))
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Error("article not found"))
		return
	}
	if errors.Is(err, entitlement.ErrForbidden) {
		log.Error("update denied", slog.String("id", id), slog.String("actor", actorEmail))
		w.WriteHeader(http.StatusForbidden)
		render.JSON(w, r, response.Error("access denied"))
		return
	}
	if err != nil {
		log.Error("failed to update article", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not update article"))
		return
	}

	log.Info("article updated", slog.String("id", id))
	render.JSON(w, r, response.OK())
}
