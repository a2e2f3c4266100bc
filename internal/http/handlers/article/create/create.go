// Package create реализует HTTP-обработчик публикации новой статьи.
//
// Handler валидирует данные, сверяет автора с личностью запроса и делегирует
// создание сервису статей. Исчерпанная квота публикаций — штатный отказ:
// он отдаётся с HTTP 200 и прикладным кодом, а не ошибкой транспорта.
package create

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

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

// Handler управляет HTTP-запросами на публикацию статей.
type Handler struct {
	log      *slog.Logger        // Логгер для записи информации и ошибок
	service  Service             // Сервис бизнес-логики статей
	validate *validator.Validate // Валидатор структуры входящих данных
}

// Service описывает интерфейс бизнес-логики публикации статьи.
type Service interface {
	Create(ctx context.Context, actorEmail string, req models.DummyArticle) (string, error)
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
// @Summary Опубликовать статью
// @Description Создает статью в состоянии ожидания модерации. Не-премиум авторы ограничены одной статьёй: отказ отдаётся с кодом 4099 и HTTP 200.
// @Tags Articles
// @Accept  json
// @Produce  json
// @Param request body models.DummyArticle true "Данные новой статьи"
// @Success 200 {object} response.Response "ID статьи либо отказ по квоте"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 403 {object} response.ErrorResponse "Автор не совпадает с личностью запроса"
// @Failure 404 {object} response.ErrorResponse "Автор не найден"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /articles [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.article.create"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.DummyArticle
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}
	log.Info("request body decoded", slog.String("title", req.Title))

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}
	log.Info("all fields are validated")

	actorEmail, ok := r.Context().Value(middlewarectx.Email).(string)
	if !ok || actorEmail == "" {
		log.Error("user identification missing")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("user identification missing"))
		return
	}

	id, err := h.service.Create(r.Context(), actorEmail, req)
	switch {
	case errors.Is(err, entitlement.ErrQuotaExceeded):
		log.Info("article quota exceeded", slog.String("author", req.CreatedBy))
		render.JSON(w, r, response.QuotaExceeded("article limit reached, upgrade to premium to publish more"))
		return
	case errors.Is(err, entitlement.ErrForbidden):
		log.Error("author mismatch",
			slog.String("actor", actorEmail), slog.String("created_by", req.CreatedBy))
		w.WriteHeader(http.StatusForbidden)
		render.JSON(w, r, response.Error("access denied"))
		return
	case errors.Is(err, storage.ErrNotFound):
		log.Error("author not found", slog.String("created_by", req.CreatedBy))
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Error("author not found"))
		return
	case err != nil:
		log.Error("failed to create article", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not create article"))
		return
	}

	log.Info("created article", slog.String("id", id))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"id": id,
	}))
}
