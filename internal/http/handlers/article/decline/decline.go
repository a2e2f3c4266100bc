// Package decline реализует HTTP-обработчик отклонения статьи модератором.
// Отклонение требует непустого сообщения с причиной. Маршрут доступен только
// администраторам.
package decline

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

	"github.com/magabrotheeeer/headliner-backend/internal/http/response"
	"github.com/magabrotheeeer/headliner-backend/internal/lib/sl"
	"github.com/magabrotheeeer/headliner-backend/internal/moderation"
	"github.com/magabrotheeeer/headliner-backend/internal/storage"
)

// Request — параметры отклонения статьи.
type Request struct {
	Message string `json:"message" validate:"required"`
}

// Handler обрабатывает запросы на отклонение статьи.
type Handler struct {
	log      *slog.Logger        // Логгер для записи информации и ошибок
	service  Service             // Сервис бизнес-логики статей
	validate *validator.Validate // Валидатор структуры входящих данных
}

// Service описывает интерфейс отклонения статьи.
type Service interface {
	Decline(ctx context.Context, id, message string) error
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
// @Summary Отклонить статью
// @Description Переводит статью в отклонённое состояние с сообщением модератора. Только для администраторов.
// @Tags Moderation
// @Accept  json
// @Produce  json
// @Param id path string true "ID статьи"
// @Param request body Request true "Причина отклонения"
// @Success 200 {object} response.Response "Статья отклонена"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 404 {object} response.ErrorResponse "Статья не найдена"
// @Failure 422 {object} response.ErrorResponse "Пустое сообщение"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /article/decline/{id} [patch]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.article.decline"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id := chi.URLParam(r, "id")

	var req Request
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

	err := h.service.Decline(r.Context(), id, req.Message)
	if errors.Is(err, storage.ErrNotFound) {
		log.Error("article not found", slog.String("id", id))
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Error("article not found"))
		return
	}
	if errors.Is(err, moderation.ErrEmptyDeclineMessage) {
		log.Error("empty decline message", slog.String("id", id))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.Error("decline message is required"))
		return
	}
	if err != nil {
		log.Error("failed to decline article", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not decline article"))
		return
	}

	log.Info("article declined", slog.String("id", id))
	render.JSON(w, r, response.OK())
}
