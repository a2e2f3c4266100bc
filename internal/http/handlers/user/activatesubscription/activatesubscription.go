// Package activatesubscription реализует HTTP-обработчик активации подписки
// пользователем. Активировать подписку можно только себе: почта из URL должна
// совпадать с подтверждённой личностью запроса.
package activatesubscription

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/headliner-backend/internal/entitlement"
	"github.com/magabrotheeeer/headliner-backend/internal/http/middlewarectx"
	"github.com/magabrotheeeer/headliner-backend/internal/http/response"
	"github.com/magabrotheeeer/headliner-backend/internal/lib/sl"
	"github.com/magabrotheeeer/headliner-backend/internal/storage"
)

// Request — параметры активации подписки. ActivatedAt — момент активации в
// формате RFC3339; при отсутствии подписка активируется с текущего момента.
type Request struct {
	ActivatedAt     time.Time `json:"activatedAt"`
	DurationSeconds int64     `json:"durationSeconds" validate:"required,min=1"`
}

// Handler обрабатывает запросы на активацию подписки.
type Handler struct {
	log      *slog.Logger        // Логгер для записи информации и ошибок
	service  Service             // Сервис бизнес-логики пользователей
	validate *validator.Validate // Валидатор структуры входящих данных
}

// Service описывает интерфейс активации подписки.
type Service interface {
	ActivateSubscription(ctx context.Context, email string, activatedAt time.Time, durationSeconds int64) error
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
// @Summary Активация подписки
// @Description Активирует подписку на заданную длительность. Доступно только владельцу учётной записи.
// @Tags Users
// @Accept  json
// @Produce  json
// @Param email path string true "Почта пользователя"
// @Param request body Request true "Момент активации и длительность подписки"
// @Success 200 {object} map[string]any "Подписка активирована"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 403 {object} response.ErrorResponse "Чужая учётная запись"
// @Failure 404 {object} response.ErrorResponse "Пользователь не найден"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /user/active-subscription/{email} [patch]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.user.activatesubscription"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	email := chi.URLParam(r, "email")

	actorEmail, ok := r.Context().Value(middlewarectx.Email).(string)
	if !ok || actorEmail == "" {
		log.Error("user identification missing")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("user identification missing"))
		return
	}
	if err := entitlement.AuthorizeSelf(actorEmail, email); err != nil {
		log.Error("access denied", slog.String("actor", actorEmail), slog.String("subject", email))
		w.WriteHeader(http.StatusForbidden)
		render.JSON(w, r, response.Error("access denied"))
		return
	}

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
	log.Info("all fields are validated")

	err := h.service.ActivateSubscription(r.Context(), email, req.ActivatedAt, req.DurationSeconds)
	if errors.Is(err, storage.ErrNotFound) {
		log.Error("user not found", slog.String("email", email))
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Error("user not found"))
		return
	}
	if err != nil {
		log.Error("failed to activate subscription", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not activate subscription"))
		return
	}

	log.Info("subscription activated",
		slog.String("email", email), slog.Int64("duration_seconds", req.DurationSeconds))
	render.JSON(w, r, response.OK())
}
