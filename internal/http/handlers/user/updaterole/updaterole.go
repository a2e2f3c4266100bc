// Package updaterole реализует HTTP-обработчик смены базовой роли
// пользователя. Маршрут доступен только администраторам.
package updaterole

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
	"github.com/magabrotheeeer/headliner-backend/internal/services/user"
	"github.com/magabrotheeeer/headliner-backend/internal/storage"
)

// Request — параметры смены базовой роли.
type Request struct {
	Role string `json:"role" validate:"required,oneof=user admin"`
}

// Handler обрабатывает запросы на смену базовой роли.
type Handler struct {
	log      *slog.Logger        // Логгер для записи информации и ошибок
	service  Service             // Сервис бизнес-логики пользователей
	validate *validator.Validate // Валидатор структуры входящих данных
}

// Service описывает интерфейс смены базовой роли.
type Service interface {
	UpdateRole(ctx context.Context, email, role string) error
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
// @Summary Смена базовой роли
// @Description Устанавливает базовую роль user или admin. Только для администраторов.
// @Tags Users
// @Accept  json
// @Produce  json
// @Param email path string true "Почта пользователя"
// @Param request body Request true "Новая базовая роль"
// @Success 200 {object} map[string]any "Роль обновлена"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 404 {object} response.ErrorResponse "Пользователь не найден"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /users/role/{email} [patch]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.user.updaterole"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	email := chi.URLParam(r, "email")

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

	err := h.service.UpdateRole(r.Context(), email, req.Role)
	if errors.Is(err, storage.ErrNotFound) {
		log.Error("user not found", slog.String("email", email))
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Error("user not found"))
		return
	}
	if errors.Is(err, user.ErrInvalidRole) {
		log.Error("invalid role", slog.String("role", req.Role))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.Error("invalid role"))
		return
	}
	if err != nil {
		log.Error("failed to update role", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not update role"))
		return
	}

	log.Info("role updated", slog.String("email", email), slog.String("role", req.Role))
	render.JSON(w, r, response.OK())
}
