// Package role реализует HTTP-обработчик получения эффективной роли
// пользователя: базовая роль с учётом действующего окна подписки.
package role

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/headliner-backend/internal/entitlement"
	"github.com/magabrotheeeer/headliner-backend/internal/http/response"
	"github.com/magabrotheeeer/headliner-backend/internal/lib/sl"
	"github.com/magabrotheeeer/headliner-backend/internal/storage"
)

// Handler обрабатывает запросы на получение эффективной роли пользователя.
type Handler struct {
	log     *slog.Logger // Логгер для записи информации и ошибок
	service Service      // Сервис бизнес-логики пользователей
}

// Service описывает интерфейс вычисления эффективной роли.
type Service interface {
	EffectiveRole(ctx context.Context, email string) (entitlement.Role, error)
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Эффективная роль пользователя
// @Description Возвращает роль с учётом окна подписки: user, premium или admin.
// @Tags Users
// @Produce  json
// @Param email path string true "Почта пользователя"
// @Success 200 {object} map[string]any "Эффективная роль"
// @Failure 404 {object} response.ErrorResponse "Пользователь не найден"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /user/role/{email} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.user.role"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	email := chi.URLParam(r, "email")

	role, err := h.service.EffectiveRole(r.Context(), email)
	if errors.Is(err, storage.ErrNotFound) {
		log.Error("user not found", slog.String("email", email))
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Error("user not found"))
		return
	}
	if err != nil {
		log.Error("failed to resolve role", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not resolve role"))
		return
	}

	log.Info("resolved effective role", slog.String("email", email), slog.String("role", string(role)))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"role": role,
	}))
}
