// Package read реализует HTTP-обработчик получения записи пользователя по
// почте. Запись доступна самому пользователю или администратору и отдаётся
// без чувствительных полей.
package read

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/headliner-backend/internal/entitlement"
	"github.com/magabrotheeeer/headliner-backend/internal/http/middlewarectx"
	"github.com/magabrotheeeer/headliner-backend/internal/http/response"
	"github.com/magabrotheeeer/headliner-backend/internal/lib/sl"
	"github.com/magabrotheeeer/headliner-backend/internal/models"
	"github.com/magabrotheeeer/headliner-backend/internal/storage"
)

// Handler обрабатывает запросы на получение пользователя по почте.
type Handler struct {
	log     *slog.Logger // Логгер для записи информации и ошибок
	service Service      // Сервис бизнес-логики пользователей
}

// Service описывает интерфейс чтения записи пользователя.
type Service interface {
	Get(ctx context.Context, email string) (*models.User, error)
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Пользователь по почте
// @Description Возвращает запись пользователя без чувствительных полей. Доступно самому пользователю или администратору.
// @Tags Users
// @Produce  json
// @Param email path string true "Почта пользователя"
// @Success 200 {object} map[string]any "Запись пользователя"
// @Failure 403 {object} response.ErrorResponse "Чужая запись"
// @Failure 404 {object} response.ErrorResponse "Пользователь не найден"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /user/{email} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.user.read"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	email := chi.URLParam(r, "email")

	actorEmail, _ := r.Context().Value(middlewarectx.Email).(string)
	actorRole, _ := r.Context().Value(middlewarectx.Role).(entitlement.Role)
	if err := entitlement.AuthorizeOwnerOrAdmin(actorRole, actorEmail, email); err != nil {
		log.Error("access denied",
			slog.String("actor", actorEmail), slog.String("email", email))
		w.WriteHeader(http.StatusForbidden)
		render.JSON(w, r, response.Error("access denied"))
		return
	}

	u, err := h.service.Get(r.Context(), email)
	if errors.Is(err, storage.ErrNotFound) {
		log.Error("user not found", slog.String("email", email))
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Error("user not found"))
		return
	}
	if err != nil {
		log.Error("failed to read user", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not read user"))
		return
	}

	log.Info("read user", slog.String("email", email))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"user": u.Public(),
	}))
}
