// Package status реализует HTTP-обработчик получения статуса подписки:
// эффективной роли, признака действующего окна и момента его окончания.
package status

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/headliner-backend/internal/http/response"
	"github.com/magabrotheeeer/headliner-backend/internal/lib/sl"
	"github.com/magabrotheeeer/headliner-backend/internal/services/user"
	"github.com/magabrotheeeer/headliner-backend/internal/storage"
)

// Handler обрабатывает запросы на получение статуса подписки пользователя.
type Handler struct {
	log     *slog.Logger // Логгер для записи информации и ошибок
	service Service      // Сервис бизнес-логики пользователей
}

// Service описывает интерфейс получения статуса подписки.
type Service interface {
	GetStatus(ctx context.Context, email string) (*user.Status, error)
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Статус подписки пользователя
// @Description Возвращает эффективную роль и окно подписки пользователя.
// @Tags Users
// @Produce  json
// @Param email path string true "Почта пользователя"
// @Success 200 {object} map[string]any "Статус подписки"
// @Failure 404 {object} response.ErrorResponse "Пользователь не найден"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /user/status/{email} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.user.status"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	email := chi.URLParam(r, "email")

	res, err := h.service.GetStatus(r.Context(), email)
	if errors.Is(err, storage.ErrNotFound) {
		log.Error("user not found", slog.String("email", email))
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Error("user not found"))
		return
	}
	if err != nil {
		log.Error("failed to get subscription status", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not get subscription status"))
		return
	}

	log.Info("resolved subscription status", slog.String("email", email), slog.Bool("valid", res.Valid))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"status": res,
	}))
}
