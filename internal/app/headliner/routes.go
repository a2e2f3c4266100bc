// Package headliner предоставляет маршруты основного приложения.
package headliner

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpSwagger "github.com/swaggo/http-swagger"

	articleapprove "github.com/magabrotheeeer/headliner-backend/internal/http/handlers/article/approve"
	articlecreate "github.com/magabrotheeeer/headliner-backend/internal/http/handlers/article/create"
	articledecline "github.com/magabrotheeeer/headliner-backend/internal/http/handlers/article/decline"
	articledetails "github.com/magabrotheeeer/headliner-backend/internal/http/handlers/article/details"
	articlefeatured "github.com/magabrotheeeer/headliner-backend/internal/http/handlers/article/featured"
	articlelistall "github.com/magabrotheeeer/headliner-backend/internal/http/handlers/article/listall"
	articlemakepremium "github.com/magabrotheeeer/headliner-backend/internal/http/handlers/article/makepremium"
	articlemy "github.com/magabrotheeeer/headliner-backend/internal/http/handlers/article/myarticles"
	articlepremium "github.com/magabrotheeeer/headliner-backend/internal/http/handlers/article/premium"
	articleremove "github.com/magabrotheeeer/headliner-backend/internal/http/handlers/article/remove"
	articletrending "github.com/magabrotheeeer/headliner-backend/internal/http/handlers/article/trending"
	articleupdate "github.com/magabrotheeeer/headliner-backend/internal/http/handlers/article/update"
	articleview "github.com/magabrotheeeer/headliner-backend/internal/http/handlers/article/view"
	articlewithauthors "github.com/magabrotheeeer/headliner-backend/internal/http/handlers/article/withauthors"
	"github.com/magabrotheeeer/headliner-backend/internal/http/handlers/auth/login"
	"github.com/magabrotheeeer/headliner-backend/internal/http/handlers/auth/register"
	commentcreate "github.com/magabrotheeeer/headliner-backend/internal/http/handlers/comment/create"
	commentlist "github.com/magabrotheeeer/headliner-backend/internal/http/handlers/comment/list"
	"github.com/magabrotheeeer/headliner-backend/internal/http/handlers/health"
	paymentcreateintent "github.com/magabrotheeeer/headliner-backend/internal/http/handlers/payment/createintent"
	paymentlist "github.com/magabrotheeeer/headliner-backend/internal/http/handlers/payment/list"
	paymentwebhook "github.com/magabrotheeeer/headliner-backend/internal/http/handlers/payment/webhook"
	publishercreate "github.com/magabrotheeeer/headliner-backend/internal/http/handlers/publisher/create"
	publisherlist "github.com/magabrotheeeer/headliner-backend/internal/http/handlers/publisher/list"
	publisherremove "github.com/magabrotheeeer/headliner-backend/internal/http/handlers/publisher/remove"
	publisherupdate "github.com/magabrotheeeer/headliner-backend/internal/http/handlers/publisher/update"
	useractivate "github.com/magabrotheeeer/headliner-backend/internal/http/handlers/user/activatesubscription"
	userlist "github.com/magabrotheeeer/headliner-backend/internal/http/handlers/user/list"
	userread "github.com/magabrotheeeer/headliner-backend/internal/http/handlers/user/read"
	userrole "github.com/magabrotheeeer/headliner-backend/internal/http/handlers/user/role"
	userstatus "github.com/magabrotheeeer/headliner-backend/internal/http/handlers/user/status"
	userupdaterole "github.com/magabrotheeeer/headliner-backend/internal/http/handlers/user/updaterole"
	"github.com/magabrotheeeer/headliner-backend/internal/entitlement"
	"github.com/magabrotheeeer/headliner-backend/internal/http/middlewarectx"
	"github.com/magabrotheeeer/headliner-backend/internal/lib/jwt"
	articleservice "github.com/magabrotheeeer/headliner-backend/internal/services/article"
	authservice "github.com/magabrotheeeer/headliner-backend/internal/services/auth"
	commentservice "github.com/magabrotheeeer/headliner-backend/internal/services/comment"
	paymentservice "github.com/magabrotheeeer/headliner-backend/internal/services/payment"
	publisherservice "github.com/magabrotheeeer/headliner-backend/internal/services/publisher"
	userservice "github.com/magabrotheeeer/headliner-backend/internal/services/user"
)

// Services собирает сервисы, нужные маршрутам приложения.
type Services struct {
	Auth      *authservice.AuthService
	User      *userservice.Service
	Article   *articleservice.Service
	Publisher *publisherservice.Service
	Comment   *commentservice.Service
	Payment   *paymentservice.Service
	JWTMaker  jwt.Maker
}

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, s *Services) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	r.Route("/api/v1", func(r chi.Router) {
		// Открытые конечные точки
		r.Post("/register", register.New(logger, s.Auth).ServeHTTP)
		r.Post("/login", login.New(logger, s.Auth).ServeHTTP)
		r.Get("/articles/all", articlelistall.New(logger, s.Article).ServeHTTP)
		r.Get("/articles/trending", articletrending.New(logger, s.Article).ServeHTTP)
		r.Get("/articles/featured", articlefeatured.New(logger, s.Article).ServeHTTP)
		r.Patch("/article/update-view/{id}", articleview.New(logger, s.Article).ServeHTTP)
		r.Get("/publishers", publisherlist.New(logger, s.Publisher).ServeHTTP)
		r.Get("/comments/{id}", commentlist.New(logger, s.Comment).ServeHTTP)

		// Карточка статьи публична для одобренных статей; неодобренные видны
		// только автору или администратору, поэтому токен разбирается при наличии
		r.With(middlewarectx.OptionalAuth(s.JWTMaker, s.User, logger)).
			Get("/article-details/{id}", articledetails.New(logger, s.Article).ServeHTTP)

		// Webhook провайдера (без аутентификации)
		r.Post("/payments/webhook", paymentwebhook.New(logger, s.Payment).ServeHTTP)

		// Группа с JWT аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(s.JWTMaker, logger))
			r.Use(middlewarectx.RateLimitMiddleware(logger))

			r.Post("/articles", articlecreate.New(logger, s.Article).ServeHTTP)
			r.Get("/article/my-articles", articlemy.New(logger, s.Article).ServeHTTP)
			r.Get("/user/role/{email}", userrole.New(logger, s.User).ServeHTTP)
			r.Get("/user/status/{email}", userstatus.New(logger, s.User).ServeHTTP)
			r.Patch("/user/active-subscription/{email}", useractivate.New(logger, s.User).ServeHTTP)
			r.Post("/comments", commentcreate.New(logger, s.Comment).ServeHTTP)
			r.Post("/create-payment-intent", paymentcreateintent.New(logger, s.Payment).ServeHTTP)
			r.Get("/payments", paymentlist.New(logger, s.Payment).ServeHTTP)

			// Маршруты, которым нужна эффективная роль в контексте
			r.Group(func(r chi.Router) {
				r.Use(middlewarectx.RequireRole(logger, s.User, entitlement.PermAnyAuthenticated))
				r.Get("/user/{email}", userread.New(logger, s.User).ServeHTTP)
				r.Put("/update-article/{id}", articleupdate.New(logger, s.Article).ServeHTTP)
				r.Delete("/article/{id}", articleremove.New(logger, s.Article).ServeHTTP)
			})

			// Только для действующих подписчиков
			r.Group(func(r chi.Router) {
				r.Use(middlewarectx.RequirePremium(logger, s.User))
				r.Get("/articles/premium", articlepremium.New(logger, s.Article).ServeHTTP)
			})

			// Только для администраторов
			r.Group(func(r chi.Router) {
				r.Use(middlewarectx.RequireAdmin(logger, s.User))
				r.Get("/users", userlist.New(logger, s.User).ServeHTTP)
				r.Patch("/users/role/{email}", userupdaterole.New(logger, s.User).ServeHTTP)
				r.Get("/articles-with-users", articlewithauthors.New(logger, s.Article).ServeHTTP)
				r.Patch("/article/allow-approval/{id}", articleapprove.New(logger, s.Article).ServeHTTP)
				r.Patch("/article/decline/{id}", articledecline.New(logger, s.Article).ServeHTTP)
				r.Patch("/make-premium/{id}", articlemakepremium.New(logger, s.Article).ServeHTTP)
				r.Post("/publishers", publishercreate.New(logger, s.Publisher).ServeHTTP)
				r.Put("/publishers/{id}", publisherupdate.New(logger, s.Publisher).ServeHTTP)
				r.Delete("/publishers/{id}", publisherremove.New(logger, s.Publisher).ServeHTTP)
			})
		})
	})

	r.Get("/", health.New(logger).ServeHTTP)
	r.Get("/health", health.New(logger).ServeHTTP)
	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
