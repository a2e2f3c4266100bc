// Package headliner собирает приложение: хранилище, кеш, брокер событий,
// платёжный клиент, сервисы и HTTP-сервер с маршрутами.
package headliner

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"

	"github.com/magabrotheeeer/headliner-backend/internal/cache"
	"github.com/magabrotheeeer/headliner-backend/internal/config"
	"github.com/magabrotheeeer/headliner-backend/internal/lib/jwt"
	"github.com/magabrotheeeer/headliner-backend/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/headliner-backend/internal/migrations"
	"github.com/magabrotheeeer/headliner-backend/internal/paymentprovider"
	articleservice "github.com/magabrotheeeer/headliner-backend/internal/services/article"
	authservice "github.com/magabrotheeeer/headliner-backend/internal/services/auth"
	commentservice "github.com/magabrotheeeer/headliner-backend/internal/services/comment"
	paymentservice "github.com/magabrotheeeer/headliner-backend/internal/services/payment"
	publisherservice "github.com/magabrotheeeer/headliner-backend/internal/services/publisher"
	userservice "github.com/magabrotheeeer/headliner-backend/internal/services/user"
	"github.com/magabrotheeeer/headliner-backend/internal/storage"

	"github.com/streadway/amqp"
)

// App агрегирует зависимости приложения и управляет их жизненным циклом.
type App struct {
	server   *http.Server
	logger   *slog.Logger
	db       *storage.Storage
	amqpConn *amqp.Connection
}

// New инициализирует все зависимости и возвращает готовое приложение.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := storage.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.Db, cfg.MigrationsPath); err != nil {
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}

	amqpConn, err := rabbitmq.Connect(cfg.RabbitMQ.URL, cfg.RabbitMQ.Retries, cfg.RabbitMQ.RetryDelay)
	if err != nil {
		return nil, err
	}
	amqpChannel, err := rabbitmq.SetupChannel(amqpConn, rabbitmq.GetEventQueues())
	if err != nil {
		return nil, err
	}
	eventPublisher := rabbitmq.NewPublisher(amqpChannel)

	jwtMaker := jwt.NewMaker(cfg.JWTToken.JWTSecretKey, cfg.JWTToken.TokenTTL)
	providerClient := paymentprovider.NewClient(cfg.Stripe.SecretKey)

	authService := authservice.New(db, jwtMaker)
	userService := userservice.New(db, cacheRedis, logger)
	articleService := articleservice.New(db, userService, cacheRedis, eventPublisher, logger)
	publisherService := publisherservice.New(db, logger)
	commentService := commentservice.New(db, db, logger)
	paymentService := paymentservice.New(db, providerClient, userService,
		eventPublisher, cfg.Stripe.Currency, logger)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, &Services{
		Auth:      authService,
		User:      userService,
		Article:   articleService,
		Publisher: publisherService,
		Comment:   commentService,
		Payment:   paymentService,
		JWTMaker:  jwtMaker,
	})

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server:   srv,
		logger:   logger,
		db:       db,
		amqpConn: amqpConn,
	}, nil
}

// Run запускает HTTP-сервер и останавливает его по отмене контекста.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		_ = a.amqpConn.Close()
		_ = a.db.Db.Close()
		return err
	}
}
