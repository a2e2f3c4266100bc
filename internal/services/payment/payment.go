// Package payment содержит бизнес-логику оплаты подписки: создание платёжного
// намерения у провайдера и обработку вебхука об успешной оплате.
package payment

import (
	"context"
	"encoding/json"
	"log/slog"
	"strconv"
	"time"

	"github.com/magabrotheeeer/headliner-backend/internal/lib/sl"
	"github.com/magabrotheeeer/headliner-backend/internal/models"
	"github.com/magabrotheeeer/headliner-backend/internal/paymentprovider"
)

// Repository определяет методы для работы с платежами в хранилище.
type Repository interface {
	CreatePayment(ctx context.Context, p models.Payment) (string, error)
	SettlePayment(ctx context.Context, providerID string) (*models.Payment, error)
	ListPaymentsByEmail(ctx context.Context, email string) ([]*models.Payment, error)
}

// Provider создает платёжные намерения у внешнего провайдера.
type Provider interface {
	CreatePaymentIntent(ctx context.Context, req paymentprovider.CreateIntentRequest) (*paymentprovider.PaymentIntent, error)
}

// SubscriptionActivator активирует подписку пользователя после оплаты.
type SubscriptionActivator interface {
	ActivateSubscription(ctx context.Context, email string, activatedAt time.Time, durationSeconds int64) error
}

// Events публикует события биллинга.
type Events interface {
	Publish(routingKey string, message any) error
}

// WebhookEvent — конверт события провайдера в формате Stripe.
type WebhookEvent struct {
	Type string `json:"type"`
	Data struct {
		Object struct {
			ID       string            `json:"id"`
			Metadata map[string]string `json:"metadata"`
		} `json:"object"`
	} `json:"data"`
}

// ReceiptEvent — событие успешной оплаты, публикуемое в брокер.
type ReceiptEvent struct {
	ProviderID      string    `json:"providerId"`
	Email           string    `json:"email"`
	AmountCents     int64     `json:"amountInCents"`
	Currency        string    `json:"currency"`
	DurationSeconds int64     `json:"durationSeconds"`
	SettledAt       time.Time `json:"settledAt"`
}

// Service реализует бизнес-логику оплаты подписки.
type Service struct {
	repo     Repository
	provider Provider
	users    SubscriptionActivator
	events   Events
	currency string
	log      *slog.Logger
	now      func() time.Time
}

// New создает новый Service. currency — код валюты всех намерений.
func New(repo Repository, provider Provider, users SubscriptionActivator,
	events Events, currency string, log *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		provider: provider,
		users:    users,
		events:   events,
		currency: currency,
		log:      log,
		now:      time.Now,
	}
}

// CreateIntent создает платёжное намерение у провайдера и записывает ожидающий
// платёж. Почта и длительность кладутся в метаданные intent, чтобы вебхук мог
// активировать подписку без обращения к клиенту. Возвращает clientSecret для
// подтверждения на стороне клиента и идентификатор intent у провайдера.
func (s *Service) CreateIntent(ctx context.Context, email string, req models.DummyPaymentIntent) (clientSecret, providerID string, err error) {
	intent, err := s.provider.CreatePaymentIntent(ctx, paymentprovider.CreateIntentRequest{
		AmountCents: req.AmountCents,
		Currency:    s.currency,
		Metadata: map[string]string{
			"email":            email,
			"duration_seconds": strconv.FormatInt(req.DurationSeconds, 10),
		},
	})
	if err != nil {
		return "", "", err
	}

	_, err = s.repo.CreatePayment(ctx, models.Payment{
		ProviderID:      intent.ID,
		Email:           email,
		AmountCents:     req.AmountCents,
		Currency:        s.currency,
		Status:          "pending",
		DurationSeconds: req.DurationSeconds,
		CreatedAt:       s.now(),
	})
	if err != nil {
		return "", "", err
	}

	s.log.Info("created payment intent",
		slog.String("provider_id", intent.ID),
		slog.String("email", email),
		slog.Int64("amount_cents", req.AmountCents))
	return intent.ClientSecret, intent.ID, nil
}

// HandleWebhook обрабатывает событие провайдера. Успешная оплата помечает
// платёж завершённым и активирует подписку плательщика; остальные типы событий
// игнорируются.
func (s *Service) HandleWebhook(ctx context.Context, body []byte) error {
	var event WebhookEvent
	if err := json.Unmarshal(body, &event); err != nil {
		return err
	}
	if event.Type != "payment_intent.succeeded" {
		s.log.Debug("skipping webhook event", slog.String("type", event.Type))
		return nil
	}

	payment, err := s.repo.SettlePayment(ctx, event.Data.Object.ID)
	if err != nil {
		return err
	}

	settledAt := s.now()
	if err := s.users.ActivateSubscription(ctx, payment.Email, settledAt, payment.DurationSeconds); err != nil {
		return err
	}

	receipt := ReceiptEvent{
		ProviderID:      payment.ProviderID,
		Email:           payment.Email,
		AmountCents:     payment.AmountCents,
		Currency:        payment.Currency,
		DurationSeconds: payment.DurationSeconds,
		SettledAt:       settledAt,
	}
	if err := s.events.Publish("billing", receipt); err != nil {
		s.log.Warn("failed to publish billing event",
			slog.String("provider_id", payment.ProviderID), sl.Err(err))
	}

	s.log.Info("settled payment and activated subscription",
		slog.String("provider_id", payment.ProviderID),
		slog.String("email", payment.Email),
		slog.Int64("duration_seconds", payment.DurationSeconds))
	return nil
}

// ListByEmail возвращает платежи пользователя от новых к старым.
func (s *Service) ListByEmail(ctx context.Context, email string) ([]*models.Payment, error) {
	return s.repo.ListPaymentsByEmail(ctx, email)
}
