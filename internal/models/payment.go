package models

import "time"

// Payment представляет запись о платёжном намерении, созданном у провайдера.
type Payment struct {
	ID              string    // Внутренний идентификатор записи
	ProviderID      string    // Идентификатор intent у платёжного провайдера
	Email           string    // Почта плательщика
	AmountCents     int64     // Сумма в минорных единицах валюты
	Currency        string    // Код валюты, например usd
	Status          string    // pending или succeeded
	DurationSeconds int64     // Оплачиваемая длительность подписки
	CreatedAt       time.Time // Момент создания записи
}

// DummyPaymentIntent представляет запрос на создание платёжного намерения.
type DummyPaymentIntent struct {
	AmountCents     int64 `json:"amountInCents" validate:"required,min=1"`
	DurationSeconds int64 `json:"durationSeconds" validate:"required,min=1"`
}
