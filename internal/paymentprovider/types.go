package paymentprovider

// CreateIntentRequest параметры создания платёжного намерения.
type CreateIntentRequest struct {
	AmountCents int64             // Сумма в минорных единицах
	Currency    string            // Код валюты, например usd
	Metadata    map[string]string // Произвольные метаданные intent
}

// PaymentIntent ответ Stripe на создание платёжного намерения.
type PaymentIntent struct {
	ID           string            `json:"id"`
	ClientSecret string            `json:"client_secret"`
	Status       string            `json:"status"`
	Amount       int64             `json:"amount"`
	Currency     string            `json:"currency"`
	Metadata     map[string]string `json:"metadata"`
}
