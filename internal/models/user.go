// Package models содержит доменные модели системы публикации контента:
// пользователей, статьи, издателей, комментарии и записи о платежах.
// Структуры используются в бизнес‑логике и при работе с хранилищем.
package models

import "time"

// User представляет учётную запись пользователя.
//
// Поля PremiumActivatedAt и SubscriptionDurationSeconds задаются только парой:
// либо обе заполнены (подписка когда-либо активировалась), либо обе пусты.
type User struct {
	UUID                        string     // Уникальный идентификатор записи
	Email                       string     // Электронная почта, уникальный ключ
	Username                    string     // Отображаемое имя пользователя
	PasswordHash                string     // Хэш пароля
	Role                        string     // Базовая роль: user или admin
	PremiumActivatedAt          *time.Time // Момент активации премиум-подписки
	SubscriptionDurationSeconds *int64     // Длительность подписки в секундах
	CreatedAt                   time.Time  // Дата создания записи
}

// DummyUser представляет данные регистрации нового пользователя.
type DummyUser struct {
	Email    string `json:"email" validate:"required,email"`
	Username string `json:"username" validate:"required,alphanum"`
	Password string `json:"password" validate:"required,min=8"`
}

// UserPublic представляет пользователя без чувствительных полей,
// в форме, отдаваемой наружу HTTP-обработчиками.
type UserPublic struct {
	Email                       string     `json:"email"`
	Username                    string     `json:"username"`
	Role                        string     `json:"role"`
	PremiumActivatedAt          *time.Time `json:"premiumActivatedAt,omitempty"`
	SubscriptionDurationSeconds *int64     `json:"subscriptionDurationSeconds,omitempty"`
	CreatedAt                   time.Time  `json:"createdAt"`
}

// Public возвращает представление пользователя без хэша пароля.
func (u *User) Public() UserPublic {
	return UserPublic{
		Email:                       u.Email,
		Username:                    u.Username,
		Role:                        u.Role,
		PremiumActivatedAt:          u.PremiumActivatedAt,
		SubscriptionDurationSeconds: u.SubscriptionDurationSeconds,
		CreatedAt:                   u.CreatedAt,
	}
}
