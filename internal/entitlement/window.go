// Package entitlement реализует политику доступа: расчёт окна действия
// подписки, вычисление эффективной роли, проверку полномочий и квоту
// публикаций. Все функции чистые: момент времени передаётся явно, состояние
// не читается и не изменяется.
package entitlement

import "time"

// Window описывает окно действия премиум-подписки.
type Window struct {
	Valid     bool       // Открыто ли окно на момент расчёта
	ExpiresAt *time.Time // Момент истечения; nil, если подписки нет
}

// SubscriptionWindow вычисляет окно действия подписки.
//
// Окно открыто, пока now < activatedAt + durationSeconds. Отсутствие любого
// из полей подписки — нормальное состояние, не ошибка: окно просто закрыто.
func SubscriptionWindow(activatedAt *time.Time, durationSeconds *int64, now time.Time) Window {
	if activatedAt == nil || durationSeconds == nil {
		return Window{Valid: false}
	}
	expiresAt := activatedAt.Add(time.Duration(*durationSeconds) * time.Second)
	return Window{
		Valid:     now.Before(expiresAt),
		ExpiresAt: &expiresAt,
	}
}
