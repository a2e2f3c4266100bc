package entitlement

import "errors"

// FreeArticleQuota — максимум статей не-премиум автора. Учитываются статьи в
// любом состоянии модерации: ожидающие, одобренные и отклонённые.
const FreeArticleQuota = 1

// ErrQuotaExceeded — деловой отказ, а не ошибка доступа: вызывающая сторона
// показывает сообщение об апгрейде, а не общий 403.
var ErrQuotaExceeded = errors.New("article quota exceeded")

// CanSubmit решает, разрешена ли новая публикация при существующем числе
// статей автора. Премиум-автор не ограничен. Сверка идёт по живому счётчику
// на момент отправки; гонка между подсчётом и вставкой принята как допустимая.
func CanSubmit(role Role, existingCount int) error {
	if role == RolePremium {
		return nil
	}
	if existingCount >= FreeArticleQuota {
		return ErrQuotaExceeded
	}
	return nil
}
