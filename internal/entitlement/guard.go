package entitlement

import "errors"

// Permission перечисляет классы полномочий, которыми пользуются маршруты.
type Permission int

const (
	// PermAnyAuthenticated — достаточно подтверждённой личности.
	PermAnyAuthenticated Permission = iota
	// PermAdminOnly — требуется эффективная роль admin.
	PermAdminOnly
	// PermPremiumOnly — требуется эффективная роль premium (окно проверено).
	PermPremiumOnly
)

// ErrForbidden возвращается, когда личность подтверждена, но полномочий
// недостаточно. Отказ терминален: повторов guard не выполняет.
var ErrForbidden = errors.New("forbidden")

// Authorize проверяет, достаточно ли эффективной роли для требуемого
// полномочия. Ошибки аутентификации сюда не относятся: неподтверждённая
// личность отклоняется раньше, на слое middleware.
func Authorize(role Role, perm Permission) error {
	switch perm {
	case PermAnyAuthenticated:
		return nil
	case PermAdminOnly:
		if role != RoleAdmin {
			return ErrForbidden
		}
	case PermPremiumOnly:
		if role != RolePremium {
			return ErrForbidden
		}
	}
	return nil
}

// AuthorizeSelf проверяет совпадение личности: действие над subjectEmail
// разрешено только самому subjectEmail.
func AuthorizeSelf(actorEmail, subjectEmail string) error {
	if actorEmail != subjectEmail {
		return ErrForbidden
	}
	return nil
}

// AuthorizeOwnerOrAdmin разрешает действие владельцу ресурса или
// администратору. Используется для правки и удаления собственных статей.
func AuthorizeOwnerOrAdmin(role Role, actorEmail, ownerEmail string) error {
	if actorEmail == ownerEmail {
		return nil
	}
	return Authorize(role, PermAdminOnly)
}
