// Package jwt реализует выпуск и проверку JWT токенов личности.
//
// Токен несёт подтверждённую почту и базовую роль пользователя. Эффективная
// роль в токен не попадает: она зависит от окна подписки и вычисляется на
// каждом запросе.
package jwt

import "github.com/golang-jwt/jwt/v5"

// CustomClaims описывает данные личности, хранящиеся в JWT.
type CustomClaims struct {
	Email                string `json:"email"` // Подтверждённая почта
	Role                 string `json:"role"`  // Базовая роль на момент выпуска
	jwt.RegisteredClaims        // Стандартные claims (ExpiresAt, IssuedAt и пр.)
}
