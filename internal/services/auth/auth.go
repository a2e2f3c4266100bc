// Package auth содержит бизнес-логику регистрации и входа пользователей.
package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/headliner-backend/internal/lib/jwt"
	"github.com/magabrotheeeer/headliner-backend/internal/lib/password"
	"github.com/magabrotheeeer/headliner-backend/internal/models"
	"github.com/magabrotheeeer/headliner-backend/internal/storage"
)

// ErrInvalidCredentials возвращается при неверной паре почта/пароль.
var ErrInvalidCredentials = errors.New("invalid credentials")

// UserRepository описывает контракт для работы с пользователями в хранилище.
type UserRepository interface {
	// CreateUser сохраняет пользователя; повторное создание по той же почте —
	// no-op с created = false.
	CreateUser(ctx context.Context, user models.User) (string, bool, error)
	// GetUserByEmail возвращает пользователя или storage.ErrNotFound.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
}

// AuthService отвечает за регистрацию и выпуск токенов личности.
type AuthService struct {
	users    UserRepository
	jwtMaker jwt.Maker
}

// New создает новый AuthService.
func New(users UserRepository, jwtMaker jwt.Maker) *AuthService {
	return &AuthService{
		users:    users,
		jwtMaker: jwtMaker,
	}
}

// Register создаёт учётную запись при первом входе. Создание идемпотентно:
// повторная регистрация существующей почты ничего не пишет и считается
// успешной. Базовая роль нового пользователя — user.
func (s *AuthService) Register(ctx context.Context, req models.DummyUser) (created bool, err error) {
	const op = "auth.Register"
	hashed, err := password.GetHash(req.Password)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	user := models.User{
		Email:        req.Email,
		Username:     req.Username,
		PasswordHash: hashed,
		Role:         "user",
	}
	_, created, err = s.users.CreateUser(ctx, user)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return created, nil
}

// Login проверяет пароль пользователя и выпускает JWT с почтой и базовой
// ролью. Эффективная роль в токен не входит.
func (s *AuthService) Login(ctx context.Context, email, rawPassword string) (token, role string, err error) {
	user, err := s.users.GetUserByEmail(ctx, email)
	if errors.Is(err, storage.ErrNotFound) {
		return "", "", ErrInvalidCredentials
	}
	if err != nil {
		return "", "", err
	}
	if err := password.CompareHash(user.PasswordHash, rawPassword); err != nil {
		return "", "", ErrInvalidCredentials
	}
	token, err = s.jwtMaker.GenerateToken(user.Email, user.Role)
	if err != nil {
		return "", "", err
	}
	return token, user.Role, nil
}
