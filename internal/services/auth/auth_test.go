package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/headliner-backend/internal/lib/jwt"
	"github.com/magabrotheeeer/headliner-backend/internal/lib/password"
	"github.com/magabrotheeeer/headliner-backend/internal/models"
	"github.com/magabrotheeeer/headliner-backend/internal/storage"
)

type RepoMock struct{ mock.Mock }

func (m *RepoMock) CreateUser(ctx context.Context, user models.User) (string, bool, error) {
	args := m.Called(ctx, user)
	return args.String(0), args.Bool(1), args.Error(2)
}
func (m *RepoMock) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func newMaker() jwt.Maker {
	return jwt.NewMaker("test-secret", time.Hour)
}

func TestRegister(t *testing.T) {
	t.Run("новая почта создаёт пользователя с ролью user", func(t *testing.T) {
		repo := new(RepoMock)
		repo.On("CreateUser", mock.Anything, mock.MatchedBy(func(u models.User) bool {
			return u.Email == "reader@example.com" && u.Role == "user" &&
				password.CompareHash(u.PasswordHash, "strongpassword") == nil
		})).Return("uid-1", true, nil)

		created, err := New(repo, newMaker()).Register(context.Background(), models.DummyUser{
			Email:    "reader@example.com",
			Username: "reader",
			Password: "strongpassword",
		})
		require.NoError(t, err)
		assert.True(t, created)
	})

	t.Run("повторная регистрация идемпотентна", func(t *testing.T) {
		repo := new(RepoMock)
		repo.On("CreateUser", mock.Anything, mock.Anything).Return("", false, nil)

		created, err := New(repo, newMaker()).Register(context.Background(), models.DummyUser{
			Email:    "reader@example.com",
			Username: "reader",
			Password: "strongpassword",
		})
		require.NoError(t, err)
		assert.False(t, created)
	})
}

func TestLogin(t *testing.T) {
	hash, err := password.GetHash("strongpassword")
	require.NoError(t, err)
	record := &models.User{Email: "reader@example.com", PasswordHash: hash, Role: "user"}

	t.Run("верный пароль выпускает токен с базовой ролью", func(t *testing.T) {
		repo := new(RepoMock)
		repo.On("GetUserByEmail", mock.Anything, "reader@example.com").Return(record, nil)

		maker := newMaker()
		token, role, err := New(repo, maker).Login(context.Background(), "reader@example.com", "strongpassword")
		require.NoError(t, err)
		assert.Equal(t, "user", role)

		claims, err := maker.ParseToken(token)
		require.NoError(t, err)
		assert.Equal(t, "reader@example.com", claims.Email)
		assert.Equal(t, "user", claims.Role)
	})

	t.Run("неверный пароль", func(t *testing.T) {
		repo := new(RepoMock)
		repo.On("GetUserByEmail", mock.Anything, "reader@example.com").Return(record, nil)

		_, _, err := New(repo, newMaker()).Login(context.Background(), "reader@example.com", "wrong")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("неизвестная почта неотличима от неверного пароля", func(t *testing.T) {
		repo := new(RepoMock)
		repo.On("GetUserByEmail", mock.Anything, "ghost@example.com").Return(nil, storage.ErrNotFound)

		_, _, err := New(repo, newMaker()).Login(context.Background(), "ghost@example.com", "strongpassword")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}
