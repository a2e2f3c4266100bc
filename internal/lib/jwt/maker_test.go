package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParseToken(t *testing.T) {
	maker := NewMaker("test-secret", time.Hour)

	token, err := maker.GenerateToken("reader@example.com", "user")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := maker.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "reader@example.com", claims.Email)
	assert.Equal(t, "user", claims.Role)
}

func TestParseTokenWrongKey(t *testing.T) {
	maker := NewMaker("test-secret", time.Hour)
	token, err := maker.GenerateToken("reader@example.com", "user")
	require.NoError(t, err)

	other := NewMaker("another-secret", time.Hour)
	_, err = other.ParseToken(token)
	assert.Error(t, err)
}

func TestParseExpiredToken(t *testing.T) {
	maker := NewMaker("test-secret", -time.Minute)
	token, err := maker.GenerateToken("reader@example.com", "user")
	require.NoError(t, err)

	_, err = maker.ParseToken(token)
	assert.Error(t, err)
}

func TestParseGarbageToken(t *testing.T) {
	maker := NewMaker("test-secret", time.Hour)
	_, err := maker.ParseToken("not-a-token")
	assert.Error(t, err)
}
