package token

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/account-server/internal/model"
)

func TestJWT_GenerateAndParse(t *testing.T) {
	manager := NewJWT("test-secret")
	userID := uuid.New()

	tokenString, err := manager.Generate(userID)
	require.NoError(t, err)
	require.NotEmpty(t, tokenString)

	parsedID, err := manager.Parse(tokenString)
	require.NoError(t, err)
	assert.Equal(t, userID, parsedID)
}

func TestJWT_Parse_WrongSecret(t *testing.T) {
	tokenString, err := NewJWT("secret-one").Generate(uuid.New())
	require.NoError(t, err)

	_, err = NewJWT("secret-two").Parse(tokenString)
	assert.ErrorIs(t, err, model.ErrInvalidOrExpiredToken)
}

func TestJWT_Parse_Expired(t *testing.T) {
	now := time.Now()
	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now.Add(-25 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(now.Add(-time.Hour)),
		},
		UserID:    uuid.New(),
		TokenType: "session",
	})
	tokenString, err := expired.SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = NewJWT("test-secret").Parse(tokenString)
	assert.ErrorIs(t, err, model.ErrInvalidOrExpiredToken)
}

func TestJWT_Parse_WrongType(t *testing.T) {
	now := time.Now()
	other := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		},
		UserID:    uuid.New(),
		TokenType: "refresh",
	})
	tokenString, err := other.SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = NewJWT("test-secret").Parse(tokenString)
	assert.ErrorIs(t, err, model.ErrInvalidOrExpiredToken)
}

func TestJWT_Parse_Garbage(t *testing.T) {
	_, err := NewJWT("test-secret").Parse("not-a-token")
	assert.ErrorIs(t, err, model.ErrInvalidOrExpiredToken)
}

func TestNewRecoveryToken(t *testing.T) {
	first, err := NewRecoveryToken()
	require.NoError(t, err)
	assert.Len(t, first, 64)

	second, err := NewRecoveryToken()
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}
