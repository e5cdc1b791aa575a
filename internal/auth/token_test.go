package auth_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maynagashev/mediakeeper/internal/auth"
)

// makeToken создает подписанный HS256 токен для тестов.
// Клиент подпись не проверяет, поэтому ключ значения не имеет.
func makeToken(t *testing.T, subject string, expiresAt time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": subject,
		"exp": expiresAt.Unix(),
	})
	signed, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return signed
}

func TestDecodeToken(t *testing.T) {
	now := time.Now()

	t.Run("Валидный токен", func(t *testing.T) {
		token := makeToken(t, "alice", now.Add(time.Hour))

		claims, err := auth.DecodeToken(token)
		require.NoError(t, err)
		assert.Equal(t, "alice", claims.Subject)
		assert.WithinDuration(t, now.Add(time.Hour), claims.ExpiresAt, time.Second)
	})

	t.Run("Мусор вместо токена", func(t *testing.T) {
		_, err := auth.DecodeToken("not-a-jwt")
		require.Error(t, err)
	})

	t.Run("Токен без subject", func(t *testing.T) {
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"exp": now.Add(time.Hour).Unix(),
		})
		signed, err := token.SignedString([]byte("test-secret"))
		require.NoError(t, err)

		_, decodeErr := auth.DecodeToken(signed)
		require.Error(t, decodeErr)
	})
}

func TestValidateToken(t *testing.T) {
	now := time.Now()

	t.Run("Непросроченный токен проходит", func(t *testing.T) {
		token := makeToken(t, "alice", now.Add(time.Hour))

		claims, err := auth.ValidateToken(token, now)
		require.NoError(t, err)
		assert.Equal(t, "alice", claims.Subject)
	})

	t.Run("Просроченный токен отклоняется", func(t *testing.T) {
		token := makeToken(t, "alice", now.Add(-time.Minute))

		_, err := auth.ValidateToken(token, now)
		require.ErrorIs(t, err, auth.ErrTokenExpired)
	})
}
