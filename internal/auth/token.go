package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenClaims - данные, которые клиент извлекает из JWT.
// Подпись токена проверяет сервер при каждом запросе, клиенту нужны
// только subject (имя пользователя) и срок действия.
type TokenClaims struct {
	Subject   string
	ExpiresAt time.Time
}

// ErrTokenExpired возвращается DecodeToken для просроченного токена.
var ErrTokenExpired = errors.New("срок действия токена истек")

// DecodeToken разбирает JWT без проверки подписи и извлекает claims.
// Битый токен или токен без exp считаются некорректными.
func DecodeToken(token string) (*TokenClaims, error) {
	parser := jwt.NewParser()
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return nil, fmt.Errorf("ошибка разбора токена: %w", err)
	}

	subject, err := claims.GetSubject()
	if err != nil || subject == "" {
		return nil, errors.New("токен не содержит subject")
	}
	expiresAt, err := claims.GetExpirationTime()
	if err != nil || expiresAt == nil {
		return nil, errors.New("токен не содержит срок действия")
	}

	return &TokenClaims{Subject: subject, ExpiresAt: expiresAt.Time}, nil
}

// ValidateToken декодирует токен и сверяет срок действия с now.
func ValidateToken(token string, now time.Time) (*TokenClaims, error) {
	claims, err := DecodeToken(token)
	if err != nil {
		return nil, err
	}
	if !claims.ExpiresAt.After(now) {
		return nil, ErrTokenExpired
	}
	return claims, nil
}
