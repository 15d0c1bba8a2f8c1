// Package token реализует разбор JWT токена на стороне клиента.
//
// Клиент не знает секретный ключ бэкенда, поэтому подпись не проверяется:
// из токена извлекаются только claims (email, роль, срок действия), чтобы
// не восстанавливать заведомо истёкшую сессию. Настоящая проверка токена
// выполняется бэкендом на каждом запросе.
package token

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims описывает данные, хранящиеся в access-токене бэкенда.
type Claims struct {
	Email                string `json:"email"`
	Role                 string `json:"role"`
	jwt.RegisteredClaims        // Встроенные стандартные claims JWT (ExpiresAt, IssuedAt и пр.)
}

// Inspect разбирает токен без проверки подписи и возвращает его claims.
func Inspect(tokenStr string) (*Claims, error) {
	const op = "token.Inspect"

	claims := &Claims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(tokenStr, claims); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return claims, nil
}

// Expired сообщает, истёк ли срок действия токена на момент now.
// Токен без поля exp считается действующим.
func Expired(tokenStr string, now time.Time) bool {
	claims, err := Inspect(tokenStr)
	if err != nil {
		return false
	}
	if claims.ExpiresAt == nil {
		return false
	}
	return claims.ExpiresAt.Before(now)
}
