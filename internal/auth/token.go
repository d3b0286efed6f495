// Package auth hashes user passwords and issues/verifies signed bearer tokens.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"passkeeper/internal/common"
)

// Identity - данные пользователя, зашитые в токен.
type Identity struct {
	Subject string
	Email   string
	Name    string
}

// Claims - стандартные утверждения плюс email и имя пользователя.
type Claims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
	Name  string `json:"name"`
}

// TokenIssuer подписывает и проверяет токены HS256.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenIssuer создаёт издателя токенов. Пустой секрет или TTL <= 0 - ошибка.
func NewTokenIssuer(secret []byte, ttl time.Duration) (*TokenIssuer, error) {
	if len(secret) == 0 {
		return nil, errors.New("auth: empty signing secret")
	}
	if ttl <= 0 {
		return nil, errors.New("auth: token ttl must be positive")
	}
	return &TokenIssuer{secret: secret, ttl: ttl, now: time.Now}, nil
}

// Issue возвращает подписанный токен и момент его истечения.
func (t *TokenIssuer) Issue(id Identity) (string, time.Time, error) {
	now := t.now()
	exp := now.Add(t.ttl)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   id.Subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
		Email: id.Email,
		Name:  id.Name,
	})
	s, err := token.SignedString(t.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return s, exp, nil
}

// Verify проверяет подпись и срок действия. Возвращает ErrTokenExpired для
// просроченного токена и ErrTokenInvalid для всего остального.
func (t *TokenIssuer) Verify(tokenString string) (Identity, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(*jwt.Token) (interface{}, error) {
		return t.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(t.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Identity{}, common.ErrTokenExpired
		}
		return Identity{}, common.ErrTokenInvalid
	}
	if !token.Valid || claims.Subject == "" {
		return Identity{}, common.ErrTokenInvalid
	}
	return Identity{Subject: claims.Subject, Email: claims.Email, Name: claims.Name}, nil
}
