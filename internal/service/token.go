package service

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenVerifier проверяет access токены внешнего identity provider.
// Сервис токены не выпускает: аутентификация живёт в отдельной системе,
// здесь только проверка подписи по общему секрету.
type TokenVerifier struct {
	secret []byte
}

// NewTokenVerifier создаёт верификатор токенов.
func NewTokenVerifier(secret string) *TokenVerifier {
	return &TokenVerifier{secret: []byte(secret)}
}

// Parse извлекает идентификатор оператора и роль из access токена.
func (v *TokenVerifier) Parse(token string) (uuid.UUID, string, error) {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		return v.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !parsed.Valid {
		return uuid.Nil, "", err
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, "", jwt.ErrTokenInvalidClaims
	}

	sub, ok := claims["sub"].(string)
	if !ok {
		return uuid.Nil, "", jwt.ErrTokenInvalidClaims
	}

	role, _ := claims["role"].(string)

	operatorID, err := uuid.Parse(sub)
	if err != nil {
		return uuid.Nil, "", err
	}

	return operatorID, role, nil
}
