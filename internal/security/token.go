package security

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
)

const (
	pushIssuer   = "notifier"
	pushAudience = "notification-trigger"
)

// PushClaims are carried by tokens that authorize event delivery to the
// trigger endpoint.
type PushClaims struct {
	Source string `json:"source,omitempty"`
	jwt.RegisteredClaims
}

type PushTokenManager interface {
	Generate(source string, ttl time.Duration) (string, error)
	Validate(tokenString string) (*PushClaims, error)
}

type pushTokenManager struct {
	secret []byte
}

func NewPushTokenManager(secret string) PushTokenManager {
	return &pushTokenManager{
		secret: []byte(secret),
	}
}

func (m *pushTokenManager) Generate(source string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := PushClaims{
		Source: source,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   source,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    pushIssuer,
			Audience:  jwt.ClaimStrings{pushAudience},
			ID:        uuid.NewString(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

func (m *pushTokenManager) Validate(tokenString string) (*PushClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &PushClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return m.secret, nil
	}, jwt.WithAudience(pushAudience), jwt.WithIssuer(pushIssuer))

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	if claims, ok := token.Claims.(*PushClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, ErrInvalidToken
}
