package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/Gunvolt24/rapid_express/internal/domain"
	"github.com/Gunvolt24/rapid_express/internal/ports"
	"github.com/golang-jwt/jwt/v4"
)

var _ ports.TokenManager = (*JWTManager)(nil)

// ErrInvalidToken: подпись, срок или claims токена некорректны.
var ErrInvalidToken = errors.New("invalid token")

// JWTManager: выпуск и проверка HS256 токенов с claim "id".
type JWTManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewJWTManager(secret string, ttl time.Duration) *JWTManager {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &JWTManager{secret: []byte(secret), ttl: ttl, now: time.Now}
}

type claims struct {
	ID int64 `json:"id"`
	jwt.RegisteredClaims
}

func (m *JWTManager) Issue(userID int64) (*domain.AuthToken, error) {
	now := m.now()
	exp := now.Add(m.ttl)

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		ID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	})
	signed, err := t.SignedString(m.secret)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}
	return &domain.AuthToken{Value: signed, ExpiresAt: exp, MaxAge: m.ttl}, nil
}

// Parse: id пользователя из валидного токена.
func (m *JWTManager) Parse(raw string) (int64, error) {
	var c claims
	token, err := jwt.ParseWithClaims(raw, &c, func(t *jwt.Token) (interface{}, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return m.secret, nil
	})
	if err != nil || token == nil || !token.Valid {
		return 0, ErrInvalidToken
	}
	if c.ID < 1 {
		return 0, ErrInvalidToken
	}
	return c.ID, nil
}
