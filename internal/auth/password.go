// Package auth: хеширование паролей (bcrypt) и токены сессии (JWT HS256).
package auth

import (
	"errors"

	"github.com/Gunvolt24/rapid_express/internal/ports"
	"golang.org/x/crypto/bcrypt"
)

var _ ports.PasswordHasher = (*BcryptHasher)(nil)

// ErrPasswordMismatch: пароль не совпадает с хешем.
var ErrPasswordMismatch = errors.New("password mismatch")

// BcryptHasher: bcrypt с настраиваемой стоимостью.
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher: cost вне [MinCost, MaxCost] заменяется на 10.
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = 10
	}
	return &BcryptHasher{cost: cost}
}

func (h *BcryptHasher) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func (h *BcryptHasher) Compare(hash, password string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return ErrPasswordMismatch
		}
		return err
	}
	return nil
}
