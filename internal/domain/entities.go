package domain

import "time"

const (
	MsgUserNotFound       = "User doesn't exist"
	MsgSelfDeletion       = "Self-account deletion is restricted"
	MsgPasswordMismatch   = "Password Mismatch"
	MsgInvalidCredentials = "Invalid email or password. Please try again."
	MsgTokenMissing       = "Authentication token missing"
	MsgWrongToken         = "Wrong authentication token"
)

// Customer: клиент (владелец заказов).
type Customer struct {
	ID        int64
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Product: товар каталога; Price в минимальных единицах валюты.
type Product struct {
	ID        int64
	Name      string
	Price     int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// User: пользователь API. PasswordHash наружу не отдаётся.
type User struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// UserPatch: частичное обновление пользователя; nil-поля не меняются.
type UserPatch struct {
	Name     *string
	Email    *string
	Password *string
}

// AuthToken: выданный токен и время его жизни.
type AuthToken struct {
	Value     string
	ExpiresAt time.Time
	MaxAge    time.Duration
}

// EmailTakenMessage: сообщение о занятом email.
func EmailTakenMessage(email string) string {
	return "This email " + email + " already exists"
}

// SignupInput: регистрация нового пользователя.
type SignupInput struct {
	Name                 string
	Email                string
	Password             string
	PasswordConfirmation string
}

// NewUser: создание пользователя администратором.
type NewUser struct {
	Name     string
	Email    string
	Password string
}
