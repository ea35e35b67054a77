package ports

import (
	"context"

	"github.com/Gunvolt24/rapid_express/internal/domain"
)

// UserRepository: хранилище пользователей. Get* возвращают (nil, nil), если записи нет.
type UserRepository interface {
	List(ctx context.Context) ([]domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) error
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, id int64) error
}

// PasswordHasher: хеширование и сверка паролей.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

// TokenManager: выпуск и проверка токенов сессии.
type TokenManager interface {
	Issue(userID int64) (*domain.AuthToken, error)
	Parse(token string) (int64, error)
}
