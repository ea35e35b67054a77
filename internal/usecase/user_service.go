package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/Gunvolt24/rapid_express/internal/domain"
	"github.com/Gunvolt24/rapid_express/internal/ports"
)

var _ ports.UserService = (*UserService)(nil)

// UserService: управление пользователями.
type UserService struct {
	users  ports.UserRepository
	hasher ports.PasswordHasher
	log    ports.Logger
}

func NewUserService(users ports.UserRepository, hasher ports.PasswordHasher, log ports.Logger) *UserService {
	return &UserService{users: users, hasher: hasher, log: log}
}

func (s *UserService) ListUsers(ctx context.Context) ([]domain.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, s.fail(ctx, "Failed to retrieve users", err)
	}
	return users, nil
}

func (s *UserService) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, s.fail(ctx, "Failed to retrieve user", err)
	}
	if user == nil {
		return nil, domain.NotFound(domain.MsgUserNotFound)
	}
	return user, nil
}

func (s *UserService) CreateUser(ctx context.Context, in domain.NewUser) (*domain.User, error) {
	email := strings.TrimSpace(in.Email)
	existing, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, s.fail(ctx, "Failed to create user", err)
	}
	if existing != nil {
		return nil, domain.Conflict(domain.EmailTakenMessage(email))
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, s.fail(ctx, "Failed to create user", err)
	}
	user := &domain.User{Name: strings.TrimSpace(in.Name), Email: email, PasswordHash: hash}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, s.fail(ctx, "Failed to create user", err)
	}
	return user, nil
}

// UpdateUser: nil-поля patch не меняются; пароль перехешируется, новый email проверяется на уникальность.
func (s *UserService) UpdateUser(ctx context.Context, id int64, patch domain.UserPatch) (*domain.User, error) {
	user, err := s.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		user.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.Email != nil {
		email := strings.TrimSpace(*patch.Email)
		if email != user.Email {
			other, err := s.users.GetByEmail(ctx, email)
			if err != nil {
				return nil, s.fail(ctx, "Failed to update user", err)
			}
			if other != nil {
				return nil, domain.Conflict(domain.EmailTakenMessage(email))
			}
			user.Email = email
		}
	}
	if patch.Password != nil {
		hash, err := s.hasher.Hash(*patch.Password)
		if err != nil {
			return nil, s.fail(ctx, "Failed to update user", err)
		}
		user.PasswordHash = hash
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, s.fail(ctx, "Failed to update user", err)
	}
	return user, nil
}

// DeleteUser: удалить себя нельзя (Forbidden).
func (s *UserService) DeleteUser(ctx context.Context, actorID, id int64) error {
	if _, err := s.GetUser(ctx, id); err != nil {
		return err
	}
	if actorID == id {
		return domain.Forbidden(domain.MsgSelfDeletion)
	}
	if err := s.users.Delete(ctx, id); err != nil {
		return s.fail(ctx, "Failed to delete user", err)
	}
	s.log.Infof(ctx, "user deleted id=%d by=%d", id, actorID)
	return nil
}

func (s *UserService) fail(ctx context.Context, msg string, err error) error {
	var de *domain.Error
	if errors.As(err, &de) {
		return err
	}
	s.log.Errorf(ctx, "%s: %v", msg, err)
	return domain.Internal(msg, err)
}
