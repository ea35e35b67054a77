package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/Gunvolt24/rapid_express/internal/domain"
	"github.com/Gunvolt24/rapid_express/internal/ports"
)

var _ ports.AuthService = (*AuthService)(nil)

// AuthService: регистрация, вход и проверка токена сессии.
type AuthService struct {
	users  ports.UserRepository
	hasher ports.PasswordHasher
	tokens ports.TokenManager
	log    ports.Logger
}

func NewAuthService(users ports.UserRepository, hasher ports.PasswordHasher, tokens ports.TokenManager, log ports.Logger) *AuthService {
	return &AuthService{users: users, hasher: hasher, tokens: tokens, log: log}
}

// Signup: новый пользователь и токен для него.
func (s *AuthService) Signup(ctx context.Context, in domain.SignupInput) (*domain.User, *domain.AuthToken, error) {
	if in.Password != in.PasswordConfirmation {
		return nil, nil, domain.InvalidInput(domain.MsgPasswordMismatch)
	}
	email := strings.TrimSpace(in.Email)

	existing, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, nil, s.fail(ctx, "Failed to sign up", err)
	}
	if existing != nil {
		return nil, nil, domain.Conflict(domain.EmailTakenMessage(email))
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, nil, s.fail(ctx, "Failed to sign up", err)
	}

	user := &domain.User{Name: strings.TrimSpace(in.Name), Email: email, PasswordHash: hash}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, nil, s.fail(ctx, "Failed to sign up", err)
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, nil, s.fail(ctx, "Failed to sign up", err)
	}
	s.log.Infof(ctx, "user signed up id=%d", user.ID)
	return user, token, nil
}

// Login: неизвестный email и неверный пароль неразличимы для клиента.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, *domain.AuthToken, error) {
	user, err := s.users.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		return nil, nil, s.fail(ctx, "Failed to log in", err)
	}
	if user == nil {
		return nil, nil, domain.Unauthorized(domain.MsgInvalidCredentials)
	}
	if err := s.hasher.Compare(user.PasswordHash, password); err != nil {
		return nil, nil, domain.Unauthorized(domain.MsgInvalidCredentials)
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, nil, s.fail(ctx, "Failed to log in", err)
	}
	return user, token, nil
}

// Authenticate: пользователь по токену; удалённый пользователь считается неверным токеном.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*domain.User, error) {
	if strings.TrimSpace(token) == "" {
		return nil, domain.Unauthorized(domain.MsgTokenMissing)
	}
	userID, err := s.tokens.Parse(token)
	if err != nil {
		return nil, domain.Unauthorized(domain.MsgWrongToken)
	}
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, s.fail(ctx, "Failed to authenticate", err)
	}
	if user == nil {
		return nil, domain.Unauthorized(domain.MsgWrongToken)
	}
	return user, nil
}

func (s *AuthService) fail(ctx context.Context, msg string, err error) error {
	var de *domain.Error
	if errors.As(err, &de) {
		return err
	}
	s.log.Errorf(ctx, "%s: %v", msg, err)
	return domain.Internal(msg, err)
}
