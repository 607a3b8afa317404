package service

import (
	"context"

	"golang.org/x/crypto/bcrypt"

	"github.com/clockwerk/clockwerk-backend/internal/timesheet/auth"
	"github.com/clockwerk/clockwerk-backend/internal/timesheet/domain"
	"github.com/clockwerk/clockwerk-backend/pkg/errors"
	"github.com/clockwerk/clockwerk-backend/pkg/logger"
)

// AccountStore resolves accounts for login.
type AccountStore interface {
	GetByName(ctx context.Context, name string) (*domain.User, error)
}

// AuthService handles authentication business logic
type AuthService struct {
	users  AccountStore
	tokens *auth.TokenManager
	logger *logger.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(users AccountStore, tokens *auth.TokenManager, log *logger.Logger) *AuthService {
	return &AuthService{
		users:  users,
		tokens: tokens,
		logger: log,
	}
}

// LoginRequest represents a login request
type LoginRequest struct {
	Name     string `json:"name" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse carries the issued token and the account it belongs to
type LoginResponse struct {
	Token *auth.Token  `json:"token"`
	User  *domain.User `json:"user"`
}

// Login verifies credentials and issues an access token.
func (s *AuthService) Login(ctx context.Context, req *LoginRequest) (*LoginResponse, error) {
	user, err := s.users.GetByName(ctx, req.Name)
	if err != nil {
		// same response for unknown name and wrong password
		return nil, errors.InvalidCredentials()
	}
	if user.Inactive {
		return nil, errors.Unauthorized("account is inactive")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, errors.InvalidCredentials()
	}

	token, err := s.tokens.Generate(user)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", user.ID).Msg("failed to generate token")
		return nil, errors.Internal("failed to generate token")
	}

	s.logger.Info().Str("user_id", user.ID).Msg("user logged in")
	return &LoginResponse{Token: token, User: user}, nil
}
