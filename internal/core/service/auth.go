package service

import (
	"context"
	"log/slog"

	"ziluri/internal/core/domain"
	"ziluri/internal/core/port"
	"ziluri/pkg/auth"
)

type AuthService struct {
	users  port.UserService
	tokens *auth.JWT
}

func NewAuthService(users port.UserService, tokens *auth.JWT) *AuthService {
	return &AuthService{
		users:  users,
		tokens: tokens,
	}
}

// StartGuestSession returns the installation's user (creating a guest one
// when absent) together with a signed session token.
func (as *AuthService) StartGuestSession(ctx context.Context) (domain.User, string, error) {
	user, err := as.users.EnsureGuest(ctx)
	if err != nil {
		return domain.User{}, "", err
	}

	token, err := as.tokens.CreateToken(user.ID)
	if err != nil {
		slog.Error("Session token creation failed", "error", err, "user_id", user.ID)
		return domain.User{}, "", err
	}

	return user, token, nil
}

func (as *AuthService) VerifyToken(token string) (string, error) {
	return as.tokens.VerifyToken(token)
}
