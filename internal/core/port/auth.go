package port

import (
	"context"

	"ziluri/internal/core/domain"
)

// AuthService issues and verifies the single-user session. Only guest
// sessions are issueable; third-party login types are persisted but their
// handshakes live outside this service.
type AuthService interface {
	StartGuestSession(ctx context.Context) (domain.User, string, error)
	VerifyToken(token string) (string, error)
}
