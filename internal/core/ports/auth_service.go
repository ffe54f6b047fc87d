package ports

import (
	"context"

	"github.com/rooman-dev/agl-new/internal/core/domain"
)

type AuthService interface {
	// Login checks the credentials and returns a signed session token.
	// clientIP scopes the failed-attempt counter.
	Login(ctx context.Context, username, password, clientIP string) (string, *domain.Account, error)
	ChangePassword(ctx context.Context, who domain.Identity, currentPassword, newPassword string) error
}

// TokenIssuer signs session tokens for an account.
type TokenIssuer interface {
	Issue(accountID int64, username string) (string, error)
}

// TokenVerifier checks a session token and returns the identity it binds.
// Failures are *domain.AuthError.
type TokenVerifier interface {
	Verify(token string) (domain.Identity, error)
}
