package ports

import (
	"context"

	"github.com/rooman-dev/agl-new/internal/core/domain"
)

// AccountRepository defines persistence for the administrative account.
type AccountRepository interface {
	// EnsureAccount inserts the account unless the username already exists.
	// It reports whether a row was created.
	EnsureAccount(ctx context.Context, username, passwordHash string) (bool, error)
	FindByUsername(ctx context.Context, username string) (*domain.Account, error)
	FindByID(ctx context.Context, id int64) (*domain.Account, error)
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
}
