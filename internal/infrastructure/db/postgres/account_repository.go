package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rooman-dev/agl-new/internal/core/domain"
)

// AccountRepository stores admin accounts in admin_users.
type AccountRepository struct {
	pool *pgxpool.Pool
}

func NewAccountRepository(pool *pgxpool.Pool) *AccountRepository {
	return &AccountRepository{pool: pool}
}

const accountColumns = `id, username, password_hash, created_at, updated_at`

// EnsureAccount inserts the account unless the username already exists.
// It reports whether a row was created.
func (r *AccountRepository) EnsureAccount(ctx context.Context, username, passwordHash string) (bool, error) {
	tag, err := r.pool.Exec(ctx, `
		INSERT INTO admin_users (username, password_hash)
		VALUES ($1, $2)
		ON CONFLICT (username) DO NOTHING`,
		username, passwordHash)
	if err != nil {
		return false, fmt.Errorf("ensure account: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

func (r *AccountRepository) FindByUsername(ctx context.Context, username string) (*domain.Account, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+accountColumns+` FROM admin_users WHERE username = $1`, username)
	return scanAccount(row)
}

func (r *AccountRepository) FindByID(ctx context.Context, id int64) (*domain.Account, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+accountColumns+` FROM admin_users WHERE id = $1`, id)
	return scanAccount(row)
}

func (r *AccountRepository) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE admin_users
		SET password_hash = $1, updated_at = CURRENT_TIMESTAMP
		WHERE id = $2`,
		passwordHash, id)
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrAccountNotFound
	}
	return nil
}

func scanAccount(row pgx.Row) (*domain.Account, error) {
	var a domain.Account
	if err := row.Scan(&a.ID, &a.Username, &a.PasswordHash, &a.CreatedAt, &a.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, fmt.Errorf("scan account: %w", err)
	}
	return &a, nil
}
