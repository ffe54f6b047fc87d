package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/rooman-dev/agl-new/internal/core/domain"
	"github.com/rooman-dev/agl-new/internal/core/ports"
)

const minPasswordLength = 8

// LoginLimiter abstracts the failed-login counter (Redis).
type LoginLimiter interface {
	Blocked(ctx context.Context, key string) (bool, error)
	RecordFailure(ctx context.Context, key string) error
	Reset(ctx context.Context, key string) error
}

// AuthService implements account bootstrap, login and password change.
type AuthService struct {
	repo    ports.AccountRepository
	tokens  ports.TokenIssuer
	limiter LoginLimiter // optional
	log     zerolog.Logger
}

func NewAuthService(repo ports.AccountRepository, tokens ports.TokenIssuer, limiter LoginLimiter, log zerolog.Logger) *AuthService {
	return &AuthService{repo: repo, tokens: tokens, limiter: limiter, log: log}
}

// Bootstrap makes sure the administrative account exists. An existing
// account is left untouched, including its password.
func (s *AuthService) Bootstrap(ctx context.Context, username, password string) error {
	if username == "" || password == "" {
		return errors.New("bootstrap: username and password are required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("bootstrap: hash password: %w", err)
	}

	created, err := s.repo.EnsureAccount(ctx, username, string(hash))
	if err != nil {
		return fmt.Errorf("bootstrap: %w", err)
	}

	if created {
		s.log.Info().Str("username", username).Msg("bootstrap account created")
	} else {
		s.log.Debug().Str("username", username).Msg("bootstrap account already present")
	}
	return nil
}

func (s *AuthService) Login(ctx context.Context, username, password, clientIP string) (string, *domain.Account, error) {
	if username == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	key := strings.ToLower(username) + "|" + clientIP
	if s.limiter != nil {
		blocked, err := s.limiter.Blocked(ctx, key)
		if err != nil {
			s.log.Warn().Err(err).Str("username", username).Msg("login limiter check failed, allowing attempt")
		} else if blocked {
			return "", nil, domain.ErrTooManyAttempts
		}
	}

	account, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			s.recordFailure(ctx, key)
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("login: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)) != nil {
		s.recordFailure(ctx, key)
		return "", nil, domain.ErrInvalidCredentials
	}

	if s.limiter != nil {
		if err := s.limiter.Reset(ctx, key); err != nil {
			s.log.Warn().Err(err).Str("username", username).Msg("failed to reset login limiter")
		}
	}

	token, err := s.tokens.Issue(account.ID, account.Username)
	if err != nil {
		return "", nil, fmt.Errorf("login: issue token: %w", err)
	}

	s.log.Info().Int64("account_id", account.ID).Str("username", account.Username).Msg("admin logged in")
	return token, account, nil
}

// ChangePassword replaces the password of the authenticated account after
// checking the current one.
func (s *AuthService) ChangePassword(ctx context.Context, who domain.Identity, currentPassword, newPassword string) error {
	if currentPassword == "" {
		return domain.NewValidationError("currentPassword is required")
	}
	if len(newPassword) < minPasswordLength {
		return domain.NewValidationError("newPassword must be at least %d characters", minPasswordLength)
	}

	account, err := s.repo.FindByID(ctx, who.AccountID)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return domain.ErrUnauthorized
		}
		return fmt.Errorf("change password: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(currentPassword)) != nil {
		return domain.NewValidationError("current password is incorrect")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("change password: hash: %w", err)
	}

	if err := s.repo.UpdatePassword(ctx, account.ID, string(hash)); err != nil {
		return fmt.Errorf("change password: %w", err)
	}

	s.log.Info().Int64("account_id", account.ID).Msg("admin password changed")
	return nil
}

func (s *AuthService) recordFailure(ctx context.Context, key string) {
	if s.limiter == nil {
		return
	}
	if err := s.limiter.RecordFailure(ctx, key); err != nil {
		s.log.Warn().Err(err).Msg("failed to record login failure")
	}
}
