package service

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/rooman-dev/agl-new/internal/core/domain"
)

const defaultTokenTTL = 24 * time.Hour

// sessionClaims is the payload of an admin session token. The account ID
// travels in the standard "sub" claim.
type sessionClaims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies HS256 session tokens. Tokens are not
// stored anywhere; validity is signature plus expiry.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenService(secret string, ttl time.Duration) *TokenService {
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	return &TokenService{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Issue signs a token binding accountID and username until now+ttl.
func (s *TokenService) Issue(accountID int64, username string) (string, error) {
	now := s.now()
	claims := sessionClaims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(accountID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(s.secret)
}

// Verify returns the identity bound by token, or a *domain.AuthError whose
// Reason is AuthExpired once the expiry has passed and AuthInvalidSignature
// for anything else that fails.
func (s *TokenService) Verify(token string) (domain.Identity, error) {
	claims := &sessionClaims{}
	_, err := jwt.ParseWithClaims(token, claims,
		func(*jwt.Token) (any, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return domain.Identity{}, &domain.AuthError{Reason: domain.AuthExpired, Err: err}
		}
		return domain.Identity{}, &domain.AuthError{Reason: domain.AuthInvalidSignature, Err: err}
	}

	id, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || claims.Username == "" {
		return domain.Identity{}, &domain.AuthError{
			Reason: domain.AuthInvalidSignature,
			Err:    errors.New("token subject is not an account"),
		}
	}

	return domain.Identity{AccountID: id, Username: claims.Username}, nil
}
