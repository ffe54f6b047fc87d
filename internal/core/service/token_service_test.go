package service

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/rooman-dev/agl-new/internal/core/domain"
)

func TestTokenService_IssueVerify(t *testing.T) {
	svc := NewTokenService("secret", time.Hour)

	token, err := svc.Issue(7, "admin")
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	who, err := svc.Verify(token)
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	if who.AccountID != 7 || who.Username != "admin" {
		t.Fatalf("unexpected identity: %+v", who)
	}
}

func TestTokenService_Expired(t *testing.T) {
	svc := NewTokenService("secret", time.Hour)
	issued := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return issued }

	token, err := svc.Issue(1, "admin")
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	svc.now = func() time.Time { return issued.Add(2 * time.Hour) }
	_, err = svc.Verify(token)

	var authErr *domain.AuthError
	if !errors.As(err, &authErr) {
		t.Fatalf("expected *domain.AuthError, got %v", err)
	}
	if authErr.Reason != domain.AuthExpired {
		t.Fatalf("expected reason %q, got %q", domain.AuthExpired, authErr.Reason)
	}
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected error to match ErrUnauthorized")
	}
}

func TestTokenService_WrongSecret(t *testing.T) {
	token, err := NewTokenService("secret", time.Hour).Issue(1, "admin")
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	_, err = NewTokenService("other", time.Hour).Verify(token)

	var authErr *domain.AuthError
	if !errors.As(err, &authErr) || authErr.Reason != domain.AuthInvalidSignature {
		t.Fatalf("expected invalid signature, got %v", err)
	}
}

func TestTokenService_Garbage(t *testing.T) {
	svc := NewTokenService("secret", time.Hour)

	for _, token := range []string{"", "abc", "a.b.c"} {
		_, err := svc.Verify(token)
		var authErr *domain.AuthError
		if !errors.As(err, &authErr) || authErr.Reason != domain.AuthInvalidSignature {
			t.Fatalf("token %q: expected invalid signature, got %v", token, err)
		}
	}
}

func TestTokenService_RejectsOtherAlgorithms(t *testing.T) {
	claims := sessionClaims{
		Username: "admin",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign failed: %v", err)
	}

	if _, err := NewTokenService("secret", time.Hour).Verify(token); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected HS512 token to be rejected, got %v", err)
	}
}

func TestTokenService_RequiresExpiry(t *testing.T) {
	claims := sessionClaims{
		Username:         "admin",
		RegisteredClaims: jwt.RegisteredClaims{Subject: "1"},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign failed: %v", err)
	}

	if _, err := NewTokenService("secret", time.Hour).Verify(token); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected token without exp to be rejected, got %v", err)
	}
}

func TestTokenService_DefaultTTL(t *testing.T) {
	if svc := NewTokenService("secret", 0); svc.ttl != defaultTokenTTL {
		t.Fatalf("expected default ttl, got %v", svc.ttl)
	}
}
