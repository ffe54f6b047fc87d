package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/rooman-dev/agl-new/internal/core/domain"
)

type stubAuthService struct {
	loginFn          func(ctx context.Context, username, password, clientIP string) (string, *domain.Account, error)
	changePasswordFn func(ctx context.Context, who domain.Identity, current, next string) error
}

func (s *stubAuthService) Login(ctx context.Context, username, password, clientIP string) (string, *domain.Account, error) {
	return s.loginFn(ctx, username, password, clientIP)
}

func (s *stubAuthService) ChangePassword(ctx context.Context, who domain.Identity, current, next string) error {
	return s.changePasswordFn(ctx, who, current, next)
}

func TestAuthHandler_Login_Success(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		loginFn: func(_ context.Context, username, password, _ string) (string, *domain.Account, error) {
			if username != "admin" || password != "initial-pass" {
				t.Fatalf("unexpected args: %s %s", username, password)
			}
			return "signed-token", &domain.Account{ID: 1, Username: "admin"}, nil
		},
	}
	c, rec := jsonContext(e, http.MethodPost, "/api/auth/login", `{"username":"admin","password":"initial-pass"}`)

	if err := NewAuthHandler(stub).Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp loginResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Token != "signed-token" || resp.User.ID != 1 || resp.User.Username != "admin" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		loginFn: func(context.Context, string, string, string) (string, *domain.Account, error) {
			return "", nil, domain.ErrInvalidCredentials
		},
	}
	c, _ := jsonContext(e, http.MethodPost, "/api/auth/login", `{"username":"admin","password":"nope"}`)

	if err := NewAuthHandler(stub).Login(c); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthHandler_Login_MissingFields(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		loginFn: func(context.Context, string, string, string) (string, *domain.Account, error) {
			t.Fatalf("should not be called")
			return "", nil, nil
		},
	}
	c, _ := jsonContext(e, http.MethodPost, "/api/auth/login", `{"username":"admin"}`)

	if err := NewAuthHandler(stub).Login(c); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestAuthHandler_Login_InvalidPayload(t *testing.T) {
	e := newTestEcho()
	c, _ := jsonContext(e, http.MethodPost, "/api/auth/login", "not-json")

	expectHTTPError(t, NewAuthHandler(&stubAuthService{}).Login(c), http.StatusBadRequest)
}

func TestAuthHandler_Verify(t *testing.T) {
	e := newTestEcho()
	c, rec := jsonContext(e, http.MethodGet, "/api/auth/verify", "")
	withIdentity(c, 7, "admin")

	if err := NewAuthHandler(&stubAuthService{}).Verify(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp verifyResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if !resp.Valid || resp.User.UserID != 7 || resp.User.Username != "admin" {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if !strings.Contains(rec.Body.String(), `"user":{"userId":7,"username":"admin"}`) {
		t.Fatalf("unexpected user shape: %s", rec.Body.String())
	}
}

func TestAuthHandler_Verify_NoIdentity(t *testing.T) {
	e := newTestEcho()
	c, _ := jsonContext(e, http.MethodGet, "/api/auth/verify", "")

	expectHTTPError(t, NewAuthHandler(&stubAuthService{}).Verify(c), http.StatusUnauthorized)
}

func TestAuthHandler_ChangePassword(t *testing.T) {
	e := newTestEcho()
	var got domain.Identity
	stub := &stubAuthService{
		changePasswordFn: func(_ context.Context, who domain.Identity, current, next string) error {
			got = who
			if current != "old-pass" || next != "new-password" {
				t.Fatalf("unexpected args: %s %s", current, next)
			}
			return nil
		},
	}
	c, rec := jsonContext(e, http.MethodPost, "/api/auth/change-password", `{"currentPassword":"old-pass","newPassword":"new-password"}`)
	withIdentity(c, 3, "admin")

	if err := NewAuthHandler(stub).ChangePassword(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got.AccountID != 3 {
		t.Fatalf("identity not forwarded: %+v", got)
	}
}

func TestAuthHandler_ChangePassword_TooShort(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		changePasswordFn: func(context.Context, domain.Identity, string, string) error {
			t.Fatalf("should not be called")
			return nil
		},
	}
	c, _ := jsonContext(e, http.MethodPost, "/api/auth/change-password", `{"currentPassword":"old-pass","newPassword":"short"}`)
	withIdentity(c, 3, "admin")

	if err := NewAuthHandler(stub).ChangePassword(c); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}
