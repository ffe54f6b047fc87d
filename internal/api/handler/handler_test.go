package handler

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/rooman-dev/agl-new/internal/api/middleware"
	"github.com/rooman-dev/agl-new/internal/core/domain"
)

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

func jsonContext(e *echo.Echo, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func withIdentity(c echo.Context, id int64, username string) {
	c.Set(middleware.IdentityKey, domain.Identity{AccountID: id, Username: username})
}

func expectHTTPError(t *testing.T, err error, code int) {
	t.Helper()
	he, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("expected *echo.HTTPError, got %T (%v)", err, err)
	}
	if he.Code != code {
		t.Fatalf("expected status %d, got %d", code, he.Code)
	}
}

func TestValidator_UsesJSONNames(t *testing.T) {
	type payload struct {
		ImageURL string `json:"imageUrl" validate:"required"`
	}

	err := NewValidator().Validate(&payload{})
	if err == nil {
		t.Fatalf("expected validation error")
	}
	if err.Error() != "imageUrl is required" {
		t.Fatalf("unexpected message %q", err.Error())
	}
	if _, ok := err.(*domain.ValidationError); !ok {
		t.Fatalf("expected *domain.ValidationError, got %T", err)
	}
}

func TestHealthHandler_Readiness(t *testing.T) {
	e := newTestEcho()

	ok := NewHealthHandler(DependencyCheck{Name: "postgres", Ping: func(context.Context) error { return nil }})
	c, rec := jsonContext(e, http.MethodGet, "/api/health/ready", "")
	if err := ok.Readiness(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	down := NewHealthHandler(
		DependencyCheck{Name: "postgres", Ping: func(context.Context) error { return nil }},
		DependencyCheck{Name: "redis", Ping: func(context.Context) error { return errors.New("dial tcp: refused") }},
	)
	c, rec = jsonContext(e, http.MethodGet, "/api/health/ready", "")
	if err := down.Readiness(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"redis":{"status":"unhealthy"`) {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}
