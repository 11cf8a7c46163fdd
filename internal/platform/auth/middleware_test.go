package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
)

func requestWithAuth(t *testing.T, header string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestMiddleware_ValidToken(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", time.Hour)
	token, err := issuer.Issue("user-1", "jane@example.com", "admin")
	if err != nil {
		t.Fatalf("Issue() error: %v", err)
	}

	c, _ := requestWithAuth(t, "Bearer "+token)

	called := false
	handler := Middleware(issuer)(func(c echo.Context) error {
		called = true
		ctx := c.Request().Context()
		if UserIDFromContext(ctx) != "user-1" {
			t.Errorf("expected user-1 in context, got %s", UserIDFromContext(ctx))
		}
		if RoleFromContext(ctx) != "admin" {
			t.Errorf("expected role admin in context, got %s", RoleFromContext(ctx))
		}
		return nil
	})

	if err := handler(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !called {
		t.Error("expected next handler to be called")
	}
}

func TestMiddleware_MissingHeader(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", time.Hour)
	c, _ := requestWithAuth(t, "")

	handler := Middleware(issuer)(func(c echo.Context) error { return nil })
	err := handler(c)
	if err == nil {
		t.Fatal("expected error for missing header")
	}
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %v", err)
	}
}

func TestMiddleware_BadFormat(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", time.Hour)
	c, _ := requestWithAuth(t, "Basic abc123")

	handler := Middleware(issuer)(func(c echo.Context) error { return nil })
	err := handler(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %v", err)
	}
}

func TestRequireRole_AdminBypassesCheck(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", time.Hour)
	token, _ := issuer.Issue("admin-1", "admin@example.com", "admin")
	c, _ := requestWithAuth(t, "Bearer "+token)

	called := false
	chain := Middleware(issuer)(RequireRole("user")(func(c echo.Context) error {
		called = true
		return nil
	}))
	if err := chain(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !called {
		t.Error("expected admin to pass role check")
	}
}

func TestRequireRole_RejectsWrongRole(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", time.Hour)
	token, _ := issuer.Issue("user-1", "jane@example.com", "user")
	c, _ := requestWithAuth(t, "Bearer "+token)

	chain := Middleware(issuer)(RequireRole("admin")(func(c echo.Context) error { return nil }))
	err := chain(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusForbidden {
		t.Errorf("expected 403, got %v", err)
	}
}
