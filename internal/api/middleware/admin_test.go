package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/petconnect/marketplace/internal/core/domain"
	"github.com/petconnect/marketplace/internal/core/ports"
)

type stubAdminService struct {
	admin *domain.Admin
}

func (s *stubAdminService) SignIn(_ context.Context, _ ports.AdminSignInInput) (*ports.AdminSignInResult, error) {
	return nil, domain.ErrInvalidCredentials
}

func (s *stubAdminService) ValidateSession(_ context.Context, token string) (*domain.Admin, error) {
	if s.admin != nil && token == "valid-token" {
		return s.admin, nil
	}
	return nil, domain.ErrSessionInvalid
}

func (s *stubAdminService) SignOut(_ context.Context, _ string) {}

func (s *stubAdminService) CreateAdmin(_ context.Context, _ ports.CreateAdminInput) (*domain.Admin, error) {
	return nil, domain.ErrNotSuperAdmin
}

func (s *stubAdminService) ListActivity(_ context.Context, _ ports.ActivityFilter) ([]domain.ActivityEntry, error) {
	return nil, nil
}

func TestAdminSession_ValidToken(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer valid-token")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	svc := &stubAdminService{admin: &domain.Admin{ID: "admin_1", Email: "root@example.com"}}

	called := false
	mw := AdminSession(svc)
	handler := mw(func(c echo.Context) error {
		called = true
		admin, ok := c.Get("admin").(*domain.Admin)
		if !ok || admin.ID != "admin_1" {
			t.Fatalf("admin not set in context")
		}
		if c.Get("session_token") != "valid-token" {
			t.Fatalf("session_token not set")
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
}

func TestAdminSession_MissingHeader(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	mw := AdminSession(&stubAdminService{})
	handler := mw(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAdminSession_InvalidToken(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer stale-token")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	mw := AdminSession(&stubAdminService{admin: &domain.Admin{ID: "admin_1"}})
	handler := mw(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}
