package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func runWithRole(t *testing.T, mw echo.MiddlewareFunc, role interface{}) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if role != nil {
		c.Set("role", role)
	}
	handler := mw(func(c echo.Context) error { return c.String(http.StatusOK, "ok") })
	if err := handler(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	return rec
}

func TestRequireRoleAllows(t *testing.T) {
	rec := runWithRole(t, RequireRole("SHO", "ACP"), "ACP")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}

func TestRequireRoleRejectsOther(t *testing.T) {
	rec := runWithRole(t, RequireRole("SHO", "ACP"), "ZS")
	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", rec.Code)
	}
}

func TestRequireRoleRejectsMissing(t *testing.T) {
	rec := runWithRole(t, RequireRole("SHO"), nil)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", rec.Code)
	}
}

func TestRequireRoleRejectsNonString(t *testing.T) {
	rec := runWithRole(t, RequireRole("SHO"), 42)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", rec.Code)
	}
}
