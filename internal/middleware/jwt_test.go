package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/license-flow/internal/utils"
)

const testSecret = "unit-test-secret"

func doRequest(t *testing.T, mw echo.MiddlewareFunc, authHeader string) (*httptest.ResponseRecorder, echo.Context) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	handler := mw(func(c echo.Context) error { return c.String(http.StatusOK, "ok") })
	if err := handler(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	return rec, c
}

func TestJWTAuthMissingHeader(t *testing.T) {
	rec, _ := doRequest(t, JWTAuth(testSecret), "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestJWTAuthMalformedToken(t *testing.T) {
	rec, _ := doRequest(t, JWTAuth(testSecret), "Bearer not.a.jwt")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestJWTAuthWrongSecret(t *testing.T) {
	tok, err := utils.NewAccessToken("some-other-secret", 5, "acp1", "ACP", 5)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	rec, _ := doRequest(t, JWTAuth(testSecret), "Bearer "+tok.Token)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestJWTAuthValidTokenInjectsIdentity(t *testing.T) {
	tok, err := utils.NewAccessToken(testSecret, 5, "acp1", "ACP", 5)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	rec, c := doRequest(t, JWTAuth(testSecret), "Bearer "+tok.Token)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if got, _ := c.Get("user_id").(float64); got != 5 {
		t.Errorf("user_id = %v, want 5", c.Get("user_id"))
	}
	if c.Get("username") != "acp1" {
		t.Errorf("username = %v", c.Get("username"))
	}
	if c.Get("role") != "ACP" {
		t.Errorf("role = %v", c.Get("role"))
	}
}
