package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestNewAccessTokenClaims(t *testing.T) {
	tok, err := NewAccessToken("test-secret", 42, "sho1", "SHO", 15)
	if err != nil {
		t.Fatalf("NewAccessToken failed: %v", err)
	}
	if time.Until(tok.Exp) <= 0 {
		t.Fatal("token already expired at issuance")
	}
	parsed, err := jwt.Parse(tok.Token, func(tk *jwt.Token) (interface{}, error) {
		if _, ok := tk.Method.(*jwt.SigningMethodHMAC); !ok {
			t.Fatalf("unexpected signing method %v", tk.Method)
		}
		return []byte("test-secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token does not verify: %v", err)
	}
	claims := parsed.Claims.(jwt.MapClaims)
	if claims["sub"].(float64) != 42 {
		t.Errorf("sub = %v, want 42", claims["sub"])
	}
	if claims["username"] != "sho1" {
		t.Errorf("username = %v", claims["username"])
	}
	if claims["role"] != "SHO" {
		t.Errorf("role = %v", claims["role"])
	}
}

func TestNewAccessTokenWrongSecret(t *testing.T) {
	tok, err := NewAccessToken("secret-a", 1, "u", "CP", 5)
	if err != nil {
		t.Fatalf("NewAccessToken failed: %v", err)
	}
	parsed, err := jwt.Parse(tok.Token, func(tk *jwt.Token) (interface{}, error) {
		return []byte("secret-b"), nil
	})
	if err == nil && parsed.Valid {
		t.Fatal("token verified with the wrong secret")
	}
}
