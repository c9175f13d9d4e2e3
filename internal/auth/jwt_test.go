package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func sign(t *testing.T, secret string, expiresAt time.Time) string {
	t.Helper()
	claims := Claims{
		UserID: 42,
		Email:  "ops@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return signed
}

func TestParseValidToken(t *testing.T) {
	parser := NewParser("secret")
	claims, err := parser.Parse(sign(t, "secret", time.Now().Add(time.Hour)))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if claims.UserID != 42 || claims.Email != "ops@example.com" {
		t.Fatalf("claims = %+v", claims)
	}
}

func TestParseRejectsWrongSecret(t *testing.T) {
	parser := NewParser("secret")
	if _, err := parser.Parse(sign(t, "other-secret", time.Now().Add(time.Hour))); err == nil {
		t.Fatal("expected error for wrong signing secret")
	}
}

func TestParseRejectsExpiredToken(t *testing.T) {
	parser := NewParser("secret")
	if _, err := parser.Parse(sign(t, "secret", time.Now().Add(-time.Minute))); err == nil {
		t.Fatal("expected error for expired token")
	}
}
