package auth

import (
	"errors"
	"testing"
	"time"
)

func newTestManager(secret string, expiry time.Duration) *JWTManager {
	return NewJWTManager(JWTConfig{
		Secret: secret,
		Expiry: expiry,
		Issuer: "education-api",
	})
}

func TestGenerateAndValidateToken(t *testing.T) {
	manager := newTestManager("test-secret", time.Hour)

	token, err := manager.GenerateToken(42, "STF001", "staff")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	claims, err := manager.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if claims.UserID != 42 {
		t.Errorf("UserID = %d, want 42", claims.UserID)
	}
	if claims.Role != "staff" {
		t.Errorf("Role = %q, want staff", claims.Role)
	}
	if claims.Subject != "STF001" {
		t.Errorf("Subject = %q, want STF001", claims.Subject)
	}
	if claims.Issuer != "education-api" {
		t.Errorf("Issuer = %q", claims.Issuer)
	}
}

func TestValidateExpiredToken(t *testing.T) {
	manager := newTestManager("test-secret", -time.Minute)

	token, err := manager.GenerateToken(1, "STU001", "student")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	if _, err := manager.ValidateToken(token); !errors.Is(err, ErrExpiredToken) {
		t.Errorf("ValidateToken on expired token = %v, want ErrExpiredToken", err)
	}
}

func TestValidateTokenWrongSecret(t *testing.T) {
	manager := newTestManager("secret-a", time.Hour)
	other := newTestManager("secret-b", time.Hour)

	token, err := manager.GenerateToken(1, "STU001", "student")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	if _, err := other.ValidateToken(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("ValidateToken with wrong secret = %v, want ErrInvalidToken", err)
	}
}

func TestValidateGarbageToken(t *testing.T) {
	manager := newTestManager("test-secret", time.Hour)

	if _, err := manager.ValidateToken("not-a-token"); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("ValidateToken on garbage = %v, want ErrInvalidToken", err)
	}
}
