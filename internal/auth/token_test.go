package auth

import (
	"testing"
	"time"

	"github.com/shangobashi/NoteSquared-C/internal/config"
)

func TestTokenRoundTrip(t *testing.T) {
	manager := NewTokenManager(config.AuthConfig{JWTSecret: "test-secret", TokenTTL: time.Hour})

	token, err := manager.Issue("u-1", "teacher@example.com")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	claims, err := manager.Verify(token)
	if err != nil {
		t.Fatalf("Verify() error = %v", err)
	}
	if claims.Subject != "u-1" {
		t.Fatalf("subject = %q, want u-1", claims.Subject)
	}
	if claims.Email != "teacher@example.com" {
		t.Fatalf("email = %q", claims.Email)
	}
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	issuer := NewTokenManager(config.AuthConfig{JWTSecret: "secret-a"})
	verifier := NewTokenManager(config.AuthConfig{JWTSecret: "secret-b"})

	token, err := issuer.Issue("u-1", "teacher@example.com")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	if _, err := verifier.Verify(token); err == nil {
		t.Fatal("Verify() error = nil for token signed with a different secret")
	}
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	manager := NewTokenManager(config.AuthConfig{JWTSecret: "test-secret", TokenTTL: -time.Minute})

	token, err := manager.Issue("u-1", "teacher@example.com")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	if _, err := manager.Verify(token); err == nil {
		t.Fatal("Verify() error = nil for expired token")
	}
}

func TestVerifyRejectsGarbage(t *testing.T) {
	manager := NewTokenManager(config.AuthConfig{JWTSecret: "test-secret"})
	if _, err := manager.Verify("not.a.token"); err == nil {
		t.Fatal("Verify() error = nil for malformed token")
	}
}

func TestPasswordRoundTrip(t *testing.T) {
	hashed, err := HashPassword("correct horse battery staple")
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	if hashed == "correct horse battery staple" {
		t.Fatal("password stored in plain text")
	}

	if !CheckPassword(hashed, "correct horse battery staple") {
		t.Fatal("CheckPassword() = false for correct password")
	}
	if CheckPassword(hashed, "wrong password") {
		t.Fatal("CheckPassword() = true for wrong password")
	}
}
