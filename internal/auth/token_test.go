package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestIssueAndParseRoundTrip(t *testing.T) {
	m := NewTokenManager("test-secret", 10*time.Minute)

	token, err := m.Issue(42, "alice", RoleManager)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	p, err := m.Parse(token)
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if p.UserID != 42 {
		t.Errorf("expected user id 42, got %d", p.UserID)
	}
	if p.Username != "alice" {
		t.Errorf("expected username 'alice', got %q", p.Username)
	}
	if p.Role != RoleManager {
		t.Errorf("expected role %q, got %q", RoleManager, p.Role)
	}
}

func TestParseExpiredToken(t *testing.T) {
	m := NewTokenManager("test-secret", -1*time.Minute)

	token, err := m.Issue(1, "alice", RoleUser)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	if _, err := m.Parse(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for expired token, got %v", err)
	}
}

func TestParseRejectsWrongSecret(t *testing.T) {
	issuer := NewTokenManager("secret-a", 10*time.Minute)
	verifier := NewTokenManager("secret-b", 10*time.Minute)

	token, err := issuer.Issue(1, "alice", RoleUser)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	if _, err := verifier.Parse(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for wrong secret, got %v", err)
	}
}

func TestParseGarbage(t *testing.T) {
	m := NewTokenManager("test-secret", 10*time.Minute)

	for _, tok := range []string{"", "garbage", "a.b.c"} {
		if _, err := m.Parse(tok); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("Parse(%q): expected ErrInvalidToken, got %v", tok, err)
		}
	}
}

// Tokens from the first issuer revision carried only the username, in the
// subject claim. The resolver must still expose it.
func TestParseLegacyUsernameSubject(t *testing.T) {
	secret := "test-secret"
	claims := jwt.MapClaims{
		"sub": "alice",
		"iat": time.Now().Unix(),
		"exp": time.Now().Add(10 * time.Minute).Unix(),
	}
	legacy, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign legacy token: %v", err)
	}

	m := NewTokenManager(secret, 10*time.Minute)
	p, err := m.Parse(legacy)
	if err != nil {
		t.Fatalf("parse legacy token: %v", err)
	}
	if p.Username != "alice" {
		t.Errorf("expected username 'alice', got %q", p.Username)
	}
	if p.UserID != 0 {
		t.Errorf("expected zero user id for legacy token, got %d", p.UserID)
	}
}
