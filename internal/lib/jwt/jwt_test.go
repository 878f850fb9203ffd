package jwt

import (
	"errors"
	"testing"
	"time"
)

func TestNewTokenAndParse(t *testing.T) {
	t.Parallel()

	secret := []byte("access-secret")
	userID := "user-123"

	tok, err := NewToken(userID, secret, 15*time.Minute)
	if err != nil {
		t.Fatalf("NewToken error: %v", err)
	}

	gotUserID, err := ParseToken(tok, secret)
	if err != nil {
		t.Fatalf("ParseToken error: %v", err)
	}
	if gotUserID != userID {
		t.Fatalf("userID mismatch: got %q want %q", gotUserID, userID)
	}
}

func TestParseToken_Expired(t *testing.T) {
	t.Parallel()

	secret := []byte("secret")

	tok, err := NewToken("u1", secret, -1*time.Second)
	if err != nil {
		t.Fatalf("NewToken error: %v", err)
	}

	_, err = ParseToken(tok, secret)
	if !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for expired token, got %v", err)
	}
}

func TestParseToken_WrongSecret(t *testing.T) {
	t.Parallel()

	tok, err := NewToken("u2", []byte("right-secret"), time.Hour)
	if err != nil {
		t.Fatalf("NewToken error: %v", err)
	}

	_, err = ParseToken(tok, []byte("wrong-secret"))
	if !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for wrong secret, got %v", err)
	}
}

func TestParseToken_DistinctSecretsPerClass(t *testing.T) {
	t.Parallel()

	// A refresh token must never verify against the access secret.
	refreshSecret := []byte("refresh-secret")
	accessSecret := []byte("access-secret")

	tok, err := NewToken("u3", refreshSecret, 7*24*time.Hour)
	if err != nil {
		t.Fatalf("NewToken error: %v", err)
	}

	if _, err := ParseToken(tok, accessSecret); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken across token classes, got %v", err)
	}
}

func TestParseToken_Malformed(t *testing.T) {
	t.Parallel()

	_, err := ParseToken("not.a.jwt", []byte("k"))
	if !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for malformed token, got %v", err)
	}
}
