package authn

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"auth_backend/internal/lib/jwt"
)

func newTestHandler(t *testing.T, secret []byte) (http.Handler, *string) {
	t.Helper()

	var gotUserID string

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := UserIDFromContext(r.Context())
		if !ok {
			t.Fatal("no user id in context")
		}
		gotUserID = id
		w.WriteHeader(http.StatusOK)
	})

	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	return New(log, secret)(next), &gotUserID
}

func TestAuthn_ValidToken(t *testing.T) {
	t.Parallel()

	secret := []byte("secret")
	h, gotUserID := newTestHandler(t, secret)

	token, err := jwt.NewToken("user-42", secret, 15*time.Minute)
	if err != nil {
		t.Fatalf("NewToken: %v", err)
	}

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/me", nil)
	r.Header.Set("Authorization", "Bearer "+token)

	h.ServeHTTP(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d want %d", w.Code, http.StatusOK)
	}
	if *gotUserID != "user-42" {
		t.Fatalf("user id: got %q want %q", *gotUserID, "user-42")
	}
}

func TestAuthn_NoToken(t *testing.T) {
	t.Parallel()

	h, _ := newTestHandler(t, []byte("secret"))

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/me", nil)

	h.ServeHTTP(w, r)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status: got %d want %d", w.Code, http.StatusUnauthorized)
	}
}

func TestAuthn_MalformedHeader(t *testing.T) {
	t.Parallel()

	h, _ := newTestHandler(t, []byte("secret"))

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/me", nil)
	r.Header.Set("Authorization", "Token abc")

	h.ServeHTTP(w, r)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status: got %d want %d", w.Code, http.StatusUnauthorized)
	}
}

func TestAuthn_InvalidToken(t *testing.T) {
	t.Parallel()

	h, _ := newTestHandler(t, []byte("secret"))

	// Signed with a different secret.
	token, err := jwt.NewToken("user-42", []byte("other"), 15*time.Minute)
	if err != nil {
		t.Fatalf("NewToken: %v", err)
	}

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/me", nil)
	r.Header.Set("Authorization", "Bearer "+token)

	h.ServeHTTP(w, r)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status: got %d want %d", w.Code, http.StatusUnauthorized)
	}
}

func TestAuthn_ExpiredToken(t *testing.T) {
	t.Parallel()

	secret := []byte("secret")
	h, _ := newTestHandler(t, secret)

	token, err := jwt.NewToken("user-42", secret, -time.Second)
	if err != nil {
		t.Fatalf("NewToken: %v", err)
	}

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/me", nil)
	r.Header.Set("Authorization", "Bearer "+token)

	h.ServeHTTP(w, r)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status: got %d want %d", w.Code, http.StatusUnauthorized)
	}
}
