package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

func ownerEchoHandler(t *testing.T, got *string) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		owner, ok := GetOwner(r.Context())
		if !ok {
			t.Error("expected owner in context")
		}
		*got = owner
		w.WriteHeader(http.StatusOK)
	})
}

func signTestToken(t *testing.T, secret, userID, role string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"role":    role,
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return signed
}

func TestCollectionOwnerPrefersAuthenticatedUser(t *testing.T) {
	logger := zap.NewNop()
	var got string
	handler := OptionalAuth("secret", logger)(CollectionOwner(logger)(ownerEchoHandler(t, &got)))

	req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
	req.Header.Set("Authorization", "Bearer "+signTestToken(t, "secret", "user-123", "customer"))
	req.Header.Set(SessionIDHeader, "anon-456")

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got != "user-123" {
		t.Fatalf("expected authenticated user to own the collection, got %q", got)
	}
}

func TestCollectionOwnerFallsBackToSessionHeader(t *testing.T) {
	logger := zap.NewNop()
	var got string
	handler := OptionalAuth("secret", logger)(CollectionOwner(logger)(ownerEchoHandler(t, &got)))

	req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
	req.Header.Set(SessionIDHeader, "anon-456")

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got != "anon-456" {
		t.Fatalf("expected session header owner, got %q", got)
	}
}

func TestCollectionOwnerRejectsAnonymousWithoutSession(t *testing.T) {
	logger := zap.NewNop()
	handler := CollectionOwner(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler should not be reached")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestOptionalAuthIgnoresInvalidToken(t *testing.T) {
	logger := zap.NewNop()
	var got string
	handler := OptionalAuth("secret", logger)(CollectionOwner(logger)(ownerEchoHandler(t, &got)))

	req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	req.Header.Set(SessionIDHeader, "anon-789")

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got != "anon-789" {
		t.Fatalf("expected fallback to session owner, got %q", got)
	}
}
