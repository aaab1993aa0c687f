package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func authorizedRequest(target, userID, role string) *http.Request {
	req := httptest.NewRequest("GET", target, nil)
	ctx := context.WithValue(req.Context(), UserIDKey, userID)
	ctx = context.WithValue(ctx, UserRoleKey, role)
	return req.WithContext(ctx)
}

func TestRequireAdmin(t *testing.T) {
	logger := zap.NewNop()
	handler := RequireAdmin(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	tests := []struct {
		name string
		role string
		want int
	}{
		{"admin is allowed", "admin", http.StatusOK},
		{"customer is forbidden", "customer", http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, authorizedRequest("/admin", "user-1", tt.role))
			if w.Code != tt.want {
				t.Errorf("got status %d, want %d", w.Code, tt.want)
			}
		})
	}

	// No role in context at all
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest("GET", "/admin", nil))
	if w.Code != http.StatusForbidden {
		t.Errorf("missing role: got status %d, want %d", w.Code, http.StatusForbidden)
	}
}

func TestRequireSelfOrAdmin(t *testing.T) {
	logger := zap.NewNop()

	router := chi.NewRouter()
	router.With(RequireSelfOrAdmin(logger)).Get("/users/{userID}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	tests := []struct {
		name   string
		userID string
		role   string
		target string
		want   int
	}{
		{"customer reads own resource", "user-1", "customer", "/users/user-1", http.StatusOK},
		{"customer blocked from other user", "user-1", "customer", "/users/user-2", http.StatusForbidden},
		{"admin reads any user", "admin-1", "admin", "/users/user-2", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			router.ServeHTTP(w, authorizedRequest(tt.target, tt.userID, tt.role))
			if w.Code != tt.want {
				t.Errorf("got status %d, want %d", w.Code, tt.want)
			}
		})
	}

	// Unauthenticated requests never reach the handler
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/users/user-1", nil))
	if w.Code != http.StatusForbidden {
		t.Errorf("missing user: got status %d, want %d", w.Code, http.StatusForbidden)
	}
}
