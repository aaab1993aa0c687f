package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

// SessionIDHeader names the header anonymous shoppers send to keep a
// stable cart and wishlist across requests.
const SessionIDHeader = "X-Session-ID"

// OwnerKey holds the resolved collection owner in the request context.
const OwnerKey contextKey = "collection_owner"

// OptionalAuth parses a Bearer token when one is present and populates
// the user context, but never rejects the request. Storefront reads and
// anonymous cart traffic flow through here.
func OptionalAuth(jwtSecret string, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				next.ServeHTTP(w, r)
				return
			}

			token, err := jwt.Parse(parts[1], func(token *jwt.Token) (interface{}, error) {
				if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, jwt.ErrSignatureInvalid
				}
				return []byte(jwtSecret), nil
			})
			if err != nil || !token.Valid {
				logger.Debug("Ignoring invalid bearer token on optional-auth route", zap.Error(err))
				next.ServeHTTP(w, r)
				return
			}

			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok {
				next.ServeHTTP(w, r)
				return
			}

			ctx := r.Context()
			if userID, ok := claims["user_id"].(string); ok {
				ctx = context.WithValue(ctx, UserIDKey, userID)
			}
			if role, ok := claims["role"].(string); ok {
				ctx = context.WithValue(ctx, UserRoleKey, role)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// CollectionOwner resolves who owns cart and wishlist state: the
// authenticated user when present, otherwise the anonymous session ID
// header. Requests carrying neither are rejected because there is no
// key to load a collection under.
func CollectionOwner(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			owner, ok := GetUserID(r.Context())
			if !ok {
				owner = strings.TrimSpace(r.Header.Get(SessionIDHeader))
			}

			if owner == "" {
				logger.Debug("Request has neither user nor session ID",
					zap.String("path", r.URL.Path),
				)
				RespondWithError(w, http.StatusBadRequest, "missing session identifier")
				return
			}

			ctx := context.WithValue(r.Context(), OwnerKey, owner)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetOwner extracts the collection owner from request context
func GetOwner(ctx context.Context) (string, bool) {
	owner, ok := ctx.Value(OwnerKey).(string)
	return owner, ok
}
