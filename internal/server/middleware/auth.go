// Package middleware provides HTTP middleware for authentication and authorization.
package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"
)

// ContextKey is a typed key for context values to avoid collisions.
type ContextKey string

// identityIDKey is the context key for storing the authenticated identity ID.
const identityIDKey ContextKey = "identityID"

// TokenValidator is an interface for validating JWT tokens.
// This allows the middleware to work with any JWT service implementation.
type TokenValidator interface {
	ValidateToken(tokenString string) (IdentityIDGetter, error)
}

// IdentityIDGetter is an interface for extracting the identity ID from token claims.
type IdentityIDGetter interface {
	GetIdentityID() uuid.UUID
}

// Auth creates middleware that validates JWT tokens and adds the identity ID
// to the request context.
func Auth(jwtService TokenValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			// Handle case-insensitive "Bearer" prefix
			parts := strings.Fields(authHeader)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			tokenString := strings.TrimSpace(parts[1])
			if tokenString == "" {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			claims, err := jwtService.ValidateToken(tokenString)
			if err != nil {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			identityID := claims.GetIdentityID()

			ctx := context.WithValue(r.Context(), identityIDKey, identityID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetIdentityID extracts the authenticated identity ID from the request context.
func GetIdentityID(r *http.Request) (uuid.UUID, error) {
	identityID, ok := r.Context().Value(identityIDKey).(uuid.UUID)
	if !ok {
		return uuid.Nil, fmt.Errorf("identity ID not found in request context")
	}
	return identityID, nil
}

// IdentityIDKey returns the context key for the identity ID (for testing purposes).
func IdentityIDKey() ContextKey {
	return identityIDKey
}
