package http

import (
	"context"
	"net/http"
	"strings"

	"boardinghouse-backend/internal/domain"
	"boardinghouse-backend/internal/security"
)

type contextKey string

const claimsContextKey contextKey = "claims"

// authMiddleware validates the bearer token and stores the claims on the
// request context.
func authMiddleware(tokens security.TokenManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "missing bearer token"})
				return
			}

			claims, err := tokens.ValidateToken(strings.TrimPrefix(header, "Bearer "))
			if err != nil {
				writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "invalid or expired token"})
				return
			}

			ctx := context.WithValue(r.Context(), claimsContextKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// requireStaff rejects boarder sessions on management routes.
func requireStaff(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims := claimsFrom(r)
		if claims == nil {
			writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "missing bearer token"})
			return
		}
		role := domain.UserRole(claims.Role)
		if !role.IsAdmin() && !role.IsStaff() {
			writeJSON(w, http.StatusForbidden, errorResponse{Error: "staff access required"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func claimsFrom(r *http.Request) *security.Claims {
	claims, _ := r.Context().Value(claimsContextKey).(*security.Claims)
	return claims
}
