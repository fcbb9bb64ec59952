package handlers

import (
	"context"
	"net/http"

	"github.com/mastergurukulam/apiserver/internal/auth"
	"github.com/mastergurukulam/apiserver/types"
)

// RequireAuth verifies the bearer token and injects its claims into the
// request context. Missing, malformed, expired, and tampered tokens all
// get the same 401 response.
func RequireAuth(tokens *auth.TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString, err := bearerToken(r)
			if err != nil {
				writeError(w, http.StatusUnauthorized, "unauthorized")
				return
			}

			claims, ok := tokens.Verify(tokenString)
			if !ok {
				writeError(w, http.StatusUnauthorized, "unauthorized")
				return
			}

			ctx := context.WithValue(r.Context(), contextClaimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole gates a route behind an explicit allow-list. It must run
// after RequireAuth. A valid token with a role outside the list gets 403.
func RequireRole(allowed ...types.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := claimsFromContext(r.Context())
			if !ok {
				writeError(w, http.StatusUnauthorized, "unauthorized")
				return
			}
			if !auth.Authorize(claims, allowed...) {
				writeError(w, http.StatusForbidden, "insufficient permissions")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
