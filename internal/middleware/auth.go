package middleware

import (
	"net/http"
	"strings"

	"saves/internal/auth"
	"saves/internal/httputil"
)

// SessionAuth validates the web-session JWT on every request and stores the
// authenticated user ID in the request context. Requests without a valid
// session are rejected before reaching any handler.
func SessionAuth(verifier auth.SessionVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, ok := verifySession(verifier, r)
			if !ok {
				httputil.RespondError(w, http.StatusUnauthorized, "unauthorized")
				return
			}

			next.ServeHTTP(w, httputil.WithUserID(r, userID))
		})
	}
}

// OptionalSessionAuth resolves the session when one is presented but lets
// anonymous requests through. Used on public surfaces where an owner gets a
// richer view of their own data.
func OptionalSessionAuth(verifier auth.SessionVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if userID, ok := verifySession(verifier, r); ok {
				r = httputil.WithUserID(r, userID)
			}

			next.ServeHTTP(w, r)
		})
	}
}

func verifySession(verifier auth.SessionVerifier, r *http.Request) (string, bool) {
	authHeader := r.Header.Get("Authorization")
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return "", false
	}

	token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
	claims, err := verifier.VerifyToken(token)
	if err != nil {
		return "", false
	}

	return claims.GetUserID(), true
}
