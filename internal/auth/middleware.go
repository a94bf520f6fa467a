// Package auth checks requests against a single shared bearer token.
// There is no session, no claims, and no user identity carried in the
// request context, only whether the request carries the one key the
// operator configured.
package auth

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"grub-core/internal/httputil"
)

// BearerMiddleware validates the Authorization header against a single
// expected token, comparing in constant time to avoid leaking the token
// through response-timing side channels. An empty expectedToken means the
// server was started with auth disabled (--no-auth) and every request
// passes through.
func BearerMiddleware(expectedToken string) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		if expectedToken == "" {
			return next
		}
		return func(w http.ResponseWriter, r *http.Request) {
			token := ExtractTokenFromHeader(r)
			if token == "" || subtle.ConstantTimeCompare([]byte(token), []byte(expectedToken)) != 1 {
				httputil.WriteError(w, http.StatusUnauthorized, "missing or invalid bearer token")
				return
			}
			next.ServeHTTP(w, r)
		}
	}
}

// ExtractTokenFromHeader parses "Bearer <token>" out of the Authorization
// header.
func ExtractTokenFromHeader(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(header, prefix))
}
