package middleware

import "net/http"

// MaxBodyBytes caps request bodies at 50 MiB, per the REST surface's
// resource policy.
const MaxBodyBytes = 50 * 1024 * 1024

// SecurityHeaders stamps the three fixed security headers on every
// response, including error responses.
func SecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Content-Security-Policy", "default-src 'none'")
		r.Body = http.MaxBytesReader(w, r.Body, MaxBodyBytes)
		next.ServeHTTP(w, r)
	})
}
