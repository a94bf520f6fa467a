package httputil

import (
	"context"
	"net/http"
	"strconv"
	"strings"
)

const (
	// PathIDKey holds the primary numeric ID pulled from the URL path.
	PathIDKey contextKey = "path_id"

	// SecondaryPathIDKey holds the second numeric ID for nested resource
	// paths like /recipes/{id}/ingredients/{id}.
	SecondaryPathIDKey contextKey = "secondary_path_id"
)

// pathInt trims leading and trailing "/" from r.URL.Path, splits it on
// "/", and parses the segment at pos as a positive integer. Segments are
// 0-indexed from the first non-empty one, so in /api/recipes/7 the ID is
// at pos 2.
func pathInt(r *http.Request, pos int) (int, bool) {
	segments := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	if pos < 0 || pos >= len(segments) {
		return 0, false
	}
	n, err := strconv.Atoi(segments[pos])
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

// ExtractPathID returns middleware that parses one numeric path segment
// and stashes it in the request context under PathIDKey, rejecting the
// request with 400 if the segment is missing or not a positive integer.
func ExtractPathID(pos int) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			id, ok := pathInt(r, pos)
			if !ok {
				WriteError(w, http.StatusBadRequest, "invalid or missing ID in path")
				return
			}
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), PathIDKey, id)))
		}
	}
}

// ExtractTwoPathIDs is ExtractPathID for two path segments at once,
// used by the nested recipe-ingredient routes.
func ExtractTwoPathIDs(firstPos, secondPos int) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			first, ok := pathInt(r, firstPos)
			if !ok {
				WriteError(w, http.StatusBadRequest, "invalid or missing ID in path")
				return
			}
			second, ok := pathInt(r, secondPos)
			if !ok {
				WriteError(w, http.StatusBadRequest, "invalid or missing ID in path")
				return
			}
			ctx := context.WithValue(r.Context(), PathIDKey, first)
			ctx = context.WithValue(ctx, SecondaryPathIDKey, second)
			next.ServeHTTP(w, r.WithContext(ctx))
		}
	}
}

// GetPathID reads back the ID ExtractPathID or ExtractTwoPathIDs stored.
func GetPathID(r *http.Request) (int, bool) {
	id, ok := r.Context().Value(PathIDKey).(int)
	return id, ok
}

// GetSecondaryPathID reads back the second ID ExtractTwoPathIDs stored.
func GetSecondaryPathID(r *http.Request) (int, bool) {
	id, ok := r.Context().Value(SecondaryPathIDKey).(int)
	return id, ok
}

// MethodFilter rejects a request with 405 unless it uses method.
func MethodFilter(method string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != method {
			WriteError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		next.ServeHTTP(w, r)
	}
}

// ChainMiddleware wraps handler with middlewares, applied so the first
// entry in the list runs first at request time.
func ChainMiddleware(handler http.HandlerFunc, middlewares ...func(http.HandlerFunc) http.HandlerFunc) http.HandlerFunc {
	for i := len(middlewares) - 1; i >= 0; i-- {
		handler = middlewares[i](handler)
	}
	return handler
}
