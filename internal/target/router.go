package target

import (
	"net/http"
	"strings"

	"grub-core/internal/httputil"
)

// RegisterRoutes registers the /api/targets surface.
func RegisterRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("/api/targets", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			handler.ListTargets(w, r)
		case http.MethodDelete:
			handler.ClearTargets(w, r)
		default:
			httputil.WriteError(w, http.StatusMethodNotAllowed, "method not allowed")
		}
	})

	mux.HandleFunc("/api/targets/", func(w http.ResponseWriter, r *http.Request) {
		if strings.TrimPrefix(r.URL.Path, "/api/targets/") == "" {
			httputil.WriteError(w, http.StatusBadRequest, "day required")
			return
		}

		switch r.Method {
		case http.MethodGet:
			handler.GetTarget(w, r)
		case http.MethodPut:
			handler.SetTarget(w, r)
		case http.MethodDelete:
			handler.DeleteTarget(w, r)
		default:
			httputil.WriteError(w, http.StatusMethodNotAllowed, "method not allowed")
		}
	})
}
