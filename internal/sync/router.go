package sync

import (
	"net/http"

	"grub-core/internal/httputil"
)

// RegisterRoutes registers the /api/sync surface, one HandleFunc per path.
func RegisterRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("/api/sync", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			handler.Pull(w, r)
		case http.MethodPost:
			handler.Push(w, r)
		default:
			httputil.WriteError(w, http.StatusMethodNotAllowed, "method not allowed")
		}
	})
}
