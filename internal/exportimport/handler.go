package exportimport

import (
	"io"
	"net/http"

	"grub-core/internal/httputil"
)

// Handler serves GET /api/export and POST /api/import.
type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	snapshot, err := h.svc.Export()
	if err != nil {
		httputil.WriteAppError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, snapshot)
}

func (h *Handler) Import(w http.ResponseWriter, r *http.Request) {
	raw, err := io.ReadAll(r.Body)
	if err != nil {
		httputil.WriteError(w, http.StatusBadRequest, "failed to read request body")
		return
	}

	result, appErr := h.svc.Import(raw)
	if appErr != nil {
		httputil.WriteAppError(w, appErr)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, result)
}
