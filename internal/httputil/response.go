package httputil

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"grub-core/internal/errs"
)

// ErrorResponse represents a standard error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// WriteJSON writes a JSON response with the given status code
func WriteJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// WriteError writes a JSON error response
func WriteError(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, ErrorResponse{Error: message})
}

// WriteAppError renders an *errs.AppError per the error-handling design:
// the message passes through verbatim for 404/400; for 500 it is replaced
// with a fixed generic string and the real error is only logged.
func WriteAppError(w http.ResponseWriter, err error) {
	ae := errs.AsAppError(err)
	if ae.StatusCode == http.StatusInternalServerError {
		slog.Error("internal error", "error", ae.Error())
		WriteError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	WriteError(w, ae.StatusCode, ae.Message)
}

// SuccessResponse represents a standard success message response
type SuccessResponse struct {
	Message string `json:"message"`
}

// WriteSuccess writes a JSON success message response
func WriteSuccess(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, SuccessResponse{Message: message})
}
