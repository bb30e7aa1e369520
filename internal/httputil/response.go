package httputil

import (
	"encoding/json"
	"net/http"
)

// ErrorResponse is the failure envelope: a human-readable message plus an
// optional itemized error list (validation failures).
type ErrorResponse struct {
	Message string   `json:"message"`
	Errors  []string `json:"errors,omitempty"`
}

// WriteJSON writes a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			// Headers already sent; nothing left to do.
			return
		}
	}
}

// WriteError writes an error envelope with an optional error list.
func WriteError(w http.ResponseWriter, status int, message string, errs ...string) {
	WriteJSON(w, status, ErrorResponse{Message: message, Errors: errs})
}

// WriteBadRequest writes a 400 Bad Request error.
func WriteBadRequest(w http.ResponseWriter, message string, errs ...string) {
	WriteError(w, http.StatusBadRequest, message, errs...)
}

// WriteValidationFailed writes a 400 with the itemized validation errors.
func WriteValidationFailed(w http.ResponseWriter, errs []string) {
	WriteError(w, http.StatusBadRequest, "Validation failed", errs...)
}

// WriteUnauthorized writes a 401 Unauthorized error.
func WriteUnauthorized(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusUnauthorized, message)
}

// WriteNotFound writes a 404 Not Found error.
func WriteNotFound(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusNotFound, message)
}

// WriteConflict writes a 409 Conflict error.
func WriteConflict(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusConflict, message)
}

// WriteInternalError writes a 500 Internal Server Error.
func WriteInternalError(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusInternalServerError, message)
}
