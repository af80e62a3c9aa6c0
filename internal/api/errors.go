package api

import (
	"encoding/json"
	"net/http"

	"github.com/rowanvale/orgstack/internal/auth"
)

// Error is the client-error response body:
//
//	{"status": "Bad request", "message": "...", "statusCode": 400}
type Error struct {
	Status     string `json:"status"`
	Message    string `json:"message"`
	StatusCode int    `json:"statusCode"`
}

// successResponse is the envelope for successful responses.
type successResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// validationResponse carries per-field validation failures.
type validationResponse struct {
	Errors []auth.FieldError `json:"errors"`
}

// writeJSON writes a JSON response with the given status code and payload.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		//nolint:errcheck // Best-effort write to response; connection may be closed
		json.NewEncoder(w).Encode(v)
	}
}

// writeSuccess writes a success envelope with an optional data payload.
func writeSuccess(w http.ResponseWriter, status int, message string, data any) {
	writeJSON(w, status, successResponse{
		Status:  "success",
		Message: message,
		Data:    data,
	})
}

// writeError writes a structured error response.
func writeError(w http.ResponseWriter, status int, statusText, message string) {
	writeJSON(w, status, Error{
		Status:     statusText,
		Message:    message,
		StatusCode: status,
	})
}

// writeBadRequest writes a 400 error response.
func writeBadRequest(w http.ResponseWriter, message string) {
	writeError(w, http.StatusBadRequest, "Bad request", message)
}

// writeNotFound writes a 404 error response.
func writeNotFound(w http.ResponseWriter, message string) {
	writeError(w, http.StatusNotFound, "Not found", message)
}

// writeUnauthorized writes a 401 error response. The body keeps the
// "Bad request" status text so failed and missing credentials are
// indistinguishable from other authentication failures.
func writeUnauthorized(w http.ResponseWriter, message string) {
	writeError(w, http.StatusUnauthorized, "Bad request", message)
}

// writeInternalError writes a 500 error response.
func writeInternalError(w http.ResponseWriter, message string) {
	writeError(w, http.StatusInternalServerError, "Internal server error", message)
}

// writeValidationErrors writes a 422 response listing every failed field.
func writeValidationErrors(w http.ResponseWriter, verrs *auth.ValidationErrors) {
	writeJSON(w, http.StatusUnprocessableEntity, validationResponse{
		Errors: verrs.Fields,
	})
}
