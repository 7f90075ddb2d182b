package httputil

import (
	"encoding/json"
	"net/http"
)

// Codes carried in ErrorResponse.Code that are not tied to one handler
const (
	CodeInvalidRequest = "invalid_request"
	CodeUnknownModule  = "unknown_module"
	CodeRateLimited    = "rate_limited"
	CodeNoCatalog      = "no_catalog"
	CodeInternal       = "internal"
)

// ErrorResponse is the body of every error response
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// WriteJSON encodes data as the response body with the given status
func WriteJSON(w http.ResponseWriter, status int, data interface{}) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(data)
}

// WriteSuccess writes data with 200 OK
func WriteSuccess(w http.ResponseWriter, data interface{}) error {
	return WriteJSON(w, http.StatusOK, data)
}

// WriteCreated writes data with 201 Created
func WriteCreated(w http.ResponseWriter, data interface{}) error {
	return WriteJSON(w, http.StatusCreated, data)
}

// WriteNoContent writes an empty 204
func WriteNoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// WriteCodedError writes an ErrorResponse
func WriteCodedError(w http.ResponseWriter, status int, code, message string) {
	WriteJSON(w, status, ErrorResponse{Error: message, Code: code})
}

// WriteValidationError rejects a malformed request with 400
func WriteValidationError(w http.ResponseWriter, message string) {
	WriteCodedError(w, http.StatusBadRequest, CodeInvalidRequest, message)
}

// WriteTooManyRequests writes 429
func WriteTooManyRequests(w http.ResponseWriter, message string) {
	WriteCodedError(w, http.StatusTooManyRequests, CodeRateLimited, message)
}

// WriteNoCatalog writes 503 for requests that arrive before a catalog is loaded
func WriteNoCatalog(w http.ResponseWriter) {
	WriteCodedError(w, http.StatusServiceUnavailable, CodeNoCatalog, "no catalog loaded")
}

// WriteInternalError writes 500. The cause stays in the logs.
func WriteInternalError(w http.ResponseWriter) {
	WriteCodedError(w, http.StatusInternalServerError, CodeInternal, "internal server error")
}
