package response

import (
	"encoding/json"
	"net/http"
)

// ErrorResponse is the body returned on every failed request: the mapped
// status code plus a human-readable detail message.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// ValidationErrorResponse carries per-field messages for malformed input.
type ValidationErrorResponse struct {
	Detail string            `json:"detail"`
	Fields map[string]string `json:"fields,omitempty"`
}

// JSON writes data directly as the response body. Successful endpoints
// return the bare object or list, not an envelope.
func JSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

// NoContent writes an empty 204 response.
func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

func Error(w http.ResponseWriter, statusCode int, detail string) {
	JSON(w, statusCode, ErrorResponse{Detail: detail})
}

func ValidationError(w http.ResponseWriter, fields map[string]string) {
	JSON(w, http.StatusBadRequest, ValidationErrorResponse{
		Detail: "Validation failed",
		Fields: fields,
	})
}

func BadRequest(w http.ResponseWriter, detail string) {
	if detail == "" {
		detail = "Bad request"
	}
	Error(w, http.StatusBadRequest, detail)
}

func Unauthorized(w http.ResponseWriter, detail string) {
	if detail == "" {
		detail = "Unauthorized"
	}
	Error(w, http.StatusUnauthorized, detail)
}

func NotFound(w http.ResponseWriter, detail string) {
	if detail == "" {
		detail = "Resource not found"
	}
	Error(w, http.StatusNotFound, detail)
}

func InternalServerError(w http.ResponseWriter, detail string) {
	if detail == "" {
		detail = "Internal server error"
	}
	Error(w, http.StatusInternalServerError, detail)
}
