// Package response provides helpers for writing consistent JSON HTTP responses.
//
// Every API route answers with the same envelope so the page script can
// handle any of them with one code path:
//
//	{ "success": true,  "message": "Thanks! We'll be in touch." }
//	{ "success": false, "errors": [ { "field": "email", "message": "..." } ] }
package response

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/sunvista/solar-site/internal/validation"
)

// GenericError is the only detail a client sees for an unexpected failure.
const GenericError = "Something went wrong. Please try again later."

// Response is the standard envelope.
type Response struct {
	Success bool                    `json:"success"`
	Message string                  `json:"message,omitempty"`
	Errors  []validation.FieldError `json:"errors,omitempty"`
}

// WriteJSON writes a JSON-encoded response with the given HTTP status code.
//
// Order matters: Header() → WriteHeader() → body writes.
func WriteJSON(w http.ResponseWriter, status int, data any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(data)
}

// OK is a success envelope with a message for the visitor.
func OK(message string) Response {
	return Response{Success: true, Message: message}
}

// ValidationError wraps field problems for a 400.
func ValidationError(errs []validation.FieldError) Response {
	return Response{Success: false, Errors: errs}
}

// RequestError is a 400 for problems not tied to one field, such as an
// empty or malformed body.
func RequestError(message string) Response {
	return Response{Success: false, Errors: []validation.FieldError{{Field: "body", Message: message}}}
}

// Error is a failure envelope with only a message.
func Error(message string) Response {
	return Response{Success: false, Message: message}
}

// InternalError writes the generic 500.
func InternalError(w http.ResponseWriter) {
	WriteJSON(w, http.StatusInternalServerError, Error(GenericError))
}

// MethodNotAllowed writes a 405 listing the allowed methods.
func MethodNotAllowed(w http.ResponseWriter, allowed ...string) {
	w.Header().Set("Allow", strings.Join(allowed, ", "))
	WriteJSON(w, http.StatusMethodNotAllowed, Error("Method not allowed"))
}
