// Package apierror defines the closed set of domain errors surfaced over
// the API. Every error carries an HTTP status and a message; validation
// failures additionally carry a field→message map. Write renders the
// uniform error body; handlers and middleware both go through it, so the
// wire contract lives in one place.
package apierror

import (
	"encoding/json"
	"net/http"
	"time"
)

// Error is a status-coded domain error.
type Error struct {
	Status int
	Msg    string
	Fields map[string]string
}

func (e *Error) Error() string {
	return e.Msg
}

// body is the uniform error shape rendered for every failed request.
type body struct {
	Path             string            `json:"path"`
	Timestamp        int64             `json:"timestamp"`
	StatusCode       int               `json:"statusCode"`
	Msg              string            `json:"msg"`
	ValidationErrors map[string]string `json:"validationErrors,omitempty"`
}

// Write renders the uniform error body. Every error response in the API
// goes through here, whether raised by a handler or by middleware.
func (e *Error) Write(w http.ResponseWriter, path string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(e.Status)
	json.NewEncoder(w).Encode(body{
		Path:             path,
		Timestamp:        time.Now().UnixMilli(),
		StatusCode:       e.Status,
		Msg:              e.Msg,
		ValidationErrors: e.Fields,
	})
}

// BadRequest reports missing or invalid input.
func BadRequest(msg string) *Error {
	if msg == "" {
		msg = "Bad request"
	}
	return &Error{Status: http.StatusBadRequest, Msg: msg}
}

// Validation reports schema validation failures keyed by field name.
func Validation(msg string, fields map[string]string) *Error {
	return &Error{Status: http.StatusBadRequest, Msg: msg, Fields: fields}
}

// Unauthenticated reports missing or invalid credentials.
func Unauthenticated(msg string) *Error {
	if msg == "" {
		msg = "Authentication invalid"
	}
	return &Error{Status: http.StatusUnauthorized, Msg: msg}
}

// Forbidden reports an authenticated caller lacking permission.
func Forbidden(msg string) *Error {
	if msg == "" {
		msg = "Not authorized to access this route"
	}
	return &Error{Status: http.StatusForbidden, Msg: msg}
}

// NotFound reports a well-formed id with no matching record.
func NotFound(msg string) *Error {
	if msg == "" {
		msg = "Not found"
	}
	return &Error{Status: http.StatusNotFound, Msg: msg}
}

// Expired reports a resource past its expiration, such as a stale
// password-reset link.
func Expired(msg string) *Error {
	if msg == "" {
		msg = "No longer available"
	}
	return &Error{Status: http.StatusGone, Msg: msg}
}

// BadGateway reports an outbound notification delivery failure.
func BadGateway(msg string) *Error {
	if msg == "" {
		msg = "Bad gateway"
	}
	return &Error{Status: http.StatusBadGateway, Msg: msg}
}
