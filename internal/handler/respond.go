package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/delvoid/authgate/internal/apierror"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// respondError is the single boundary translator: domain errors render with
// their own status and message, anything else becomes an opaque 500.
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	var apiErr *apierror.Error
	if !errors.As(err, &apiErr) {
		slog.Error("unhandled error", "path", r.URL.Path, "error", err)
		apiErr = &apierror.Error{
			Status: http.StatusInternalServerError,
			Msg:    "Something went wrong try again later",
		}
	}
	apiErr.Write(w, r.URL.Path)
}

// decodeJSON parses a JSON request body capped at 1MB.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB
	defer r.Body.Close()

	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			return apierror.BadRequest("request body too large")
		}
		return apierror.BadRequest("invalid request body")
	}
	return nil
}
