package web

// errors.go maps the core's typed errors onto HTTP responses. Handlers call
// respondPipelineError with whatever the pipeline returned; the mapping here
// decides the status, and the technical error is logged with the request id
// while the client gets the error message as JSON.

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/loredex/loredex/internal/catalog"
	"github.com/loredex/loredex/internal/pipeline"
	"github.com/loredex/loredex/internal/tabular"
)

var errRateLimited = errors.New("rate limit exceeded")

// ErrorResponse is the JSON body of every error reply.
type ErrorResponse struct {
	Error string `json:"error"`
}

// statusFor picks the HTTP status for a pipeline error.
func statusFor(err error) int {
	var (
		validation *catalog.ValidationError
		duplicate  *catalog.DuplicateSourceError
		notFound   *catalog.NotFoundError
		parse      *tabular.ParseError
		tooLarge   *pipeline.FileTooLargeError
		empty      *pipeline.EmptyFileError
	)

	switch {
	case errors.As(err, &validation):
		return http.StatusBadRequest
	case errors.As(err, &duplicate):
		return http.StatusConflict
	case errors.As(err, &notFound):
		return http.StatusNotFound
	case errors.As(err, &parse):
		return http.StatusBadRequest
	case errors.As(err, &tooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.As(err, &empty):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// respondPipelineError writes err with the status its kind maps to.
func respondPipelineError(w http.ResponseWriter, r *http.Request, err error) {
	respondError(w, r, err, statusFor(err))
}

// respondError logs the technical error and writes the JSON error body.
func respondError(w http.ResponseWriter, r *http.Request, err error, status int) {
	slog.Error("request error",
		"path", r.URL.Path,
		"method", r.Method,
		"status", status,
		"error", err.Error(),
		"request_id", middleware.GetReqID(r.Context()),
	)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(ErrorResponse{Error: err.Error()})
}

// respondJSON encodes v as JSON with the given status.
func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("json encode error", "error", err)
	}
}
