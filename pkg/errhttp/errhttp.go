// Package errhttp maps glossary domain sentinel errors to HTTP status codes.
// It is the only place a domain failure becomes a status code; handlers call
// WriteError and never pick statuses themselves. Add a case to
// mapErrorToStatus for each new domain sentinel error.
package errhttp

import (
	"context"
	"errors"
	"net/http"

	"github.com/ghuser/glossary/pkg/httpx"
	"github.com/ghuser/glossary/pkg/logger"
	glossarydomain "github.com/ghuser/glossary/services/glossary/domain"
)

// WriteError maps err to an HTTP status code and writes a JSON error
// response. Uses errors.Is() so wrapped sentinel errors are matched
// correctly. Statuses of 500 and above get a generic body — the wire never
// carries internal detail — and the full error is logged through log with
// the request's trace and request id taken from ctx. A nil log disables
// logging.
func WriteError(ctx context.Context, log logger.Logger, w http.ResponseWriter, err error) {
	status := mapErrorToStatus(err)
	if status >= http.StatusInternalServerError {
		if log != nil {
			log.ErrorContext(ctx, "request failed", "status", status, "error", err)
		}
		httpx.JSONError(w, status, http.StatusText(status))
		return
	}
	httpx.JSONError(w, status, err.Error())
}

func mapErrorToStatus(err error) int {
	switch {
	case errors.Is(err, glossarydomain.ErrTermNotFound):
		return http.StatusNotFound // 404
	case errors.Is(err, glossarydomain.ErrTermAlreadyExists):
		return http.StatusConflict // 409
	case errors.Is(err, glossarydomain.ErrInvalidTerm):
		return http.StatusUnprocessableEntity // 422
	case errors.Is(err, glossarydomain.ErrStorageUnavailable):
		return http.StatusServiceUnavailable // 503
	default:
		return http.StatusInternalServerError // 500
	}
}
