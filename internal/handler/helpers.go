package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"filesfeed/internal/domain"
	"filesfeed/internal/httputil"
)

// unavailableRetryAfter is the Retry-After hint while the record backend is failing
const unavailableRetryAfter = 30 * time.Second

// handleError converts domain errors to HTTP responses
func handleError(w http.ResponseWriter, logger *slog.Logger, err error) {
	var conflictErr *domain.ConflictError

	switch {
	case errors.Is(err, domain.ErrValidation):
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		httputil.RespondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		httputil.RespondError(w, http.StatusUnauthorized, err.Error())
	case errors.As(err, &conflictErr):
		httputil.RespondErrorWithExtras(w, http.StatusConflict, conflictErr.Error(), map[string]interface{}{
			"resource_type": conflictErr.ResourceType,
			"resource_id":   conflictErr.ResourceID,
		})
	case errors.Is(err, domain.ErrUnavailable):
		httputil.RespondProblem(w, httputil.Problem{
			Status:     http.StatusServiceUnavailable,
			Detail:     "document backend unavailable",
			RetryAfter: unavailableRetryAfter,
		})
	default:
		logger.Error("request failed", "error", err)
		httputil.RespondError(w, http.StatusInternalServerError, "internal server error")
	}
}
