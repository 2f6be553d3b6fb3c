// internal/api/response.go
package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	custom_errors "github-repo-explorer/internal/errors"
)

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(response)
}

func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, map[string]string{"error": message})
}

// statusFor maps a service error to its HTTP status.
func statusFor(err error) int {
	var (
		searchErr  *custom_errors.SearchError
		invalidErr *custom_errors.ErrInvalidParameter
	)
	switch {
	case errors.As(err, &invalidErr):
		return http.StatusBadRequest
	case errors.Is(err, custom_errors.ErrNotFound):
		return http.StatusNotFound
	case errors.As(err, &searchErr):
		switch searchErr.Kind {
		case custom_errors.KindRateLimit:
			return http.StatusTooManyRequests
		case custom_errors.KindInvalidQuery:
			if searchErr.StatusCode == http.StatusUnprocessableEntity {
				return http.StatusUnprocessableEntity
			}
			return http.StatusBadRequest
		case custom_errors.KindConnectivity:
			return http.StatusServiceUnavailable
		case custom_errors.KindFetch:
			if searchErr.StatusCode == http.StatusNotFound {
				return http.StatusNotFound
			}
			return http.StatusBadGateway
		default:
			return http.StatusBadGateway
		}
	default:
		return http.StatusInternalServerError
	}
}

// respondWithServiceError writes err with its mapped status. Internal errors are logged
// and replaced by a generic message.
func respondWithServiceError(w http.ResponseWriter, logger *slog.Logger, err error) {
	code := statusFor(err)
	if code == http.StatusInternalServerError {
		logger.Error("Request failed", "error", err)
		respondWithError(w, code, "Internal server error")
		return
	}
	respondWithError(w, code, err.Error())
}
