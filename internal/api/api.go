// Package api exposes the user and piu services over HTTP. Handlers parse
// and pre-validate requests, delegate to the services, and map domain
// errors to status codes. The error messages themselves come verbatim from
// the domain sentinels.
package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/render"

	"github.com/felipe-lpz/piupiuwer/internal/domain"
)

// MessageResponse is the error body shape: {"message": "..."}.
type MessageResponse struct {
	Message string `json:"message"`
}

func renderError(w http.ResponseWriter, r *http.Request, err error) {
	render.Status(r, statusFor(err))
	render.JSON(w, r, MessageResponse{Message: err.Error()})
}

// statusFor maps domain errors to HTTP status codes: not-found errors
// become 404, every other domain rule violation is a 400.
func statusFor(err error) int {
	if errors.Is(err, domain.ErrUserNotFound) || errors.Is(err, domain.ErrPiuNotFound) {
		return http.StatusNotFound
	}
	return http.StatusBadRequest
}

// parseBirth accepts either a full RFC 3339 timestamp or a bare
// YYYY-MM-DD date.
func parseBirth(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}
