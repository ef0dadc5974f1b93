package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/tasktrail/tasktrail-api/internal/domain"
)

// Pagination defaults for list endpoints.
const (
	defaultListSkip  = 0
	defaultListLimit = 100
)

// getPathUUID extracts a UUID from the URL path parameters.
// Returns a ValidationError if the parameter is missing or malformed.
func getPathUUID(r *http.Request, paramName string) (uuid.UUID, error) {
	pathParam := chi.URLParam(r, paramName)
	if pathParam == "" {
		return uuid.Nil, domain.NewValidationError(paramName, "is required", domain.ErrValidation)
	}

	id, err := uuid.Parse(pathParam)
	if err != nil {
		return uuid.Nil, domain.NewValidationError(paramName, "has invalid format", domain.ErrInvalidID)
	}

	return id, nil
}

// getQueryInt reads an integer query parameter, falling back to def when the
// parameter is absent. Non-numeric or negative values yield a ValidationError;
// negative pagination values are rejected at this boundary rather than being
// clamped further down.
func getQueryInt(r *http.Request, name string, def int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}

	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, domain.NewValidationError(name, "must be an integer", domain.ErrValidation)
	}
	if value < 0 {
		return 0, domain.NewValidationError(name, "must not be negative", domain.ErrValidation)
	}

	return value, nil
}
