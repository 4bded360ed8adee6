package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mkaran/planetary-api/internal/model"
	"github.com/mkaran/planetary-api/internal/services/auth"
	"github.com/mkaran/planetary-api/internal/services/planet"
)

// errorBody is the JSON error envelope: a message and a status code,
// nothing storage-specific ever leaks through here.
type errorBody struct {
	Message string `json:"message"`
}

// httpError combines an HTTP status code with a client-facing message
type httpError struct {
	status  int
	message string
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(errorBody{Message: he.message})
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	switch {
	// NotFound
	case errors.Is(err, model.ErrPlanetNotFound):
		return &httpError{http.StatusNotFound, "Planet does not exist"}
	case errors.Is(err, model.ErrUserNotFound):
		return &httpError{http.StatusNotFound, "User does not exist"}
	case errors.Is(err, model.ErrHomestarNotFound):
		return &httpError{http.StatusNotFound, "Homestar link does not exist"}

	// Conflict
	case errors.Is(err, model.ErrEmailTaken):
		return &httpError{http.StatusConflict, "Email address already registered"}
	case errors.Is(err, model.ErrFirstNameTaken):
		return &httpError{http.StatusConflict, "First name already registered"}
	case errors.Is(err, model.ErrPlanetNameTaken):
		return &httpError{http.StatusConflict, "Planet already exists"}
	case errors.Is(err, model.ErrHomestarExists):
		return &httpError{http.StatusConflict, "Homestar link already exists"}

	// Validation
	case errors.Is(err, planet.ErrSelfOrbit):
		return &httpError{http.StatusBadRequest, "A planet cannot orbit itself"}

	// Unauthorized. Credential failures share one message so callers
	// cannot probe which field was wrong.
	case errors.Is(err, auth.ErrInvalidCredentials):
		return &httpError{http.StatusUnauthorized, "Unregistered email or incorrect password"}
	case errors.Is(err, auth.ErrInvalidToken):
		return &httpError{http.StatusUnauthorized, "Invalid or expired token"}
	case errors.Is(err, auth.ErrInvalidResetToken):
		return &httpError{http.StatusUnauthorized, "Invalid or expired reset token"}

	default:
		return &httpError{http.StatusInternalServerError, "Internal server error"}
	}
}

// NewValidationError creates a 400 error for a malformed request
func NewValidationError(message string) error {
	return &httpError{http.StatusBadRequest, message}
}

// NewUnauthorizedError creates a 401 error
func NewUnauthorizedError(message string) error {
	return &httpError{http.StatusUnauthorized, message}
}

// NewInternalError creates a 500 error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, "Internal server error"}
}
