package api

import (
	"errors"
	"net/http"

	"github.com/calref/user-api/internal/api/shared"
	"github.com/calref/user-api/internal/store"
)

// MapErrorToStatusCode maps service-layer errors to HTTP status codes.
// Anything without a specific mapping is treated as a persistence failure,
// which is what an unclassified error from the store layer is here.
func MapErrorToStatusCode(err error) int {
	switch {
	case store.IsNotFoundError(err):
		return http.StatusNotFound
	case store.IsDuplicateError(err):
		// Duplicate email is surfaced as 400, matching the API contract.
		return http.StatusBadRequest
	case errors.Is(err, store.ErrInvalidEntity):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns the client-visible detail for an error.
// Raw error text is never exposed; unknown failures collapse into a
// generic database error message.
func GetSafeErrorMessage(err error) string {
	switch {
	case errors.Is(err, store.ErrUserNotFound):
		return "User not found"
	case errors.Is(err, store.ErrEmailExists):
		return "Email already registered"
	case errors.Is(err, store.ErrInvalidEntity):
		return "Invalid user data"
	default:
		return "Database error occurred"
	}
}

// errorCode returns the envelope error code for a mapped service error.
func errorCode(err error, status int) string {
	switch {
	case errors.Is(err, store.ErrInvalidEntity):
		return shared.ErrorCodeValidation
	case status >= http.StatusInternalServerError:
		return shared.ErrorCodeDatabase
	default:
		return shared.HTTPErrorCode(status)
	}
}

// respondServiceError writes the envelope for an error returned by the
// service layer, logging the underlying cause server-side.
func respondServiceError(w http.ResponseWriter, r *http.Request, err error) {
	status := MapErrorToStatusCode(err)
	shared.RespondWithErrorAndLog(w, r, status,
		GetSafeErrorMessage(err), errorCode(err, status), err)
}
