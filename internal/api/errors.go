package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/shelf/internal/api/shared"
	"github.com/phrazzld/shelf/internal/service"
	"github.com/phrazzld/shelf/internal/store"
)

// errBadPath is returned when a path parameter is not a positive integer.
var errBadPath = errors.New("invalid path parameter")

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	var validationErrs validator.ValidationErrors
	switch {
	case errors.Is(err, service.ErrInvalidInput),
		errors.Is(err, errBadPath),
		errors.As(err, &validationErrs):
		return http.StatusBadRequest

	case errors.Is(err, service.ErrBookNotFound),
		errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrLoanNotFound):
		return http.StatusNotFound

	case errors.Is(err, service.ErrUnavailable),
		errors.Is(err, service.ErrAlreadyReturned),
		errors.Is(err, store.ErrDuplicate):
		return http.StatusConflict

	// The store refused the row, e.g. a loan for a user that does not exist.
	case errors.Is(err, store.ErrInvalidEntity):
		return http.StatusUnprocessableEntity

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	var validationErrs validator.ValidationErrors
	switch {
	case errors.As(err, &validationErrs):
		return SanitizeValidationError(validationErrs)
	case errors.Is(err, errBadPath):
		return "Invalid ID"
	case errors.Is(err, service.ErrInvalidInput):
		return strings.TrimPrefix(err.Error(), service.ErrInvalidInput.Error()+": ")
	case errors.Is(err, service.ErrBookNotFound):
		return "Book not found"
	case errors.Is(err, service.ErrUserNotFound):
		return "User not found"
	case errors.Is(err, service.ErrLoanNotFound):
		return "Transaction not found"
	case errors.Is(err, service.ErrUnavailable):
		return "Book not available"
	case errors.Is(err, service.ErrAlreadyReturned):
		return "Book already returned"
	case errors.Is(err, store.ErrDuplicate):
		return "Entity already exists"
	case errors.Is(err, store.ErrInvalidEntity):
		return "Referenced user or book does not exist"
	default:
		return "An unexpected error occurred"
	}
}

// HandleAPIError writes the status and safe message for err. Server errors
// are logged with the full error.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error) {
	shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
}

// SanitizeValidationError turns validator errors into one user-friendly
// message naming the first failing field.
func SanitizeValidationError(errs validator.ValidationErrors) string {
	if len(errs) == 0 {
		return "Validation error"
	}
	fe := errs[0]
	return fmt.Sprintf("Invalid %s: %s", strings.ToLower(fe.Field()), getValidationTagMessage(fe.Tag()))
}

// getValidationTagMessage maps validation tags to user-friendly error messages
func getValidationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "email":
		return "invalid email format"
	case "gt", "gte":
		return "out of range"
	case "max":
		return "too long"
	default:
		return "validation failed"
	}
}
