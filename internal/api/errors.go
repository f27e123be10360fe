package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/shoresh/familytree-api/internal/api/shared"
	"github.com/shoresh/familytree-api/internal/domain"
	"github.com/shoresh/familytree-api/internal/domain/calendar"
	"github.com/shoresh/familytree-api/internal/service"
	"github.com/shoresh/familytree-api/internal/service/auth"
	"github.com/shoresh/familytree-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to HTTP status codes without
// exposing internal error types to clients.
func MapErrorToStatusCode(err error) int {
	var validationErrs validator.ValidationErrors

	switch {
	case err == nil:
		return http.StatusOK

	// Authentication errors
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrMissingToken),
		errors.Is(err, auth.ErrInvalidCredentials):
		return http.StatusUnauthorized

	// Authorization errors
	case errors.Is(err, auth.ErrWrongRole):
		return http.StatusForbidden

	// Not found errors
	case errors.Is(err, service.ErrPersonNotFound),
		errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	// Conflict errors
	case errors.Is(err, service.ErrSpouseTaken),
		errors.Is(err, store.ErrDuplicate):
		return http.StatusConflict

	// Bad request errors
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidID),
		errors.Is(err, calendar.ErrDateParse),
		errors.Is(err, calendar.ErrInvalidMonth),
		errors.Is(err, store.ErrInvalidEntity),
		errors.Is(err, shared.ErrEmptyBody),
		errors.As(err, &validationErrs):
		return http.StatusBadRequest

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a client-facing message for err. Validation
// and date messages only echo what the client sent; everything else is
// replaced by a fixed text.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	var (
		validationErrs validator.ValidationErrors
		fieldErr       *domain.ValidationError
		dateErr        *calendar.DateError
	)

	switch {
	case errors.Is(err, auth.ErrInvalidCredentials):
		return "Invalid credentials"
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrMissingToken):
		return "Invalid token"
	case errors.Is(err, auth.ErrWrongRole):
		return "Editor access required"

	case errors.Is(err, service.ErrPersonNotFound),
		errors.Is(err, store.ErrNotFound):
		return "Person not found"

	case errors.Is(err, service.ErrSpouseTaken):
		return "Spouse is already married to someone else"
	case errors.Is(err, store.ErrDuplicate):
		return "Person already exists"

	case errors.As(err, &validationErrs):
		return SanitizeValidationError(err)
	case errors.Is(err, domain.ErrSelfReference):
		return "A person cannot be their own relative"
	case errors.As(err, &fieldErr):
		return fmt.Sprintf("Invalid %s: %s", fieldErr.Field, fieldErr.Message)
	case errors.As(err, &dateErr):
		return fmt.Sprintf("Invalid date %q: %s", dateErr.Input, dateErrorReason(dateErr))
	case errors.Is(err, shared.ErrEmptyBody):
		return "Request body is required"
	case errors.Is(err, store.ErrInvalidEntity):
		return "Invalid person data"
	}

	return "An unexpected error occurred"
}

func dateErrorReason(err *calendar.DateError) string {
	if errors.Is(err, calendar.ErrInvalidMonth) {
		return "Adar I and Adar II exist only in leap years"
	}
	if err.Reason != "" {
		return err.Reason
	}
	return "unrecognized date"
}

// SanitizeValidationError turns validator errors into a short message naming
// the first failing field by its JSON name.
func SanitizeValidationError(err error) string {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) || len(validationErrs) == 0 {
		return "Validation error"
	}

	fe := validationErrs[0]
	field := fe.Namespace()
	// Drop the struct name: "CreatePersonRequest.birth.gregorian" -> "birth.gregorian".
	if _, rest, found := strings.Cut(field, "."); found {
		field = rest
	}
	return fmt.Sprintf("Invalid %s: %s", field, getValidationTagMessage(fe.Tag()))
}

// getValidationTagMessage maps validation tags to user-friendly error messages
func getValidationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "email":
		return "invalid email format"
	case "uuid", "uuid4":
		return "invalid ID"
	case "min", "gte":
		return "too small"
	case "max", "lte":
		return "too large"
	case "oneof":
		return "invalid value"
	default:
		return "validation failed"
	}
}

// HandleAPIError writes the status and safe message for err and logs the
// redacted error. fallback replaces the generic 500 message when set.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	status := MapErrorToStatusCode(err)
	message := GetSafeErrorMessage(err)
	if status == http.StatusInternalServerError && fallback != "" {
		message = fallback
	}
	shared.RespondWithErrorAndLog(w, r, status, message, err)
}
