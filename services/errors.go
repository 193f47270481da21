package services

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"
)

// Shared errors, mapped to HTTP statuses by handlers.mapServiceErrorToHTTP.
var (
	ErrNotFound = errors.New("requested resource not found")

	ErrValidationFailed    = errors.New("validation failed")
	ErrDuplicateAssignment = errors.New("player is already on this tournament's roster")
	ErrStorage             = errors.New("storage failure")

	ErrPlayerEmailConflict  = errors.New("email address is already in use")
	ErrJerseyNumberConflict = errors.New("jersey number is already taken by an active player")
	ErrTeamNameConflict     = errors.New("team name is already in use for this tournament")

	ErrForbiddenOperation = errors.New("operation not allowed for the current user")

	// ErrAuthenticationRequired is the forbidden outcome for anonymous callers.
	ErrAuthenticationRequired = fmt.Errorf("%w: authentication required", ErrForbiddenOperation)

	// Entity-specific not-found errors; each also matches ErrNotFound via errors.Is.
	ErrPlayerNotFound      = fmt.Errorf("player %w", errNotFoundSuffix)
	ErrTournamentNotFound  = fmt.Errorf("tournament %w", errNotFoundSuffix)
	ErrTeamNotFound        = fmt.Errorf("team %w", errNotFoundSuffix)
	ErrRosterEntryNotFound = fmt.Errorf("roster entry %w", errNotFoundSuffix)

	ErrPhotoStorageDisabled = fmt.Errorf("%w: photo storage is not configured", ErrValidationFailed)
)

var errNotFoundSuffix = notFoundError{}

type notFoundError struct{}

func (notFoundError) Error() string { return "not found" }

func (notFoundError) Is(target error) bool { return target == ErrNotFound }

// ValidationError lists field-level problems with an input. It matches ErrValidationFailed.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return ErrValidationFailed.Error()
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return ErrValidationFailed.Error() + ": " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error { return ErrValidationFailed }

func newValidationError(field, message string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: message}}
}

// asValidationError converts ozzo-validation output into a ValidationError.
// Errors that are not field errors (rule misconfiguration) are returned wrapped as-is.
func asValidationError(err error) error {
	if err == nil {
		return nil
	}
	var fieldErrs validation.Errors
	if errors.As(err, &fieldErrs) {
		ve := &ValidationError{Fields: make(map[string]string, len(fieldErrs))}
		for field, ferr := range fieldErrs {
			if ferr != nil {
				ve.Fields[field] = ferr.Error()
			}
		}
		return ve
	}
	return fmt.Errorf("input validation: %w", err)
}
