// Package errs defines the error kinds shared by the domain packages.
// Domain errors wrap one of the kinds so callers can classify them with
// errors.Is without knowing every concrete error.
package errs

import (
	"errors"
	"fmt"
)

var (
	ErrValidation = errors.New("invalid input")
	ErrDuplicate  = errors.New("already exists")
	ErrNotFound   = errors.New("not found")
	ErrForbidden  = errors.New("forbidden")
)

// ValidationError reports a rejected input field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func Invalid(field, format string, args ...any) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// Fields extracts every ValidationError carried by err, including errors
// joined with errors.Join or multierr.
func Fields(err error) []ValidationError {
	var result []ValidationError
	collectFields(err, &result)
	return result
}

func collectFields(err error, result *[]ValidationError) {
	if err == nil {
		return
	}
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		for _, inner := range joined.Unwrap() {
			collectFields(inner, result)
		}
		return
	}
	var verr *ValidationError
	if errors.As(err, &verr) {
		*result = append(*result, *verr)
	}
}
