package errs

import (
	"errors"
	"fmt"
	"testing"

	"go.uber.org/multierr"
)

func TestValidationErrorMatchesKind(t *testing.T) {
	err := fmt.Errorf("create recipe: %w", Invalid("cooking_time", "must be between %d and %d", 1, 4320))
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	if errors.Is(err, ErrNotFound) {
		t.Fatalf("did not expect ErrNotFound")
	}
	if err.Error() != "create recipe: cooking_time: must be between 1 and 4320" {
		t.Fatalf("unexpected message %q", err.Error())
	}
}

func TestFieldsCollectsJoinedErrors(t *testing.T) {
	err := multierr.Combine(
		Invalid("name", "is required"),
		errors.New("unrelated"),
		fmt.Errorf("row 2: %w", Invalid("measurement_unit", "is required")),
	)

	fields := Fields(err)
	if len(fields) != 2 {
		t.Fatalf("expected 2 fields, got %+v", fields)
	}
	if fields[0].Field != "name" || fields[1].Field != "measurement_unit" {
		t.Fatalf("unexpected fields %+v", fields)
	}
}
