package catalog

import (
	"fmt"

	"foodgram-go/internal/domain/errs"
)

var (
	ErrIngredientNotFound = fmt.Errorf("ingredient %w", errs.ErrNotFound)
	ErrIngredientExists   = fmt.Errorf("ingredient %w", errs.ErrDuplicate)
	ErrTagNotFound        = fmt.Errorf("tag %w", errs.ErrNotFound)
	ErrTagExists          = fmt.Errorf("tag with this name, color or slug %w", errs.ErrDuplicate)
)
