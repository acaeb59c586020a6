package recipes

import (
	"fmt"

	"foodgram-go/internal/domain/errs"
)

var (
	ErrRecipeNotFound   = fmt.Errorf("recipe %w", errs.ErrNotFound)
	ErrNotAuthor        = fmt.Errorf("only the author can change a recipe: %w", errs.ErrForbidden)
	ErrAlreadyFavorited = fmt.Errorf("recipe in favorites %w", errs.ErrDuplicate)
	ErrNotFavorited     = fmt.Errorf("favorite %w", errs.ErrNotFound)
	ErrAlreadyInCart    = fmt.Errorf("recipe in shopping cart %w", errs.ErrDuplicate)
	ErrNotInCart        = fmt.Errorf("shopping cart item %w", errs.ErrNotFound)
)
