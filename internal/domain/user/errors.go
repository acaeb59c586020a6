package user

import (
	"fmt"

	"foodgram-go/internal/domain/errs"
)

var ErrUserNotFound = fmt.Errorf("user %w", errs.ErrNotFound)
