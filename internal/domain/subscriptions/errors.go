package subscriptions

import (
	"fmt"

	"foodgram-go/internal/domain/errs"
)

var (
	ErrAlreadySubscribed = fmt.Errorf("subscription %w", errs.ErrDuplicate)
	ErrNotSubscribed     = fmt.Errorf("subscription %w", errs.ErrNotFound)
	ErrSelfSubscription  = &errs.ValidationError{Field: "author", Message: "cannot subscribe to yourself"}
)
