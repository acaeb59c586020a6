package shopping

import "context"

type Repository interface {
	ListCartLines(ctx context.Context, userID string) ([]Line, error)
}
