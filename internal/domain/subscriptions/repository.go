package subscriptions

import (
	"context"

	"foodgram-go/internal/domain/recipes"
	"foodgram-go/internal/domain/user"
)

type Repository interface {
	GetProfile(ctx context.Context, id string) (*user.Profile, error)
	CreateSubscription(ctx context.Context, subscription *Subscription) error
	DeleteSubscription(ctx context.Context, subscriberID, authorID string) (bool, error)
	SubscribedAmong(ctx context.Context, subscriberID string, authorIDs []string) (map[string]bool, error)
	ListAuthors(ctx context.Context, subscriberID string, page user.Page) ([]user.Profile, int64, error)
	ListFollowers(ctx context.Context, authorID string, page user.Page) ([]user.Profile, int64, error)
	CountRecipes(ctx context.Context, authorIDs []string) (map[string]int64, error)
	// RecentRecipes returns up to perAuthor newest recipes for every author;
	// perAuthor <= 0 means no limit.
	RecentRecipes(ctx context.Context, authorIDs []string, perAuthor int) (map[string][]recipes.Short, error)
}
