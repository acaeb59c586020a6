package subscriptions

import (
	"time"

	"foodgram-go/internal/domain/recipes"
	"foodgram-go/internal/domain/user"
)

// Subscription is a directed edge from a follower to an author.
type Subscription struct {
	SubscriberID string    `gorm:"primaryKey"`
	AuthorID     string    `gorm:"primaryKey;index;check:subscriptions_no_self,subscriber_id <> author_id"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
}

// AuthorView is a user together with a preview of their recipes.
type AuthorView struct {
	user.Profile
	IsSubscribed bool
	RecipesCount int64
	Recipes      []recipes.Short
}

type ListInput struct {
	UserID string
	Page   user.Page
	// ViewerID decides IsSubscribed on every listed user.
	ViewerID string
	// RecipesLimit caps the recipe preview per listed user; zero or less
	// returns every recipe.
	RecipesLimit int
}
