package recipes

import (
	"context"

	"foodgram-go/internal/domain/catalog"
	"foodgram-go/internal/domain/user"
)

type Repository interface {
	Transaction(ctx context.Context, fn func(Repository) error) error

	CreateRecipe(ctx context.Context, recipe *Recipe) error
	UpdateRecipe(ctx context.Context, recipe *Recipe) error
	GetRecipe(ctx context.Context, id int64) (*Recipe, error)
	DeleteRecipe(ctx context.Context, id int64) (bool, error)
	ListRecipes(ctx context.Context, filter ListFilter) ([]Recipe, int64, error)

	ReplaceIngredients(ctx context.Context, recipeID int64, items []RecipeIngredient) error
	SetTags(ctx context.Context, recipeID int64, tagIDs []int64) error
	CountIngredientsByIDs(ctx context.Context, ids []int64) (int64, error)
	CountTagsByIDs(ctx context.Context, ids []int64) (int64, error)

	GetIngredientLines(ctx context.Context, recipeIDs []int64) (map[int64][]IngredientLine, error)
	GetTags(ctx context.Context, recipeIDs []int64) (map[int64][]catalog.Tag, error)
	GetAuthors(ctx context.Context, authorIDs []string) (map[string]user.Profile, error)
	FavoritedAmong(ctx context.Context, userID string, recipeIDs []int64) (map[int64]bool, error)
	InCartAmong(ctx context.Context, userID string, recipeIDs []int64) (map[int64]bool, error)
	SubscribedAmong(ctx context.Context, subscriberID string, authorIDs []string) (map[string]bool, error)

	AddFavorite(ctx context.Context, favorite *Favorite) error
	RemoveFavorite(ctx context.Context, userID string, recipeID int64) (bool, error)
	AddCartItem(ctx context.Context, item *CartItem) error
	RemoveCartItem(ctx context.Context, userID string, recipeID int64) (bool, error)
}
