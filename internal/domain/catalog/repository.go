package catalog

import "context"

type Repository interface {
	Transaction(ctx context.Context, fn func(Repository) error) error
	ListIngredients(ctx context.Context, nameFilter string) ([]Ingredient, error)
	GetIngredient(ctx context.Context, id int64) (*Ingredient, error)
	CreateIngredient(ctx context.Context, ingredient *Ingredient) error
	// InsertIngredientsIgnoringExisting stores the rows whose (name, unit)
	// pair is not in the catalog yet and reports how many were inserted.
	InsertIngredientsIgnoringExisting(ctx context.Context, ingredients []Ingredient) (int, error)
	ListTags(ctx context.Context) ([]Tag, error)
	GetTag(ctx context.Context, id int64) (*Tag, error)
	CreateTag(ctx context.Context, tag *Tag) error
	UpdateTag(ctx context.Context, tag *Tag) error
	DeleteTag(ctx context.Context, id int64) (bool, error)
}
