package recipes

import (
	"time"

	"foodgram-go/internal/domain/catalog"
	"foodgram-go/internal/domain/user"
)

const (
	MinCookingTime = 1
	MaxCookingTime = 4320
	maxNameLen     = 64
)

type Recipe struct {
	ID          int64     `gorm:"primaryKey"`
	AuthorID    string    `gorm:"not null;index"`
	Name        string    `gorm:"size:64;not null"`
	Text        string    `gorm:"type:text;not null"`
	CookingTime int       `gorm:"not null;check:recipes_cooking_time_range,cooking_time BETWEEN 1 AND 4320"`
	Image       string    `gorm:"type:text;not null"`
	CreatedAt   time.Time `gorm:"autoCreateTime;index"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`
}

// RecipeIngredient is one (recipe, ingredient) row. Position keeps the order
// in which the author listed the ingredients.
type RecipeIngredient struct {
	RecipeID     int64 `gorm:"primaryKey;autoIncrement:false"`
	IngredientID int64 `gorm:"primaryKey;autoIncrement:false"`
	Amount       int   `gorm:"not null;check:recipe_ingredients_amount_positive,amount > 0"`
	Position     int   `gorm:"not null"`
}

type RecipeTag struct {
	RecipeID int64 `gorm:"primaryKey;autoIncrement:false"`
	TagID    int64 `gorm:"primaryKey;autoIncrement:false"`
}

type Favorite struct {
	UserID    string    `gorm:"primaryKey"`
	RecipeID  int64     `gorm:"primaryKey;autoIncrement:false"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

type CartItem struct {
	UserID    string    `gorm:"primaryKey"`
	RecipeID  int64     `gorm:"primaryKey;autoIncrement:false"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

// IngredientLine is an ingredient row joined with its catalog entry.
type IngredientLine struct {
	RecipeID        int64  `gorm:"column:recipe_id"`
	IngredientID    int64  `gorm:"column:ingredient_id"`
	Name            string `gorm:"column:name"`
	MeasurementUnit string `gorm:"column:measurement_unit"`
	Amount          int    `gorm:"column:amount"`
}

type Author struct {
	user.Profile
	IsSubscribed bool
}

// Details is a recipe as seen by a particular viewer.
type Details struct {
	Recipe
	Author           Author
	Tags             []catalog.Tag
	Ingredients      []IngredientLine
	IsFavorited      bool
	IsInShoppingCart bool
}

// Short is the compact projection used by favorites, cart and subscriptions.
type Short struct {
	ID          int64  `gorm:"column:id"`
	AuthorID    string `gorm:"column:author_id"`
	Name        string `gorm:"column:name"`
	Image       string `gorm:"column:image"`
	CookingTime int    `gorm:"column:cooking_time"`
}

func (r Recipe) Short() Short {
	return Short{ID: r.ID, AuthorID: r.AuthorID, Name: r.Name, Image: r.Image, CookingTime: r.CookingTime}
}

type ListFilter struct {
	AuthorID string
	TagSlugs []string
	// FavoritedBy and InCartOf restrict the list to one user's sets.
	FavoritedBy string
	InCartOf    string
	Limit       int
	Offset      int
}

type IngredientAmount struct {
	IngredientID int64
	Amount       int
}

type CreateRecipeInput struct {
	AuthorID    string
	Name        string
	Text        string
	CookingTime int
	Image       string
	Ingredients []IngredientAmount
	TagIDs      []int64
}

// UpdateRecipeInput patches a recipe. Nil fields are left untouched; a non-nil
// Ingredients slice replaces every ingredient row of the recipe.
type UpdateRecipeInput struct {
	ID          int64
	ActorID     string
	Name        *string
	Text        *string
	CookingTime *int
	Image       *string
	Ingredients *[]IngredientAmount
	TagIDs      *[]int64
}
