package shopping

import (
	"context"
	"testing"

	catalogdomain "foodgram-go/internal/domain/catalog"
	recipesdomain "foodgram-go/internal/domain/recipes"
	shoppingdomain "foodgram-go/internal/domain/shopping"
	"foodgram-go/internal/repository/postgres/testdb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedRecipe(t *testing.T, gormDB *gorm.DB, name string, amounts map[int64]int) recipesdomain.Recipe {
	t.Helper()

	recipe := recipesdomain.Recipe{AuthorID: "alice", Name: name, Text: "cook", CookingTime: 10}
	require.NoError(t, gormDB.Create(&recipe).Error)
	position := 0
	for ingredientID, amount := range amounts {
		require.NoError(t, gormDB.Create(&recipesdomain.RecipeIngredient{
			RecipeID:     recipe.ID,
			IngredientID: ingredientID,
			Amount:       amount,
			Position:     position,
		}).Error)
		position++
	}
	return recipe
}

func TestDownloadAggregatesCart(t *testing.T) {
	gormDB := testdb.New(t)
	ctx := context.Background()

	flour := catalogdomain.Ingredient{Name: "flour", MeasurementUnit: "g"}
	milkMl := catalogdomain.Ingredient{Name: "milk", MeasurementUnit: "ml"}
	milkCup := catalogdomain.Ingredient{Name: "milk", MeasurementUnit: "cup"}
	for _, ingredient := range []*catalogdomain.Ingredient{&flour, &milkMl, &milkCup} {
		require.NoError(t, gormDB.Create(ingredient).Error)
	}

	pancakes := seedRecipe(t, gormDB, "Pancakes", map[int64]int{flour.ID: 200, milkMl.ID: 300})
	bread := seedRecipe(t, gormDB, "Bread", map[int64]int{flour.ID: 500, milkCup.ID: 1})
	seedRecipe(t, gormDB, "Not in cart", map[int64]int{flour.ID: 1000})

	for _, recipe := range []recipesdomain.Recipe{pancakes, bread} {
		require.NoError(t, gormDB.Create(&recipesdomain.CartItem{UserID: "bob", RecipeID: recipe.ID}).Error)
	}

	repo := NewPostgres(gormDB)
	lines, err := repo.ListCartLines(ctx, "bob")
	require.NoError(t, err)
	assert.Len(t, lines, 4)

	renderer, err := shoppingdomain.NewRenderer("")
	require.NoError(t, err)
	svc := shoppingdomain.NewService(repo, renderer, "")

	doc, err := svc.Download(ctx, "bob")
	require.NoError(t, err)
	assert.Equal(t, shoppingdomain.DefaultFilename, doc.Filename)
	assert.Equal(t, "flour (g) — 700\nmilk (cup) — 1\nmilk (ml) — 300", string(doc.Body))

	empty, err := svc.Download(ctx, "carol")
	require.NoError(t, err)
	assert.Empty(t, empty.Body)
}
