package recipes

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"foodgram-go/internal/db"
	catalogdomain "foodgram-go/internal/domain/catalog"
	recipesdomain "foodgram-go/internal/domain/recipes"
	userdomain "foodgram-go/internal/domain/user"
	"foodgram-go/internal/repository/postgres/testdb"
	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type fixture struct {
	db      *gorm.DB
	repo    *PostgresRepository
	service *recipesdomain.Service
	flour   catalogdomain.Ingredient
	milk    catalogdomain.Ingredient
	eggs    catalogdomain.Ingredient
	lunch   catalogdomain.Tag
	dinner  catalogdomain.Tag
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	gormDB := testdb.New(t)
	f := &fixture{
		db:     gormDB,
		repo:   NewPostgres(gormDB),
		flour:  catalogdomain.Ingredient{Name: "flour", MeasurementUnit: "g"},
		milk:   catalogdomain.Ingredient{Name: "milk", MeasurementUnit: "ml"},
		eggs:   catalogdomain.Ingredient{Name: "eggs", MeasurementUnit: "pcs"},
		lunch:  catalogdomain.Tag{Name: "Lunch", Color: "#00FF00", Slug: "lunch"},
		dinner: catalogdomain.Tag{Name: "Dinner", Color: "#0000FF", Slug: "dinner"},
	}
	f.service = recipesdomain.NewService(f.repo)

	for _, ingredient := range []*catalogdomain.Ingredient{&f.flour, &f.milk, &f.eggs} {
		require.NoError(t, gormDB.Create(ingredient).Error)
	}
	for _, tag := range []*catalogdomain.Tag{&f.lunch, &f.dinner} {
		require.NoError(t, gormDB.Create(tag).Error)
	}
	for _, profile := range []userdomain.Profile{
		{ID: "alice", Username: "alice", Email: "alice@example.com"},
		{ID: "bob", Username: "bob", Email: "bob@example.com"},
	} {
		profile := profile
		require.NoError(t, gormDB.Create(&profile).Error)
	}
	return f
}

func (f *fixture) createRecipe(t *testing.T, author, name string, tags ...int64) *recipesdomain.Details {
	t.Helper()

	details, err := f.service.CreateRecipe(context.Background(), recipesdomain.CreateRecipeInput{
		AuthorID:    author,
		Name:        name,
		Text:        "mix and bake",
		CookingTime: 30,
		Image:       "data:image/png;base64,AAAA",
		Ingredients: []recipesdomain.IngredientAmount{
			{IngredientID: f.milk.ID, Amount: 200},
			{IngredientID: f.flour.ID, Amount: 150},
		},
		TagIDs: tags,
	})
	require.NoError(t, err)
	return details
}

func TestCreateRecipeRoundTrip(t *testing.T) {
	f := newFixture(t)

	details := f.createRecipe(t, "alice", "Pancakes", f.lunch.ID)
	require.NotZero(t, details.ID)
	assert.Equal(t, "alice", details.Author.ID)
	assert.False(t, details.Author.IsSubscribed)

	require.Len(t, details.Ingredients, 2)
	assert.Equal(t, "milk", details.Ingredients[0].Name)
	assert.Equal(t, 200, details.Ingredients[0].Amount)
	assert.Equal(t, "flour", details.Ingredients[1].Name)

	require.Len(t, details.Tags, 1)
	assert.Equal(t, "lunch", details.Tags[0].Slug)
}

func TestUpdateRecipeReplacesIngredientsAndTags(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	created := f.createRecipe(t, "alice", "Pancakes", f.lunch.ID)

	ingredients := []recipesdomain.IngredientAmount{{IngredientID: f.eggs.ID, Amount: 2}}
	tags := []int64{f.dinner.ID}
	updated, err := f.service.UpdateRecipe(ctx, recipesdomain.UpdateRecipeInput{
		ID:          created.ID,
		ActorID:     "alice",
		Ingredients: &ingredients,
		TagIDs:      &tags,
	})
	require.NoError(t, err)

	require.Len(t, updated.Ingredients, 1)
	assert.Equal(t, "eggs", updated.Ingredients[0].Name)
	require.Len(t, updated.Tags, 1)
	assert.Equal(t, "dinner", updated.Tags[0].Slug)
	assert.Equal(t, "Pancakes", updated.Name)

	var rows int64
	require.NoError(t, f.db.Model(&recipesdomain.RecipeIngredient{}).Where("recipe_id = ?", created.ID).Count(&rows).Error)
	assert.EqualValues(t, 1, rows)
}

func TestCreateRecipeUnknownIngredientWritesNothing(t *testing.T) {
	f := newFixture(t)

	_, err := f.service.CreateRecipe(context.Background(), recipesdomain.CreateRecipeInput{
		AuthorID:    "alice",
		Name:        "Ghost",
		Text:        "nothing",
		CookingTime: 5,
		Ingredients: []recipesdomain.IngredientAmount{{IngredientID: 9999, Amount: 1}},
	})
	require.Error(t, err)

	var count int64
	require.NoError(t, f.db.Model(&recipesdomain.Recipe{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestListRecipesFilters(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first := f.createRecipe(t, "alice", "Soup", f.lunch.ID)
	second := f.createRecipe(t, "bob", "Stew", f.dinner.ID)
	third := f.createRecipe(t, "alice", "Salad", f.lunch.ID, f.dinner.ID)

	// created_at ties are broken by id
	require.NoError(t, f.db.Model(&recipesdomain.Recipe{}).Where("id = ?", first.ID).
		Update("created_at", time.Now().UTC().Add(-time.Hour)).Error)

	all, total, err := f.repo.ListRecipes(ctx, recipesdomain.ListFilter{})
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	require.Len(t, all, 3)
	assert.Equal(t, first.ID, all[2].ID)

	byAuthor, total, err := f.repo.ListRecipes(ctx, recipesdomain.ListFilter{AuthorID: "alice"})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Len(t, byAuthor, 2)

	byTag, total, err := f.repo.ListRecipes(ctx, recipesdomain.ListFilter{TagSlugs: []string{"dinner"}})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.ElementsMatch(t, []int64{second.ID, third.ID}, []int64{byTag[0].ID, byTag[1].ID})

	_, err = f.service.AddFavorite(ctx, "bob", third.ID)
	require.NoError(t, err)
	_, err = f.service.AddToCart(ctx, "bob", first.ID)
	require.NoError(t, err)

	favorites, total, err := f.repo.ListRecipes(ctx, recipesdomain.ListFilter{FavoritedBy: "bob"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Equal(t, third.ID, favorites[0].ID)

	cart, _, err := f.repo.ListRecipes(ctx, recipesdomain.ListFilter{InCartOf: "bob"})
	require.NoError(t, err)
	require.Len(t, cart, 1)
	assert.Equal(t, first.ID, cart[0].ID)

	page, total, err := f.repo.ListRecipes(ctx, recipesdomain.ListFilter{Limit: 1, Offset: 1})
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	assert.Len(t, page, 1)
}

func TestListRecipesHonoursCancelledContext(t *testing.T) {
	f := newFixture(t)
	f.createRecipe(t, "alice", "Soup", f.lunch.ID)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := f.repo.ListRecipes(ctx, recipesdomain.ListFilter{
		TagSlugs:    []string{"lunch"},
		FavoritedBy: "bob",
		InCartOf:    "bob",
	})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFavoriteAndCartMembership(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	recipe := f.createRecipe(t, "alice", "Soup")

	short, err := f.service.AddFavorite(ctx, "bob", recipe.ID)
	require.NoError(t, err)
	assert.Equal(t, "Soup", short.Name)

	_, err = f.service.AddFavorite(ctx, "bob", recipe.ID)
	assert.ErrorIs(t, err, recipesdomain.ErrAlreadyFavorited)

	_, err = f.service.AddToCart(ctx, "bob", recipe.ID)
	require.NoError(t, err)
	_, err = f.service.AddToCart(ctx, "bob", recipe.ID)
	assert.ErrorIs(t, err, recipesdomain.ErrAlreadyInCart)

	viewed, err := f.service.GetRecipe(ctx, "bob", recipe.ID)
	require.NoError(t, err)
	assert.True(t, viewed.IsFavorited)
	assert.True(t, viewed.IsInShoppingCart)

	anonymous, err := f.service.GetRecipe(ctx, "", recipe.ID)
	require.NoError(t, err)
	assert.False(t, anonymous.IsFavorited)

	require.NoError(t, f.service.RemoveFavorite(ctx, "bob", recipe.ID))
	assert.ErrorIs(t, f.service.RemoveFavorite(ctx, "bob", recipe.ID), recipesdomain.ErrNotFavorited)
	require.NoError(t, f.service.RemoveFromCart(ctx, "bob", recipe.ID))
	assert.ErrorIs(t, f.service.RemoveFromCart(ctx, "bob", recipe.ID), recipesdomain.ErrNotInCart)
}

func TestDeleteRecipeRemovesRelations(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	recipe := f.createRecipe(t, "alice", "Soup", f.lunch.ID)
	_, err := f.service.AddFavorite(ctx, "bob", recipe.ID)
	require.NoError(t, err)

	assert.ErrorIs(t, f.service.DeleteRecipe(ctx, "bob", recipe.ID), recipesdomain.ErrNotAuthor)
	require.NoError(t, f.service.DeleteRecipe(ctx, "alice", recipe.ID))

	_, err = f.service.GetRecipe(ctx, "alice", recipe.ID)
	assert.ErrorIs(t, err, recipesdomain.ErrRecipeNotFound)

	for _, model := range []interface{}{
		&recipesdomain.RecipeIngredient{},
		&recipesdomain.RecipeTag{},
		&recipesdomain.Favorite{},
	} {
		var count int64
		require.NoError(t, f.db.Model(model).Where("recipe_id = ?", recipe.ID).Count(&count).Error)
		assert.Zero(t, count)
	}
}

func TestTransactionRollsBackOnIngredientFailure(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), db.GormConfig())
	require.NoError(t, err)
	repo := NewPostgres(gormDB)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "recipes"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "recipe_ingredients"`)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "recipe_ingredients"`)).
		WillReturnError(errors.New("connection reset"))
	mock.ExpectRollback()

	err = repo.Transaction(context.Background(), func(tx recipesdomain.Repository) error {
		recipe := recipesdomain.Recipe{AuthorID: "alice", Name: "Soup", Text: "boil", CookingTime: 10}
		if err := tx.CreateRecipe(context.Background(), &recipe); err != nil {
			return err
		}
		return tx.ReplaceIngredients(context.Background(), recipe.ID, []recipesdomain.RecipeIngredient{
			{IngredientID: 1, Amount: 5},
		})
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection reset")
	assert.NoError(t, mock.ExpectationsWereMet())
}
