package catalog

import (
	"context"
	"regexp"
	"testing"

	"foodgram-go/internal/db"
	catalogdomain "foodgram-go/internal/domain/catalog"
	"foodgram-go/internal/repository/postgres/testdb"
	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func TestIngredientsFilterAndOrder(t *testing.T) {
	repo := NewPostgres(testdb.New(t))
	ctx := context.Background()

	for _, ingredient := range []catalogdomain.Ingredient{
		{Name: "sugar", MeasurementUnit: "g"},
		{Name: "brown Sugar", MeasurementUnit: "g"},
		{Name: "salt", MeasurementUnit: "g"},
	} {
		ingredient := ingredient
		require.NoError(t, repo.CreateIngredient(ctx, &ingredient))
		require.NotZero(t, ingredient.ID)
	}

	all, err := repo.ListIngredients(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "brown Sugar", all[0].Name)

	filtered, err := repo.ListIngredients(ctx, "sug")
	require.NoError(t, err)
	assert.Len(t, filtered, 2)

	_, err = repo.GetIngredient(ctx, 999)
	assert.ErrorIs(t, err, catalogdomain.ErrIngredientNotFound)
}

func TestIngredientsFilterIsLiteral(t *testing.T) {
	repo := NewPostgres(testdb.New(t))
	ctx := context.Background()

	for _, ingredient := range []catalogdomain.Ingredient{
		{Name: "flour", MeasurementUnit: "g"},
		{Name: "milk", MeasurementUnit: "ml"},
		{Name: "Мука ржаная", MeasurementUnit: "г"},
	} {
		ingredient := ingredient
		require.NoError(t, repo.CreateIngredient(ctx, &ingredient))
	}

	for _, filter := range []string{"%", "_", `\`} {
		items, err := repo.ListIngredients(ctx, filter)
		require.NoError(t, err)
		assert.Empty(t, items, "filter %q", filter)
	}

	items, err := repo.ListIngredients(ctx, "мука")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Мука ржаная", items[0].Name)
}

func TestIngredientsFilterEscapesLikePattern(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), db.GormConfig())
	require.NoError(t, err)
	repo := NewPostgres(gormDB)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "ingredients" WHERE LOWER(name) LIKE $1 ESCAPE '\'`)).
		WithArgs(`%50\%\_off%`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "measurement_unit"}))

	items, err := repo.ListIngredients(context.Background(), "50%_OFF")
	require.NoError(t, err)
	assert.Empty(t, items)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateIngredientDuplicate(t *testing.T) {
	repo := NewPostgres(testdb.New(t))
	ctx := context.Background()

	require.NoError(t, repo.CreateIngredient(ctx, &catalogdomain.Ingredient{Name: "milk", MeasurementUnit: "ml"}))
	err := repo.CreateIngredient(ctx, &catalogdomain.Ingredient{Name: "milk", MeasurementUnit: "ml"})
	assert.ErrorIs(t, err, catalogdomain.ErrIngredientExists)

	require.NoError(t, repo.CreateIngredient(ctx, &catalogdomain.Ingredient{Name: "milk", MeasurementUnit: "cup"}))
}

func TestInsertIngredientsIgnoringExisting(t *testing.T) {
	repo := NewPostgres(testdb.New(t))
	ctx := context.Background()

	require.NoError(t, repo.CreateIngredient(ctx, &catalogdomain.Ingredient{Name: "milk", MeasurementUnit: "ml"}))

	created, err := repo.InsertIngredientsIgnoringExisting(ctx, []catalogdomain.Ingredient{
		{Name: "milk", MeasurementUnit: "ml"},
		{Name: "eggs", MeasurementUnit: "pcs"},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, created)

	all, err := repo.ListIngredients(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestTagUniquenessAndDelete(t *testing.T) {
	repo := NewPostgres(testdb.New(t))
	ctx := context.Background()

	breakfast := catalogdomain.Tag{Name: "Breakfast", Color: "#111111", Slug: "breakfast"}
	require.NoError(t, repo.CreateTag(ctx, &breakfast))

	for _, tag := range []catalogdomain.Tag{
		{Name: "Breakfast", Color: "#222222", Slug: "other"},
		{Name: "Other", Color: "#111111", Slug: "other"},
		{Name: "Other", Color: "#222222", Slug: "breakfast"},
	} {
		tag := tag
		assert.ErrorIs(t, repo.CreateTag(ctx, &tag), catalogdomain.ErrTagExists)
	}

	dinner := catalogdomain.Tag{Name: "Dinner", Color: "#333333", Slug: "dinner"}
	require.NoError(t, repo.CreateTag(ctx, &dinner))
	dinner.Slug = "breakfast"
	assert.ErrorIs(t, repo.UpdateTag(ctx, &dinner), catalogdomain.ErrTagExists)

	deleted, err := repo.DeleteTag(ctx, breakfast.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = repo.DeleteTag(ctx, breakfast.ID)
	require.NoError(t, err)
	assert.False(t, deleted)

	tags, err := repo.ListTags(ctx)
	require.NoError(t, err)
	require.Len(t, tags, 1)
	assert.Equal(t, "dinner", tags[0].Slug)
}
