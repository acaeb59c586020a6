package recipes

import (
	"context"
	"errors"
	"time"

	catalogdomain "foodgram-go/internal/domain/catalog"
	recipesdomain "foodgram-go/internal/domain/recipes"
	userdomain "foodgram-go/internal/domain/user"
	"gorm.io/gorm"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Transaction(ctx context.Context, fn func(recipesdomain.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&PostgresRepository{db: tx})
	})
}

func (r *PostgresRepository) CreateRecipe(ctx context.Context, recipe *recipesdomain.Recipe) error {
	return r.db.WithContext(ctx).Create(recipe).Error
}

func (r *PostgresRepository) UpdateRecipe(ctx context.Context, recipe *recipesdomain.Recipe) error {
	recipe.UpdatedAt = time.Now().UTC()
	return r.db.WithContext(ctx).
		Model(&recipesdomain.Recipe{}).
		Where("id = ?", recipe.ID).
		Updates(map[string]interface{}{
			"name":         recipe.Name,
			"text":         recipe.Text,
			"cooking_time": recipe.CookingTime,
			"image":        recipe.Image,
			"updated_at":   recipe.UpdatedAt,
		}).Error
}

func (r *PostgresRepository) GetRecipe(ctx context.Context, id int64) (*recipesdomain.Recipe, error) {
	var recipe recipesdomain.Recipe
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&recipe).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, recipesdomain.ErrRecipeNotFound
		}
		return nil, err
	}
	return &recipe, nil
}

// DeleteRecipe removes the recipe with every row that references it. The
// postgres schema cascades as well; the explicit deletes keep other stores
// consistent.
func (r *PostgresRepository) DeleteRecipe(ctx context.Context, id int64) (bool, error) {
	db := r.db.WithContext(ctx)
	for _, model := range []interface{}{
		&recipesdomain.RecipeIngredient{},
		&recipesdomain.RecipeTag{},
		&recipesdomain.Favorite{},
		&recipesdomain.CartItem{},
	} {
		if err := db.Where("recipe_id = ?", id).Delete(model).Error; err != nil {
			return false, err
		}
	}

	result := db.Delete(&recipesdomain.Recipe{}, "id = ?", id)
	return result.RowsAffected > 0, result.Error
}

func (r *PostgresRepository) ListRecipes(ctx context.Context, filter recipesdomain.ListFilter) ([]recipesdomain.Recipe, int64, error) {
	query := r.db.WithContext(ctx).Model(&recipesdomain.Recipe{})
	if filter.AuthorID != "" {
		query = query.Where("recipes.author_id = ?", filter.AuthorID)
	}
	if len(filter.TagSlugs) > 0 {
		tagged := r.db.WithContext(ctx).Table("recipe_tags").
			Select("recipe_tags.recipe_id").
			Joins("JOIN tags ON tags.id = recipe_tags.tag_id").
			Where("tags.slug IN ?", filter.TagSlugs)
		query = query.Where("recipes.id IN (?)", tagged)
	}
	if filter.FavoritedBy != "" {
		favorited := r.db.WithContext(ctx).Table("favorites").Select("recipe_id").Where("user_id = ?", filter.FavoritedBy)
		query = query.Where("recipes.id IN (?)", favorited)
	}
	if filter.InCartOf != "" {
		inCart := r.db.WithContext(ctx).Table("cart_items").Select("recipe_id").Where("user_id = ?", filter.InCartOf)
		query = query.Where("recipes.id IN (?)", inCart)
	}

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = query.Order("recipes.created_at desc, recipes.id desc")
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	var items []recipesdomain.Recipe
	if err := query.Find(&items).Error; err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// ReplaceIngredients drops every ingredient row of the recipe and inserts items.
func (r *PostgresRepository) ReplaceIngredients(ctx context.Context, recipeID int64, items []recipesdomain.RecipeIngredient) error {
	if err := r.db.WithContext(ctx).Where("recipe_id = ?", recipeID).Delete(&recipesdomain.RecipeIngredient{}).Error; err != nil {
		return err
	}

	if len(items) == 0 {
		return nil
	}

	rows := make([]recipesdomain.RecipeIngredient, 0, len(items))
	for _, item := range items {
		item.RecipeID = recipeID
		rows = append(rows, item)
	}
	return r.db.WithContext(ctx).Create(&rows).Error
}

// SetTags makes the recipe's tag set equal to tagIDs, touching only the rows
// that differ.
func (r *PostgresRepository) SetTags(ctx context.Context, recipeID int64, tagIDs []int64) error {
	var current []int64
	if err := r.db.WithContext(ctx).
		Model(&recipesdomain.RecipeTag{}).
		Where("recipe_id = ?", recipeID).
		Pluck("tag_id", &current).Error; err != nil {
		return err
	}

	wanted := make(map[int64]struct{}, len(tagIDs))
	for _, id := range tagIDs {
		wanted[id] = struct{}{}
	}
	existing := make(map[int64]struct{}, len(current))
	var stale []int64
	for _, id := range current {
		existing[id] = struct{}{}
		if _, ok := wanted[id]; !ok {
			stale = append(stale, id)
		}
	}

	if len(stale) > 0 {
		if err := r.db.WithContext(ctx).
			Where("recipe_id = ? AND tag_id IN ?", recipeID, stale).
			Delete(&recipesdomain.RecipeTag{}).Error; err != nil {
			return err
		}
	}

	var links []recipesdomain.RecipeTag
	for _, id := range tagIDs {
		if _, ok := existing[id]; ok {
			continue
		}
		links = append(links, recipesdomain.RecipeTag{RecipeID: recipeID, TagID: id})
	}
	if len(links) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&links).Error
}

func (r *PostgresRepository) CountIngredientsByIDs(ctx context.Context, ids []int64) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	var count int64
	err := r.db.WithContext(ctx).Model(&catalogdomain.Ingredient{}).Where("id IN ?", ids).Count(&count).Error
	return count, err
}

func (r *PostgresRepository) CountTagsByIDs(ctx context.Context, ids []int64) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	var count int64
	err := r.db.WithContext(ctx).Model(&catalogdomain.Tag{}).Where("id IN ?", ids).Count(&count).Error
	return count, err
}

func (r *PostgresRepository) GetIngredientLines(ctx context.Context, recipeIDs []int64) (map[int64][]recipesdomain.IngredientLine, error) {
	result := make(map[int64][]recipesdomain.IngredientLine, len(recipeIDs))
	if len(recipeIDs) == 0 {
		return result, nil
	}

	var rows []recipesdomain.IngredientLine
	if err := r.db.WithContext(ctx).
		Table("recipe_ingredients ri").
		Select("ri.recipe_id, ri.ingredient_id, i.name, i.measurement_unit, ri.amount").
		Joins("JOIN ingredients i ON i.id = ri.ingredient_id").
		Where("ri.recipe_id IN ?", recipeIDs).
		Order("ri.recipe_id, ri.position").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	for _, row := range rows {
		result[row.RecipeID] = append(result[row.RecipeID], row)
	}
	return result, nil
}

func (r *PostgresRepository) GetTags(ctx context.Context, recipeIDs []int64) (map[int64][]catalogdomain.Tag, error) {
	result := make(map[int64][]catalogdomain.Tag, len(recipeIDs))
	if len(recipeIDs) == 0 {
		return result, nil
	}

	var rows []struct {
		RecipeID int64  `gorm:"column:recipe_id"`
		ID       int64  `gorm:"column:id"`
		Name     string `gorm:"column:name"`
		Color    string `gorm:"column:color"`
		Slug     string `gorm:"column:slug"`
	}
	if err := r.db.WithContext(ctx).
		Table("recipe_tags rt").
		Select("rt.recipe_id, t.id, t.name, t.color, t.slug").
		Joins("JOIN tags t ON t.id = rt.tag_id").
		Where("rt.recipe_id IN ?", recipeIDs).
		Order("rt.recipe_id, t.id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	for _, row := range rows {
		result[row.RecipeID] = append(result[row.RecipeID], catalogdomain.Tag{
			ID:    row.ID,
			Name:  row.Name,
			Color: row.Color,
			Slug:  row.Slug,
		})
	}
	return result, nil
}

func (r *PostgresRepository) GetAuthors(ctx context.Context, authorIDs []string) (map[string]userdomain.Profile, error) {
	result := make(map[string]userdomain.Profile, len(authorIDs))
	if len(authorIDs) == 0 {
		return result, nil
	}

	var profiles []userdomain.Profile
	if err := r.db.WithContext(ctx).Where("id IN ?", authorIDs).Find(&profiles).Error; err != nil {
		return nil, err
	}
	for _, profile := range profiles {
		result[profile.ID] = profile
	}
	return result, nil
}

func (r *PostgresRepository) FavoritedAmong(ctx context.Context, userID string, recipeIDs []int64) (map[int64]bool, error) {
	return r.membershipAmong(ctx, &recipesdomain.Favorite{}, userID, recipeIDs)
}

func (r *PostgresRepository) InCartAmong(ctx context.Context, userID string, recipeIDs []int64) (map[int64]bool, error) {
	return r.membershipAmong(ctx, &recipesdomain.CartItem{}, userID, recipeIDs)
}

func (r *PostgresRepository) membershipAmong(ctx context.Context, model interface{}, userID string, recipeIDs []int64) (map[int64]bool, error) {
	result := make(map[int64]bool, len(recipeIDs))
	if userID == "" || len(recipeIDs) == 0 {
		return result, nil
	}

	var ids []int64
	if err := r.db.WithContext(ctx).
		Model(model).
		Where("user_id = ? AND recipe_id IN ?", userID, recipeIDs).
		Pluck("recipe_id", &ids).Error; err != nil {
		return nil, err
	}
	for _, id := range ids {
		result[id] = true
	}
	return result, nil
}

func (r *PostgresRepository) SubscribedAmong(ctx context.Context, subscriberID string, authorIDs []string) (map[string]bool, error) {
	result := make(map[string]bool, len(authorIDs))
	if subscriberID == "" || len(authorIDs) == 0 {
		return result, nil
	}

	var ids []string
	if err := r.db.WithContext(ctx).
		Table("subscriptions").
		Where("subscriber_id = ? AND author_id IN ?", subscriberID, authorIDs).
		Pluck("author_id", &ids).Error; err != nil {
		return nil, err
	}
	for _, id := range ids {
		result[id] = true
	}
	return result, nil
}

func (r *PostgresRepository) AddFavorite(ctx context.Context, favorite *recipesdomain.Favorite) error {
	err := r.db.WithContext(ctx).Create(favorite).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return recipesdomain.ErrAlreadyFavorited
	}
	return err
}

func (r *PostgresRepository) RemoveFavorite(ctx context.Context, userID string, recipeID int64) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&recipesdomain.Favorite{}, "user_id = ? AND recipe_id = ?", userID, recipeID)
	return result.RowsAffected > 0, result.Error
}

func (r *PostgresRepository) AddCartItem(ctx context.Context, item *recipesdomain.CartItem) error {
	err := r.db.WithContext(ctx).Create(item).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return recipesdomain.ErrAlreadyInCart
	}
	return err
}

func (r *PostgresRepository) RemoveCartItem(ctx context.Context, userID string, recipeID int64) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&recipesdomain.CartItem{}, "user_id = ? AND recipe_id = ?", userID, recipeID)
	return result.RowsAffected > 0, result.Error
}
