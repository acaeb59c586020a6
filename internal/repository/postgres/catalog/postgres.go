package catalog

import (
	"context"
	"errors"
	"strings"

	"foodgram-go/internal/db"
	catalogdomain "foodgram-go/internal/domain/catalog"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const importBatchSize = 500

var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Transaction(ctx context.Context, fn func(catalogdomain.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&PostgresRepository{db: tx})
	})
}

func (r *PostgresRepository) ListIngredients(ctx context.Context, nameFilter string) ([]catalogdomain.Ingredient, error) {
	query := r.db.WithContext(ctx).Model(&catalogdomain.Ingredient{})
	// sqlite LOWER only folds ASCII, so the dev store filters in Go.
	foldInGo := nameFilter != "" && r.db.Dialector.Name() == db.DriverSQLite
	if nameFilter != "" && !foldInGo {
		pattern := "%" + likeEscaper.Replace(strings.ToLower(nameFilter)) + "%"
		query = query.Where(`LOWER(name) LIKE ? ESCAPE '\'`, pattern)
	}

	var items []catalogdomain.Ingredient
	if err := query.Order("name, measurement_unit, id").Find(&items).Error; err != nil {
		return nil, err
	}
	if foldInGo {
		items = filterByName(items, nameFilter)
	}
	return items, nil
}

func filterByName(items []catalogdomain.Ingredient, nameFilter string) []catalogdomain.Ingredient {
	needle := strings.ToLower(nameFilter)
	filtered := items[:0]
	for _, item := range items {
		if strings.Contains(strings.ToLower(item.Name), needle) {
			filtered = append(filtered, item)
		}
	}
	return filtered
}

func (r *PostgresRepository) GetIngredient(ctx context.Context, id int64) (*catalogdomain.Ingredient, error) {
	var ingredient catalogdomain.Ingredient
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&ingredient).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, catalogdomain.ErrIngredientNotFound
		}
		return nil, err
	}
	return &ingredient, nil
}

func (r *PostgresRepository) CreateIngredient(ctx context.Context, ingredient *catalogdomain.Ingredient) error {
	err := r.db.WithContext(ctx).Create(ingredient).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return catalogdomain.ErrIngredientExists
	}
	return err
}

func (r *PostgresRepository) InsertIngredientsIgnoringExisting(ctx context.Context, ingredients []catalogdomain.Ingredient) (int, error) {
	if len(ingredients) == 0 {
		return 0, nil
	}
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		CreateInBatches(&ingredients, importBatchSize)
	return int(result.RowsAffected), result.Error
}

func (r *PostgresRepository) ListTags(ctx context.Context) ([]catalogdomain.Tag, error) {
	var tags []catalogdomain.Tag
	if err := r.db.WithContext(ctx).Order("id").Find(&tags).Error; err != nil {
		return nil, err
	}
	return tags, nil
}

func (r *PostgresRepository) GetTag(ctx context.Context, id int64) (*catalogdomain.Tag, error) {
	var tag catalogdomain.Tag
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&tag).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, catalogdomain.ErrTagNotFound
		}
		return nil, err
	}
	return &tag, nil
}

func (r *PostgresRepository) CreateTag(ctx context.Context, tag *catalogdomain.Tag) error {
	err := r.db.WithContext(ctx).Create(tag).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return catalogdomain.ErrTagExists
	}
	return err
}

func (r *PostgresRepository) UpdateTag(ctx context.Context, tag *catalogdomain.Tag) error {
	err := r.db.WithContext(ctx).
		Model(&catalogdomain.Tag{}).
		Where("id = ?", tag.ID).
		Updates(map[string]interface{}{
			"name":  tag.Name,
			"color": tag.Color,
			"slug":  tag.Slug,
		}).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return catalogdomain.ErrTagExists
	}
	return err
}

func (r *PostgresRepository) DeleteTag(ctx context.Context, id int64) (bool, error) {
	var deleted bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM recipe_tags WHERE tag_id = ?", id).Error; err != nil {
			return err
		}
		result := tx.Delete(&catalogdomain.Tag{}, "id = ?", id)
		deleted = result.RowsAffected > 0
		return result.Error
	})
	return deleted, err
}
