package shopping

import (
	"context"

	shoppingdomain "foodgram-go/internal/domain/shopping"
	"gorm.io/gorm"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// ListCartLines returns one row per ingredient of every recipe in the user's
// cart. Summing is left to the caller.
func (r *PostgresRepository) ListCartLines(ctx context.Context, userID string) ([]shoppingdomain.Line, error) {
	var lines []shoppingdomain.Line
	err := r.db.WithContext(ctx).
		Table("cart_items c").
		Select("ri.recipe_id, ri.ingredient_id, i.name, i.measurement_unit, ri.amount").
		Joins("JOIN recipe_ingredients ri ON ri.recipe_id = c.recipe_id").
		Joins("JOIN ingredients i ON i.id = ri.ingredient_id").
		Where("c.user_id = ?", userID).
		Order("ri.recipe_id, ri.position").
		Scan(&lines).Error
	return lines, err
}
