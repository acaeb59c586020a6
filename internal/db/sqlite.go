package db

import (
	"fmt"

	"foodgram-go/internal/domain/catalog"
	"foodgram-go/internal/domain/recipes"
	"foodgram-go/internal/domain/subscriptions"
	"foodgram-go/internal/domain/user"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

// NewSQLite opens a pure-Go sqlite store. A single connection is kept so
// in-memory databases stay consistent across queries and transactions.
func NewSQLite(dsn string) (*gorm.DB, error) {
	gormDB, err := gorm.Open(sqlite.Open(dsn), GormConfig())
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, fmt.Errorf("db handle: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)

	return gormDB, nil
}

// AutoMigrate derives the schema from the domain models. The sqlite driver
// uses it instead of the SQL migrations, which are written for postgres.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&user.Profile{},
		&catalog.Ingredient{},
		&catalog.Tag{},
		&recipes.Recipe{},
		&recipes.RecipeIngredient{},
		&recipes.RecipeTag{},
		&recipes.Favorite{},
		&recipes.CartItem{},
		&subscriptions.Subscription{},
	)
}
