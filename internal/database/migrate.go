package database

import (
	"gorm.io/gorm"

	"github.com/foodbook/backend/internal/models"
)

// Migrate brings the schema up to date. Link tables carry composite
// unique indexes, so the store enforces the one-link-per-pair invariant
// independently of any service-level check.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Tag{},
		&models.Ingredient{},
		&models.Recipe{},
		&models.RecipeIngredient{},
		&models.Favorite{},
		&models.CartItem{},
		&models.Follow{},
	)
}
