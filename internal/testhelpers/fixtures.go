package testhelpers

import (
	"testing"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/foodbook/backend/internal/models"
)

// TestPassword is the plaintext password of every fixture user.
const TestPassword = "password123"

// CreateUser inserts a user with a known password.
func CreateUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()

	hashed, err := bcrypt.GenerateFromPassword([]byte(TestPassword), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	user := models.User{
		Username:     username,
		Email:        username + "@example.com",
		FirstName:    "Test",
		LastName:     "User",
		Role:         models.RoleUser,
		IsActive:     true,
		PasswordHash: string(hashed),
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("failed to create user %s: %v", username, err)
	}
	return &user
}

// IngredientLine pairs an ingredient's natural key with an amount.
type IngredientLine struct {
	Name   string
	Unit   string
	Amount string
}

// CreateRecipe inserts a recipe with the given ingredient lines,
// get-or-creating the ingredient rows by (name, unit).
func CreateRecipe(t *testing.T, db *gorm.DB, author *models.User, name string, lines ...IngredientLine) *models.Recipe {
	t.Helper()

	recipe := models.Recipe{
		Name:        name,
		Text:        "how to cook " + name,
		CookingTime: 30,
		AuthorID:    author.ID,
	}
	if err := db.Create(&recipe).Error; err != nil {
		t.Fatalf("failed to create recipe %s: %v", name, err)
	}

	for _, line := range lines {
		ingredient := models.Ingredient{Name: line.Name, MeasurementUnit: line.Unit}
		if err := db.Where("name = ? AND measurement_unit = ?", line.Name, line.Unit).
			FirstOrCreate(&ingredient).Error; err != nil {
			t.Fatalf("failed to create ingredient %s: %v", line.Name, err)
		}
		amount, err := decimal.NewFromString(line.Amount)
		if err != nil {
			t.Fatalf("bad amount %q: %v", line.Amount, err)
		}
		row := models.RecipeIngredient{
			RecipeID:     recipe.ID,
			IngredientID: ingredient.ID,
			Amount:       amount,
		}
		if err := db.Create(&row).Error; err != nil {
			t.Fatalf("failed to create recipe ingredient: %v", err)
		}
	}
	return &recipe
}
