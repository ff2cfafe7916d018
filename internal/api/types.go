package api

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/foodbook/backend/internal/models"
	"github.com/foodbook/backend/internal/types"
)

type RegisterRequest struct {
	Username  string `json:"username" binding:"required,max=200"`
	Email     string `json:"email" binding:"required,email"`
	FirstName string `json:"first_name" binding:"required,max=200"`
	LastName  string `json:"last_name" binding:"required,max=200"`
	Password  string `json:"password" binding:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type SetPasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=6"`
}

type TokenResponse struct {
	Token string `json:"token"`
}

type RecipeIngredientRequest struct {
	ID     uuid.UUID       `json:"id" binding:"required"`
	Amount decimal.Decimal `json:"amount" binding:"required"`
}

type RecipeRequest struct {
	Name        string                    `json:"name" binding:"required,max=255"`
	Text        string                    `json:"text" binding:"required"`
	ImageURL    string                    `json:"image_url"`
	CookingTime int                       `json:"cooking_time" binding:"required,min=1"`
	Tags        []uuid.UUID               `json:"tags"`
	Ingredients []RecipeIngredientRequest `json:"ingredients" binding:"required,min=1"`
}

// RecipeIngredientResponse is one ingredient line of a serialized recipe.
type RecipeIngredientResponse struct {
	ID              uuid.UUID       `json:"id"`
	Name            string          `json:"name"`
	MeasurementUnit string          `json:"measurement_unit"`
	Amount          decimal.Decimal `json:"amount"`
}

// RecipeResponse is the full recipe projection, including the per-principal
// favorited and in-cart flags.
type RecipeResponse struct {
	ID               uuid.UUID                  `json:"id"`
	Author           types.UserSummary          `json:"author"`
	Name             string                     `json:"name"`
	Text             string                     `json:"text"`
	ImageURL         string                     `json:"image_url"`
	CookingTime      int                        `json:"cooking_time"`
	Tags             []models.Tag               `json:"tags"`
	Ingredients      []RecipeIngredientResponse `json:"ingredients"`
	IsFavorited      bool                       `json:"is_favorited"`
	IsInShoppingCart bool                       `json:"is_in_shopping_cart"`
	CreatedAt        time.Time                  `json:"created_at"`
}

// SubscriptionResponse is one followed author together with their recipes.
type SubscriptionResponse struct {
	types.UserSummary
	Recipes      []types.RecipeSummary `json:"recipes"`
	RecipesCount int                   `json:"recipes_count"`
}
