package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/foodbook/backend/internal/models"
)

var (
	ErrPermissionDenied = errors.New("only the author or an admin may modify this recipe")
	ErrBadReference     = errors.New("referenced tag or ingredient does not exist")
)

// IngredientAmount references an ingredient row together with the
// amount used by the recipe.
type IngredientAmount struct {
	IngredientID uuid.UUID
	Amount       decimal.Decimal
}

// RecipeInput is the plain-data payload for creating or updating a recipe.
type RecipeInput struct {
	Name        string
	Text        string
	ImageURL    string
	CookingTime int
	TagIDs      []uuid.UUID
	Ingredients []IngredientAmount
}

// RecipeFilter narrows recipe listings.
type RecipeFilter struct {
	AuthorID    *uuid.UUID
	TagSlugs    []string
	FavoritedBy *uuid.UUID
	InCartOf    *uuid.UUID
	Page        int
	Limit       int
}

// RecipeService handles recipe CRUD. Creation and update rewrite the
// tag and ingredient associations inside one transaction.
type RecipeService struct {
	db *gorm.DB
}

func NewRecipeService(db *gorm.DB) *RecipeService {
	return &RecipeService{db: db}
}

func (s *RecipeService) CreateRecipe(ctx context.Context, authorID uuid.UUID, input RecipeInput) (*models.Recipe, error) {
	recipe := models.Recipe{
		Name:        input.Name,
		Text:        input.Text,
		ImageURL:    input.ImageURL,
		CookingTime: input.CookingTime,
		AuthorID:    authorID,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		tags, err := resolveTags(tx, input.TagIDs)
		if err != nil {
			return err
		}
		if err := tx.Omit("Tags", "Ingredients").Create(&recipe).Error; err != nil {
			return err
		}
		if len(tags) > 0 {
			if err := tx.Model(&recipe).Association("Tags").Append(tags); err != nil {
				return err
			}
		}
		return writeIngredientLines(tx, recipe.ID, input.Ingredients)
	})
	if err != nil {
		return nil, err
	}
	return s.GetRecipe(ctx, recipe.ID)
}

func (s *RecipeService) GetRecipe(ctx context.Context, id uuid.UUID) (*models.Recipe, error) {
	var recipe models.Recipe
	err := s.db.WithContext(ctx).
		Preload("Author").
		Preload("Tags").
		Preload("Ingredients").
		Preload("Ingredients.Ingredient").
		First(&recipe, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &recipe, nil
}

func (s *RecipeService) UpdateRecipe(ctx context.Context, principal *models.User, id uuid.UUID, input RecipeInput) (*models.Recipe, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var recipe models.Recipe
		if err := tx.First(&recipe, "id = ?", id).Error; err != nil {
			return err
		}
		if recipe.AuthorID != principal.ID && !principal.IsAdmin() {
			return ErrPermissionDenied
		}

		tags, err := resolveTags(tx, input.TagIDs)
		if err != nil {
			return err
		}

		updates := map[string]any{
			"name":         input.Name,
			"text":         input.Text,
			"image_url":    input.ImageURL,
			"cooking_time": input.CookingTime,
		}
		if err := tx.Model(&recipe).Updates(updates).Error; err != nil {
			return err
		}
		if err := tx.Model(&recipe).Association("Tags").Replace(tags); err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", id).Delete(&models.RecipeIngredient{}).Error; err != nil {
			return err
		}
		return writeIngredientLines(tx, id, input.Ingredients)
	})
	if err != nil {
		return nil, err
	}
	return s.GetRecipe(ctx, id)
}

// DeleteRecipe removes the recipe and every row referencing it. Link
// rows never outlive the recipe they point at.
func (s *RecipeService) DeleteRecipe(ctx context.Context, principal *models.User, id uuid.UUID) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var recipe models.Recipe
		if err := tx.First(&recipe, "id = ?", id).Error; err != nil {
			return err
		}
		if recipe.AuthorID != principal.ID && !principal.IsAdmin() {
			return ErrPermissionDenied
		}

		for _, dependent := range []any{
			&models.RecipeIngredient{},
			&models.Favorite{},
			&models.CartItem{},
		} {
			if err := tx.Where("recipe_id = ?", id).Delete(dependent).Error; err != nil {
				return err
			}
		}
		if err := tx.Model(&recipe).Association("Tags").Clear(); err != nil {
			return err
		}
		return tx.Delete(&recipe).Error
	})
}

func (s *RecipeService) ListRecipes(ctx context.Context, filter RecipeFilter) ([]models.Recipe, int64, error) {
	query := s.db.WithContext(ctx).Model(&models.Recipe{})

	if filter.AuthorID != nil {
		query = query.Where("recipes.author_id = ?", *filter.AuthorID)
	}
	if len(filter.TagSlugs) > 0 {
		tagged := s.db.Table("recipe_tags").
			Select("recipe_tags.recipe_id").
			Joins("JOIN tags ON tags.id = recipe_tags.tag_id").
			Where("tags.slug IN ?", filter.TagSlugs)
		query = query.Where("recipes.id IN (?)", tagged)
	}
	if filter.FavoritedBy != nil {
		query = query.
			Joins("JOIN favorites ON favorites.recipe_id = recipes.id").
			Where("favorites.user_id = ?", *filter.FavoritedBy)
	}
	if filter.InCartOf != nil {
		query = query.
			Joins("JOIN cart_items ON cart_items.recipe_id = recipes.id").
			Where("cart_items.user_id = ?", *filter.InCartOf)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
		if filter.Page > 1 {
			query = query.Offset((filter.Page - 1) * filter.Limit)
		}
	}

	var recipes []models.Recipe
	err := query.
		Preload("Author").
		Preload("Tags").
		Preload("Ingredients").
		Preload("Ingredients.Ingredient").
		Order("recipes.created_at DESC").
		Find(&recipes).Error
	if err != nil {
		return nil, 0, err
	}
	return recipes, total, nil
}

func resolveTags(tx *gorm.DB, ids []uuid.UUID) ([]models.Tag, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var tags []models.Tag
	if err := tx.Where("id IN ?", ids).Find(&tags).Error; err != nil {
		return nil, err
	}
	if len(tags) != len(ids) {
		return nil, ErrBadReference
	}
	return tags, nil
}

func writeIngredientLines(tx *gorm.DB, recipeID uuid.UUID, lines []IngredientAmount) error {
	for _, line := range lines {
		var count int64
		if err := tx.Model(&models.Ingredient{}).Where("id = ?", line.IngredientID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return ErrBadReference
		}
		row := models.RecipeIngredient{
			RecipeID:     recipeID,
			IngredientID: line.IngredientID,
			Amount:       line.Amount,
		}
		if err := tx.Create(&row).Error; err != nil {
			return err
		}
	}
	return nil
}
