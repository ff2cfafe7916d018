package api

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/foodbook/backend/internal/middleware"
	"github.com/foodbook/backend/internal/models"
	"github.com/foodbook/backend/internal/service"
	"github.com/foodbook/backend/internal/types"
)

const defaultPageSize = 6

type RecipeHandler struct {
	db            *gorm.DB
	recipeService *service.RecipeService
	linkService   *service.LinkService
	authService   *service.AuthService
}

func NewRecipeHandler(db *gorm.DB, recipeService *service.RecipeService, linkService *service.LinkService, authService *service.AuthService) *RecipeHandler {
	return &RecipeHandler{
		db:            db,
		recipeService: recipeService,
		linkService:   linkService,
		authService:   authService,
	}
}

func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup) {
	recipes := router.Group("/recipes")
	{
		recipes.GET("", middleware.OptionalAuthMiddleware(h.authService), h.ListRecipes)
		recipes.GET("/:id", middleware.OptionalAuthMiddleware(h.authService), h.GetRecipe)
		recipes.POST("", middleware.AuthMiddleware(h.authService), h.CreateRecipe)
		recipes.PUT("/:id", middleware.AuthMiddleware(h.authService), h.UpdateRecipe)
		recipes.DELETE("/:id", middleware.AuthMiddleware(h.authService), h.DeleteRecipe)
	}
}

func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	filter := service.RecipeFilter{
		Page:  1,
		Limit: defaultPageSize,
	}
	if page, err := strconv.Atoi(c.Query("page")); err == nil && page > 0 {
		filter.Page = page
	}
	if limit, err := strconv.Atoi(c.Query("limit")); err == nil && limit > 0 {
		filter.Limit = limit
	}
	if author := c.Query("author"); author != "" {
		id, err := uuid.Parse(author)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid author id"})
			return
		}
		filter.AuthorID = &id
	}
	if tags := c.Query("tags"); tags != "" {
		filter.TagSlugs = strings.Split(tags, ",")
	}

	principalID, authenticated := currentUserID(c)
	if authenticated {
		if c.Query("is_favorited") == "1" {
			filter.FavoritedBy = &principalID
		}
		if c.Query("is_in_shopping_cart") == "1" {
			filter.InCartOf = &principalID
		}
	}

	recipes, total, err := h.recipeService.ListRecipes(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch recipes"})
		return
	}

	responses := make([]RecipeResponse, 0, len(recipes))
	for i := range recipes {
		resp, err := h.serialize(c, &recipes[i])
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch recipes"})
			return
		}
		responses = append(responses, *resp)
	}

	c.JSON(http.StatusOK, gin.H{
		"count":   total,
		"recipes": responses,
	})
}

func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return
	}

	recipe, err := h.recipeService.GetRecipe(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "recipe not found"})
		return
	}

	resp, err := h.serialize(c, recipe)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch recipe"})
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *RecipeHandler) CreateRecipe(c *gin.Context) {
	var req RecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	principalID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	recipe, err := h.recipeService.CreateRecipe(c.Request.Context(), principalID, toInput(req))
	if err != nil {
		if errors.Is(err, service.ErrBadReference) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create recipe"})
		return
	}

	resp, err := h.serialize(c, recipe)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create recipe"})
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *RecipeHandler) UpdateRecipe(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return
	}

	var req RecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	principal, ok := currentUser(c, h.db)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	recipe, err := h.recipeService.UpdateRecipe(c.Request.Context(), principal, id, toInput(req))
	if err != nil {
		h.failMutation(c, err)
		return
	}

	resp, err := h.serialize(c, recipe)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update recipe"})
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *RecipeHandler) DeleteRecipe(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return
	}

	principal, ok := currentUser(c, h.db)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	if err := h.recipeService.DeleteRecipe(c.Request.Context(), principal, id); err != nil {
		h.failMutation(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "recipe deleted successfully",
		"id":      id,
	})
}

func (h *RecipeHandler) failMutation(c *gin.Context, err error) {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "recipe not found"})
	case errors.Is(err, service.ErrPermissionDenied):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrBadReference):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "recipe operation failed"})
	}
}

func toInput(req RecipeRequest) service.RecipeInput {
	input := service.RecipeInput{
		Name:        req.Name,
		Text:        req.Text,
		ImageURL:    req.ImageURL,
		CookingTime: req.CookingTime,
		TagIDs:      req.Tags,
	}
	for _, line := range req.Ingredients {
		input.Ingredients = append(input.Ingredients, service.IngredientAmount{
			IngredientID: line.ID,
			Amount:       line.Amount,
		})
	}
	return input
}

// serialize builds the response projection, resolving the favorited and
// in-cart flags for the current principal when there is one.
func (h *RecipeHandler) serialize(c *gin.Context, recipe *models.Recipe) (*RecipeResponse, error) {
	resp := RecipeResponse{
		ID: recipe.ID,
		Author: types.UserSummary{
			ID:        recipe.Author.ID,
			Username:  recipe.Author.Username,
			Email:     recipe.Author.Email,
			FirstName: recipe.Author.FirstName,
			LastName:  recipe.Author.LastName,
		},
		Name:        recipe.Name,
		Text:        recipe.Text,
		ImageURL:    recipe.ImageURL,
		CookingTime: recipe.CookingTime,
		Tags:        recipe.Tags,
		CreatedAt:   recipe.CreatedAt,
	}
	for _, line := range recipe.Ingredients {
		resp.Ingredients = append(resp.Ingredients, RecipeIngredientResponse{
			ID:              line.IngredientID,
			Name:            line.Ingredient.Name,
			MeasurementUnit: line.Ingredient.MeasurementUnit,
			Amount:          line.Amount,
		})
	}

	principalID, authenticated := currentUserID(c)
	if authenticated {
		ctx := c.Request.Context()
		favorited, err := h.linkService.Linked(ctx, service.LinkFavorite, principalID, recipe.ID)
		if err != nil {
			return nil, err
		}
		inCart, err := h.linkService.Linked(ctx, service.LinkCart, principalID, recipe.ID)
		if err != nil {
			return nil, err
		}
		resp.IsFavorited = favorited
		resp.IsInShoppingCart = inCart
	}
	return &resp, nil
}
