package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/foodbook/backend/internal/middleware"
	"github.com/foodbook/backend/internal/models"
	"github.com/foodbook/backend/internal/service"
	"github.com/foodbook/backend/internal/types"
)

type UserHandler struct {
	userService *service.UserService
	linkService *service.LinkService
	authService *service.AuthService
}

func NewUserHandler(userService *service.UserService, linkService *service.LinkService, authService *service.AuthService) *UserHandler {
	return &UserHandler{
		userService: userService,
		linkService: linkService,
		authService: authService,
	}
}

func (h *UserHandler) RegisterRoutes(router *gin.RouterGroup) {
	authed := middleware.AuthMiddleware(h.authService)
	users := router.Group("/users")
	{
		users.GET("", middleware.OptionalAuthMiddleware(h.authService), h.ListUsers)
		users.GET("/me", authed, h.Me)
		users.GET("/subscriptions", authed, h.Subscriptions)
		users.GET("/:id", middleware.OptionalAuthMiddleware(h.authService), h.GetUser)
	}
}

func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.userService.ListUsers(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch users"})
		return
	}

	summaries := make([]types.UserSummary, 0, len(users))
	for i := range users {
		summary, err := h.summarize(c, &users[i])
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch users"})
			return
		}
		summaries = append(summaries, *summary)
	}
	c.JSON(http.StatusOK, gin.H{"users": summaries})
}

func (h *UserHandler) GetUser(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	user, err := h.userService.GetUser(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	summary, serr := h.summarize(c, user)
	if serr != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch user"})
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (h *UserHandler) Me(c *gin.Context) {
	principalID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}
	user, err := h.userService.GetUser(c.Request.Context(), principalID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	c.JSON(http.StatusOK, user)
}

// Subscriptions lists followed authors together with their recipes.
// recipes_limit caps how many recipes each author entry carries.
func (h *UserHandler) Subscriptions(c *gin.Context) {
	principalID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	recipesLimit := 0
	if v, err := strconv.Atoi(c.Query("recipes_limit")); err == nil && v > 0 {
		recipesLimit = v
	}

	authors, err := h.userService.Subscriptions(c.Request.Context(), principalID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch subscriptions"})
		return
	}

	responses := make([]SubscriptionResponse, 0, len(authors))
	for i := range authors {
		author := &authors[i]
		recipes, err := h.userService.AuthorRecipes(c.Request.Context(), author.ID, recipesLimit)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch subscriptions"})
			return
		}
		total, err := h.userService.AuthorRecipeCount(c.Request.Context(), author.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch subscriptions"})
			return
		}

		entry := SubscriptionResponse{
			UserSummary: types.UserSummary{
				ID:           author.ID,
				Username:     author.Username,
				Email:        author.Email,
				FirstName:    author.FirstName,
				LastName:     author.LastName,
				IsSubscribed: true,
			},
			Recipes:      make([]types.RecipeSummary, 0, len(recipes)),
			RecipesCount: int(total),
		}
		for _, recipe := range recipes {
			entry.Recipes = append(entry.Recipes, types.RecipeSummary{
				ID:          recipe.ID,
				Name:        recipe.Name,
				ImageURL:    recipe.ImageURL,
				CookingTime: recipe.CookingTime,
			})
		}
		responses = append(responses, entry)
	}

	c.JSON(http.StatusOK, gin.H{"subscriptions": responses})
}

func (h *UserHandler) summarize(c *gin.Context, user *models.User) (*types.UserSummary, error) {
	summary := types.UserSummary{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
	}
	if principalID, ok := currentUserID(c); ok {
		subscribed, err := h.linkService.Linked(c.Request.Context(), service.LinkFollow, principalID, user.ID)
		if err != nil {
			return nil, err
		}
		summary.IsSubscribed = subscribed
	}
	return &summary, nil
}
