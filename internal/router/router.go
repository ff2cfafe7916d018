package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/foodbook/backend/internal/api"
	"github.com/foodbook/backend/internal/middleware"
	"github.com/foodbook/backend/internal/service"
)

// Setup wires services and handlers onto a router. All resources live
// under /api/v1.
func Setup(db *gorm.DB, rdb *redis.Client, jwtSecret string) *gin.Engine {
	router := gin.Default()
	router.Use(middleware.CORS())

	authService := service.NewAuthService(db, rdb, jwtSecret)
	linkService := service.NewLinkService(db)
	cartService := service.NewCartService(db)
	recipeService := service.NewRecipeService(db)
	ingredientService := service.NewIngredientService(db)
	userService := service.NewUserService(db)
	tagService := service.NewTagService(db)

	limiter := middleware.NewRateLimiter(rdb, middleware.RateLimitConfig{
		Window:    time.Minute,
		Limit:     30,
		KeyPrefix: "ratelimit:auth:",
	})

	v1 := router.Group("/api/v1")

	api.NewAuthHandler(authService, limiter).RegisterRoutes(v1)
	api.NewUserHandler(userService, linkService, authService).RegisterRoutes(v1)
	api.NewRecipeHandler(db, recipeService, linkService, authService).RegisterRoutes(v1)
	api.NewLinkHandler(linkService, authService).RegisterRoutes(v1)
	api.NewCartHandler(cartService, authService).RegisterRoutes(v1)
	api.NewTagHandler(tagService).RegisterRoutes(v1)
	api.NewIngredientHandler(ingredientService).RegisterRoutes(v1)

	return router
}
