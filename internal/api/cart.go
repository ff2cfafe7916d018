package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/foodbook/backend/internal/middleware"
	"github.com/foodbook/backend/internal/service"
)

// shoppingListFilename is the fixed attachment name of the export.
const shoppingListFilename = "cart.txt"

type CartHandler struct {
	cartService *service.CartService
	authService *service.AuthService
}

func NewCartHandler(cartService *service.CartService, authService *service.AuthService) *CartHandler {
	return &CartHandler{
		cartService: cartService,
		authService: authService,
	}
}

func (h *CartHandler) RegisterRoutes(router *gin.RouterGroup) {
	authed := middleware.AuthMiddleware(h.authService)
	router.GET("/recipes/download_shopping_cart", authed, h.Download)
	router.GET("/recipes/shopping_cart", authed, h.List)
}

// List returns the aggregated shopping list as JSON.
func (h *CartHandler) List(c *gin.Context) {
	principalID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	items, err := h.cartService.ShoppingList(c.Request.Context(), principalID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build shopping list"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"shopping_list": items})
}

// Download sends the rendered shopping list as a text attachment.
func (h *CartHandler) Download(c *gin.Context) {
	principalID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	items, err := h.cartService.ShoppingList(c.Request.Context(), principalID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build shopping list"})
		return
	}

	body := h.cartService.Render(items, requestLang(c))
	c.Header("Content-Disposition", `attachment; filename="`+shoppingListFilename+`"`)
	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(body))
}
