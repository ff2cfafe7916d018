package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/foodbook/backend/internal/locale"
	"github.com/foodbook/backend/internal/middleware"
	"github.com/foodbook/backend/internal/service"
)

// LinkHandler exposes the three link toggles over HTTP:
// /recipes/:id/favorite, /recipes/:id/shopping_cart, /users/:id/subscribe.
// All three share handlers parameterized by the link kind.
type LinkHandler struct {
	linkService *service.LinkService
	authService *service.AuthService
}

func NewLinkHandler(linkService *service.LinkService, authService *service.AuthService) *LinkHandler {
	return &LinkHandler{
		linkService: linkService,
		authService: authService,
	}
}

func (h *LinkHandler) RegisterRoutes(router *gin.RouterGroup) {
	authed := middleware.AuthMiddleware(h.authService)

	for path, kind := range map[string]service.LinkKind{
		"/recipes/:id/favorite":      service.LinkFavorite,
		"/recipes/:id/shopping_cart": service.LinkCart,
		"/users/:id/subscribe":       service.LinkFollow,
	} {
		router.GET(path, authed, h.preview(kind))
		router.POST(path, authed, h.add(kind))
		router.DELETE(path, authed, h.remove(kind))
	}
}

// preview returns the target projection without changing anything, the
// read used before linking.
func (h *LinkHandler) preview(kind service.LinkKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		principalID, targetID, ok := h.ids(c)
		if !ok {
			return
		}
		projection, err := h.linkService.Preview(c.Request.Context(), kind, principalID, targetID)
		if err != nil {
			h.fail(c, kind, err)
			return
		}
		c.JSON(http.StatusOK, projection)
	}
}

func (h *LinkHandler) add(kind service.LinkKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		principalID, targetID, ok := h.ids(c)
		if !ok {
			return
		}
		projection, err := h.linkService.Add(c.Request.Context(), kind, principalID, targetID)
		if err != nil {
			h.fail(c, kind, err)
			return
		}
		c.JSON(http.StatusCreated, projection)
	}
}

// remove answers 201 with a confirmation quoting the target id. The
// status is deliberate, matching the rest of the surface's "created a
// result" convention.
func (h *LinkHandler) remove(kind service.LinkKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		principalID, targetID, ok := h.ids(c)
		if !ok {
			return
		}
		if err := h.linkService.Remove(c.Request.Context(), kind, principalID, targetID); err != nil {
			h.fail(c, kind, err)
			return
		}
		msg := locale.T(requestLang(c), service.RemovedMessage(kind), map[string]any{"ID": targetID.String()})
		c.JSON(http.StatusCreated, gin.H{"message": msg})
	}
}

func (h *LinkHandler) ids(c *gin.Context) (principalID, targetID uuid.UUID, ok bool) {
	principalID, exists := currentUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return uuid.Nil, uuid.Nil, false
	}
	targetID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid target id"})
		return uuid.Nil, uuid.Nil, false
	}
	return principalID, targetID, true
}

func (h *LinkHandler) fail(c *gin.Context, kind service.LinkKind, err error) {
	lang := requestLang(c)
	switch {
	case errors.Is(err, service.ErrTargetNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": locale.T(lang, "link.targetNotFound", nil)})
	case errors.Is(err, service.ErrAlreadyLinked):
		c.JSON(http.StatusBadRequest, gin.H{"error": locale.T(lang, service.ExistsMessage(kind), nil)})
	case errors.Is(err, service.ErrLinkNotFound):
		c.JSON(http.StatusBadRequest, gin.H{"error": locale.T(lang, "link.notFound", nil)})
	case errors.Is(err, service.ErrSelfFollow):
		c.JSON(http.StatusBadRequest, gin.H{"error": locale.T(lang, "follow.self", nil)})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "link operation failed"})
	}
}
