package api

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/foodbook/backend/internal/models"
)

// currentUserID returns the authenticated principal's id, or false for
// anonymous requests.
func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	v, exists := c.Get("user_id")
	if !exists {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}

// currentUser loads the full principal record for operations that need
// the role, not just the id.
func currentUser(c *gin.Context, db *gorm.DB) (*models.User, bool) {
	id, ok := currentUserID(c)
	if !ok {
		return nil, false
	}
	var user models.User
	if err := db.First(&user, "id = ?", id).Error; err != nil {
		return nil, false
	}
	return &user, true
}

// requestLang picks the language for user-facing messages.
func requestLang(c *gin.Context) string {
	return c.GetHeader("Accept-Language")
}
