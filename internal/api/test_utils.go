package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/foodbook/backend/internal/middleware"
	"github.com/foodbook/backend/internal/service"
	"github.com/foodbook/backend/internal/testhelpers"
)

const testJWTSecret = "test-jwt-secret"

// setupTestRouter builds the full API surface over an in-memory
// database, without Redis.
func setupTestRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testhelpers.SetupTestDB(t)

	authService := service.NewAuthService(db, nil, testJWTSecret)
	linkService := service.NewLinkService(db)
	cartService := service.NewCartService(db)
	recipeService := service.NewRecipeService(db)
	ingredientService := service.NewIngredientService(db)
	userService := service.NewUserService(db)
	tagService := service.NewTagService(db)

	limiter := middleware.NewRateLimiter(nil, middleware.RateLimitConfig{
		Window: time.Minute,
		Limit:  1000,
	})

	router := gin.New()
	v1 := router.Group("/api/v1")

	NewAuthHandler(authService, limiter).RegisterRoutes(v1)
	NewUserHandler(userService, linkService, authService).RegisterRoutes(v1)
	NewRecipeHandler(db, recipeService, linkService, authService).RegisterRoutes(v1)
	NewLinkHandler(linkService, authService).RegisterRoutes(v1)
	NewCartHandler(cartService, authService).RegisterRoutes(v1)
	NewTagHandler(tagService).RegisterRoutes(v1)
	NewIngredientHandler(ingredientService).RegisterRoutes(v1)

	return router, db
}

// createUserAndToken creates a fixture user and logs it in.
func createUserAndToken(t *testing.T, db *gorm.DB, username string) (uuid.UUID, string) {
	t.Helper()

	user := testhelpers.CreateUser(t, db, username)
	authService := service.NewAuthService(db, nil, testJWTSecret)
	token, err := authService.Login(user.Email, testhelpers.TestPassword)
	if err != nil {
		t.Fatalf("failed to log in fixture user: %v", err)
	}
	return user.ID, token
}

// doJSON performs a request with an optional token and JSON body.
func doJSON(t *testing.T, router *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// doJSONWithLang is doJSON with an Accept-Language header.
func doJSONWithLang(t *testing.T, router *gin.Engine, method, path, token, lang string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, nil)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept-Language", lang)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode response %q: %v", w.Body.String(), err)
	}
	return body
}
