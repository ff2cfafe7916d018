package api

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/foodbook/backend/internal/models"
	"github.com/foodbook/backend/internal/testhelpers"
)

func seedIngredientRow(t *testing.T, db *gorm.DB, name, unit string) *models.Ingredient {
	t.Helper()
	ingredient := models.Ingredient{Name: name, MeasurementUnit: unit}
	require.NoError(t, db.Create(&ingredient).Error)
	return &ingredient
}

func TestCreateRecipeEndpoint(t *testing.T) {
	router, db := setupTestRouter(t)

	_, token := createUserAndToken(t, db, "bob")
	flour := seedIngredientRow(t, db, "Flour", "g")

	payload := map[string]any{
		"name":         "Pancakes",
		"text":         "Mix and fry",
		"cooking_time": 20,
		"ingredients": []map[string]any{
			{"id": flour.ID.String(), "amount": "200"},
		},
	}

	w := doJSON(t, router, "POST", "/api/v1/recipes", token, payload)
	require.Equal(t, 201, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "Pancakes", body["name"])
	assert.NotEmpty(t, body["id"])

	ingredients := body["ingredients"].([]any)
	require.Len(t, ingredients, 1)
	line := ingredients[0].(map[string]any)
	assert.Equal(t, "Flour", line["name"])
	assert.Equal(t, "g", line["measurement_unit"])
}

func TestCreateRecipeRequiresAuth(t *testing.T) {
	router, _ := setupTestRouter(t)

	w := doJSON(t, router, "POST", "/api/v1/recipes", "", map[string]any{"name": "x"})
	assert.Equal(t, 401, w.Code)
}

func TestCreateRecipeValidation(t *testing.T) {
	router, db := setupTestRouter(t)

	_, token := createUserAndToken(t, db, "bob")

	// Missing ingredients and cooking time.
	w := doJSON(t, router, "POST", "/api/v1/recipes", token, map[string]any{
		"name": "Pancakes",
		"text": "Mix and fry",
	})
	assert.Equal(t, 400, w.Code)
}

func TestGetRecipeEndpointFlags(t *testing.T) {
	router, db := setupTestRouter(t)

	_, token := createUserAndToken(t, db, "alice")
	author := testhelpers.CreateUser(t, db, "bob")
	recipe := testhelpers.CreateRecipe(t, db, author, "Pancakes",
		testhelpers.IngredientLine{Name: "Flour", Unit: "g", Amount: "200"},
	)

	path := "/api/v1/recipes/" + recipe.ID.String()

	// Anonymous read works, flags are false.
	w := doJSON(t, router, "GET", path, "", nil)
	require.Equal(t, 200, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, false, body["is_favorited"])
	assert.Equal(t, false, body["is_in_shopping_cart"])

	// After favoriting, the flag flips for the principal.
	w = doJSON(t, router, "POST", path+"/favorite", token, nil)
	require.Equal(t, 201, w.Code)

	w = doJSON(t, router, "GET", path, token, nil)
	require.Equal(t, 200, w.Code)
	body = decodeBody(t, w)
	assert.Equal(t, true, body["is_favorited"])
	assert.Equal(t, false, body["is_in_shopping_cart"])
}

func TestUpdateRecipeForbiddenForStranger(t *testing.T) {
	router, db := setupTestRouter(t)

	author := testhelpers.CreateUser(t, db, "bob")
	recipe := testhelpers.CreateRecipe(t, db, author, "Pancakes",
		testhelpers.IngredientLine{Name: "Flour", Unit: "g", Amount: "200"},
	)
	var flour models.Ingredient
	require.NoError(t, db.First(&flour, "name = ?", "Flour").Error)

	_, strangerToken := createUserAndToken(t, db, "mallory")

	payload := map[string]any{
		"name":         "Stolen",
		"text":         "mine now",
		"cooking_time": 5,
		"ingredients": []map[string]any{
			{"id": flour.ID.String(), "amount": "1"},
		},
	}
	w := doJSON(t, router, "PUT", "/api/v1/recipes/"+recipe.ID.String(), strangerToken, payload)
	assert.Equal(t, 403, w.Code)
}

func TestDeleteRecipeEndpoint(t *testing.T) {
	router, db := setupTestRouter(t)

	authorID, token := createUserAndToken(t, db, "bob")
	var author models.User
	require.NoError(t, db.First(&author, "id = ?", authorID).Error)
	recipe := testhelpers.CreateRecipe(t, db, &author, "Pancakes")

	w := doJSON(t, router, "DELETE", "/api/v1/recipes/"+recipe.ID.String(), token, nil)
	require.Equal(t, 200, w.Code)

	w = doJSON(t, router, "GET", "/api/v1/recipes/"+recipe.ID.String(), "", nil)
	assert.Equal(t, 404, w.Code)
}

func TestListRecipesEndpoint(t *testing.T) {
	router, db := setupTestRouter(t)

	author := testhelpers.CreateUser(t, db, "bob")
	testhelpers.CreateRecipe(t, db, author, "Pancakes")
	testhelpers.CreateRecipe(t, db, author, "Salad")

	w := doJSON(t, router, "GET", "/api/v1/recipes", "", nil)
	require.Equal(t, 200, w.Code)
	body := decodeBody(t, w)
	assert.EqualValues(t, 2, body["count"])
	assert.Len(t, body["recipes"], 2)

	// Filter by author.
	w = doJSON(t, router, "GET", "/api/v1/recipes?author="+author.ID.String(), "", nil)
	require.Equal(t, 200, w.Code)
	assert.EqualValues(t, 2, decodeBody(t, w)["count"])

	// Favorited filter needs a principal; anonymously it is ignored.
	w = doJSON(t, router, "GET", "/api/v1/recipes?is_favorited=1", "", nil)
	require.Equal(t, 200, w.Code)
	assert.EqualValues(t, 2, decodeBody(t, w)["count"])
}

func TestListRecipesFavoritedFilter(t *testing.T) {
	router, db := setupTestRouter(t)

	_, token := createUserAndToken(t, db, "alice")
	author := testhelpers.CreateUser(t, db, "bob")
	pancakes := testhelpers.CreateRecipe(t, db, author, "Pancakes")
	testhelpers.CreateRecipe(t, db, author, "Salad")

	w := doJSON(t, router, "POST", "/api/v1/recipes/"+pancakes.ID.String()+"/favorite", token, nil)
	require.Equal(t, 201, w.Code)

	w = doJSON(t, router, "GET", "/api/v1/recipes?is_favorited=1", token, nil)
	require.Equal(t, 200, w.Code)
	body := decodeBody(t, w)
	assert.EqualValues(t, 1, body["count"])
	recipes := body["recipes"].([]any)
	require.Len(t, recipes, 1)
	assert.Equal(t, "Pancakes", recipes[0].(map[string]any)["name"])
}
