package api

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foodbook/backend/internal/testhelpers"
)

func TestDownloadShoppingCart(t *testing.T) {
	router, db := setupTestRouter(t)

	_, token := createUserAndToken(t, db, "alice")
	author := testhelpers.CreateUser(t, db, "bob")

	recipeA := testhelpers.CreateRecipe(t, db, author, "Recipe A",
		testhelpers.IngredientLine{Name: "Flour", Unit: "g", Amount: "200"},
		testhelpers.IngredientLine{Name: "Egg", Unit: "pcs", Amount: "2"},
	)
	recipeB := testhelpers.CreateRecipe(t, db, author, "Recipe B",
		testhelpers.IngredientLine{Name: "Flour", Unit: "g", Amount: "300"},
		testhelpers.IngredientLine{Name: "Milk", Unit: "ml", Amount: "100"},
	)

	for _, recipe := range []string{recipeA.ID.String(), recipeB.ID.String()} {
		w := doJSON(t, router, "POST", "/api/v1/recipes/"+recipe+"/shopping_cart", token, nil)
		require.Equal(t, 201, w.Code)
	}

	w := doJSON(t, router, "GET", "/api/v1/recipes/download_shopping_cart", token, nil)
	require.Equal(t, 200, w.Code)
	assert.Equal(t, "text/plain; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="cart.txt"`, w.Header().Get("Content-Disposition"))
	assert.Equal(t, "Egg (pcs) - 2\nFlour (g) - 500\nMilk (ml) - 100\n", w.Body.String())
}

func TestDownloadEmptyCart(t *testing.T) {
	router, db := setupTestRouter(t)

	_, token := createUserAndToken(t, db, "alice")

	w := doJSON(t, router, "GET", "/api/v1/recipes/download_shopping_cart", token, nil)
	require.Equal(t, 200, w.Code)
	assert.Equal(t, "Cart list is empty", w.Body.String())

	w = doJSONWithLang(t, router, "GET", "/api/v1/recipes/download_shopping_cart", token, "ru")
	require.Equal(t, 200, w.Code)
	assert.Equal(t, "Список покупок пуст", w.Body.String())
}

func TestShoppingCartJSONList(t *testing.T) {
	router, db := setupTestRouter(t)

	_, token := createUserAndToken(t, db, "alice")
	author := testhelpers.CreateUser(t, db, "bob")
	recipe := testhelpers.CreateRecipe(t, db, author, "Recipe",
		testhelpers.IngredientLine{Name: "Flour", Unit: "g", Amount: "200"},
	)

	w := doJSON(t, router, "POST", "/api/v1/recipes/"+recipe.ID.String()+"/shopping_cart", token, nil)
	require.Equal(t, 201, w.Code)

	w = doJSON(t, router, "GET", "/api/v1/recipes/shopping_cart", token, nil)
	require.Equal(t, 200, w.Code)
	body := decodeBody(t, w)
	items := body["shopping_list"].([]any)
	require.Len(t, items, 1)
	item := items[0].(map[string]any)
	assert.Equal(t, "Flour", item["name"])
	assert.Equal(t, "g", item["measurement_unit"])
	assert.Equal(t, "200", item["total"])
}

func TestDownloadRequiresAuth(t *testing.T) {
	router, _ := setupTestRouter(t)

	w := doJSON(t, router, "GET", "/api/v1/recipes/download_shopping_cart", "", nil)
	assert.Equal(t, 401, w.Code)
}
