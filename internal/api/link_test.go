package api

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foodbook/backend/internal/testhelpers"
)

func TestFavoriteEndpointToggle(t *testing.T) {
	router, db := setupTestRouter(t)

	_, token := createUserAndToken(t, db, "alice")
	author := testhelpers.CreateUser(t, db, "bob")
	recipe := testhelpers.CreateRecipe(t, db, author, "Pancakes")

	path := "/api/v1/recipes/" + recipe.ID.String() + "/favorite"

	// Preview before linking.
	w := doJSON(t, router, "GET", path, token, nil)
	require.Equal(t, 200, w.Code)
	assert.Equal(t, "Pancakes", decodeBody(t, w)["name"])

	// First add succeeds with the recipe projection.
	w = doJSON(t, router, "POST", path, token, nil)
	require.Equal(t, 201, w.Code)
	assert.Equal(t, recipe.ID.String(), decodeBody(t, w)["id"])

	// Second add is a conflict with the kind-specific message.
	w = doJSON(t, router, "POST", path, token, nil)
	require.Equal(t, 400, w.Code)
	assert.Equal(t, "Recipe is already in your favorites", decodeBody(t, w)["error"])

	// Remove confirms, quoting the target id.
	w = doJSON(t, router, "DELETE", path, token, nil)
	require.Equal(t, 201, w.Code)
	assert.Contains(t, decodeBody(t, w)["message"], recipe.ID.String())

	// Removing a second time reports the missing link.
	w = doJSON(t, router, "DELETE", path, token, nil)
	require.Equal(t, 400, w.Code)
}

func TestShoppingCartEndpointToggle(t *testing.T) {
	router, db := setupTestRouter(t)

	_, token := createUserAndToken(t, db, "alice")
	author := testhelpers.CreateUser(t, db, "bob")
	recipe := testhelpers.CreateRecipe(t, db, author, "Pancakes")

	path := "/api/v1/recipes/" + recipe.ID.String() + "/shopping_cart"

	w := doJSON(t, router, "POST", path, token, nil)
	require.Equal(t, 201, w.Code)

	w = doJSON(t, router, "POST", path, token, nil)
	require.Equal(t, 400, w.Code)
	assert.Equal(t, "Recipe is already in your cart", decodeBody(t, w)["error"])

	w = doJSON(t, router, "DELETE", path, token, nil)
	require.Equal(t, 201, w.Code)
}

func TestSubscribeEndpoint(t *testing.T) {
	router, db := setupTestRouter(t)

	userID, token := createUserAndToken(t, db, "alice")
	author := testhelpers.CreateUser(t, db, "bob")

	path := "/api/v1/users/" + author.ID.String() + "/subscribe"

	w := doJSON(t, router, "POST", path, token, nil)
	require.Equal(t, 201, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "bob", body["username"])
	assert.Equal(t, true, body["is_subscribed"])

	// Following yourself is rejected.
	w = doJSON(t, router, "POST", "/api/v1/users/"+userID.String()+"/subscribe", token, nil)
	require.Equal(t, 400, w.Code)
	assert.Equal(t, "You cannot follow yourself", decodeBody(t, w)["error"])

	w = doJSON(t, router, "DELETE", path, token, nil)
	require.Equal(t, 201, w.Code)
	assert.Contains(t, decodeBody(t, w)["message"], author.ID.String())
}

func TestLinkEndpointsLocalizedMessages(t *testing.T) {
	router, db := setupTestRouter(t)

	_, token := createUserAndToken(t, db, "alice")
	author := testhelpers.CreateUser(t, db, "bob")
	recipe := testhelpers.CreateRecipe(t, db, author, "Pancakes")

	path := "/api/v1/recipes/" + recipe.ID.String() + "/favorite"
	w := doJSON(t, router, "POST", path, token, nil)
	require.Equal(t, 201, w.Code)

	req := doJSONWithLang(t, router, "POST", path, token, "ru")
	require.Equal(t, 400, req.Code)
	assert.Equal(t, "Рецепт уже в избранном", decodeBody(t, req)["error"])
}

func TestLinkEndpointsRequireAuth(t *testing.T) {
	router, db := setupTestRouter(t)

	author := testhelpers.CreateUser(t, db, "bob")
	recipe := testhelpers.CreateRecipe(t, db, author, "Pancakes")

	for _, path := range []string{
		"/api/v1/recipes/" + recipe.ID.String() + "/favorite",
		"/api/v1/recipes/" + recipe.ID.String() + "/shopping_cart",
		"/api/v1/users/" + author.ID.String() + "/subscribe",
	} {
		w := doJSON(t, router, "POST", path, "", nil)
		assert.Equal(t, 401, w.Code, path)
	}
}

func TestLinkEndpointTargetNotFound(t *testing.T) {
	router, db := setupTestRouter(t)

	_, token := createUserAndToken(t, db, "alice")

	w := doJSON(t, router, "POST", "/api/v1/recipes/00000000-0000-0000-0000-000000000001/favorite", token, nil)
	assert.Equal(t, 404, w.Code)

	w = doJSON(t, router, "POST", "/api/v1/users/00000000-0000-0000-0000-000000000001/subscribe", token, nil)
	assert.Equal(t, 404, w.Code)
}
