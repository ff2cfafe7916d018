package api

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndLoginEndpoints(t *testing.T) {
	router, _ := setupTestRouter(t)

	w := doJSON(t, router, "POST", "/api/v1/auth/register", "", map[string]any{
		"username":   "alice",
		"email":      "alice@example.com",
		"first_name": "Alice",
		"last_name":  "Smith",
		"password":   "password123",
	})
	require.Equal(t, 201, w.Code)
	assert.NotEmpty(t, decodeBody(t, w)["token"])

	// Login deliberately answers 201, not 200: a token was created.
	w = doJSON(t, router, "POST", "/api/v1/auth/login", "", map[string]any{
		"email":    "alice@example.com",
		"password": "password123",
	})
	require.Equal(t, 201, w.Code)
	token := decodeBody(t, w)["token"].(string)
	assert.NotEmpty(t, token)

	// The token works against a protected endpoint.
	w = doJSON(t, router, "GET", "/api/v1/users/me", token, nil)
	require.Equal(t, 200, w.Code)
	assert.Equal(t, "alice", decodeBody(t, w)["username"])
}

func TestRegisterValidation(t *testing.T) {
	router, _ := setupTestRouter(t)

	w := doJSON(t, router, "POST", "/api/v1/auth/register", "", map[string]any{
		"username": "alice",
		"email":    "not-an-email",
		"password": "short",
	})
	assert.Equal(t, 400, w.Code)
}

func TestLoginWrongCredentials(t *testing.T) {
	router, db := setupTestRouter(t)

	createUserAndToken(t, db, "alice")

	w := doJSON(t, router, "POST", "/api/v1/auth/login", "", map[string]any{
		"email":    "alice@example.com",
		"password": "wrong",
	})
	assert.Equal(t, 401, w.Code)
}

func TestLogoutEndpoint(t *testing.T) {
	router, db := setupTestRouter(t)

	_, token := createUserAndToken(t, db, "alice")

	w := doJSON(t, router, "POST", "/api/v1/auth/logout", token, nil)
	assert.Equal(t, 204, w.Code)

	w = doJSON(t, router, "POST", "/api/v1/auth/logout", "", nil)
	assert.Equal(t, 401, w.Code)
}

func TestSetPasswordEndpoint(t *testing.T) {
	router, db := setupTestRouter(t)

	_, token := createUserAndToken(t, db, "alice")

	w := doJSON(t, router, "POST", "/api/v1/auth/set_password", token, map[string]any{
		"current_password": "password123",
		"new_password":     "evenbetter456",
	})
	require.Equal(t, 204, w.Code)

	w = doJSON(t, router, "POST", "/api/v1/auth/login", "", map[string]any{
		"email":    "alice@example.com",
		"password": "evenbetter456",
	})
	assert.Equal(t, 201, w.Code)

	w = doJSON(t, router, "POST", "/api/v1/auth/set_password", token, map[string]any{
		"current_password": "wrong",
		"new_password":     "whatever789",
	})
	assert.Equal(t, 400, w.Code)
}
