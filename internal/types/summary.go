package types

import (
	"github.com/google/uuid"
)

// RecipeSummary is the short recipe projection echoed back by the link
// endpoints and embedded in follow listings.
type RecipeSummary struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	ImageURL    string    `json:"image_url"`
	CookingTime int       `json:"cooking_time"`
}

// UserSummary is the short user projection returned by the follow
// endpoints.
type UserSummary struct {
	ID           uuid.UUID `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	IsSubscribed bool      `json:"is_subscribed"`
}

// ShoppingListItem is one aggregated line of a user's shopping list:
// all cart recipes contributing the same (name, unit) pair are summed
// into a single total.
type ShoppingListItem struct {
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
	Total           string `json:"total"`
}
