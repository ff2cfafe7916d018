package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/foodbook/backend/internal/locale"
	"github.com/foodbook/backend/internal/types"
)

// CartService computes a user's consolidated shopping list from the
// recipes currently in their cart.
type CartService struct {
	db *gorm.DB
}

func NewCartService(db *gorm.DB) *CartService {
	return &CartService{db: db}
}

// cartLine is one (ingredient, amount) contribution from one cart entry.
type cartLine struct {
	Name   string
	Unit   string
	Amount decimal.Decimal
}

// ShoppingList aggregates every ingredient of every recipe in the user's
// cart. Amounts are summed per (name, unit) pair with decimal arithmetic;
// the same ingredient under a different unit forms a separate group.
// Output is sorted by ingredient name, then unit, so repeated calls over
// the same data render identically.
func (s *CartService) ShoppingList(ctx context.Context, userID uuid.UUID) ([]types.ShoppingListItem, error) {
	var lines []cartLine
	err := s.db.WithContext(ctx).
		Table("cart_items").
		Select("ingredients.name AS name, ingredients.measurement_unit AS unit, recipe_ingredients.amount AS amount").
		Joins("JOIN recipe_ingredients ON recipe_ingredients.recipe_id = cart_items.recipe_id").
		Joins("JOIN ingredients ON ingredients.id = recipe_ingredients.ingredient_id").
		Where("cart_items.user_id = ?", userID).
		Scan(&lines).Error
	if err != nil {
		return nil, err
	}

	type groupKey struct {
		name string
		unit string
	}
	totals := make(map[groupKey]decimal.Decimal, len(lines))
	for _, line := range lines {
		key := groupKey{name: line.Name, unit: line.Unit}
		totals[key] = totals[key].Add(line.Amount)
	}

	items := make([]types.ShoppingListItem, 0, len(totals))
	for key, total := range totals {
		items = append(items, types.ShoppingListItem{
			Name:            key.name,
			MeasurementUnit: key.unit,
			Total:           total.String(),
		})
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].Name != items[j].Name {
			return items[i].Name < items[j].Name
		}
		return items[i].MeasurementUnit < items[j].MeasurementUnit
	})
	return items, nil
}

// Render formats the shopping list as the downloadable text document:
// one "{name} ({unit}) - {total}" line per group, or the localized
// empty-cart message when there is nothing to buy.
func (s *CartService) Render(items []types.ShoppingListItem, lang string) string {
	if len(items) == 0 {
		return locale.T(lang, "cart.empty", nil)
	}
	var b strings.Builder
	for _, item := range items {
		fmt.Fprintf(&b, "%s (%s) - %s\n", item.Name, item.MeasurementUnit, item.Total)
	}
	return b.String()
}
