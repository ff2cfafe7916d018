package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foodbook/backend/internal/models"
	"github.com/foodbook/backend/internal/testhelpers"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ingredients.csv")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write csv: %v", err)
	}
	return path
}

func TestSeedFromCSVDeduplicates(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := NewIngredientService(db)

	path := writeCSV(t, "Salt,g\nSalt,g\n")
	created, err := svc.SeedFromCSV(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, 1, created)

	var count int64
	require.NoError(t, db.Model(&models.Ingredient{}).Where("name = ?", "Salt").Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestSeedFromCSVIsIdempotent(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := NewIngredientService(db)
	ctx := context.Background()

	path := writeCSV(t, "Salt,g\nPepper,g\nMilk,ml\n")

	created, err := svc.SeedFromCSV(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, 3, created)

	created, err = svc.SeedFromCSV(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, 0, created)

	var count int64
	require.NoError(t, db.Model(&models.Ingredient{}).Count(&count).Error)
	assert.EqualValues(t, 3, count)
}

func TestSeedFromCSVSameNameDifferentUnit(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := NewIngredientService(db)

	// Distinct units are distinct rows: the natural key is the pair.
	path := writeCSV(t, "Sugar,g\nSugar,tbsp\n")
	created, err := svc.SeedFromCSV(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, 2, created)
}

func TestSeedFromCSVRejectsMalformedRow(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := NewIngredientService(db)

	path := writeCSV(t, "Salt\n")
	_, err := svc.SeedFromCSV(context.Background(), path)
	assert.Error(t, err)
}

func TestListIngredientsNamePrefix(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := NewIngredientService(db)
	ctx := context.Background()

	path := writeCSV(t, "Salt,g\nSugar,g\nMilk,ml\n")
	_, err := svc.SeedFromCSV(ctx, path)
	require.NoError(t, err)

	ingredients, err := svc.ListIngredients(ctx, "s")
	require.NoError(t, err)
	require.Len(t, ingredients, 2)
	assert.Equal(t, "Salt", ingredients[0].Name)
	assert.Equal(t, "Sugar", ingredients[1].Name)
}
