package service

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/foodbook/backend/internal/models"
)

// IngredientService serves the read-only ingredient reference data and
// loads it from CSV.
type IngredientService struct {
	db *gorm.DB
}

func NewIngredientService(db *gorm.DB) *IngredientService {
	return &IngredientService{db: db}
}

func (s *IngredientService) GetIngredient(ctx context.Context, id uuid.UUID) (*models.Ingredient, error) {
	var ingredient models.Ingredient
	if err := s.db.WithContext(ctx).First(&ingredient, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &ingredient, nil
}

// ListIngredients returns ingredients, optionally narrowed to a
// case-insensitive name prefix.
func (s *IngredientService) ListIngredients(ctx context.Context, namePrefix string) ([]models.Ingredient, error) {
	query := s.db.WithContext(ctx).Order("name")
	if namePrefix != "" {
		query = query.Where("LOWER(name) LIKE ?", strings.ToLower(namePrefix)+"%")
	}
	var ingredients []models.Ingredient
	if err := query.Find(&ingredients).Error; err != nil {
		return nil, err
	}
	return ingredients, nil
}

// SeedFromCSV loads "name,unit" rows. The (name, unit) pair is the
// natural key: a pair that already has a row is skipped, so reloading
// the same file never duplicates data. Returns the number of rows
// created.
func (s *IngredientService) SeedFromCSV(ctx context.Context, path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()
	return s.seed(ctx, csv.NewReader(f))
}

func (s *IngredientService) seed(ctx context.Context, reader *csv.Reader) (int, error) {
	created := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return created, err
		}
		if len(record) != 2 {
			return created, fmt.Errorf("expected 2 columns, got %d: %v", len(record), record)
		}
		name := strings.TrimSpace(record[0])
		unit := strings.TrimSpace(record[1])

		ingredient := models.Ingredient{Name: name, MeasurementUnit: unit}
		res := s.db.WithContext(ctx).
			Where("name = ? AND measurement_unit = ?", name, unit).
			FirstOrCreate(&ingredient)
		if res.Error != nil {
			return created, res.Error
		}
		if res.RowsAffected > 0 {
			created++
		}
	}
	logrus.Infof("ingredient seeding done, %d rows created", created)
	return created, nil
}
