package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Ingredient is reference data seeded from CSV. The (name, unit) pair is
// the natural key: seeding uses get-or-create semantics so the same pair
// never produces two rows.
type Ingredient struct {
	ID              uuid.UUID `gorm:"type:uuid;primarykey" json:"id"`
	Name            string    `gorm:"size:200;not null;uniqueIndex:idx_ingredient_name_unit" json:"name"`
	MeasurementUnit string    `gorm:"size:200;not null;uniqueIndex:idx_ingredient_name_unit" json:"measurement_unit"`
}

func (i *Ingredient) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
