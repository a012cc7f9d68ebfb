package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// NutritionEntry is a row of the imported nutrition reference table. The
// macro fields are kept as the raw strings from the source data set; they
// are parsed at aggregation time and unparsable values contribute zero.
type NutritionEntry struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Food     string    `gorm:"size:255;not null;index" json:"food"`
	Measure  string    `gorm:"size:100" json:"measure"`
	Grams    string    `gorm:"size:50" json:"grams"`
	Calories string    `gorm:"size:50" json:"calories"`
	Protein  string    `gorm:"size:50" json:"protein"`
	Fat      string    `gorm:"size:50" json:"fat"`
	Fiber    string    `gorm:"size:50" json:"fiber"`
	Carbs    string    `gorm:"size:50" json:"carbs"`
	Category string    `gorm:"size:100" json:"category"`
}

func (n *NutritionEntry) BeforeCreate(tx *gorm.DB) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	return nil
}
