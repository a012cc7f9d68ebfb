package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Planner schedules a recipe into a user's day. RecipeID is a weak
// reference kept as a plain string: the referenced recipe may be deleted
// later and lookups against it degrade to empty results. Date is an
// opaque display string; grouping treats two formats of the same calendar
// day as distinct groups.
type Planner struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	RecipeID    string    `gorm:"size:36" json:"recipe_id"`
	Title       string    `gorm:"size:255;not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	Time        string    `gorm:"size:50" json:"time"`
	Date        string    `gorm:"size:50;index" json:"date"`
}

func (p *Planner) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
