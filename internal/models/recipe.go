package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// JSONBStringArray is a custom type for handling string arrays in JSONB
type JSONBStringArray []string

// Value implements the driver.Valuer interface
func (a JSONBStringArray) Value() (driver.Value, error) {
	if len(a) == 0 {
		return "[]", nil
	}
	return json.Marshal(a)
}

// Scan implements the sql.Scanner interface
func (a *JSONBStringArray) Scan(value interface{}) error {
	if value == nil {
		*a = JSONBStringArray{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return nil
	}

	return json.Unmarshal(bytes, a)
}

// Recipe is a catalog entry. Ingredients holds normalized tokens used for
// nutrition matching; IngredientsRaw keeps the free-form comma-separated
// text as entered. SearchTerms is comma-delimited free text matched by the
// search and filter predicates.
type Recipe struct {
	ID             uuid.UUID        `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`
	DeletedAt      gorm.DeletedAt   `gorm:"index" json:"-"`
	Name           string           `gorm:"size:255;not null" json:"name"`
	Description    string           `gorm:"type:text" json:"description"`
	Ingredients    JSONBStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"ingredients"`
	IngredientsRaw string           `gorm:"type:text" json:"ingredients_raw"`
	ServingSize    string           `gorm:"size:100" json:"serving_size"`
	Servings       int              `json:"servings"`
	Steps          string           `gorm:"type:text" json:"steps"`
	Tags           JSONBStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"tags"`
	SearchTerms    string           `gorm:"type:text;index" json:"search_terms"`
}

// BeforeCreate assigns an id when the caller did not, so the model works
// on backends without a server-side uuid default.
func (r *Recipe) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// RecipeNameID is the minimal projection used by selection widgets.
type RecipeNameID struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}
