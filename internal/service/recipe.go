package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/plateful/mealplanner-backend/internal/models"
)

// RecipeService handles recipe persistence and search.
type RecipeService struct {
	db *gorm.DB
}

// NewRecipeService creates a new RecipeService instance
func NewRecipeService(db *gorm.DB) *RecipeService {
	return &RecipeService{db: db}
}

// ListRecipes returns the whole catalog.
func (s *RecipeService) ListRecipes(ctx context.Context) ([]models.Recipe, error) {
	var recipes []models.Recipe
	if err := s.db.WithContext(ctx).Find(&recipes).Error; err != nil {
		return nil, Unavailable(err, "failed to fetch recipes")
	}
	return recipes, nil
}

// ListNamesAndIDs returns the id/name projection used by selection widgets.
func (s *RecipeService) ListNamesAndIDs(ctx context.Context) ([]models.RecipeNameID, error) {
	var rows []models.RecipeNameID
	if err := s.db.WithContext(ctx).Model(&models.Recipe{}).Select("id, name").Scan(&rows).Error; err != nil {
		return nil, Unavailable(err, "failed to fetch recipe names")
	}
	return rows, nil
}

// GetRecipe retrieves a recipe by ID
func (s *RecipeService) GetRecipe(ctx context.Context, id uuid.UUID) (*models.Recipe, error) {
	var recipe models.Recipe
	if err := s.db.WithContext(ctx).First(&recipe, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFound("recipe %s not found", id)
		}
		return nil, Unavailable(err, "failed to fetch recipe")
	}
	return &recipe, nil
}

// CreateRecipe creates a new recipe
func (s *RecipeService) CreateRecipe(ctx context.Context, recipe *models.Recipe) (*models.Recipe, error) {
	if recipe.Name == "" {
		return nil, Validation("recipe name is required")
	}
	if err := s.db.WithContext(ctx).Create(recipe).Error; err != nil {
		return nil, Unavailable(err, "failed to create recipe")
	}
	return recipe, nil
}

// UpdateRecipe applies only the supplied fields and returns the updated
// row. Supplied empty values are written, so a client can clear a field;
// an empty field map is rejected rather than silently succeeding.
func (s *RecipeService) UpdateRecipe(ctx context.Context, id uuid.UUID, fields map[string]interface{}) (*models.Recipe, error) {
	if len(fields) == 0 {
		return nil, Validation("no fields to update")
	}
	if _, err := s.GetRecipe(ctx, id); err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Model(&models.Recipe{}).Where("id = ?", id).Updates(fields).Error; err != nil {
		return nil, Unavailable(err, "failed to update recipe")
	}
	return s.GetRecipe(ctx, id)
}

// DeleteRecipe deletes a recipe. Deleting an id with no record reports
// not-found, so a second delete of the same id never looks like a success.
func (s *RecipeService) DeleteRecipe(ctx context.Context, id uuid.UUID) error {
	var recipe models.Recipe
	if err := s.db.WithContext(ctx).First(&recipe, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return NotFound("recipe %s not found", id)
		}
		return Unavailable(err, "failed to fetch recipe")
	}

	if err := s.db.WithContext(ctx).Delete(&models.Recipe{}, "id = ?", id).Error; err != nil {
		return Unavailable(err, "failed to delete recipe")
	}
	return nil
}
