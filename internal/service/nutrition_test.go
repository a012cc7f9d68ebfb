package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/plateful/mealplanner-backend/internal/models"
	"github.com/plateful/mealplanner-backend/internal/testdb"
)

func seedNutrition(t *testing.T, db *gorm.DB, food, calories, protein, fat, carbs string) {
	t.Helper()
	require.NoError(t, db.Create(&models.NutritionEntry{
		Food:     food,
		Calories: calories,
		Protein:  protein,
		Fat:      fat,
		Carbs:    carbs,
	}).Error)
}

func seedIngredientRecipe(t *testing.T, db *gorm.DB, ingredients ...string) uuid.UUID {
	t.Helper()
	r := models.Recipe{Name: "test recipe", Ingredients: models.JSONBStringArray(ingredients)}
	require.NoError(t, db.Create(&r).Error)
	return r.ID
}

func TestNutritionTotals(t *testing.T) {
	db := testdb.New(t)
	svc := NewNutritionService(db)
	seedNutrition(t, db, "egg", "70", "6", "5", "0.4")
	seedNutrition(t, db, "milk", "103", "8", "2.4", "12")
	recipeID := seedIngredientRecipe(t, db, "2 eggs", "1 cup milk")

	report, err := svc.ForRecipe(context.Background(), recipeID)
	require.NoError(t, err)
	require.Len(t, report.Items, 2)
	assert.Equal(t, "2 eggs", report.Items[0].Ingredient)
	require.Len(t, report.Items[0].Matches, 1)
	assert.Equal(t, "egg", report.Items[0].Matches[0].Food)
	require.Len(t, report.Items[1].Matches, 1)
	assert.Equal(t, "milk", report.Items[1].Matches[0].Food)

	assert.InDelta(t, 173, report.Totals.Calories, 0.001)
	assert.InDelta(t, 14, report.Totals.Protein, 0.001)
	assert.InDelta(t, 7.4, report.Totals.Fat, 0.001)
	assert.InDelta(t, 12.4, report.Totals.Carbs, 0.001)
}

func TestNutritionWordBoundary(t *testing.T) {
	db := testdb.New(t)
	svc := NewNutritionService(db)
	seedNutrition(t, db, "egg", "70", "", "", "")
	recipeID := seedIngredientRecipe(t, db, "1 eggplant", "2 eggs", "egg, beaten")

	report, err := svc.ForRecipe(context.Background(), recipeID)
	require.NoError(t, err)
	require.Len(t, report.Items, 3)

	// "egg" must not match inside "eggplant"
	assert.Empty(t, report.Items[0].Matches)
	// plural suffix is folded into the boundary
	assert.Len(t, report.Items[1].Matches, 1)
	assert.Len(t, report.Items[2].Matches, 1)
	assert.InDelta(t, 140, report.Totals.Calories, 0.001)
}

func TestNutritionFanOut(t *testing.T) {
	db := testdb.New(t)
	svc := NewNutritionService(db)
	seedNutrition(t, db, "cheddar cheese", "113", "", "", "")
	seedNutrition(t, db, "cheese", "100", "", "", "")
	recipeID := seedIngredientRecipe(t, db, "1 cup cheddar cheese")

	report, err := svc.ForRecipe(context.Background(), recipeID)
	require.NoError(t, err)
	require.Len(t, report.Items, 1)
	// both entries match the one ingredient; all matches are retained
	assert.Len(t, report.Items[0].Matches, 2)
	assert.InDelta(t, 213, report.Totals.Calories, 0.001)
}

func TestNutritionZeroMatchKeepsIngredient(t *testing.T) {
	db := testdb.New(t)
	svc := NewNutritionService(db)
	seedNutrition(t, db, "milk", "103", "", "", "")
	recipeID := seedIngredientRecipe(t, db, "1 tsp saffron", "1 cup milk")

	report, err := svc.ForRecipe(context.Background(), recipeID)
	require.NoError(t, err)
	require.Len(t, report.Items, 2)
	assert.Equal(t, "1 tsp saffron", report.Items[0].Ingredient)
	assert.Empty(t, report.Items[0].Matches)
	assert.InDelta(t, 103, report.Totals.Calories, 0.001)
}

func TestNutritionUnparsableValuesContributeZero(t *testing.T) {
	db := testdb.New(t)
	svc := NewNutritionService(db)
	seedNutrition(t, db, "butter", "717", "trace", "81", "n/a")
	recipeID := seedIngredientRecipe(t, db, "1 stick butter")

	report, err := svc.ForRecipe(context.Background(), recipeID)
	require.NoError(t, err)
	assert.InDelta(t, 717, report.Totals.Calories, 0.001)
	assert.InDelta(t, 0, report.Totals.Protein, 0.001)
	assert.InDelta(t, 81, report.Totals.Fat, 0.001)
	assert.InDelta(t, 0, report.Totals.Carbs, 0.001)
}

func TestNutritionUnknownRecipe(t *testing.T) {
	db := testdb.New(t)
	svc := NewNutritionService(db)

	_, err := svc.ForRecipe(context.Background(), uuid.New())
	require.Error(t, err)
	var svcErr *Error
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, KindNotFound, svcErr.Kind)
}

func TestNutritionZeroIngredientsSucceeds(t *testing.T) {
	db := testdb.New(t)
	svc := NewNutritionService(db)
	seedNutrition(t, db, "egg", "70", "", "", "")
	recipeID := seedIngredientRecipe(t, db)

	report, err := svc.ForRecipe(context.Background(), recipeID)
	require.NoError(t, err)
	assert.Empty(t, report.Items)
	assert.InDelta(t, 0, report.Totals.Calories, 0.001)
}
