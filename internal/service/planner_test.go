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

func seedPlan(t *testing.T, db *gorm.DB, userID uuid.UUID, title, date string) models.Planner {
	t.Helper()
	p := models.Planner{UserID: userID, Title: title, Date: date, Time: "Dinner"}
	require.NoError(t, db.Create(&p).Error)
	return p
}

func TestGroupedByDate(t *testing.T) {
	db := testdb.New(t)
	svc := NewPlannerService(db)
	user := uuid.New()
	other := uuid.New()
	seedPlan(t, db, user, "Pancakes", "Jan 1")
	seedPlan(t, db, user, "Soup", "Jan 1")
	seedPlan(t, db, user, "Curry", "Jan 2")
	seedPlan(t, db, other, "Not counted", "Jan 1")

	counts, err := svc.GroupedByDate(context.Background(), user)
	require.NoError(t, err)

	got := map[string]int64{}
	for _, c := range counts {
		got[c.Date] = c.TotalPlans
	}
	assert.Equal(t, map[string]int64{"Jan 1": 2, "Jan 2": 1}, got)
}

func TestGroupedByDateTreatsFormatsAsDistinct(t *testing.T) {
	db := testdb.New(t)
	svc := NewPlannerService(db)
	user := uuid.New()
	seedPlan(t, db, user, "A", "Jan 1")
	seedPlan(t, db, user, "B", "January 1")

	counts, err := svc.GroupedByDate(context.Background(), user)
	require.NoError(t, err)
	// dates are opaque strings; no normalization across formats
	assert.Len(t, counts, 2)
}

func TestPlannerPartialUpdate(t *testing.T) {
	db := testdb.New(t)
	svc := NewPlannerService(db)
	plan := seedPlan(t, db, uuid.New(), "Original", "Jan 1")

	updated, err := svc.UpdatePlan(context.Background(), plan.ID, map[string]interface{}{"title": "Renamed"})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Title)
	assert.Equal(t, "Jan 1", updated.Date)
	assert.Equal(t, "Dinner", updated.Time)
}

func TestPlannerUpdateRequiresFields(t *testing.T) {
	db := testdb.New(t)
	svc := NewPlannerService(db)
	plan := seedPlan(t, db, uuid.New(), "Original", "Jan 1")

	_, err := svc.UpdatePlan(context.Background(), plan.ID, map[string]interface{}{})
	var svcErr *Error
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, KindValidation, svcErr.Kind)
}

func TestPlannerListByUserAndDate(t *testing.T) {
	db := testdb.New(t)
	svc := NewPlannerService(db)
	user := uuid.New()
	seedPlan(t, db, user, "A", "Jan 1")
	seedPlan(t, db, user, "B", "Jan 2")
	seedPlan(t, db, uuid.New(), "C", "Jan 1")

	byUser, err := svc.ListPlansByUser(context.Background(), user)
	require.NoError(t, err)
	assert.Len(t, byUser, 2)

	byDate, err := svc.ListPlansByDate(context.Background(), "Jan 1")
	require.NoError(t, err)
	assert.Len(t, byDate, 2)
}

func TestPlannerDeleteThenNotFound(t *testing.T) {
	db := testdb.New(t)
	svc := NewPlannerService(db)
	plan := seedPlan(t, db, uuid.New(), "A", "Jan 1")

	require.NoError(t, svc.DeletePlan(context.Background(), plan.ID))

	err := svc.DeletePlan(context.Background(), plan.ID)
	var svcErr *Error
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, KindNotFound, svcErr.Kind)
}

func TestPlannerDanglingRecipeReference(t *testing.T) {
	db := testdb.New(t)
	planner := NewPlannerService(db)
	nutrition := NewNutritionService(db)

	recipe := models.Recipe{Name: "Removed later", Ingredients: models.JSONBStringArray{"1 cup milk"}}
	require.NoError(t, db.Create(&recipe).Error)

	plan, err := planner.CreatePlan(context.Background(), &models.Planner{
		UserID:   uuid.New(),
		RecipeID: recipe.ID.String(),
		Title:    "Dinner",
		Date:     "Jan 1",
	})
	require.NoError(t, err)

	// the referenced recipe goes away; the plan stays and nutrition
	// lookups against the stale reference report not-found
	require.NoError(t, db.Delete(&models.Recipe{}, "id = ?", recipe.ID).Error)

	kept, err := planner.GetPlan(context.Background(), plan.ID)
	require.NoError(t, err)
	assert.Equal(t, recipe.ID.String(), kept.RecipeID)

	_, err = nutrition.ForRecipe(context.Background(), recipe.ID)
	var svcErr *Error
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, KindNotFound, svcErr.Kind)
}
