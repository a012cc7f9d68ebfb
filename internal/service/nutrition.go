package service

import (
	"context"
	"errors"
	"regexp"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/plateful/mealplanner-backend/internal/models"
)

// NutritionService joins recipe ingredient tokens against the nutrition
// reference table.
type NutritionService struct {
	db *gorm.DB
}

func NewNutritionService(db *gorm.DB) *NutritionService {
	return &NutritionService{db: db}
}

// IngredientNutrition pairs one ingredient token with every nutrition
// entry whose food name appears in it. Zero matches keeps the token in
// the sequence with an empty slice, so ingredient counts survive.
type IngredientNutrition struct {
	Ingredient string                  `json:"ingredient"`
	Matches    []models.NutritionEntry `json:"nutrition"`
}

// NutritionTotals are summed over present matches only.
type NutritionTotals struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Fat      float64 `json:"fat"`
	Carbs    float64 `json:"carbs"`
}

// NutritionReport is the aggregation result for one recipe.
type NutritionReport struct {
	RecipeID uuid.UUID             `json:"recipe_id"`
	Items    []IngredientNutrition `json:"items"`
	Totals   NutritionTotals       `json:"totals"`
}

// ListEntries returns the whole nutrition reference table.
func (s *NutritionService) ListEntries(ctx context.Context) ([]models.NutritionEntry, error) {
	var entries []models.NutritionEntry
	if err := s.db.WithContext(ctx).Find(&entries).Error; err != nil {
		return nil, Unavailable(err, "failed to fetch nutrition entries")
	}
	return entries, nil
}

// ForRecipe aggregates nutrition for every ingredient token of the
// recipe. An unknown recipe id is not-found; a recipe with no ingredients
// yields an empty, successful report.
func (s *NutritionService) ForRecipe(ctx context.Context, recipeID uuid.UUID) (*NutritionReport, error) {
	var recipe models.Recipe
	if err := s.db.WithContext(ctx).First(&recipe, "id = ?", recipeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFound("recipe %s not found", recipeID)
		}
		return nil, Unavailable(err, "failed to fetch recipe")
	}

	report := &NutritionReport{
		RecipeID: recipeID,
		Items:    make([]IngredientNutrition, 0, len(recipe.Ingredients)),
	}
	if len(recipe.Ingredients) == 0 {
		return report, nil
	}

	var entries []models.NutritionEntry
	if err := s.db.WithContext(ctx).Find(&entries).Error; err != nil {
		return nil, Unavailable(err, "failed to fetch nutrition entries")
	}

	type matcher struct {
		entry models.NutritionEntry
		re    *regexp.Regexp
	}
	matchers := make([]matcher, 0, len(entries))
	for _, e := range entries {
		re, err := foodPattern(e.Food)
		if err != nil || re == nil {
			continue
		}
		matchers = append(matchers, matcher{entry: e, re: re})
	}

	for _, ingredient := range recipe.Ingredients {
		item := IngredientNutrition{Ingredient: ingredient, Matches: []models.NutritionEntry{}}
		for _, m := range matchers {
			if m.re.MatchString(ingredient) {
				item.Matches = append(item.Matches, m.entry)
				addTotals(&report.Totals, m.entry)
			}
		}
		report.Items = append(report.Items, item)
	}
	return report, nil
}

// foodPattern builds the word-boundary matcher for a food name: the name
// must be delimited by a non-letter or the string edge, with an optional
// plural suffix so "egg" matches "2 eggs" but never "eggplant".
func foodPattern(food string) (*regexp.Regexp, error) {
	food = strings.TrimSpace(food)
	if food == "" {
		return nil, nil
	}
	return regexp.Compile(`(?i)(^|[^a-zA-Z])` + regexp.QuoteMeta(food) + `(s|es)?([^a-zA-Z]|$)`)
}

func addTotals(t *NutritionTotals, e models.NutritionEntry) {
	t.Calories += parseMacro(e.Calories)
	t.Protein += parseMacro(e.Protein)
	t.Fat += parseMacro(e.Fat)
	t.Carbs += parseMacro(e.Carbs)
}

// parseMacro reads a macro value from the raw reference data; anything
// that fails to parse contributes zero instead of aborting the sum.
func parseMacro(raw string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0
	}
	return v
}
