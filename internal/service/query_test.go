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

func seedRecipe(t *testing.T, db *gorm.DB, id string, name, servingSize, searchTerms string, servings int) models.Recipe {
	t.Helper()
	r := models.Recipe{
		ID:          uuid.MustParse(id),
		Name:        name,
		ServingSize: servingSize,
		SearchTerms: searchTerms,
		Servings:    servings,
	}
	require.NoError(t, db.Create(&r).Error)
	return r
}

func searchFixture(t *testing.T) (*RecipeService, *gorm.DB) {
	db := testdb.New(t)
	seedRecipe(t, db, "00000000-0000-0000-0000-000000000001", "Banana Bread", "1 (60 g)", "banana,bread,baking,sweet", 8)
	seedRecipe(t, db, "00000000-0000-0000-0000-000000000002", "Chicken Curry", "1 (250 g)", "chicken,curry,spicy,dinner", 4)
	seedRecipe(t, db, "00000000-0000-0000-0000-000000000003", "caesar salad", "1 (155 g)", "salad,chicken,lunch", 2)
	seedRecipe(t, db, "00000000-0000-0000-0000-000000000004", "Omelette", "2 servings", "egg,breakfast,quick", 1)
	return NewRecipeService(db), db
}

func names(recipes []models.Recipe) []string {
	out := make([]string, len(recipes))
	for i, r := range recipes {
		out[i] = r.Name
	}
	return out
}

func TestSearchTextMatchesNameOrSearchTerms(t *testing.T) {
	svc, _ := searchFixture(t)

	// "chicken" appears in one name and in another recipe's search terms
	got, err := svc.SearchRecipes(context.Background(), SearchQuery{Text: "Chicken", SortBy: "name"})
	require.NoError(t, err)
	assert.Equal(t, []string{"caesar salad", "Chicken Curry"}, names(got))
}

func TestSearchTextAndFiltersCombineWithAnd(t *testing.T) {
	svc, _ := searchFixture(t)

	// text matches two recipes; the filter narrows to the one whose
	// search_terms also contain "salad"
	got, err := svc.SearchRecipes(context.Background(), SearchQuery{
		Text:    "chicken",
		Filters: []string{"salad"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"caesar salad"}, names(got))
}

func TestFilterTermsAllRequired(t *testing.T) {
	svc, _ := searchFixture(t)

	got, err := svc.SearchRecipes(context.Background(), SearchQuery{
		Filters: []string{"chicken", "dinner"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Chicken Curry"}, names(got))

	// filter terms are substring tests, not exact-term membership:
	// "read" matches inside "bread"
	got, err = svc.SearchRecipes(context.Background(), SearchQuery{Filters: []string{"read"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"Banana Bread"}, names(got))
}

func TestSearchTextMatchesLikeWildcardsLiterally(t *testing.T) {
	db := testdb.New(t)
	svc := NewRecipeService(db)
	seedRecipe(t, db, "00000000-0000-0000-0000-000000000011", "Rye Loaf", "", "100% rye,baking", 1)
	seedRecipe(t, db, "00000000-0000-0000-0000-000000000012", "Pound Cake", "", "100 grams butter,baking", 1)

	// "%" in the query is a literal character, not a match-anything
	got, err := svc.SearchRecipes(context.Background(), SearchQuery{Text: "100%"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Rye Loaf"}, names(got))

	// same for "_": it must not match an arbitrary single character
	got, err = svc.SearchRecipes(context.Background(), SearchQuery{Filters: []string{"100_"}})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSortByNameCaseInsensitive(t *testing.T) {
	svc, _ := searchFixture(t)

	got, err := svc.SearchRecipes(context.Background(), SearchQuery{SortBy: "name"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Banana Bread", "caesar salad", "Chicken Curry", "Omelette"}, names(got))

	got, err = svc.SearchRecipes(context.Background(), SearchQuery{SortBy: "name", Direction: SortDesc})
	require.NoError(t, err)
	assert.Equal(t, []string{"Omelette", "Chicken Curry", "caesar salad", "Banana Bread"}, names(got))
}

func TestSortByServingSizeParsesMass(t *testing.T) {
	svc, _ := searchFixture(t)

	got, err := svc.SearchRecipes(context.Background(), SearchQuery{SortBy: "serving_size"})
	require.NoError(t, err)
	// 60g, 155g, 250g ascending; "2 servings" does not conform and sorts last
	assert.Equal(t, []string{"Banana Bread", "caesar salad", "Chicken Curry", "Omelette"}, names(got))

	got, err = svc.SearchRecipes(context.Background(), SearchQuery{SortBy: "serving_size", Direction: SortDesc})
	require.NoError(t, err)
	// direction flips the parsable ordering; the non-conforming entry stays last
	assert.Equal(t, []string{"Chicken Curry", "caesar salad", "Banana Bread", "Omelette"}, names(got))
}

func TestSortTieBreakIsDeterministic(t *testing.T) {
	db := testdb.New(t)
	svc := NewRecipeService(db)
	seedRecipe(t, db, "00000000-0000-0000-0000-00000000000b", "Toast", "", "bread", 1)
	seedRecipe(t, db, "00000000-0000-0000-0000-00000000000a", "Toast", "", "bread", 1)

	for i := 0; i < 5; i++ {
		got, err := svc.SearchRecipes(context.Background(), SearchQuery{SortBy: "name"})
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "00000000-0000-0000-0000-00000000000a", got[0].ID.String())
		assert.Equal(t, "00000000-0000-0000-0000-00000000000b", got[1].ID.String())
	}
}

func TestSearchPagination(t *testing.T) {
	db := testdb.New(t)
	svc := NewRecipeService(db)
	for i := 0; i < 5; i++ {
		r := models.Recipe{Name: string(rune('A'+i)) + " recipe", SearchTerms: "paged"}
		require.NoError(t, db.Create(&r).Error)
	}

	page1, err := svc.SearchRecipes(context.Background(), SearchQuery{SortBy: "name", Page: 1, PageSize: 2})
	require.NoError(t, err)
	assert.Equal(t, []string{"A recipe", "B recipe"}, names(page1))

	page2, err := svc.SearchRecipes(context.Background(), SearchQuery{SortBy: "name", Page: 2, PageSize: 2})
	require.NoError(t, err)
	assert.Equal(t, []string{"C recipe", "D recipe"}, names(page2))

	page3, err := svc.SearchRecipes(context.Background(), SearchQuery{SortBy: "name", Page: 3, PageSize: 2})
	require.NoError(t, err)
	assert.Equal(t, []string{"E recipe"}, names(page3))

	empty, err := svc.SearchRecipes(context.Background(), SearchQuery{SortBy: "name", Page: 4, PageSize: 2})
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestSearchRejectsUnknownSortField(t *testing.T) {
	svc, _ := searchFixture(t)

	_, err := svc.SearchRecipes(context.Background(), SearchQuery{SortBy: "password_hash"})
	require.Error(t, err)
	var svcErr *Error
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, KindValidation, svcErr.Kind)
}

func TestParseServingMass(t *testing.T) {
	tests := []struct {
		in   string
		want int
		ok   bool
	}{
		{"1 (155 g)", 155, true},
		{"1 (60 g)", 60, true},
		{"2 (1000 g)", 1000, true},
		{"(42 g)", 42, true},
		{"2 servings", 0, false},
		{"", 0, false},
		{"1 (abc g)", 0, false},
		{"1 (155", 0, false},
		{"155 g", 0, false},
	}
	for _, tt := range tests {
		got, ok := ParseServingMass(tt.in)
		assert.Equal(t, tt.ok, ok, "input %q", tt.in)
		assert.Equal(t, tt.want, got, "input %q", tt.in)
	}
}

func TestNormalizeDefaults(t *testing.T) {
	q := SearchQuery{}
	require.NoError(t, q.Normalize())
	assert.Equal(t, "id", q.SortBy)
	assert.Equal(t, SortAsc, q.Direction)
	assert.Equal(t, 1, q.Page)
	assert.Equal(t, DefaultPageSize, q.PageSize)

	q = SearchQuery{Filters: []string{" Chicken ", "", "DINNER"}}
	require.NoError(t, q.Normalize())
	assert.Equal(t, []string{"chicken", "dinner"}, q.Filters)
}
