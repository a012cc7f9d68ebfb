package service

import (
	"context"
	"sort"
	"strconv"
	"strings"

	"github.com/plateful/mealplanner-backend/internal/models"
)

// SortDirection orders search results ascending or descending.
type SortDirection string

const (
	SortAsc  SortDirection = "ASC"
	SortDesc SortDirection = "DESC"
)

const DefaultPageSize = 20

// sortFields is the allow-list of sortable recipe fields. Anything else
// is rejected before touching the store.
var sortFields = map[string]bool{
	"id":           true,
	"name":         true,
	"serving_size": true,
	"servings":     true,
	"created_at":   true,
}

// SearchQuery describes one search request explicitly: free-text match,
// filter terms, sort field and page. Both search endpoints build one of
// these, so their matching semantics cannot drift apart.
type SearchQuery struct {
	Text      string
	Filters   []string
	SortBy    string
	Direction SortDirection
	Page      int
	PageSize  int
}

// Normalize applies defaults, lower-cases the match inputs, drops empty
// filter terms and validates the sort field.
func (q *SearchQuery) Normalize() error {
	q.Text = strings.ToLower(strings.TrimSpace(q.Text))

	terms := make([]string, 0, len(q.Filters))
	for _, f := range q.Filters {
		f = strings.ToLower(strings.TrimSpace(f))
		if f != "" {
			terms = append(terms, f)
		}
	}
	q.Filters = terms

	if q.SortBy == "" {
		q.SortBy = "id"
	}
	if !sortFields[q.SortBy] {
		return Validation("unsupported sort field %q", q.SortBy)
	}

	switch q.Direction {
	case "":
		q.Direction = SortAsc
	case SortAsc, SortDesc:
	default:
		return Validation("sort direction must be ASC or DESC")
	}

	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize < 1 {
		q.PageSize = DefaultPageSize
	}
	return nil
}

// SearchRecipes runs the query engine: text match against name or
// search_terms, every filter term against search_terms, all combined with
// AND. Matching rows are then sorted and paginated in-process so the
// placement rules for derived sort keys are exact.
func (s *RecipeService) SearchRecipes(ctx context.Context, q SearchQuery) ([]models.Recipe, error) {
	if err := q.Normalize(); err != nil {
		return nil, err
	}

	tx := s.db.WithContext(ctx).Model(&models.Recipe{})
	if q.Text != "" {
		like := "%" + escapeLike(q.Text) + "%"
		tx = tx.Where("LOWER(name) LIKE ? ESCAPE '\\' OR LOWER(search_terms) LIKE ? ESCAPE '\\'", like, like)
	}
	for _, f := range q.Filters {
		tx = tx.Where("LOWER(search_terms) LIKE ? ESCAPE '\\'", "%"+escapeLike(f)+"%")
	}

	var recipes []models.Recipe
	if err := tx.Find(&recipes).Error; err != nil {
		return nil, Unavailable(err, "failed to search recipes")
	}

	sortRecipes(recipes, q.SortBy, q.Direction)
	return paginate(recipes, q.Page, q.PageSize), nil
}

// escapeLike neutralizes LIKE metacharacters so user input always
// matches literally; "100%" searches for the string "100%", not a
// prefix.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, "%", `\%`)
	s = strings.ReplaceAll(s, "_", `\_`)
	return s
}

// ParseServingMass extracts the gram value from a serving-size display
// string shaped like "1 (155 g)": the integer between the "(" and the
// following "g". The second return is false when the string does not
// conform.
func ParseServingMass(servingSize string) (int, bool) {
	open := strings.Index(servingSize, "(")
	if open < 0 {
		return 0, false
	}
	rest := servingSize[open+1:]
	g := strings.Index(rest, "g")
	if g < 0 {
		return 0, false
	}
	n, err := strconv.Atoi(strings.TrimSpace(rest[:g]))
	if err != nil {
		return 0, false
	}
	return n, true
}

// sortRecipes orders recipes by the requested field with a stable id
// tie-break, so equal-key results keep a repeatable order across calls.
// Recipes whose serving_size does not parse sort after all parsable ones
// regardless of direction.
func sortRecipes(recipes []models.Recipe, sortBy string, dir SortDirection) {
	sign := 1
	if dir == SortDesc {
		sign = -1
	}

	sort.SliceStable(recipes, func(i, j int) bool {
		a, b := &recipes[i], &recipes[j]
		var c int
		switch sortBy {
		case "id":
			c = strings.Compare(a.ID.String(), b.ID.String()) * sign
		case "name":
			c = strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name)) * sign
		case "serving_size":
			am, aok := ParseServingMass(a.ServingSize)
			bm, bok := ParseServingMass(b.ServingSize)
			switch {
			case aok && !bok:
				return true
			case !aok && bok:
				return false
			case aok && bok:
				c = (am - bm) * sign
			}
		case "servings":
			c = (a.Servings - b.Servings) * sign
		case "created_at":
			switch {
			case a.CreatedAt.Before(b.CreatedAt):
				c = -sign
			case a.CreatedAt.After(b.CreatedAt):
				c = sign
			}
		}
		if c != 0 {
			return c < 0
		}
		// identity tie-break, always ascending
		return strings.Compare(a.ID.String(), b.ID.String()) < 0
	})
}

// paginate is purely presentational: skip (page-1)*size, take size.
func paginate(recipes []models.Recipe, page, size int) []models.Recipe {
	start := (page - 1) * size
	if start >= len(recipes) {
		return []models.Recipe{}
	}
	end := start + size
	if end > len(recipes) {
		end = len(recipes)
	}
	return recipes[start:end]
}
