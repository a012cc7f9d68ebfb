package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/plateful/mealplanner-backend/internal/models"
	"github.com/plateful/mealplanner-backend/internal/service"
)

type RecipeHandler struct {
	recipes *service.RecipeService
}

func NewRecipeHandler(recipes *service.RecipeService) *RecipeHandler {
	return &RecipeHandler{recipes: recipes}
}

func (h *RecipeHandler) RegisterRoutes(router gin.IRouter) {
	router.GET("/recipes", h.ListRecipes)
	router.POST("/recipes", h.CreateRecipe)
	router.GET("/recipes/:id", h.GetRecipe)
	router.PUT("/recipes/:id", h.UpdateRecipe)
	router.DELETE("/recipes/:id", h.DeleteRecipe)
	// Serves /recipes/sorted/:page/:limit. The first segment shares the
	// :id slot because the router cannot mix a static segment with the
	// wildcard registered above; the handler guards on the literal.
	router.GET("/recipes/:id/:page/:limit", h.SortedRecipes)
	router.GET("/recipesNameId", h.ListNamesAndIDs)
	router.GET("/search", h.SearchRecipes)
}

func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	recipes, err := h.recipes.ListRecipes(c.Request.Context())
	if err != nil {
		Error(c, err)
		return
	}
	c.JSON(http.StatusOK, recipes)
}

func (h *RecipeHandler) ListNamesAndIDs(c *gin.Context) {
	rows, err := h.recipes.ListNamesAndIDs(c.Request.Context())
	if err != nil {
		Error(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		Error(c, service.Validation("invalid recipe id"))
		return
	}
	recipe, err := h.recipes.GetRecipe(c.Request.Context(), id)
	if err != nil {
		Error(c, err)
		return
	}
	c.JSON(http.StatusOK, recipe)
}

func (h *RecipeHandler) CreateRecipe(c *gin.Context) {
	var recipe models.Recipe
	if err := c.ShouldBindJSON(&recipe); err != nil {
		Error(c, service.Validation("invalid request body: %v", err))
		return
	}

	created, err := h.recipes.CreateRecipe(c.Request.Context(), &recipe)
	if err != nil {
		Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// UpdateRecipeRequest distinguishes absent fields from empty ones;
// pointers that stay nil are left untouched on update.
type UpdateRecipeRequest struct {
	Name           *string                  `json:"name"`
	Description    *string                  `json:"description"`
	Ingredients    *models.JSONBStringArray `json:"ingredients"`
	IngredientsRaw *string                  `json:"ingredients_raw"`
	ServingSize    *string                  `json:"serving_size"`
	Servings       *int                     `json:"servings"`
	Steps          *string                  `json:"steps"`
	Tags           *models.JSONBStringArray `json:"tags"`
	SearchTerms    *string                  `json:"search_terms"`
}

func (r *UpdateRecipeRequest) fields() map[string]interface{} {
	fields := map[string]interface{}{}
	if r.Name != nil {
		fields["name"] = *r.Name
	}
	if r.Description != nil {
		fields["description"] = *r.Description
	}
	if r.Ingredients != nil {
		fields["ingredients"] = *r.Ingredients
	}
	if r.IngredientsRaw != nil {
		fields["ingredients_raw"] = *r.IngredientsRaw
	}
	if r.ServingSize != nil {
		fields["serving_size"] = *r.ServingSize
	}
	if r.Servings != nil {
		fields["servings"] = *r.Servings
	}
	if r.Steps != nil {
		fields["steps"] = *r.Steps
	}
	if r.Tags != nil {
		fields["tags"] = *r.Tags
	}
	if r.SearchTerms != nil {
		fields["search_terms"] = *r.SearchTerms
	}
	return fields
}

func (h *RecipeHandler) UpdateRecipe(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		Error(c, service.Validation("invalid recipe id"))
		return
	}
	var req UpdateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, service.Validation("invalid request body: %v", err))
		return
	}

	updated, err := h.recipes.UpdateRecipe(c.Request.Context(), id, req.fields())
	if err != nil {
		Error(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *RecipeHandler) DeleteRecipe(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		Error(c, service.Validation("invalid recipe id"))
		return
	}
	if err := h.recipes.DeleteRecipe(c.Request.Context(), id); err != nil {
		Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Recipe deleted successfully", "id": id})
}

// SortedRecipes serves the paged search endpoint; page and limit come
// from the path.
func (h *RecipeHandler) SortedRecipes(c *gin.Context) {
	if c.Param("id") != "sorted" {
		Error(c, service.NotFound("not found"))
		return
	}
	page, err := strconv.Atoi(c.Param("page"))
	if err != nil || page < 1 {
		Error(c, service.Validation("page must be a positive integer"))
		return
	}
	limit, err := strconv.Atoi(c.Param("limit"))
	if err != nil || limit < 1 {
		Error(c, service.Validation("limit must be a positive integer"))
		return
	}

	query := searchQueryFrom(c)
	query.Page = page
	query.PageSize = limit

	recipes, err := h.recipes.SearchRecipes(c.Request.Context(), query)
	if err != nil {
		Error(c, err)
		return
	}
	c.JSON(http.StatusOK, recipes)
}

// SearchRecipes is the alternate search entry point; it shares the query
// engine with SortedRecipes, so matching semantics are identical.
func (h *RecipeHandler) SearchRecipes(c *gin.Context) {
	query := searchQueryFrom(c)
	if page := c.Query("page"); page != "" {
		n, err := strconv.Atoi(page)
		if err != nil || n < 1 {
			Error(c, service.Validation("page must be a positive integer"))
			return
		}
		query.Page = n
	}
	if limit := c.Query("limit"); limit != "" {
		n, err := strconv.Atoi(limit)
		if err != nil || n < 1 {
			Error(c, service.Validation("limit must be a positive integer"))
			return
		}
		query.PageSize = n
	}

	recipes, err := h.recipes.SearchRecipes(c.Request.Context(), query)
	if err != nil {
		Error(c, err)
		return
	}
	c.JSON(http.StatusOK, recipes)
}

func searchQueryFrom(c *gin.Context) service.SearchQuery {
	var filters []string
	if raw := c.Query("filters"); raw != "" {
		filters = strings.Split(raw, ",")
	}
	return service.SearchQuery{
		Text:      c.Query("query"),
		Filters:   filters,
		SortBy:    c.Query("sortBy"),
		Direction: service.SortDirection(c.Query("sortDirection")),
	}
}
