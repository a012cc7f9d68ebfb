package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/plateful/mealplanner-backend/internal/service"
)

type NutritionHandler struct {
	nutrition *service.NutritionService
}

func NewNutritionHandler(nutrition *service.NutritionService) *NutritionHandler {
	return &NutritionHandler{nutrition: nutrition}
}

func (h *NutritionHandler) RegisterRoutes(router gin.IRouter) {
	router.GET("/nutritions", h.ListEntries)
	router.GET("/nutritions/:id", h.ForRecipe)
}

func (h *NutritionHandler) ListEntries(c *gin.Context) {
	entries, err := h.nutrition.ListEntries(c.Request.Context())
	if err != nil {
		Error(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}

// ForRecipe aggregates nutrition keyed by recipe id, not nutrition-entry id.
func (h *NutritionHandler) ForRecipe(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		Error(c, service.Validation("invalid recipe id"))
		return
	}
	report, err := h.nutrition.ForRecipe(c.Request.Context(), id)
	if err != nil {
		Error(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}
