package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/plateful/mealplanner-backend/internal/models"
	"github.com/plateful/mealplanner-backend/internal/service"
)

type PlannerHandler struct {
	planner *service.PlannerService
}

func NewPlannerHandler(planner *service.PlannerService) *PlannerHandler {
	return &PlannerHandler{planner: planner}
}

func (h *PlannerHandler) RegisterRoutes(router gin.IRouter) {
	router.GET("/planners", h.ListPlans)
	router.POST("/planners", h.CreatePlan)
	router.GET("/planners/:id", h.GetPlan)
	router.PUT("/planners/:id", h.UpdatePlan)
	router.DELETE("/planners/:id", h.DeletePlan)
	router.GET("/plannersDate/:date", h.ListPlansByDate)
	router.GET("/plannersUser/:userId", h.ListPlansByUser)
	router.GET("/plannersGroup/:userId", h.GroupedByDate)
}

// UpdatePlannerRequest distinguishes absent fields from empty ones;
// pointers that stay nil are left untouched on update.
type UpdatePlannerRequest struct {
	RecipeID    *string `json:"recipe_id"`
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Time        *string `json:"time"`
	Date        *string `json:"date"`
}

func (r *UpdatePlannerRequest) fields() map[string]interface{} {
	fields := map[string]interface{}{}
	if r.RecipeID != nil {
		fields["recipe_id"] = *r.RecipeID
	}
	if r.Title != nil {
		fields["title"] = *r.Title
	}
	if r.Description != nil {
		fields["description"] = *r.Description
	}
	if r.Time != nil {
		fields["time"] = *r.Time
	}
	if r.Date != nil {
		fields["date"] = *r.Date
	}
	return fields
}

func (h *PlannerHandler) ListPlans(c *gin.Context) {
	plans, err := h.planner.ListPlans(c.Request.Context())
	if err != nil {
		Error(c, err)
		return
	}
	c.JSON(http.StatusOK, plans)
}

func (h *PlannerHandler) GetPlan(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		Error(c, service.Validation("invalid plan id"))
		return
	}
	plan, err := h.planner.GetPlan(c.Request.Context(), id)
	if err != nil {
		Error(c, err)
		return
	}
	c.JSON(http.StatusOK, plan)
}

func (h *PlannerHandler) ListPlansByDate(c *gin.Context) {
	plans, err := h.planner.ListPlansByDate(c.Request.Context(), c.Param("date"))
	if err != nil {
		Error(c, err)
		return
	}
	c.JSON(http.StatusOK, plans)
}

func (h *PlannerHandler) ListPlansByUser(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		Error(c, service.Validation("invalid user id"))
		return
	}
	plans, err := h.planner.ListPlansByUser(c.Request.Context(), userID)
	if err != nil {
		Error(c, err)
		return
	}
	c.JSON(http.StatusOK, plans)
}

func (h *PlannerHandler) GroupedByDate(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		Error(c, service.Validation("invalid user id"))
		return
	}
	counts, err := h.planner.GroupedByDate(c.Request.Context(), userID)
	if err != nil {
		Error(c, err)
		return
	}
	c.JSON(http.StatusOK, counts)
}

func (h *PlannerHandler) CreatePlan(c *gin.Context) {
	var plan models.Planner
	if err := c.ShouldBindJSON(&plan); err != nil {
		Error(c, service.Validation("invalid request body: %v", err))
		return
	}
	created, err := h.planner.CreatePlan(c.Request.Context(), &plan)
	if err != nil {
		Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *PlannerHandler) UpdatePlan(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		Error(c, service.Validation("invalid plan id"))
		return
	}
	var req UpdatePlannerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, service.Validation("invalid request body: %v", err))
		return
	}
	updated, err := h.planner.UpdatePlan(c.Request.Context(), id, req.fields())
	if err != nil {
		Error(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *PlannerHandler) DeletePlan(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		Error(c, service.Validation("invalid plan id"))
		return
	}
	if err := h.planner.DeletePlan(c.Request.Context(), id); err != nil {
		Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Plan deleted successfully", "id": id})
}
