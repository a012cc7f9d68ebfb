package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/plateful/mealplanner-backend/config"
	"github.com/plateful/mealplanner-backend/internal/api"
	"github.com/plateful/mealplanner-backend/internal/database"
	"gorm.io/gorm"
)

// SetupRouter configures the application routes
func SetupRouter(
	cfg *config.Config,
	db *gorm.DB,
	recipeHandler *api.RecipeHandler,
	nutritionHandler *api.NutritionHandler,
	plannerHandler *api.PlannerHandler,
	authHandler *api.AuthHandler,
) *gin.Engine {
	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Cache-Control", "X-Requested-With"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/health", func(c *gin.Context) {
		if err := database.HealthCheck(c.Request.Context(), db); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	recipeHandler.RegisterRoutes(router)
	nutritionHandler.RegisterRoutes(router)
	plannerHandler.RegisterRoutes(router)
	authHandler.RegisterRoutes(router)

	return router
}
