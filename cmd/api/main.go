package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/plateful/mealplanner-backend/config"
	"github.com/plateful/mealplanner-backend/internal/api"
	"github.com/plateful/mealplanner-backend/internal/database"
	"github.com/plateful/mealplanner-backend/internal/router"
	"github.com/plateful/mealplanner-backend/internal/server"
	"github.com/plateful/mealplanner-backend/internal/service"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	redisClient, err := database.NewRedisClient(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	sessions := service.NewRedisSessionStore(redisClient)

	recipeService := service.NewRecipeService(db)
	nutritionService := service.NewNutritionService(db)
	plannerService := service.NewPlannerService(db)
	authService := service.NewAuthService(db, sessions, cfg.SessionSecret)

	r := router.SetupRouter(
		cfg,
		db,
		api.NewRecipeHandler(recipeService),
		api.NewNutritionHandler(nutritionService),
		api.NewPlannerHandler(plannerService),
		api.NewAuthHandler(authService),
	)

	srv := server.New(cfg.ServerHost+":"+cfg.ServerPort, r)

	errChan := make(chan error, 1)
	go func() {
		log.Printf("Starting server on %s:%s", cfg.ServerHost, cfg.ServerPort)
		errChan <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil {
			log.Fatalf("Server error: %v", err)
		}
	case sig := <-quit:
		log.Printf("Received signal: %v", sig)
	}

	log.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server shutdown error: %v", err)
	}
	log.Println("Server stopped")
}
