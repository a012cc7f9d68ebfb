package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/plateful/mealplanner-backend/internal/models"
)

// PlannerService handles planner entries and the calendar summary.
type PlannerService struct {
	db *gorm.DB
}

func NewPlannerService(db *gorm.DB) *PlannerService {
	return &PlannerService{db: db}
}

// DateCount is one calendar-summary row: a stored date string and how
// many planner entries carry it.
type DateCount struct {
	Date       string `json:"date"`
	TotalPlans int64  `json:"total_plans"`
}

func (s *PlannerService) ListPlans(ctx context.Context) ([]models.Planner, error) {
	var plans []models.Planner
	if err := s.db.WithContext(ctx).Find(&plans).Error; err != nil {
		return nil, Unavailable(err, "failed to fetch plans")
	}
	return plans, nil
}

func (s *PlannerService) ListPlansByUser(ctx context.Context, userID uuid.UUID) ([]models.Planner, error) {
	var plans []models.Planner
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).Find(&plans).Error; err != nil {
		return nil, Unavailable(err, "failed to fetch plans")
	}
	return plans, nil
}

func (s *PlannerService) ListPlansByDate(ctx context.Context, date string) ([]models.Planner, error) {
	var plans []models.Planner
	if err := s.db.WithContext(ctx).Where("date = ?", date).Find(&plans).Error; err != nil {
		return nil, Unavailable(err, "failed to fetch plans")
	}
	return plans, nil
}

func (s *PlannerService) GetPlan(ctx context.Context, id uuid.UUID) (*models.Planner, error) {
	var plan models.Planner
	if err := s.db.WithContext(ctx).First(&plan, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFound("plan %s not found", id)
		}
		return nil, Unavailable(err, "failed to fetch plan")
	}
	return &plan, nil
}

func (s *PlannerService) CreatePlan(ctx context.Context, plan *models.Planner) (*models.Planner, error) {
	if plan.UserID == uuid.Nil {
		return nil, Validation("user_id is required")
	}
	if plan.Title == "" {
		return nil, Validation("title is required")
	}
	if err := s.db.WithContext(ctx).Create(plan).Error; err != nil {
		return nil, Unavailable(err, "failed to create plan")
	}
	return plan, nil
}

// UpdatePlan applies only the supplied fields. An empty field map is
// rejected rather than silently succeeding.
func (s *PlannerService) UpdatePlan(ctx context.Context, id uuid.UUID, fields map[string]interface{}) (*models.Planner, error) {
	if len(fields) == 0 {
		return nil, Validation("no fields to update")
	}
	if _, err := s.GetPlan(ctx, id); err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Model(&models.Planner{}).Where("id = ?", id).Updates(fields).Error; err != nil {
		return nil, Unavailable(err, "failed to update plan")
	}
	return s.GetPlan(ctx, id)
}

func (s *PlannerService) DeletePlan(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetPlan(ctx, id); err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Delete(&models.Planner{}, "id = ?", id).Error; err != nil {
		return Unavailable(err, "failed to delete plan")
	}
	return nil
}

// GroupedByDate counts a user's planner entries per stored date string.
// Dates are grouped as opaque strings: two formats of the same calendar
// day land in separate groups.
func (s *PlannerService) GroupedByDate(ctx context.Context, userID uuid.UUID) ([]DateCount, error) {
	var counts []DateCount
	err := s.db.WithContext(ctx).
		Model(&models.Planner{}).
		Select("date, COUNT(*) as total_plans").
		Where("user_id = ?", userID).
		Group("date").
		Scan(&counts).Error
	if err != nil {
		return nil, Unavailable(err, "failed to count plans by date")
	}
	return counts, nil
}
