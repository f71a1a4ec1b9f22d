package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/lumi-diary/lumi/backend/internal/models"
	"gorm.io/gorm"
)

type GoalService struct {
	db *gorm.DB
}

func NewGoalService(db *gorm.DB) *GoalService {
	return &GoalService{db: db}
}

func (s *GoalService) ListGoals(ctx context.Context, userID uuid.UUID) ([]models.Goal, error) {
	goals := []models.Goal{}
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at DESC").Find(&goals).Error; err != nil {
		return nil, fmt.Errorf("failed to list goals: %w", err)
	}
	return goals, nil
}

func (s *GoalService) CreateGoal(ctx context.Context, userID uuid.UUID, text string) (*models.Goal, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyText
	}
	goal := &models.Goal{UserID: userID, Text: text}
	if err := s.db.WithContext(ctx).Create(goal).Error; err != nil {
		return nil, fmt.Errorf("failed to create goal: %w", err)
	}
	return goal, nil
}

// ToggleGoal flips the completed flag in place.
func (s *GoalService) ToggleGoal(ctx context.Context, userID, id uuid.UUID) (int64, error) {
	res := s.db.WithContext(ctx).Model(&models.Goal{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("completed", gorm.Expr("NOT completed"))
	if res.Error != nil {
		return 0, fmt.Errorf("failed to toggle goal: %w", res.Error)
	}
	return res.RowsAffected, nil
}

func (s *GoalService) DeleteGoal(ctx context.Context, userID, id uuid.UUID) (int64, error) {
	res := s.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&models.Goal{})
	if res.Error != nil {
		return 0, fmt.Errorf("failed to delete goal: %w", res.Error)
	}
	return res.RowsAffected, nil
}
