package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/lumi-diary/lumi/backend/internal/models"
	"gorm.io/gorm"
)

type JoyService struct {
	db *gorm.DB
}

func NewJoyService(db *gorm.DB) *JoyService {
	return &JoyService{db: db}
}

func (s *JoyService) ListJoys(ctx context.Context, userID uuid.UUID) ([]models.Joy, error) {
	joys := []models.Joy{}
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at DESC").Find(&joys).Error; err != nil {
		return nil, fmt.Errorf("failed to list joys: %w", err)
	}
	return joys, nil
}

func (s *JoyService) CreateJoy(ctx context.Context, userID uuid.UUID, text string) (*models.Joy, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyText
	}
	joy := &models.Joy{UserID: userID, Text: text}
	if err := s.db.WithContext(ctx).Create(joy).Error; err != nil {
		return nil, fmt.Errorf("failed to create joy: %w", err)
	}
	return joy, nil
}

func (s *JoyService) DeleteJoy(ctx context.Context, userID, id uuid.UUID) (int64, error) {
	res := s.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&models.Joy{})
	if res.Error != nil {
		return 0, fmt.Errorf("failed to delete joy: %w", res.Error)
	}
	return res.RowsAffected, nil
}
