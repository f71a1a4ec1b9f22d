package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lumi-diary/lumi/backend/internal/models"
	"github.com/lumi-diary/lumi/backend/internal/types"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// defaultTodayMood is reported when nothing was logged today.
const defaultTodayMood = 5

type MoodService struct {
	db  *gorm.DB
	now func() time.Time
}

func NewMoodService(db *gorm.DB) *MoodService {
	return &MoodService{db: db, now: time.Now}
}

// ListMoods returns the user's entries newest first, optionally limited to one date.
func (s *MoodService) ListMoods(ctx context.Context, userID uuid.UUID, date string) ([]models.MoodEntry, error) {
	q := s.db.WithContext(ctx).Where("user_id = ?", userID)
	if date != "" {
		d, err := types.NormalizeDate(date)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidDate, err)
		}
		q = q.Where("date = ?", d)
	}

	entries := []models.MoodEntry{}
	if err := q.Order("date DESC").Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("failed to list mood entries: %w", err)
	}
	return entries, nil
}

// UpsertMood saves the mood for a date; a second save for the same date overwrites mood and note.
func (s *MoodService) UpsertMood(ctx context.Context, userID uuid.UUID, req *types.MoodEntryRequest) (*models.MoodEntry, error) {
	date, err := types.NormalizeDate(req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDate, err)
	}

	entry := models.MoodEntry{
		UserID: userID,
		Date:   date,
		Mood:   *req.Mood,
		Note:   strings.TrimSpace(req.Note),
	}
	err = s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{"mood", "note", "updated_at"}),
	}).Create(&entry).Error
	if err != nil {
		return nil, fmt.Errorf("failed to save mood entry: %w", err)
	}

	// On conflict the generated id was discarded; reload the stored row.
	var stored models.MoodEntry
	if err := s.db.WithContext(ctx).Where("user_id = ? AND date = ?", userID, date).First(&stored).Error; err != nil {
		return nil, fmt.Errorf("failed to reload mood entry: %w", err)
	}
	return &stored, nil
}

// DeleteMood removes one of the user's entries. Ids owned by someone else affect zero rows.
func (s *MoodService) DeleteMood(ctx context.Context, userID, id uuid.UUID) (int64, error) {
	res := s.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&models.MoodEntry{})
	if res.Error != nil {
		return 0, fmt.Errorf("failed to delete mood entry: %w", res.Error)
	}
	return res.RowsAffected, nil
}

func (s *MoodService) TodayMood(ctx context.Context, userID uuid.UUID) (*types.TodayMood, error) {
	var entry models.MoodEntry
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND date = ?", userID, types.FormatDate(s.now())).
		First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &types.TodayMood{Mood: defaultTodayMood}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load today's mood: %w", err)
	}
	return &types.TodayMood{Mood: entry.Mood, Note: entry.Note}, nil
}

// ListHourly returns the readings of one date ordered by hour.
func (s *MoodService) ListHourly(ctx context.Context, userID uuid.UUID, date string) ([]models.HourlyMood, error) {
	d, err := types.NormalizeDate(date)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDate, err)
	}

	entries := []models.HourlyMood{}
	if err := s.db.WithContext(ctx).
		Where("user_id = ? AND date = ?", userID, d).
		Order("hour").
		Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("failed to list hourly moods: %w", err)
	}
	return entries, nil
}

func (s *MoodService) UpsertHourly(ctx context.Context, userID uuid.UUID, req *types.HourlyMoodRequest) (*models.HourlyMood, error) {
	date, err := types.NormalizeDate(req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDate, err)
	}

	entry := models.HourlyMood{
		UserID: userID,
		Date:   date,
		Hour:   *req.Hour,
		Mood:   *req.Mood,
		Note:   strings.TrimSpace(req.Note),
	}
	err = s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "date"}, {Name: "hour"}},
		DoUpdates: clause.AssignmentColumns([]string{"mood", "note", "updated_at"}),
	}).Create(&entry).Error
	if err != nil {
		return nil, fmt.Errorf("failed to save hourly mood: %w", err)
	}

	var stored models.HourlyMood
	if err := s.db.WithContext(ctx).
		Where("user_id = ? AND date = ? AND hour = ?", userID, date, entry.Hour).
		First(&stored).Error; err != nil {
		return nil, fmt.Errorf("failed to reload hourly mood: %w", err)
	}
	return &stored, nil
}

func (s *MoodService) DeleteHourly(ctx context.Context, userID, id uuid.UUID) (int64, error) {
	res := s.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&models.HourlyMood{})
	if res.Error != nil {
		return 0, fmt.Errorf("failed to delete hourly mood: %w", res.Error)
	}
	return res.RowsAffected, nil
}
