package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lumi-diary/lumi/backend/internal/models"
	"github.com/lumi-diary/lumi/backend/internal/types"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	lutealPhaseDays   = 14
	fertileDaysBefore = 5
	fertileDaysAfter  = 1
)

type CycleService struct {
	db  *gorm.DB
	now func() time.Time
}

func NewCycleService(db *gorm.DB) *CycleService {
	return &CycleService{db: db, now: time.Now}
}

func (s *CycleService) ListEntries(ctx context.Context, userID uuid.UUID, date string) ([]models.CycleEntry, error) {
	q := s.db.WithContext(ctx).Where("user_id = ?", userID)
	if date != "" {
		d, err := types.NormalizeDate(date)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidDate, err)
		}
		q = q.Where("date = ?", d)
	}

	entries := []models.CycleEntry{}
	if err := q.Order("date DESC").Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("failed to list cycle entries: %w", err)
	}
	return entries, nil
}

// UpsertEntry saves the cycle record of one date, replacing every field on conflict.
func (s *CycleService) UpsertEntry(ctx context.Context, userID uuid.UUID, req *types.CycleEntryRequest) (*models.CycleEntry, error) {
	date, err := types.NormalizeDate(req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDate, err)
	}

	entry := models.CycleEntry{
		UserID:        userID,
		Date:          date,
		CycleDay:      req.CycleDay,
		FlowIntensity: req.FlowIntensity,
		Mood:          req.Mood,
		Notes:         strings.TrimSpace(req.Notes),
	}
	if err := entry.SetSymptoms(cleanTags(req.Symptoms)); err != nil {
		return nil, fmt.Errorf("failed to encode symptoms: %w", err)
	}

	err = s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"cycle_day", "symptoms", "flow_intensity", "mood", "notes", "updated_at",
		}),
	}).Create(&entry).Error
	if err != nil {
		return nil, fmt.Errorf("failed to save cycle entry: %w", err)
	}

	var stored models.CycleEntry
	if err := s.db.WithContext(ctx).Where("user_id = ? AND date = ?", userID, date).First(&stored).Error; err != nil {
		return nil, fmt.Errorf("failed to reload cycle entry: %w", err)
	}
	return &stored, nil
}

func (s *CycleService) DeleteEntry(ctx context.Context, userID, id uuid.UUID) (int64, error) {
	res := s.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&models.CycleEntry{})
	if res.Error != nil {
		return 0, fmt.Errorf("failed to delete cycle entry: %w", res.Error)
	}
	return res.RowsAffected, nil
}

// GetSettings returns nil, nil when the user has no settings yet.
func (s *CycleService) GetSettings(ctx context.Context, userID uuid.UUID) (*models.CycleSettings, error) {
	var settings models.CycleSettings
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&settings).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load cycle settings: %w", err)
	}
	return &settings, nil
}

// UpdateSettings applies the fields present in req, creating the row with
// defaults when it does not exist.
func (s *CycleService) UpdateSettings(ctx context.Context, userID uuid.UUID, req *types.CycleSettingsRequest) (*models.CycleSettings, error) {
	var lastStart *string
	if req.LastPeriodStart != nil && *req.LastPeriodStart != "" {
		d, err := types.NormalizeDate(*req.LastPeriodStart)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidDate, err)
		}
		lastStart = &d
	}

	current, err := s.GetSettings(ctx, userID)
	if err != nil {
		return nil, err
	}

	if current == nil {
		settings := models.DefaultCycleSettings(userID)
		applySettings(&settings, req, lastStart)
		if err := s.db.WithContext(ctx).Create(&settings).Error; err != nil {
			return nil, fmt.Errorf("failed to create cycle settings: %w", err)
		}
		return &settings, nil
	}

	applySettings(current, req, lastStart)
	if err := s.db.WithContext(ctx).Model(current).Select(
		"cycle_length", "period_length", "last_period_start", "notify_before_period", "notify_ovulation",
	).Updates(current).Error; err != nil {
		return nil, fmt.Errorf("failed to update cycle settings: %w", err)
	}
	return current, nil
}

func applySettings(s *models.CycleSettings, req *types.CycleSettingsRequest, lastStart *string) {
	if req.CycleLength != nil {
		s.CycleLength = *req.CycleLength
	}
	if req.PeriodLength != nil {
		s.PeriodLength = *req.PeriodLength
	}
	if req.LastPeriodStart != nil {
		s.LastPeriodStart = lastStart
	}
	if req.NotifyBeforePeriod != nil {
		s.NotifyBeforePeriod = *req.NotifyBeforePeriod
	}
	if req.NotifyOvulation != nil {
		s.NotifyOvulation = *req.NotifyOvulation
	}
}

type cycleStatsRow struct {
	TotalEntries int64
	AvgMood      *float64
	PeriodDays   int64
}

func (s *CycleService) Stats(ctx context.Context, userID uuid.UUID) (*types.CycleStats, error) {
	var row cycleStatsRow
	err := s.db.WithContext(ctx).Raw(`
		SELECT
			COUNT(*) AS total_entries,
			AVG(mood) AS avg_mood,
			COUNT(CASE WHEN flow_intensity IN (?, ?) THEN 1 END) AS period_days
		FROM cycle_entries
		WHERE user_id = ?`, models.FlowMedium, models.FlowHeavy, userID).Scan(&row).Error
	if err != nil {
		return nil, fmt.Errorf("failed to compute cycle stats: %w", err)
	}
	return &types.CycleStats{
		TotalEntries: row.TotalEntries,
		AvgMood:      round1(deref(row.AvgMood)),
		PeriodDays:   row.PeriodDays,
	}, nil
}

// Predict projects the next period, ovulation and fertile window from the settings.
func (s *CycleService) Predict(ctx context.Context, userID uuid.UUID) (*types.CyclePrediction, error) {
	settings, err := s.GetSettings(ctx, userID)
	if err != nil {
		return nil, err
	}
	if settings == nil || settings.LastPeriodStart == nil || *settings.LastPeriodStart == "" {
		return nil, ErrNoCycleData
	}
	last, err := types.ParseDate(*settings.LastPeriodStart)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDate, err)
	}
	return PredictCycle(last, settings.CycleLength, s.now()), nil
}

// PredictCycle is the calendar arithmetic behind Predict.
func PredictCycle(lastStart time.Time, cycleLength int, today time.Time) *types.CyclePrediction {
	if cycleLength <= 0 {
		cycleLength = models.DefaultCycleLength
	}
	next := lastStart.AddDate(0, 0, cycleLength)
	ovulation := next.AddDate(0, 0, -lutealPhaseDays)
	return &types.CyclePrediction{
		NextPeriod:    types.FormatDate(next),
		OvulationDate: types.FormatDate(ovulation),
		FertileWindow: types.DateRange{
			Start: types.FormatDate(ovulation.AddDate(0, 0, -fertileDaysBefore)),
			End:   types.FormatDate(ovulation.AddDate(0, 0, fertileDaysAfter)),
		},
		CurrentCycleDay: types.DaysBetween(lastStart, today) + 1,
	}
}

func cleanTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}

func deref(f *float64) float64 {
	if f == nil {
		return 0
	}
	return *f
}

func round1(f float64) float64 {
	return math.Round(f*10) / 10
}
