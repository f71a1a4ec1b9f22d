package mocks

import (
	"context"
	"io"

	"github.com/google/uuid"
	"github.com/lumi-diary/lumi/backend/internal/models"
	"github.com/lumi-diary/lumi/backend/internal/types"
	"github.com/stretchr/testify/mock"
)

type MockMoodService struct {
	mock.Mock
}

func (m *MockMoodService) ListMoods(ctx context.Context, userID uuid.UUID, date string) ([]models.MoodEntry, error) {
	args := m.Called(ctx, userID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.MoodEntry), args.Error(1)
}

func (m *MockMoodService) UpsertMood(ctx context.Context, userID uuid.UUID, req *types.MoodEntryRequest) (*models.MoodEntry, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MoodEntry), args.Error(1)
}

func (m *MockMoodService) DeleteMood(ctx context.Context, userID, id uuid.UUID) (int64, error) {
	args := m.Called(ctx, userID, id)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockMoodService) TodayMood(ctx context.Context, userID uuid.UUID) (*types.TodayMood, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.TodayMood), args.Error(1)
}

func (m *MockMoodService) ListHourly(ctx context.Context, userID uuid.UUID, date string) ([]models.HourlyMood, error) {
	args := m.Called(ctx, userID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.HourlyMood), args.Error(1)
}

func (m *MockMoodService) UpsertHourly(ctx context.Context, userID uuid.UUID, req *types.HourlyMoodRequest) (*models.HourlyMood, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.HourlyMood), args.Error(1)
}

func (m *MockMoodService) DeleteHourly(ctx context.Context, userID, id uuid.UUID) (int64, error) {
	args := m.Called(ctx, userID, id)
	return args.Get(0).(int64), args.Error(1)
}

type MockGoalService struct {
	mock.Mock
}

func (m *MockGoalService) ListGoals(ctx context.Context, userID uuid.UUID) ([]models.Goal, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Goal), args.Error(1)
}

func (m *MockGoalService) CreateGoal(ctx context.Context, userID uuid.UUID, text string) (*models.Goal, error) {
	args := m.Called(ctx, userID, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Goal), args.Error(1)
}

func (m *MockGoalService) ToggleGoal(ctx context.Context, userID, id uuid.UUID) (int64, error) {
	args := m.Called(ctx, userID, id)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockGoalService) DeleteGoal(ctx context.Context, userID, id uuid.UUID) (int64, error) {
	args := m.Called(ctx, userID, id)
	return args.Get(0).(int64), args.Error(1)
}

type MockJoyService struct {
	mock.Mock
}

func (m *MockJoyService) ListJoys(ctx context.Context, userID uuid.UUID) ([]models.Joy, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Joy), args.Error(1)
}

func (m *MockJoyService) CreateJoy(ctx context.Context, userID uuid.UUID, text string) (*models.Joy, error) {
	args := m.Called(ctx, userID, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Joy), args.Error(1)
}

func (m *MockJoyService) DeleteJoy(ctx context.Context, userID, id uuid.UUID) (int64, error) {
	args := m.Called(ctx, userID, id)
	return args.Get(0).(int64), args.Error(1)
}

type MockCycleService struct {
	mock.Mock
}

func (m *MockCycleService) ListEntries(ctx context.Context, userID uuid.UUID, date string) ([]models.CycleEntry, error) {
	args := m.Called(ctx, userID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.CycleEntry), args.Error(1)
}

func (m *MockCycleService) UpsertEntry(ctx context.Context, userID uuid.UUID, req *types.CycleEntryRequest) (*models.CycleEntry, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CycleEntry), args.Error(1)
}

func (m *MockCycleService) DeleteEntry(ctx context.Context, userID, id uuid.UUID) (int64, error) {
	args := m.Called(ctx, userID, id)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCycleService) GetSettings(ctx context.Context, userID uuid.UUID) (*models.CycleSettings, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CycleSettings), args.Error(1)
}

func (m *MockCycleService) UpdateSettings(ctx context.Context, userID uuid.UUID, req *types.CycleSettingsRequest) (*models.CycleSettings, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CycleSettings), args.Error(1)
}

func (m *MockCycleService) Stats(ctx context.Context, userID uuid.UUID) (*types.CycleStats, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.CycleStats), args.Error(1)
}

func (m *MockCycleService) Predict(ctx context.Context, userID uuid.UUID) (*types.CyclePrediction, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.CyclePrediction), args.Error(1)
}

type MockStatsService struct {
	mock.Mock
}

func (m *MockStatsService) Summarize(ctx context.Context, userID uuid.UUID) (*types.StatsSummary, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.StatsSummary), args.Error(1)
}

type MockInsightService struct {
	mock.Mock
}

func (m *MockInsightService) Insights(ctx context.Context, userID uuid.UUID) (*types.InsightsResponse, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.InsightsResponse), args.Error(1)
}

// MockExportService writes the configured "content" string to w.
type MockExportService struct {
	mock.Mock
}

func (m *MockExportService) WriteCSV(ctx context.Context, userID uuid.UUID, w io.Writer) error {
	args := m.Called(ctx, userID, w)
	if err := args.Error(1); err != nil {
		return err
	}
	_, err := io.WriteString(w, args.String(0))
	return err
}

type MockChatService struct {
	mock.Mock
}

func (m *MockChatService) Reply(ctx context.Context, userID uuid.UUID, message string) (*types.ChatResponse, error) {
	args := m.Called(ctx, userID, message)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.ChatResponse), args.Error(1)
}

func (m *MockChatService) Fallback(message string) *types.ChatResponse {
	args := m.Called(message)
	return args.Get(0).(*types.ChatResponse)
}
