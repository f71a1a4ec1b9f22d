package service

import (
	"context"
	"io"

	"github.com/google/uuid"
	"github.com/lumi-diary/lumi/backend/internal/models"
	"github.com/lumi-diary/lumi/backend/internal/types"
)

// IAuthService defines the interface for authentication operations
type IAuthService interface {
	Register(ctx context.Context, req *types.RegisterRequest) (*models.User, string, error)
	Login(ctx context.Context, username, password string) (*models.User, string, error)
	ValidateToken(ctx context.Context, token string) (*types.TokenClaims, error)
	Logout(ctx context.Context, claims *types.TokenClaims) error
}

// IProfileService defines the interface for user profile operations
type IProfileService interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*types.UserProfile, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, req *types.UpdateProfileRequest) (*types.UserProfile, error)
	ChangePassword(ctx context.Context, userID uuid.UUID, req *types.ChangePasswordRequest) error
	UploadAvatar(ctx context.Context, userID uuid.UUID, contentType string, data []byte) (string, error)
	DeleteAvatar(ctx context.Context, userID uuid.UUID) error
}

// IMoodService covers daily and hourly mood records.
type IMoodService interface {
	ListMoods(ctx context.Context, userID uuid.UUID, date string) ([]models.MoodEntry, error)
	UpsertMood(ctx context.Context, userID uuid.UUID, req *types.MoodEntryRequest) (*models.MoodEntry, error)
	DeleteMood(ctx context.Context, userID, id uuid.UUID) (int64, error)
	TodayMood(ctx context.Context, userID uuid.UUID) (*types.TodayMood, error)
	ListHourly(ctx context.Context, userID uuid.UUID, date string) ([]models.HourlyMood, error)
	UpsertHourly(ctx context.Context, userID uuid.UUID, req *types.HourlyMoodRequest) (*models.HourlyMood, error)
	DeleteHourly(ctx context.Context, userID, id uuid.UUID) (int64, error)
}

type IGoalService interface {
	ListGoals(ctx context.Context, userID uuid.UUID) ([]models.Goal, error)
	CreateGoal(ctx context.Context, userID uuid.UUID, text string) (*models.Goal, error)
	ToggleGoal(ctx context.Context, userID, id uuid.UUID) (int64, error)
	DeleteGoal(ctx context.Context, userID, id uuid.UUID) (int64, error)
}

type IJoyService interface {
	ListJoys(ctx context.Context, userID uuid.UUID) ([]models.Joy, error)
	CreateJoy(ctx context.Context, userID uuid.UUID, text string) (*models.Joy, error)
	DeleteJoy(ctx context.Context, userID, id uuid.UUID) (int64, error)
}

// ICycleService covers cycle entries, settings and the derived views.
type ICycleService interface {
	ListEntries(ctx context.Context, userID uuid.UUID, date string) ([]models.CycleEntry, error)
	UpsertEntry(ctx context.Context, userID uuid.UUID, req *types.CycleEntryRequest) (*models.CycleEntry, error)
	DeleteEntry(ctx context.Context, userID, id uuid.UUID) (int64, error)
	GetSettings(ctx context.Context, userID uuid.UUID) (*models.CycleSettings, error)
	UpdateSettings(ctx context.Context, userID uuid.UUID, req *types.CycleSettingsRequest) (*models.CycleSettings, error)
	Stats(ctx context.Context, userID uuid.UUID) (*types.CycleStats, error)
	Predict(ctx context.Context, userID uuid.UUID) (*types.CyclePrediction, error)
}

// IStatsService builds the statistics snapshot for one user.
type IStatsService interface {
	Summarize(ctx context.Context, userID uuid.UUID) (*types.StatsSummary, error)
}

type IInsightService interface {
	Insights(ctx context.Context, userID uuid.UUID) (*types.InsightsResponse, error)
}

type IExportService interface {
	WriteCSV(ctx context.Context, userID uuid.UUID, w io.Writer) error
}

// IChatService answers chat messages, with or without the LLM.
type IChatService interface {
	Reply(ctx context.Context, userID uuid.UUID, message string) (*types.ChatResponse, error)
	Fallback(message string) *types.ChatResponse
}

var (
	_ IAuthService    = (*AuthService)(nil)
	_ IProfileService = (*ProfileService)(nil)
	_ IMoodService    = (*MoodService)(nil)
	_ IGoalService    = (*GoalService)(nil)
	_ IJoyService     = (*JoyService)(nil)
	_ ICycleService   = (*CycleService)(nil)
	_ IStatsService   = (*StatsService)(nil)
	_ IInsightService = (*InsightService)(nil)
	_ IExportService  = (*ExportService)(nil)
	_ IChatService    = (*ChatService)(nil)
)
