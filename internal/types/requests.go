package types

// RegisterRequest is the registration form.
type RegisterRequest struct {
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	Username        string `json:"username" binding:"required"`
	Password        string `json:"password" binding:"required"`
	ConfirmPassword string `json:"confirm_password" binding:"required"`
	Gender          string `json:"gender"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UpdateProfileRequest replaces the user's display names.
type UpdateProfileRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required"`
	ConfirmPassword string `json:"confirm_password" binding:"required"`
}

// MoodEntryRequest upserts the mood for one calendar date.
type MoodEntryRequest struct {
	Date string   `json:"date" binding:"required,calendar_date"`
	Mood *float64 `json:"mood" binding:"required,gte=1,lte=10"`
	Note string   `json:"note" binding:"max=2000"`
}

// HourlyMoodRequest upserts the mood for one hour of a calendar date.
type HourlyMoodRequest struct {
	Date string   `json:"date" binding:"required,calendar_date"`
	Hour *int     `json:"hour" binding:"required,gte=0,lte=23"`
	Mood *float64 `json:"mood" binding:"required,gte=1,lte=10"`
	Note string   `json:"note" binding:"max=2000"`
}

// TextRequest carries the text of a goal or a joy.
type TextRequest struct {
	Text string `json:"text" binding:"required,max=500"`
}

type CycleEntryRequest struct {
	Date          string   `json:"date" binding:"required,calendar_date"`
	CycleDay      *int     `json:"cycle_day" binding:"omitempty,gte=1,lte=90"`
	Symptoms      []string `json:"symptoms" binding:"max=30,dive,max=50"`
	FlowIntensity string   `json:"flow_intensity" binding:"omitempty,oneof=none light medium heavy"`
	Mood          *float64 `json:"mood" binding:"omitempty,gte=1,lte=10"`
	Notes         string   `json:"notes" binding:"max=2000"`
}

// CycleSettingsRequest updates only the fields that are present.
type CycleSettingsRequest struct {
	CycleLength        *int    `json:"cycle_length" binding:"omitempty,gte=15,lte=90"`
	PeriodLength       *int    `json:"period_length" binding:"omitempty,gte=1,lte=15"`
	LastPeriodStart    *string `json:"last_period_start" binding:"omitempty,calendar_date"`
	NotifyBeforePeriod *bool   `json:"notify_before_period"`
	NotifyOvulation    *bool   `json:"notify_ovulation"`
}

type ChatRequest struct {
	Message string `json:"message" binding:"required,max=2000"`
}
