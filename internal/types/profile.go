package types

import (
	"time"

	"github.com/google/uuid"
)

// UserProfile is the public view of a user.
type UserProfile struct {
	ID         uuid.UUID `json:"id"`
	Username   string    `json:"username"`
	FirstName  string    `json:"first_name"`
	LastName   string    `json:"last_name"`
	Gender     string    `json:"gender"`
	AvatarPath *string   `json:"avatar_path"`
	AvatarURL  string    `json:"avatar_url,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// TodayMood is today's mood, or the neutral default when nothing was logged.
type TodayMood struct {
	Mood float64 `json:"mood"`
	Note string  `json:"note"`
}

type CycleStats struct {
	TotalEntries int64   `json:"total_entries"`
	AvgMood      float64 `json:"avg_mood"`
	PeriodDays   int64   `json:"period_days"`
}

type DateRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type CyclePrediction struct {
	NextPeriod      string    `json:"next_period"`
	OvulationDate   string    `json:"ovulation_date"`
	FertileWindow   DateRange `json:"fertile_window"`
	CurrentCycleDay int       `json:"current_cycle_day"`
}
