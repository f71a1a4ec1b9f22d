package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	MinMood = 1
	MaxMood = 10
	// GoodMoodThreshold is the lowest mood that counts as a good day.
	GoodMoodThreshold = 7
)

// MoodEntry is the daily mood record; one per user and calendar date.
type MoodEntry struct {
	ID        uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	UserID    uuid.UUID `gorm:"type:varchar(36);not null;uniqueIndex:uidx_mood_user_date,priority:1" json:"user_id"`
	Date      string    `gorm:"type:varchar(10);not null;uniqueIndex:uidx_mood_user_date,priority:2" json:"date"`
	Mood      float64   `gorm:"type:decimal(4,2);not null" json:"mood"`
	Note      string    `gorm:"type:text" json:"note"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (m *MoodEntry) BeforeCreate(*gorm.DB) error {
	ensureID(&m.ID)
	return nil
}

// HourlyMood refines a day into per-hour readings; one per user, date and hour.
type HourlyMood struct {
	ID        uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	UserID    uuid.UUID `gorm:"type:varchar(36);not null;uniqueIndex:uidx_hourly_user_date_hour,priority:1" json:"user_id"`
	Date      string    `gorm:"type:varchar(10);not null;uniqueIndex:uidx_hourly_user_date_hour,priority:2" json:"date"`
	Hour      int       `gorm:"not null;uniqueIndex:uidx_hourly_user_date_hour,priority:3" json:"hour"`
	Mood      float64   `gorm:"type:decimal(4,2);not null" json:"mood"`
	Note      string    `gorm:"type:text" json:"note"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (h *HourlyMood) BeforeCreate(*gorm.DB) error {
	ensureID(&h.ID)
	return nil
}
