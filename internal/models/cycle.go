package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	FlowNone   = "none"
	FlowLight  = "light"
	FlowMedium = "medium"
	FlowHeavy  = "heavy"

	DefaultCycleLength  = 28
	DefaultPeriodLength = 5
)

type CycleEntry struct {
	ID            uuid.UUID      `gorm:"type:varchar(36);primarykey" json:"id"`
	UserID        uuid.UUID      `gorm:"type:varchar(36);not null;uniqueIndex:uidx_cycle_user_date,priority:1" json:"user_id"`
	Date          string         `gorm:"type:varchar(10);not null;uniqueIndex:uidx_cycle_user_date,priority:2" json:"date"`
	CycleDay      *int           `json:"cycle_day"`
	Symptoms      datatypes.JSON `json:"-"`
	FlowIntensity string         `gorm:"size:10" json:"flow_intensity"`
	Mood          *float64       `gorm:"type:decimal(4,2)" json:"mood"`
	Notes         string         `gorm:"type:text" json:"notes"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

func (c *CycleEntry) BeforeCreate(*gorm.DB) error {
	ensureID(&c.ID)
	return nil
}

// SymptomList decodes the stored symptom tags. Malformed or empty data yields an empty list.
func (c *CycleEntry) SymptomList() []string {
	tags := []string{}
	if len(c.Symptoms) == 0 {
		return tags
	}
	if err := json.Unmarshal(c.Symptoms, &tags); err != nil || tags == nil {
		return []string{}
	}
	return tags
}

// SetSymptoms encodes tags; an empty list is stored as NULL.
func (c *CycleEntry) SetSymptoms(tags []string) error {
	if len(tags) == 0 {
		c.Symptoms = nil
		return nil
	}
	raw, err := json.Marshal(tags)
	if err != nil {
		return err
	}
	c.Symptoms = datatypes.JSON(raw)
	return nil
}

// MarshalJSON exposes symptoms as a plain string list.
func (c CycleEntry) MarshalJSON() ([]byte, error) {
	type alias CycleEntry
	return json.Marshal(struct {
		alias
		Symptoms []string `json:"symptoms"`
	}{alias: alias(c), Symptoms: c.SymptomList()})
}

type CycleSettings struct {
	ID                 uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	UserID             uuid.UUID `gorm:"type:varchar(36);not null;uniqueIndex" json:"user_id"`
	CycleLength        int       `gorm:"not null" json:"cycle_length"`
	PeriodLength       int       `gorm:"not null" json:"period_length"`
	LastPeriodStart    *string   `gorm:"type:varchar(10)" json:"last_period_start"`
	NotifyBeforePeriod bool      `gorm:"not null" json:"notify_before_period"`
	NotifyOvulation    bool      `gorm:"not null" json:"notify_ovulation"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

func (s *CycleSettings) BeforeCreate(*gorm.DB) error {
	ensureID(&s.ID)
	return nil
}

// DefaultCycleSettings returns the settings created for new female users.
func DefaultCycleSettings(userID uuid.UUID) CycleSettings {
	return CycleSettings{
		UserID:             userID,
		CycleLength:        DefaultCycleLength,
		PeriodLength:       DefaultPeriodLength,
		NotifyBeforePeriod: true,
		NotifyOvulation:    true,
	}
}

// All lists every persisted model, in migration order.
func All() []any {
	return []any{
		&User{},
		&MoodEntry{},
		&HourlyMood{},
		&Goal{},
		&Joy{},
		&CycleEntry{},
		&CycleSettings{},
	}
}
