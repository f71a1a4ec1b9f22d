package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Goal struct {
	ID        uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	UserID    uuid.UUID `gorm:"type:varchar(36);not null;index" json:"user_id"`
	Text      string    `gorm:"size:500;not null" json:"text"`
	Completed bool      `gorm:"not null" json:"completed"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (g *Goal) BeforeCreate(*gorm.DB) error {
	ensureID(&g.ID)
	return nil
}

// Joy is a short note about a good moment.
type Joy struct {
	ID        uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	UserID    uuid.UUID `gorm:"type:varchar(36);not null;index" json:"user_id"`
	Text      string    `gorm:"size:500;not null" json:"text"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (j *Joy) BeforeCreate(*gorm.DB) error {
	ensureID(&j.ID)
	return nil
}
