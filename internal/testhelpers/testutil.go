package testhelpers

import (
	"testing"
	"time"

	"github.com/lumi-diary/lumi/backend/internal/models"
	"github.com/lumi-diary/lumi/backend/internal/types"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// TestPassword is the plain-text password of users made by CreateUser.
const TestPassword = "password123"

// CreateUser inserts a user with TestPassword and the given gender.
func CreateUser(t *testing.T, db *gorm.DB, username, gender string) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(TestPassword), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	user := &models.User{
		Username:     username,
		PasswordHash: string(hash),
		FirstName:    "Test",
		LastName:     "User",
		Gender:       gender,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	return user
}

// AddMood inserts a mood entry daysAgo days before now.
func AddMood(t *testing.T, db *gorm.DB, user *models.User, now time.Time, daysAgo int, mood float64, note string) *models.MoodEntry {
	t.Helper()
	entry := &models.MoodEntry{
		UserID: user.ID,
		Date:   types.FormatDate(now.AddDate(0, 0, -daysAgo)),
		Mood:   mood,
		Note:   note,
	}
	if err := db.Create(entry).Error; err != nil {
		t.Fatalf("failed to create mood entry: %v", err)
	}
	return entry
}

// AddHourlyMood inserts an hourly reading daysAgo days before now.
func AddHourlyMood(t *testing.T, db *gorm.DB, user *models.User, now time.Time, daysAgo, hour int, mood float64) *models.HourlyMood {
	t.Helper()
	entry := &models.HourlyMood{
		UserID: user.ID,
		Date:   types.FormatDate(now.AddDate(0, 0, -daysAgo)),
		Hour:   hour,
		Mood:   mood,
	}
	if err := db.Create(entry).Error; err != nil {
		t.Fatalf("failed to create hourly mood: %v", err)
	}
	return entry
}

// FixedClock returns a clock that always reports t.
func FixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}
