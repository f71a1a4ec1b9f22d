package service

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/lumi-diary/lumi/backend/internal/models"
	"gorm.io/gorm"
)

const exportTimeLayout = "2006-01-02 15:04"

type ExportService struct {
	db  *gorm.DB
	now func() time.Time
}

func NewExportService(db *gorm.DB) *ExportService {
	return &ExportService{db: db, now: time.Now}
}

// ExportFilename is the attachment name for an export made at t.
func ExportFilename(t time.Time) string {
	return fmt.Sprintf("lumi_export_%s.csv", t.Format("20060102_1504"))
}

// WriteCSV writes the user's moods, goals and joys as one sectioned CSV document.
func (s *ExportService) WriteCSV(ctx context.Context, userID uuid.UUID, w io.Writer) error {
	db := s.db.WithContext(ctx)

	var user models.User
	if err := db.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to load user: %w", err)
	}

	var moods []models.MoodEntry
	if err := db.Where("user_id = ?", userID).Order("date").Find(&moods).Error; err != nil {
		return fmt.Errorf("failed to load mood entries: %w", err)
	}
	var goals []models.Goal
	if err := db.Where("user_id = ?", userID).Order("created_at").Find(&goals).Error; err != nil {
		return fmt.Errorf("failed to load goals: %w", err)
	}
	var joys []models.Joy
	if err := db.Where("user_id = ?", userID).Order("created_at").Find(&joys).Error; err != nil {
		return fmt.Errorf("failed to load joys: %w", err)
	}

	cw := csv.NewWriter(w)
	rows := [][]string{
		{"Lumi - Экспорт данных"},
		{"Пользователь:", fullName(&user)},
		{"Логин:", user.Username},
		{"Дата экспорта:", s.now().Format("2006-01-02 15:04:05")},
		{},
		{"=== НАСТРОЕНИЕ ==="},
		{"Дата", "Настроение (1-10)", "Заметка", "Дата создания"},
	}
	for _, m := range moods {
		rows = append(rows, []string{
			m.Date,
			strconv.FormatFloat(m.Mood, 'f', -1, 64),
			m.Note,
			m.CreatedAt.Format(exportTimeLayout),
		})
	}

	rows = append(rows, []string{}, []string{"=== ЦЕЛИ ==="}, []string{"Текст цели", "Статус", "Дата создания"})
	for _, g := range goals {
		status := "Не выполнено"
		if g.Completed {
			status = "Выполнено"
		}
		rows = append(rows, []string{g.Text, status, g.CreatedAt.Format(exportTimeLayout)})
	}

	rows = append(rows, []string{}, []string{"=== РАДОСТИ ==="}, []string{"Текст", "Дата создания"})
	for _, j := range joys {
		rows = append(rows, []string{j.Text, j.CreatedAt.Format(exportTimeLayout)})
	}

	if err := cw.WriteAll(rows); err != nil {
		return fmt.Errorf("failed to write csv: %w", err)
	}
	return nil
}

func fullName(u *models.User) string {
	switch {
	case u.FirstName != "" && u.LastName != "":
		return u.FirstName + " " + u.LastName
	case u.FirstName != "":
		return u.FirstName
	default:
		return u.LastName
	}
}
