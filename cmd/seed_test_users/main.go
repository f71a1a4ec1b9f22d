package main

import (
	"context"
	"errors"
	"time"

	"github.com/lumi-diary/lumi/backend/config"
	"github.com/lumi-diary/lumi/backend/internal/database"
	"github.com/lumi-diary/lumi/backend/internal/logging"
	"github.com/lumi-diary/lumi/backend/internal/models"
	"github.com/lumi-diary/lumi/backend/internal/service"
	"github.com/lumi-diary/lumi/backend/internal/types"
	"github.com/rs/zerolog/log"
)

const (
	demoUsername = "demo"
	demoPassword = "testpassword123"
	seedDays     = 30
)

var demoNotes = []string{
	"Отличный день, много гуляла",
	"Немного устала на работе",
	"",
	"Спокойный вечер с книгой",
	"Тревожно из-за дедлайна",
	"",
	"Встретилась с друзьями, было весело",
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}
	logging.Setup(cfg.LogLevel, cfg.Environment)

	db, err := database.New(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer database.Close(db)
	if err := database.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("migration failed")
	}

	ctx := context.Background()
	auth := service.NewAuthService(db, cfg.JWTSecret, cfg.TokenTTL, nil)
	user, _, err := auth.Register(ctx, &types.RegisterRequest{
		FirstName:       "Анна",
		LastName:        "Демо",
		Username:        demoUsername,
		Password:        demoPassword,
		ConfirmPassword: demoPassword,
		Gender:          models.GenderFemale,
	})
	if errors.Is(err, service.ErrUserExists) {
		log.Info().Str("username", demoUsername).Msg("demo user already exists, nothing to do")
		return
	}
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create demo user")
	}

	if err := seed(ctx, service.NewMoodService(db), service.NewGoalService(db), service.NewJoyService(db), service.NewCycleService(db), user); err != nil {
		log.Fatal().Err(err).Msg("failed to seed demo data")
	}

	log.Info().Str("username", demoUsername).Str("password", demoPassword).Msg("demo user created")
}

func seed(ctx context.Context, moods *service.MoodService, goals *service.GoalService, joys *service.JoyService, cycle *service.CycleService, user *models.User) error {
	today := time.Now()

	for i := seedDays - 1; i >= 0; i-- {
		date := types.FormatDate(today.AddDate(0, 0, -i))
		mood := float64(4 + (i*7)%6)
		if _, err := moods.UpsertMood(ctx, user.ID, &types.MoodEntryRequest{
			Date: date,
			Mood: &mood,
			Note: demoNotes[i%len(demoNotes)],
		}); err != nil {
			return err
		}

		for _, hour := range []int{9, 14, 21} {
			h := hour
			hm := mood + float64((hour%4)-1)
			hm = min(max(hm, models.MinMood), models.MaxMood)
			if _, err := moods.UpsertHourly(ctx, user.ID, &types.HourlyMoodRequest{Date: date, Hour: &h, Mood: &hm}); err != nil {
				return err
			}
		}
	}

	for _, text := range []string{"Гулять 30 минут", "Лечь спать до полуночи", "Выпить 2 литра воды"} {
		if _, err := goals.CreateGoal(ctx, user.ID, text); err != nil {
			return err
		}
	}
	for _, text := range []string{"Солнечное утро", "Звонок маме", "Вкусный кофе"} {
		if _, err := joys.CreateJoy(ctx, user.ID, text); err != nil {
			return err
		}
	}

	periodStart := types.FormatDate(today.AddDate(0, 0, -10))
	cycleLength := 28
	if _, err := cycle.UpdateSettings(ctx, user.ID, &types.CycleSettingsRequest{
		CycleLength:     &cycleLength,
		LastPeriodStart: &periodStart,
	}); err != nil {
		return err
	}
	for i := 0; i < 4; i++ {
		day := i + 1
		if _, err := cycle.UpsertEntry(ctx, user.ID, &types.CycleEntryRequest{
			Date:          types.FormatDate(today.AddDate(0, 0, -10+i)),
			CycleDay:      &day,
			Symptoms:      []string{"усталость"},
			FlowIntensity: []string{models.FlowHeavy, models.FlowMedium, models.FlowLight, models.FlowLight}[i],
		}); err != nil {
			return err
		}
	}
	return nil
}
