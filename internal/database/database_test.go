package database_test

import (
	"context"
	"testing"

	"github.com/lumi-diary/lumi/backend/config"
	"github.com/lumi-diary/lumi/backend/internal/database"
	"github.com/lumi-diary/lumi/backend/internal/models"
	"github.com/lumi-diary/lumi/backend/internal/testhelpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrateCreatesTables(t *testing.T) {
	db := testhelpers.NewTestDB(t)

	for _, m := range models.All() {
		assert.True(t, db.Migrator().HasTable(m), "missing table for %T", m)
	}
	assert.True(t, db.Migrator().HasIndex(&models.MoodEntry{}, "uidx_mood_user_date"))
	assert.True(t, db.Migrator().HasIndex(&models.HourlyMood{}, "uidx_hourly_user_date_hour"))
}

func TestMoodEntryUniquePerDay(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	user := testhelpers.CreateUser(t, db, "alice", models.GenderFemale)

	require.NoError(t, db.Create(&models.MoodEntry{UserID: user.ID, Date: "2024-05-01", Mood: 5}).Error)
	err := db.Create(&models.MoodEntry{UserID: user.ID, Date: "2024-05-01", Mood: 7}).Error
	assert.Error(t, err)
}

func TestHealthCheck(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	assert.NoError(t, database.HealthCheck(context.Background(), db))
}

func TestDSNBuilders(t *testing.T) {
	cfg := &config.Config{
		DBHost: "db", DBPort: "5432", DBUser: "lumi", DBPassword: "pw", DBName: "lumi", DBSSLMode: "require",
	}
	assert.Equal(t, "host=db port=5432 user=lumi password=pw dbname=lumi sslmode=require", database.PostgresDSN(cfg))

	cfg.DBPort = "3306"
	assert.Equal(t, "lumi:pw@tcp(db:3306)/lumi?charset=utf8mb4&parseTime=True&loc=Local", database.MySQLDSN(cfg))
}

func TestNewRejectsUnknownDriver(t *testing.T) {
	_, err := database.New(&config.Config{DBDriver: "oracle"})
	assert.ErrorContains(t, err, "unsupported database driver")
}

func TestNewSQLiteFile(t *testing.T) {
	cfg := &config.Config{DBDriver: "sqlite", DBPath: t.TempDir() + "/lumi.db"}
	db, err := database.New(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })

	require.NoError(t, database.Migrate(db))
	assert.True(t, db.Migrator().HasTable(&models.CycleSettings{}))
}

func TestPostgresContainer(t *testing.T) {
	cfg := testhelpers.SetupPostgres(t)

	db, err := database.New(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })

	require.NoError(t, database.Migrate(db))
	assert.NoError(t, database.HealthCheck(context.Background(), db))

	user := testhelpers.CreateUser(t, db, "pg-user", models.GenderMale)
	assert.NotEmpty(t, user.ID)
}
