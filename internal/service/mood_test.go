package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/lumi-diary/lumi/backend/internal/models"
	"github.com/lumi-diary/lumi/backend/internal/testhelpers"
	"github.com/lumi-diary/lumi/backend/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func moodPtr(v float64) *float64 { return &v }
func hourPtr(v int) *int         { return &v }

func TestUpsertMoodOverwritesSameDate(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	user := testhelpers.CreateUser(t, db, "alice", models.GenderFemale)
	svc := NewMoodService(db)
	ctx := context.Background()

	first, err := svc.UpsertMood(ctx, user.ID, &types.MoodEntryRequest{Date: "2024-05-01", Mood: moodPtr(4), Note: "плохо спала"})
	require.NoError(t, err)
	second, err := svc.UpsertMood(ctx, user.ID, &types.MoodEntryRequest{Date: "2024-05-01T09:30:00Z", Mood: moodPtr(8), Note: " стало лучше "})
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 8.0, second.Mood)
	assert.Equal(t, "стало лучше", second.Note)

	entries, err := svc.ListMoods(ctx, user.ID, "")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "2024-05-01", entries[0].Date)
}

func TestListMoods(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	user := testhelpers.CreateUser(t, db, "alice", models.GenderFemale)
	other := testhelpers.CreateUser(t, db, "bob", models.GenderMale)
	now := time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)
	testhelpers.AddMood(t, db, user, now, 2, 6, "")
	testhelpers.AddMood(t, db, user, now, 0, 7, "")
	testhelpers.AddMood(t, db, user, now, 1, 5, "")
	testhelpers.AddMood(t, db, other, now, 0, 3, "")
	svc := NewMoodService(db)
	ctx := context.Background()

	entries, err := svc.ListMoods(ctx, user.ID, "")
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, []string{"2024-05-10", "2024-05-09", "2024-05-08"},
		[]string{entries[0].Date, entries[1].Date, entries[2].Date})

	entries, err = svc.ListMoods(ctx, user.ID, "2024-05-09")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, 5.0, entries[0].Mood)

	_, err = svc.ListMoods(ctx, user.ID, "09.05.2024")
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestDeleteMoodOwnership(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	owner := testhelpers.CreateUser(t, db, "alice", models.GenderFemale)
	intruder := testhelpers.CreateUser(t, db, "mallory", models.GenderMale)
	entry := testhelpers.AddMood(t, db, owner, time.Now(), 0, 7, "")
	svc := NewMoodService(db)
	ctx := context.Background()

	affected, err := svc.DeleteMood(ctx, intruder.ID, entry.ID)
	require.NoError(t, err)
	assert.Zero(t, affected)

	affected, err = svc.DeleteMood(ctx, owner.ID, entry.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, affected)

	affected, err = svc.DeleteMood(ctx, owner.ID, uuid.New())
	require.NoError(t, err)
	assert.Zero(t, affected)
}

func TestTodayMood(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	user := testhelpers.CreateUser(t, db, "alice", models.GenderFemale)
	now := time.Date(2024, 5, 10, 20, 0, 0, 0, time.UTC)
	svc := NewMoodService(db)
	svc.now = testhelpers.FixedClock(now)
	ctx := context.Background()

	today, err := svc.TodayMood(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, float64(defaultTodayMood), today.Mood)
	assert.Empty(t, today.Note)

	testhelpers.AddMood(t, db, user, now, 0, 9, "солнце")
	today, err = svc.TodayMood(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 9.0, today.Mood)
	assert.Equal(t, "солнце", today.Note)
}

func TestHourlyMoods(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	user := testhelpers.CreateUser(t, db, "alice", models.GenderFemale)
	intruder := testhelpers.CreateUser(t, db, "mallory", models.GenderMale)
	svc := NewMoodService(db)
	ctx := context.Background()

	for _, hour := range []int{18, 9, 13} {
		_, err := svc.UpsertHourly(ctx, user.ID, &types.HourlyMoodRequest{Date: "2024-05-10", Hour: hourPtr(hour), Mood: moodPtr(6)})
		require.NoError(t, err)
	}
	updated, err := svc.UpsertHourly(ctx, user.ID, &types.HourlyMoodRequest{Date: "2024-05-10", Hour: hourPtr(9), Mood: moodPtr(3), Note: "пробка"})
	require.NoError(t, err)
	assert.Equal(t, 3.0, updated.Mood)

	hours, err := svc.ListHourly(ctx, user.ID, "2024-05-10")
	require.NoError(t, err)
	require.Len(t, hours, 3)
	assert.Equal(t, []int{9, 13, 18}, []int{hours[0].Hour, hours[1].Hour, hours[2].Hour})
	assert.Equal(t, "пробка", hours[0].Note)

	affected, err := svc.DeleteHourly(ctx, intruder.ID, updated.ID)
	require.NoError(t, err)
	assert.Zero(t, affected)

	affected, err = svc.DeleteHourly(ctx, user.ID, updated.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, affected)

	_, err = svc.ListHourly(ctx, user.ID, "")
	assert.ErrorIs(t, err, ErrInvalidDate)
}
