package service

import (
	"context"
	"testing"

	"github.com/lumi-diary/lumi/backend/internal/models"
	"github.com/lumi-diary/lumi/backend/internal/testhelpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGoals(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	user := testhelpers.CreateUser(t, db, "alice", models.GenderFemale)
	intruder := testhelpers.CreateUser(t, db, "mallory", models.GenderMale)
	svc := NewGoalService(db)
	ctx := context.Background()

	_, err := svc.CreateGoal(ctx, user.ID, "   ")
	assert.ErrorIs(t, err, ErrEmptyText)

	goal, err := svc.CreateGoal(ctx, user.ID, " Гулять каждый день ")
	require.NoError(t, err)
	assert.Equal(t, "Гулять каждый день", goal.Text)
	assert.False(t, goal.Completed)

	affected, err := svc.ToggleGoal(ctx, intruder.ID, goal.ID)
	require.NoError(t, err)
	assert.Zero(t, affected)

	affected, err = svc.ToggleGoal(ctx, user.ID, goal.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, affected)

	goals, err := svc.ListGoals(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, goals, 1)
	assert.True(t, goals[0].Completed)

	_, err = svc.ToggleGoal(ctx, user.ID, goal.ID)
	require.NoError(t, err)
	goals, err = svc.ListGoals(ctx, user.ID)
	require.NoError(t, err)
	assert.False(t, goals[0].Completed)

	others, err := svc.ListGoals(ctx, intruder.ID)
	require.NoError(t, err)
	assert.Empty(t, others)

	affected, err = svc.DeleteGoal(ctx, intruder.ID, goal.ID)
	require.NoError(t, err)
	assert.Zero(t, affected)
	affected, err = svc.DeleteGoal(ctx, user.ID, goal.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, affected)
}

func TestJoys(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	user := testhelpers.CreateUser(t, db, "alice", models.GenderFemale)
	intruder := testhelpers.CreateUser(t, db, "mallory", models.GenderMale)
	svc := NewJoyService(db)
	ctx := context.Background()

	_, err := svc.CreateJoy(ctx, user.ID, "")
	assert.ErrorIs(t, err, ErrEmptyText)

	joy, err := svc.CreateJoy(ctx, user.ID, "Кофе с подругой")
	require.NoError(t, err)

	joys, err := svc.ListJoys(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, joys, 1)
	assert.Equal(t, "Кофе с подругой", joys[0].Text)

	affected, err := svc.DeleteJoy(ctx, intruder.ID, joy.ID)
	require.NoError(t, err)
	assert.Zero(t, affected)

	affected, err = svc.DeleteJoy(ctx, user.ID, joy.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, affected)
}
