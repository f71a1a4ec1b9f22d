package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/lumi-diary/lumi/backend/internal/models"
	"github.com/lumi-diary/lumi/backend/internal/testhelpers"
	"github.com/lumi-diary/lumi/backend/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileUpdate(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	user := testhelpers.CreateUser(t, db, "olga", models.GenderFemale)
	svc := NewProfileService(db, NewLocalAvatarStorage(t.TempDir()))
	ctx := context.Background()

	profile, err := svc.UpdateProfile(ctx, user.ID, &types.UpdateProfileRequest{FirstName: " Olga ", LastName: "Petrova "})
	require.NoError(t, err)
	assert.Equal(t, "Olga", profile.FirstName)
	assert.Equal(t, "Petrova", profile.LastName)
	assert.Empty(t, profile.AvatarURL)
}

func TestChangePassword(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	user := testhelpers.CreateUser(t, db, "pavel", models.GenderMale)
	svc := NewProfileService(db, nil)
	auth := NewAuthService(db, "test-secret", time.Hour, nil)
	ctx := context.Background()

	err := svc.ChangePassword(ctx, user.ID, &types.ChangePasswordRequest{
		CurrentPassword: "wrong-password", NewPassword: "newpassword1", ConfirmPassword: "newpassword1",
	})
	assert.ErrorIs(t, err, ErrWrongPassword)

	err = svc.ChangePassword(ctx, user.ID, &types.ChangePasswordRequest{
		CurrentPassword: testhelpers.TestPassword, NewPassword: "newpassword1", ConfirmPassword: "newpassword2",
	})
	assert.ErrorIs(t, err, ErrPasswordMismatch)

	err = svc.ChangePassword(ctx, user.ID, &types.ChangePasswordRequest{
		CurrentPassword: testhelpers.TestPassword, NewPassword: "newpassword1", ConfirmPassword: "newpassword1",
	})
	require.NoError(t, err)

	_, _, err = auth.Login(ctx, "pavel", "newpassword1")
	assert.NoError(t, err)
	_, _, err = auth.Login(ctx, "pavel", testhelpers.TestPassword)
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAvatarLifecycle(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	user := testhelpers.CreateUser(t, db, "rita", models.GenderFemale)
	dir := t.TempDir()
	svc := NewProfileService(db, NewLocalAvatarStorage(dir))
	ctx := context.Background()

	_, err := svc.UploadAvatar(ctx, user.ID, "text/plain", []byte("hello"))
	assert.ErrorIs(t, err, ErrNotImage)

	svc.now = testhelpers.FixedClock(time.Unix(1700000000, 0))
	first, err := svc.UploadAvatar(ctx, user.ID, "image/png", []byte("first"))
	require.NoError(t, err)
	assert.Equal(t, "avatars/avatar_"+user.ID.String()+"_1700000000.jpg", first)
	assert.FileExists(t, filepath.Join(dir, filepath.FromSlash(first)))

	svc.now = testhelpers.FixedClock(time.Unix(1700000100, 0))
	second, err := svc.UploadAvatar(ctx, user.ID, "image/jpeg", []byte("second"))
	require.NoError(t, err)
	assert.NoFileExists(t, filepath.Join(dir, filepath.FromSlash(first)))

	profile, err := svc.GetProfile(ctx, user.ID)
	require.NoError(t, err)
	require.NotNil(t, profile.AvatarPath)
	assert.Equal(t, second, *profile.AvatarPath)
	assert.Equal(t, "/static/"+second, profile.AvatarURL)

	require.NoError(t, svc.DeleteAvatar(ctx, user.ID))
	_, statErr := os.Stat(filepath.Join(dir, filepath.FromSlash(second)))
	assert.True(t, os.IsNotExist(statErr))

	profile, err = svc.GetProfile(ctx, user.ID)
	require.NoError(t, err)
	assert.Nil(t, profile.AvatarPath)
}

func TestLocalAvatarStorageRejectsTraversal(t *testing.T) {
	store := NewLocalAvatarStorage(t.TempDir())
	err := store.Save(context.Background(), "../escape.jpg", "image/jpeg", []byte("x"))
	assert.Error(t, err)
}
