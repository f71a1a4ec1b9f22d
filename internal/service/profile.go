package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/lumi-diary/lumi/backend/internal/models"
	"github.com/lumi-diary/lumi/backend/internal/types"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type ProfileService struct {
	db      *gorm.DB
	avatars AvatarStorage
	now     func() time.Time
}

func NewProfileService(db *gorm.DB, avatars AvatarStorage) *ProfileService {
	return &ProfileService{db: db, avatars: avatars, now: time.Now}
}

func (s *ProfileService) GetProfile(ctx context.Context, userID uuid.UUID) (*types.UserProfile, error) {
	user, err := s.loadUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.toProfile(ctx, user), nil
}

func (s *ProfileService) UpdateProfile(ctx context.Context, userID uuid.UUID, req *types.UpdateProfileRequest) (*types.UserProfile, error) {
	updates := map[string]interface{}{
		"first_name": strings.TrimSpace(req.FirstName),
		"last_name":  strings.TrimSpace(req.LastName),
	}
	if err := s.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", userID).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	return s.GetProfile(ctx, userID)
}

func (s *ProfileService) ChangePassword(ctx context.Context, userID uuid.UUID, req *types.ChangePasswordRequest) error {
	if req.NewPassword != req.ConfirmPassword {
		return ErrPasswordMismatch
	}
	if utf8.RuneCountInString(req.NewPassword) < minPasswordLen {
		return ErrPasswordTooShort
	}

	user, err := s.loadUser(ctx, userID)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.CurrentPassword)); err != nil {
		return ErrWrongPassword
	}

	hash, err := hashPassword(req.NewPassword)
	if err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Model(user).Update("password_hash", hash).Error; err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	return nil
}

// UploadAvatar stores a new avatar and points the user at it. The previous
// avatar is removed best-effort.
func (s *ProfileService) UploadAvatar(ctx context.Context, userID uuid.UUID, contentType string, data []byte) (string, error) {
	if !strings.HasPrefix(contentType, "image/") {
		return "", ErrNotImage
	}

	user, err := s.loadUser(ctx, userID)
	if err != nil {
		return "", err
	}

	key := fmt.Sprintf("avatars/avatar_%s_%d.jpg", userID, s.now().Unix())
	if err := s.avatars.Save(ctx, key, contentType, data); err != nil {
		return "", err
	}

	if err := s.db.WithContext(ctx).Model(user).Update("avatar_path", key).Error; err != nil {
		s.removeAvatar(ctx, key)
		return "", fmt.Errorf("failed to save avatar path: %w", err)
	}

	if user.AvatarPath != nil && *user.AvatarPath != key {
		s.removeAvatar(ctx, *user.AvatarPath)
	}
	return key, nil
}

func (s *ProfileService) DeleteAvatar(ctx context.Context, userID uuid.UUID) error {
	user, err := s.loadUser(ctx, userID)
	if err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Model(user).Update("avatar_path", nil).Error; err != nil {
		return fmt.Errorf("failed to clear avatar: %w", err)
	}
	if user.AvatarPath != nil {
		s.removeAvatar(ctx, *user.AvatarPath)
	}
	return nil
}

func (s *ProfileService) removeAvatar(ctx context.Context, key string) {
	if err := s.avatars.Delete(ctx, key); err != nil {
		log.Warn().Err(err).Str("component", "profile").Str("key", key).Msg("failed to remove avatar")
	}
}

func (s *ProfileService) loadUser(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	return &user, nil
}

func (s *ProfileService) toProfile(ctx context.Context, user *models.User) *types.UserProfile {
	p := &types.UserProfile{
		ID:         user.ID,
		Username:   user.Username,
		FirstName:  user.FirstName,
		LastName:   user.LastName,
		Gender:     user.Gender,
		AvatarPath: user.AvatarPath,
		CreatedAt:  user.CreatedAt,
	}
	if user.AvatarPath != nil && s.avatars != nil {
		url, err := s.avatars.URL(ctx, *user.AvatarPath)
		if err != nil {
			log.Warn().Err(err).Str("component", "profile").Msg("failed to build avatar url")
		} else {
			p.AvatarURL = url
		}
	}
	return p
}
