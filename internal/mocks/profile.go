package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/lumi-diary/lumi/backend/internal/types"
	"github.com/stretchr/testify/mock"
)

// MockProfileService is a mock implementation of the ProfileService interface
type MockProfileService struct {
	mock.Mock
}

func (m *MockProfileService) GetProfile(ctx context.Context, userID uuid.UUID) (*types.UserProfile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.UserProfile), args.Error(1)
}

func (m *MockProfileService) UpdateProfile(ctx context.Context, userID uuid.UUID, req *types.UpdateProfileRequest) (*types.UserProfile, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.UserProfile), args.Error(1)
}

func (m *MockProfileService) ChangePassword(ctx context.Context, userID uuid.UUID, req *types.ChangePasswordRequest) error {
	args := m.Called(ctx, userID, req)
	return args.Error(0)
}

func (m *MockProfileService) UploadAvatar(ctx context.Context, userID uuid.UUID, contentType string, data []byte) (string, error) {
	args := m.Called(ctx, userID, contentType, data)
	return args.String(0), args.Error(1)
}

func (m *MockProfileService) DeleteAvatar(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}
