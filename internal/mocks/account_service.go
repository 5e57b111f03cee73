package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/dtroode/account-server/internal/model"
	"github.com/dtroode/account-server/internal/service"
)

// AccountService is a mock implementation of handler.AccountService.
type AccountService struct {
	mock.Mock
}

func (m *AccountService) Register(ctx context.Context, params service.RegisterParams) (model.User, string, error) {
	args := m.Called(ctx, params)
	return args.Get(0).(model.User), args.String(1), args.Error(2)
}

func (m *AccountService) Login(ctx context.Context, email, password string) (model.User, string, error) {
	args := m.Called(ctx, email, password)
	return args.Get(0).(model.User), args.String(1), args.Error(2)
}

func (m *AccountService) GetUser(ctx context.Context, id uuid.UUID) (model.User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *AccountService) ListUsers(ctx context.Context) ([]model.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.User), args.Error(1)
}

func (m *AccountService) UpdateProfile(ctx context.Context, id uuid.UUID, update model.ProfileUpdate) (model.User, error) {
	args := m.Called(ctx, id, update)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *AccountService) UploadAvatar(ctx context.Context, id uuid.UUID, data []byte, contentType string) (model.User, error) {
	args := m.Called(ctx, id, data, contentType)
	return args.Get(0).(model.User), args.Error(1)
}
