package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/dtroode/account-server/internal/model"
)

// RecoveryService is a mock implementation of handler.RecoveryService.
type RecoveryService struct {
	mock.Mock
}

func (m *RecoveryService) VerifyEmail(ctx context.Context, code string) (model.User, error) {
	args := m.Called(ctx, code)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *RecoveryService) RequestVerification(ctx context.Context, email string) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}

func (m *RecoveryService) RequestReset(ctx context.Context, email string) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}

func (m *RecoveryService) ResetPassword(ctx context.Context, resetToken, newPassword string) (model.User, error) {
	args := m.Called(ctx, resetToken, newPassword)
	return args.Get(0).(model.User), args.Error(1)
}
