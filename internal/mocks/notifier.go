package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// Notifier is a mock implementation of model.Notifier.
type Notifier struct {
	mock.Mock
}

func (m *Notifier) SendVerification(ctx context.Context, email, token string) error {
	args := m.Called(ctx, email, token)
	return args.Error(0)
}

func (m *Notifier) SendPasswordReset(ctx context.Context, email, resetURL string) error {
	args := m.Called(ctx, email, resetURL)
	return args.Error(0)
}

func (m *Notifier) SendResetSuccess(ctx context.Context, email string) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}
