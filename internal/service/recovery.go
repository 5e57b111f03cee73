package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dtroode/account-server/internal/logger"
	"github.com/dtroode/account-server/internal/model"
	"github.com/dtroode/account-server/internal/token"
)

// Recovery drives the two single-use token flows: email verification and
// password reset. It holds no state of its own; the tokens live on the user
// record and consumption happens atomically in the store.
type Recovery struct {
	userStore   model.UserStore
	hasher      model.PasswordHasher
	notifier    model.Notifier
	frontendURL string
	logger      *logger.Logger
}

func NewRecovery(
	userStore model.UserStore,
	hasher model.PasswordHasher,
	notifier model.Notifier,
	frontendURL string,
	logger *logger.Logger,
) *Recovery {
	return &Recovery{
		userStore:   userStore,
		hasher:      hasher,
		notifier:    notifier,
		frontendURL: frontendURL,
		logger:      logger,
	}
}

// VerifyEmail consumes a verification code. Wrong, expired and already used
// codes are indistinguishable to the caller.
func (s *Recovery) VerifyEmail(ctx context.Context, code string) (model.User, error) {
	if code == "" {
		return model.User{}, model.ErrInvalidOrExpiredToken
	}

	user, err := s.userStore.ConsumeVerificationToken(ctx, code, time.Now())
	if errors.Is(err, model.ErrNotFound) {
		return model.User{}, model.ErrInvalidOrExpiredToken
	}
	if err != nil {
		return model.User{}, fmt.Errorf("failed to consume verification token: %w", err)
	}

	s.logger.Info("Recovery service: email verified", "user_id", user.ID)

	return user, nil
}

// RequestVerification re-sends a verification mail with a fresh 24h token,
// replacing any prior one. Unknown and already verified emails succeed
// without side effects so the endpoint leaks nothing about account state.
func (s *Recovery) RequestVerification(ctx context.Context, email string) error {
	if email == "" {
		return model.NewValidationError("email", "is required")
	}

	user, err := s.userStore.GetByEmail(ctx, email)
	if errors.Is(err, model.ErrNotFound) {
		s.logger.Info("Recovery service: verification requested for unknown email", "email", email)
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to get user by email: %w", err)
	}
	if user.EmailVerified {
		s.logger.Info("Recovery service: verification requested for verified account", "user_id", user.ID)
		return nil
	}

	verificationToken, err := token.NewRecoveryToken()
	if err != nil {
		return fmt.Errorf("failed to generate verification token: %w", err)
	}

	expiresAt := time.Now().Add(model.VerificationTokenTTL)
	if err := s.userStore.SetVerificationToken(ctx, user.ID, verificationToken, expiresAt); err != nil {
		return fmt.Errorf("failed to set verification token: %w", err)
	}

	notifyCtx, cancel := context.WithTimeout(ctx, notifyTimeout)
	defer cancel()
	if err := s.notifier.SendVerification(notifyCtx, user.Email, verificationToken); err != nil {
		s.logger.Error("Recovery service: failed to send verification email",
			"email", user.Email,
			"error", err.Error())
	}

	return nil
}

// RequestReset mints a 1h reset token, replacing any unconsumed one, and
// mails a reset link. An unknown email succeeds without side effects.
func (s *Recovery) RequestReset(ctx context.Context, email string) error {
	if email == "" {
		return model.NewValidationError("email", "is required")
	}

	user, err := s.userStore.GetByEmail(ctx, email)
	if errors.Is(err, model.ErrNotFound) {
		s.logger.Info("Recovery service: reset requested for unknown email", "email", email)
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to get user by email: %w", err)
	}

	resetToken, err := token.NewRecoveryToken()
	if err != nil {
		return fmt.Errorf("failed to generate reset token: %w", err)
	}

	expiresAt := time.Now().Add(model.ResetTokenTTL)
	if err := s.userStore.SetResetToken(ctx, user.ID, resetToken, expiresAt); err != nil {
		return fmt.Errorf("failed to set reset token: %w", err)
	}

	resetURL := fmt.Sprintf("%s/reset-password/%s", s.frontendURL, resetToken)

	notifyCtx, cancel := context.WithTimeout(ctx, notifyTimeout)
	defer cancel()
	if err := s.notifier.SendPasswordReset(notifyCtx, user.Email, resetURL); err != nil {
		s.logger.Error("Recovery service: failed to send reset email",
			"email", user.Email,
			"error", err.Error())
	}

	s.logger.Info("Recovery service: reset token issued", "user_id", user.ID)

	return nil
}

// ResetPassword consumes a reset token and replaces the password. The new
// password is hashed exactly once, here.
func (s *Recovery) ResetPassword(ctx context.Context, resetToken, newPassword string) (model.User, error) {
	if resetToken == "" {
		return model.User{}, model.ErrInvalidOrExpiredToken
	}
	if newPassword == "" {
		return model.User{}, model.NewValidationError("password", "is required")
	}
	if len(newPassword) < 8 {
		return model.User{}, model.NewValidationError("password", "must be at least 8 characters")
	}

	passwordHash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return model.User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := s.userStore.ConsumeResetToken(ctx, resetToken, passwordHash, time.Now())
	if errors.Is(err, model.ErrNotFound) {
		return model.User{}, model.ErrInvalidOrExpiredToken
	}
	if err != nil {
		return model.User{}, fmt.Errorf("failed to consume reset token: %w", err)
	}

	notifyCtx, cancel := context.WithTimeout(ctx, notifyTimeout)
	defer cancel()
	if err := s.notifier.SendResetSuccess(notifyCtx, user.Email); err != nil {
		s.logger.Error("Recovery service: failed to send reset success email",
			"email", user.Email,
			"error", err.Error())
	}

	s.logger.Info("Recovery service: password reset completed", "user_id", user.ID)

	return user, nil
}
