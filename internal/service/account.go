package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/account-server/internal/logger"
	"github.com/dtroode/account-server/internal/model"
	"github.com/dtroode/account-server/internal/token"
)

// External collaborators are best-effort: bound them so a slow third party
// cannot hold the request open.
const (
	notifyTimeout = 5 * time.Second
	uploadTimeout = 10 * time.Second
)

// A real bcrypt hash of a random throwaway password. Verified against when
// the email is unknown so login takes the same time either way.
const dummyPasswordHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

type Account struct {
	userStore    model.UserStore
	hasher       model.PasswordHasher
	tokenManager model.TokenManager
	storage      model.Storage
	notifier     model.Notifier
	logger       *logger.Logger
}

func NewAccount(
	userStore model.UserStore,
	hasher model.PasswordHasher,
	tokenManager model.TokenManager,
	storage model.Storage,
	notifier model.Notifier,
	logger *logger.Logger,
) *Account {
	return &Account{
		userStore:    userStore,
		hasher:       hasher,
		tokenManager: tokenManager,
		storage:      storage,
		notifier:     notifier,
		logger:       logger,
	}
}

// RegisterParams carries the required registration fields.
type RegisterParams struct {
	Email    string
	Password string
	Phone    string
}

func validateRegistration(params RegisterParams) error {
	if params.Email == "" {
		return model.NewValidationError("email", "is required")
	}
	if params.Phone == "" {
		return model.NewValidationError("phoneNumber", "is required")
	}
	if params.Password == "" {
		return model.NewValidationError("password", "is required")
	}
	if len(params.Password) < 8 {
		return model.NewValidationError("password", "must be at least 8 characters")
	}
	return nil
}

// Register creates a new unverified account, mints its verification token and
// issues a session. The verification mail is dispatched best-effort: a
// delivery failure is logged and never fails the registration.
func (s *Account) Register(ctx context.Context, params RegisterParams) (model.User, string, error) {
	s.logger.Debug("Account service: starting registration", "email", params.Email)

	if err := validateRegistration(params); err != nil {
		return model.User{}, "", err
	}

	passwordHash, err := s.hasher.Hash(params.Password)
	if err != nil {
		return model.User{}, "", fmt.Errorf("failed to hash password: %w", err)
	}

	verificationToken, err := token.NewRecoveryToken()
	if err != nil {
		return model.User{}, "", fmt.Errorf("failed to generate verification token: %w", err)
	}

	now := time.Now()
	expiresAt := now.Add(model.VerificationTokenTTL)
	user := model.User{
		ID:                    uuid.New(),
		Email:                 params.Email,
		PasswordHash:          passwordHash,
		Phone:                 params.Phone,
		VerificationToken:     &verificationToken,
		VerificationExpiresAt: &expiresAt,
		CreatedAt:             now,
		LastSeenAt:            now,
	}

	saved, err := s.userStore.Create(ctx, user)
	if errors.Is(err, model.ErrEmailTaken) {
		s.logger.Info("Account service: email already registered", "email", params.Email)
		return model.User{}, "", model.ErrEmailTaken
	}
	if err != nil {
		return model.User{}, "", fmt.Errorf("failed to create user: %w", err)
	}

	s.sendVerificationMail(ctx, saved.Email, verificationToken)

	sessionToken, err := s.tokenManager.Generate(saved.ID)
	if err != nil {
		return model.User{}, "", fmt.Errorf("failed to issue session token: %w", err)
	}

	s.logger.Info("Account service: registration completed", "email", saved.Email, "user_id", saved.ID)

	return saved, sessionToken, nil
}

// Login verifies credentials and issues a session token. An unknown email and
// a wrong password produce the same error.
func (s *Account) Login(ctx context.Context, email, password string) (model.User, string, error) {
	s.logger.Debug("Account service: starting login", "email", email)

	user, err := s.userStore.GetByEmail(ctx, email)
	if errors.Is(err, model.ErrNotFound) {
		s.hasher.Verify(password, dummyPasswordHash)
		return model.User{}, "", model.ErrInvalidCredentials
	}
	if err != nil {
		return model.User{}, "", fmt.Errorf("failed to get user by email: %w", err)
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return model.User{}, "", model.ErrInvalidCredentials
	}

	if err := s.userStore.TouchLastSeen(ctx, user.ID); err != nil {
		s.logger.Error("Account service: failed to update last seen",
			"user_id", user.ID,
			"error", err.Error())
	}

	sessionToken, err := s.tokenManager.Generate(user.ID)
	if err != nil {
		return model.User{}, "", fmt.Errorf("failed to issue session token: %w", err)
	}

	s.logger.Info("Account service: login completed", "email", email, "user_id", user.ID)

	return user, sessionToken, nil
}

// GetUser returns a single user record.
func (s *Account) GetUser(ctx context.Context, id uuid.UUID) (model.User, error) {
	user, err := s.userStore.GetByID(ctx, id)
	if err != nil {
		return model.User{}, fmt.Errorf("failed to get user by id: %w", err)
	}
	return user, nil
}

// ListUsers returns all user records.
func (s *Account) ListUsers(ctx context.Context) ([]model.User, error) {
	users, err := s.userStore.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// UpdateProfile applies a partial profile update. Identity fields stay out of
// reach of this path.
func (s *Account) UpdateProfile(ctx context.Context, id uuid.UUID, update model.ProfileUpdate) (model.User, error) {
	user, err := s.userStore.UpdateProfile(ctx, id, update)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.User{}, model.ErrNotFound
		}
		return model.User{}, fmt.Errorf("failed to update profile: %w", err)
	}

	s.logger.Info("Account service: profile updated", "user_id", id)

	return user, nil
}

// UploadAvatar stores the image and records the returned URL. On upload
// failure the prior avatar reference stays untouched.
func (s *Account) UploadAvatar(ctx context.Context, id uuid.UUID, data []byte, contentType string) (model.User, error) {
	if _, err := s.userStore.GetByID(ctx, id); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.User{}, model.ErrNotFound
		}
		return model.User{}, fmt.Errorf("failed to get user by id: %w", err)
	}

	uploadCtx, cancel := context.WithTimeout(ctx, uploadTimeout)
	defer cancel()

	key := fmt.Sprintf("avatars/%s", id)
	url, err := s.storage.Upload(uploadCtx, key, bytes.NewReader(data), int64(len(data)), contentType)
	if err != nil {
		s.logger.Error("Account service: avatar upload failed",
			"user_id", id,
			"error", err.Error())
		return model.User{}, model.ErrUploadFailed
	}

	user, err := s.userStore.SetAvatarURL(ctx, id, url)
	if err != nil {
		return model.User{}, fmt.Errorf("failed to set avatar url: %w", err)
	}

	s.logger.Info("Account service: avatar updated", "user_id", id, "url", url)

	return user, nil
}

func (s *Account) sendVerificationMail(ctx context.Context, email, verificationToken string) {
	notifyCtx, cancel := context.WithTimeout(ctx, notifyTimeout)
	defer cancel()

	if err := s.notifier.SendVerification(notifyCtx, email, verificationToken); err != nil {
		s.logger.Error("Account service: failed to send verification email",
			"email", email,
			"error", err.Error())
	}
}
