package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Lifetimes of the recovery tokens stored on the user record.
const (
	VerificationTokenTTL = 24 * time.Hour
	ResetTokenTTL        = 1 * time.Hour
)

// UserStore defines persistence operations for user accounts.
//
// Profile and credential mutations are separate methods on purpose:
// UpdateProfile can never touch email or password, and UpdatePassword takes
// an already derived hash exactly once.
type UserStore interface {
	Create(ctx context.Context, user User) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	GetByID(ctx context.Context, id uuid.UUID) (User, error)
	List(ctx context.Context) ([]User, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, update ProfileUpdate) (User, error)
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error
	SetAvatarURL(ctx context.Context, id uuid.UUID, url string) (User, error)
	TouchLastSeen(ctx context.Context, id uuid.UUID) error
	SetVerificationToken(ctx context.Context, id uuid.UUID, token string, expiresAt time.Time) error
	SetResetToken(ctx context.Context, id uuid.UUID, token string, expiresAt time.Time) error

	// ConsumeVerificationToken marks the matching user verified and clears the
	// token pair in one atomic statement. Returns ErrNotFound when no user
	// holds the token with a future expiry.
	ConsumeVerificationToken(ctx context.Context, token string, now time.Time) (User, error)

	// ConsumeResetToken replaces the password hash and clears the token pair
	// in one atomic statement. Returns ErrNotFound when no user holds the
	// token with a future expiry.
	ConsumeResetToken(ctx context.Context, token string, newPasswordHash string, now time.Time) (User, error)
}

// User represents a stored user account.
type User struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string

	FirstName string
	LastName  string
	Phone     string
	Address   string
	City      string
	Country   string
	AvatarURL string

	// EmailVerified true implies both token fields below are nil.
	EmailVerified         bool
	VerificationToken     *string
	VerificationExpiresAt *time.Time

	ResetToken     *string
	ResetExpiresAt *time.Time

	CreatedAt  time.Time
	LastSeenAt time.Time
}

// ProfileUpdate carries optional profile fields. An empty value leaves the
// stored field untouched.
type ProfileUpdate struct {
	FirstName string
	LastName  string
	Phone     string
	Address   string
	City      string
	Country   string
}

// PasswordHasher derives and verifies one-way password hashes.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) bool
}
