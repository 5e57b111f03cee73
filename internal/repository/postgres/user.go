package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/dtroode/account-server/internal/model"
)

var _ model.UserStore = (*UserRepository)(nil)

// querier is the subset of pgxpool.Pool the repository needs. Satisfied by
// *Connection and by pgxmock pools in tests.
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

type UserRepository struct {
	db querier
}

func NewUserRepository(db querier) *UserRepository {
	return &UserRepository{
		db: db,
	}
}

const userColumns = `id, email, password_hash, first_name, last_name, phone, address, city, country,
	avatar_url, is_email_verified, verification_token, verification_expires_at,
	reset_token, reset_expires_at, created_at, last_seen_at`

func scanUser(row pgx.Row) (model.User, error) {
	var user model.User
	err := row.Scan(
		&user.ID, &user.Email, &user.PasswordHash, &user.FirstName, &user.LastName,
		&user.Phone, &user.Address, &user.City, &user.Country, &user.AvatarURL,
		&user.EmailVerified, &user.VerificationToken, &user.VerificationExpiresAt,
		&user.ResetToken, &user.ResetExpiresAt, &user.CreatedAt, &user.LastSeenAt,
	)
	return user, err
}

func (r *UserRepository) Create(ctx context.Context, user model.User) (model.User, error) {
	query := `INSERT INTO users (id, email, password_hash, phone, is_email_verified,
				verification_token, verification_expires_at, created_at, last_seen_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			  RETURNING ` + userColumns

	saved, err := scanUser(r.db.QueryRow(ctx, query,
		user.ID, user.Email, user.PasswordHash, user.Phone, user.EmailVerified,
		user.VerificationToken, user.VerificationExpiresAt, user.CreatedAt, user.LastSeenAt,
	))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return model.User{}, model.ErrEmailTaken
		}
		return model.User{}, fmt.Errorf("failed to create user: %w", err)
	}

	return saved, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`

	user, err := scanUser(r.db.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.User{}, model.ErrNotFound
		}
		return model.User{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	return user, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	user, err := scanUser(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.User{}, model.ErrNotFound
		}
		return model.User{}, fmt.Errorf("failed to get user by id: %w", err)
	}

	return user, nil
}

func (r *UserRepository) List(ctx context.Context) ([]model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY created_at`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var users []model.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read users: %w", err)
	}

	return users, nil
}

func (r *UserRepository) UpdateProfile(ctx context.Context, id uuid.UUID, update model.ProfileUpdate) (model.User, error) {
	// Empty values leave the stored field untouched.
	query := `UPDATE users SET
				first_name = COALESCE(NULLIF($2, ''), first_name),
				last_name = COALESCE(NULLIF($3, ''), last_name),
				phone = COALESCE(NULLIF($4, ''), phone),
				address = COALESCE(NULLIF($5, ''), address),
				city = COALESCE(NULLIF($6, ''), city),
				country = COALESCE(NULLIF($7, ''), country)
			  WHERE id = $1
			  RETURNING ` + userColumns

	user, err := scanUser(r.db.QueryRow(ctx, query,
		id, update.FirstName, update.LastName, update.Phone,
		update.Address, update.City, update.Country,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.User{}, model.ErrNotFound
		}
		return model.User{}, fmt.Errorf("failed to update profile: %w", err)
	}

	return user, nil
}

func (r *UserRepository) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	query := `UPDATE users SET password_hash = $2 WHERE id = $1`

	tag, err := r.db.Exec(ctx, query, id, passwordHash)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}

	return nil
}

func (r *UserRepository) SetAvatarURL(ctx context.Context, id uuid.UUID, url string) (model.User, error) {
	query := `UPDATE users SET avatar_url = $2 WHERE id = $1 RETURNING ` + userColumns

	user, err := scanUser(r.db.QueryRow(ctx, query, id, url))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.User{}, model.ErrNotFound
		}
		return model.User{}, fmt.Errorf("failed to set avatar url: %w", err)
	}

	return user, nil
}

func (r *UserRepository) TouchLastSeen(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE users SET last_seen_at = NOW() WHERE id = $1`

	if _, err := r.db.Exec(ctx, query, id); err != nil {
		return fmt.Errorf("failed to touch last seen: %w", err)
	}

	return nil
}

func (r *UserRepository) SetVerificationToken(ctx context.Context, id uuid.UUID, token string, expiresAt time.Time) error {
	query := `UPDATE users SET verification_token = $2, verification_expires_at = $3 WHERE id = $1`

	tag, err := r.db.Exec(ctx, query, id, token, expiresAt)
	if err != nil {
		return fmt.Errorf("failed to set verification token: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}

	return nil
}

func (r *UserRepository) SetResetToken(ctx context.Context, id uuid.UUID, token string, expiresAt time.Time) error {
	// Overwrites any prior unconsumed token: at most one live reset token per user.
	query := `UPDATE users SET reset_token = $2, reset_expires_at = $3 WHERE id = $1`

	tag, err := r.db.Exec(ctx, query, id, token, expiresAt)
	if err != nil {
		return fmt.Errorf("failed to set reset token: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}

	return nil
}

func (r *UserRepository) ConsumeVerificationToken(ctx context.Context, token string, now time.Time) (model.User, error) {
	// Single conditional update: concurrent consumers of the same code get
	// exactly one row between them.
	query := `UPDATE users SET is_email_verified = TRUE, verification_token = NULL, verification_expires_at = NULL
			  WHERE verification_token = $1 AND verification_expires_at > $2
			  RETURNING ` + userColumns

	user, err := scanUser(r.db.QueryRow(ctx, query, token, now))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.User{}, model.ErrNotFound
		}
		return model.User{}, fmt.Errorf("failed to consume verification token: %w", err)
	}

	return user, nil
}

func (r *UserRepository) ConsumeResetToken(ctx context.Context, token string, newPasswordHash string, now time.Time) (model.User, error) {
	query := `UPDATE users SET password_hash = $2, reset_token = NULL, reset_expires_at = NULL
			  WHERE reset_token = $1 AND reset_expires_at > $3
			  RETURNING ` + userColumns

	user, err := scanUser(r.db.QueryRow(ctx, query, token, newPasswordHash, now))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.User{}, model.ErrNotFound
		}
		return model.User{}, fmt.Errorf("failed to consume reset token: %w", err)
	}

	return user, nil
}
