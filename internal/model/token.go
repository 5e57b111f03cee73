package model

import "github.com/google/uuid"

// TokenManager generates and validates signed session tokens.
type TokenManager interface {
	Generate(userID uuid.UUID) (string, error)
	Parse(token string) (uuid.UUID, error)
}
