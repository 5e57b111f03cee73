package token

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// recoveryTokenBytes yields 64 hex chars per token.
const recoveryTokenBytes = 32

// NewRecoveryToken creates a cryptographically random single-use code for
// email verification and password reset flows.
func NewRecoveryToken() (string, error) {
	buf := make([]byte, recoveryTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate recovery token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
