package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/dtroode/account-server/internal/logger"
	"github.com/dtroode/account-server/internal/model"
)

// SessionCookieName is the cookie the guard reads the session token from.
const SessionCookieName = "auth_token"

// userIDKey is the gin context key holding the authenticated user ID.
const userIDKey = "user_id"

// LastSeenRecorder updates the account's last activity timestamp.
type LastSeenRecorder interface {
	TouchLastSeen(ctx context.Context, id uuid.UUID) error
}

// Authenticate validates session cookies and injects the user ID into the
// request context.
type Authenticate struct {
	tokenManager model.TokenManager
	lastSeen     LastSeenRecorder
	logger       *logger.Logger
}

// NewAuthenticate creates a new Authenticate middleware instance.
func NewAuthenticate(tokenManager model.TokenManager, lastSeen LastSeenRecorder, logger *logger.Logger) *Authenticate {
	return &Authenticate{
		tokenManager: tokenManager,
		lastSeen:     lastSeen,
		logger:       logger,
	}
}

// Handle rejects the request with 401 unless it carries a valid session
// cookie. On success the user ID is stored in the gin context and the
// account's last seen timestamp is updated best effort.
func (m *Authenticate) Handle(c *gin.Context) {
	cookie, err := c.Cookie(SessionCookieName)
	if err != nil || cookie == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": model.ErrUnauthenticated.Error()})
		return
	}

	userID, err := m.tokenManager.Parse(cookie)
	if err != nil {
		m.logger.Debug("Authenticate middleware: session token rejected", "error", err.Error())
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": model.ErrUnauthenticated.Error()})
		return
	}

	SetUserID(c, userID)

	if err := m.lastSeen.TouchLastSeen(c.Request.Context(), userID); err != nil {
		m.logger.Error("Authenticate middleware: failed to update last seen",
			"user_id", userID,
			"error", err.Error())
	}

	c.Next()
}

// SetUserID stores the authenticated user ID in the gin context.
func SetUserID(c *gin.Context, userID uuid.UUID) {
	c.Set(userIDKey, userID)
}

// GetUserID retrieves the authenticated user ID from the gin context.
func GetUserID(c *gin.Context) (uuid.UUID, bool) {
	value, ok := c.Get(userIDKey)
	if !ok {
		return uuid.Nil, false
	}

	userID, ok := value.(uuid.UUID)
	if !ok {
		return uuid.Nil, false
	}

	return userID, true
}
