package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/dtroode/account-server/internal/logger"
	"github.com/dtroode/account-server/internal/model"
	"github.com/dtroode/account-server/internal/service"
)

// AccountService defines registration, login and profile operations.
type AccountService interface {
	Register(ctx context.Context, params service.RegisterParams) (model.User, string, error)
	Login(ctx context.Context, email, password string) (model.User, string, error)
	GetUser(ctx context.Context, id uuid.UUID) (model.User, error)
	ListUsers(ctx context.Context) ([]model.User, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, update model.ProfileUpdate) (model.User, error)
	UploadAvatar(ctx context.Context, id uuid.UUID, data []byte, contentType string) (model.User, error)
}

// RecoveryService defines email verification and password reset operations.
type RecoveryService interface {
	VerifyEmail(ctx context.Context, code string) (model.User, error)
	RequestVerification(ctx context.Context, email string) error
	RequestReset(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, resetToken, newPassword string) (model.User, error)
}

// Auth handles HTTP endpoints for registration, login and account recovery.
type Auth struct {
	accountService  AccountService
	recoveryService RecoveryService
	cookieSecure    bool
	logger          *logger.Logger
}

// NewAuth creates a new Auth handler.
func NewAuth(accountService AccountService, recoveryService RecoveryService, cookieSecure bool, logger *logger.Logger) *Auth {
	return &Auth{
		accountService:  accountService,
		recoveryService: recoveryService,
		cookieSecure:    cookieSecure,
		logger:          logger,
	}
}

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone"`
}

// Register creates a new account and issues a session cookie.
func (h *Auth) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
		return
	}

	h.logger.Debug("Auth handler: processing register request", "email", req.Email)

	user, sessionToken, err := h.accountService.Register(c.Request.Context(), service.RegisterParams{
		Email:    req.Email,
		Password: req.Password,
		Phone:    req.Phone,
	})
	if err != nil {
		h.logger.Error("Auth handler: register failed",
			"email", req.Email,
			"error", err.Error())
		handleError(c, err)
		return
	}

	h.logger.Info("Auth handler: register completed",
		"email", user.Email,
		"user_id", user.ID)

	setSessionCookie(c, sessionToken, h.cookieSecure)
	c.JSON(http.StatusCreated, newUserResponse(user))
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login verifies credentials and issues a session cookie.
func (h *Auth) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
		return
	}

	h.logger.Debug("Auth handler: processing login request", "email", req.Email)

	user, sessionToken, err := h.accountService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.logger.Error("Auth handler: login failed",
			"email", req.Email,
			"error", err.Error())
		handleError(c, err)
		return
	}

	h.logger.Info("Auth handler: login completed",
		"email", user.Email,
		"user_id", user.ID)

	setSessionCookie(c, sessionToken, h.cookieSecure)
	c.JSON(http.StatusOK, newUserResponse(user))
}

// Logout expires the session cookie. The token itself is stateless, so
// nothing is revoked server side.
func (h *Auth) Logout(c *gin.Context) {
	clearSessionCookie(c, h.cookieSecure)
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

type verifyEmailRequest struct {
	Code string `json:"code"`
}

// VerifyEmail consumes a verification code and marks the account verified.
func (h *Auth) VerifyEmail(c *gin.Context) {
	var req verifyEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
		return
	}

	user, err := h.recoveryService.VerifyEmail(c.Request.Context(), req.Code)
	if err != nil {
		h.logger.Error("Auth handler: email verification failed", "error", err.Error())
		handleError(c, err)
		return
	}

	h.logger.Info("Auth handler: email verified", "user_id", user.ID)

	c.JSON(http.StatusOK, newUserResponse(user))
}

type emailRequest struct {
	Email string `json:"email"`
}

// RequestVerification re-sends the verification email. Responds with success
// even when the address is unknown or already verified.
func (h *Auth) RequestVerification(c *gin.Context) {
	var req emailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
		return
	}

	if err := h.recoveryService.RequestVerification(c.Request.Context(), req.Email); err != nil {
		h.logger.Error("Auth handler: verification request failed",
			"email", req.Email,
			"error", err.Error())
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "verification email sent"})
}

// ForgotPassword starts a password reset. Responds with success even when the
// address is unknown so callers cannot probe for registered emails.
func (h *Auth) ForgotPassword(c *gin.Context) {
	var req emailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
		return
	}

	if err := h.recoveryService.RequestReset(c.Request.Context(), req.Email); err != nil {
		h.logger.Error("Auth handler: password reset request failed",
			"email", req.Email,
			"error", err.Error())
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "password reset email sent"})
}

type resetPasswordRequest struct {
	Password string `json:"password"`
}

// ResetPassword consumes the reset token from the URL and sets a new password.
func (h *Auth) ResetPassword(c *gin.Context) {
	var req resetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
		return
	}

	user, err := h.recoveryService.ResetPassword(c.Request.Context(), c.Param("token"), req.Password)
	if err != nil {
		h.logger.Error("Auth handler: password reset failed", "error", err.Error())
		handleError(c, err)
		return
	}

	h.logger.Info("Auth handler: password reset completed", "user_id", user.ID)

	c.JSON(http.StatusOK, gin.H{"message": "password reset successful"})
}
