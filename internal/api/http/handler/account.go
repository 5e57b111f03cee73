package handler

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/dtroode/account-server/internal/api/http/middleware"
	"github.com/dtroode/account-server/internal/logger"
	"github.com/dtroode/account-server/internal/model"
)

// maxAvatarSize caps avatar uploads at 5 MiB.
const maxAvatarSize = 5 << 20

// Account handles HTTP endpoints behind the session guard.
type Account struct {
	accountService AccountService
	logger         *logger.Logger
}

// NewAccount creates a new Account handler.
func NewAccount(accountService AccountService, logger *logger.Logger) *Account {
	return &Account{
		accountService: accountService,
		logger:         logger,
	}
}

// ValidateToken confirms the session cookie is valid and returns the user ID.
func (h *Account) ValidateToken(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": model.ErrUnauthenticated.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user_id": userID.String()})
}

// GetProfile returns the authenticated user's record.
func (h *Account) GetProfile(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": model.ErrUnauthenticated.Error()})
		return
	}

	user, err := h.accountService.GetUser(c.Request.Context(), userID)
	if err != nil {
		h.logger.Error("Account handler: failed to get profile",
			"user_id", userID,
			"error", err.Error())
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, newUserResponse(user))
}

type updateProfileRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
	City      string `json:"city"`
	Country   string `json:"country"`
}

// UpdateProfile overwrites the non-empty profile fields of the request.
// Email and password cannot be changed through this endpoint.
func (h *Account) UpdateProfile(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": model.ErrUnauthenticated.Error()})
		return
	}

	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
		return
	}

	user, err := h.accountService.UpdateProfile(c.Request.Context(), userID, model.ProfileUpdate{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
		Address:   req.Address,
		City:      req.City,
		Country:   req.Country,
	})
	if err != nil {
		h.logger.Error("Account handler: failed to update profile",
			"user_id", userID,
			"error", err.Error())
		handleError(c, err)
		return
	}

	h.logger.Info("Account handler: profile updated", "user_id", userID)

	c.JSON(http.StatusOK, newUserResponse(user))
}

// UploadAvatar reads the multipart "avatar" file and stores it as the user's
// avatar image.
func (h *Account) UploadAvatar(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": model.ErrUnauthenticated.Error()})
		return
	}

	fileHeader, err := c.FormFile("avatar")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "avatar file is required"})
		return
	}
	if fileHeader.Size > maxAvatarSize {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"message": "avatar file too large"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "avatar file is required"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxAvatarSize))
	if err != nil {
		h.logger.Error("Account handler: failed to read avatar file",
			"user_id", userID,
			"error", err.Error())
		c.JSON(http.StatusBadRequest, gin.H{"message": "avatar file is required"})
		return
	}

	user, err := h.accountService.UploadAvatar(c.Request.Context(), userID, data, fileHeader.Header.Get("Content-Type"))
	if err != nil {
		h.logger.Error("Account handler: avatar upload failed",
			"user_id", userID,
			"error", err.Error())
		handleError(c, err)
		return
	}

	h.logger.Info("Account handler: avatar uploaded",
		"user_id", userID,
		"avatar_url", user.AvatarURL)

	c.JSON(http.StatusOK, newUserResponse(user))
}

// ListUsers returns all user records.
func (h *Account) ListUsers(c *gin.Context) {
	users, err := h.accountService.ListUsers(c.Request.Context())
	if err != nil {
		h.logger.Error("Account handler: failed to list users", "error", err.Error())
		handleError(c, err)
		return
	}

	response := make([]userResponse, 0, len(users))
	for _, user := range users {
		response = append(response, newUserResponse(user))
	}

	c.JSON(http.StatusOK, response)
}

// GetUser returns a single user record by ID.
func (h *Account) GetUser(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid user id"})
		return
	}

	user, err := h.accountService.GetUser(c.Request.Context(), id)
	if err != nil {
		h.logger.Error("Account handler: failed to get user",
			"user_id", id,
			"error", err.Error())
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, newUserResponse(user))
}
