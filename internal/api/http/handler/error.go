package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dtroode/account-server/internal/model"
)

// handleError maps a service error to an HTTP status and a stable JSON body.
// Anything unrecognized is an infrastructure fault and surfaces as a 500
// without detail.
func handleError(c *gin.Context, err error) {
	var validationErr *model.ValidationError
	if errors.As(err, &validationErr) {
		c.JSON(http.StatusBadRequest, gin.H{"message": validationErr.Error()})
		return
	}

	switch {
	case errors.Is(err, model.ErrEmailTaken):
		c.JSON(http.StatusConflict, gin.H{"message": model.ErrEmailTaken.Error()})
	case errors.Is(err, model.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"message": model.ErrInvalidCredentials.Error()})
	case errors.Is(err, model.ErrInvalidOrExpiredToken):
		c.JSON(http.StatusBadRequest, gin.H{"message": model.ErrInvalidOrExpiredToken.Error()})
	case errors.Is(err, model.ErrUnauthenticated):
		c.JSON(http.StatusUnauthorized, gin.H{"message": model.ErrUnauthenticated.Error()})
	case errors.Is(err, model.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": model.ErrNotFound.Error()})
	case errors.Is(err, model.ErrUploadFailed):
		c.JSON(http.StatusBadGateway, gin.H{"message": model.ErrUploadFailed.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"message": "internal server error"})
	}
}
