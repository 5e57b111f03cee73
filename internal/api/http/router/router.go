package router

import (
	"github.com/gin-gonic/gin"

	"github.com/dtroode/account-server/internal/api/http/handler"
	"github.com/dtroode/account-server/internal/api/http/middleware"
)

// New wires gin routes and middleware.
func New(
	authHandler *handler.Auth,
	accountHandler *handler.Account,
	authenticate *middleware.Authenticate,
	logging *middleware.Logging,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logging.Handle)

	auth := r.Group("/api/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.POST("/logout", authHandler.Logout)
		auth.POST("/verify-email", authHandler.VerifyEmail)
		auth.POST("/request-verification", authHandler.RequestVerification)
		auth.POST("/forgot-password", authHandler.ForgotPassword)
		auth.POST("/reset-password/:token", authHandler.ResetPassword)

		guarded := auth.Group("")
		guarded.Use(authenticate.Handle)
		{
			guarded.GET("/validate-token", accountHandler.ValidateToken)
			guarded.GET("/profile", accountHandler.GetProfile)
			guarded.PUT("/profile", accountHandler.UpdateProfile)
			guarded.POST("/upload-avatar", accountHandler.UploadAvatar)
			guarded.GET("/users", accountHandler.ListUsers)
			guarded.GET("/users/:id", accountHandler.GetUser)
		}
	}

	return r
}
