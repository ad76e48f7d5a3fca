package router

import (
	"github.com/labstack/echo/v4"

	"github.com/takitajwar17/my-chat-app/internal/adapter/api/handler"
	"github.com/takitajwar17/my-chat-app/internal/adapter/api/middleware"
)

// SetupAuthRouter initializes auth routes
func SetupAuthRouter(e *echo.Echo, authHandler *handler.AuthHandler, authMiddleware *middleware.AuthMiddleware) {
	authGroup := e.Group("/v1/auth")

	authGroup.POST("/register", authHandler.Register)
	authGroup.POST("/login", authHandler.Login)
	authGroup.POST("/refresh", authHandler.RefreshToken)
	authGroup.GET("/me", authHandler.Me, authMiddleware.Authenticate)
}
