package router

import (
	"github.com/labstack/echo/v4"

	"github.com/takitajwar17/my-chat-app/internal/adapter/api/handler"
	"github.com/takitajwar17/my-chat-app/internal/adapter/api/middleware"
)

// SetupUserRouter initializes the user directory routes
func SetupUserRouter(e *echo.Echo, userHandler *handler.UserHandler, authMiddleware *middleware.AuthMiddleware) {
	userGroup := e.Group("/v1/users")
	userGroup.Use(authMiddleware.Authenticate)

	userGroup.GET("", userHandler.ListUsers)
}
