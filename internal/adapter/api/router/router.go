package router

import (
	"github.com/labstack/echo/v4"

	"github.com/takitajwar17/my-chat-app/internal/adapter/api/handler"
	"github.com/takitajwar17/my-chat-app/internal/adapter/api/middleware"
)

func Setup(
	e *echo.Echo,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	conversationHandler *handler.ConversationHandler,
	wsHandler *handler.WebSocketHandler,
	healthHandler *handler.HealthHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	SetupAuthRouter(e, authHandler, authMiddleware)
	SetupUserRouter(e, userHandler, authMiddleware)
	SetupConversationRouter(e, conversationHandler, authMiddleware)
	SetupWebSocketRouter(e, wsHandler, authMiddleware)
	SetupHealthRouter(e, healthHandler)
}
