package router

import (
	"github.com/labstack/echo/v4"

	"github.com/takitajwar17/my-chat-app/internal/adapter/api/handler"
	"github.com/takitajwar17/my-chat-app/internal/adapter/api/middleware"
)

// SetupConversationRouter sets up all conversation routes (excluding WebSocket)
func SetupConversationRouter(e *echo.Echo, conversationHandler *handler.ConversationHandler, authMiddleware *middleware.AuthMiddleware) {
	conversationGroup := e.Group("/v1/conversations")
	conversationGroup.Use(authMiddleware.Authenticate)

	conversationGroup.POST("", conversationHandler.StartConversation)        // POST /v1/conversations - Get or create a conversation
	conversationGroup.GET("", conversationHandler.GetUserConversations)      // GET /v1/conversations - List the caller's conversations
	conversationGroup.GET("/:id", conversationHandler.GetConversationByID)   // GET /v1/conversations/:id
	conversationGroup.POST("/:id/messages", conversationHandler.SendMessage) // POST /v1/conversations/:id/messages
	conversationGroup.GET("/:id/messages", conversationHandler.GetMessages)  // GET /v1/conversations/:id/messages
}
