package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/takitajwar17/my-chat-app/internal/usecase"
	"github.com/takitajwar17/my-chat-app/pkg/response"
)

type ConversationHandler struct {
	chatUseCase *usecase.ChatUseCase
}

func NewConversationHandler(chatUseCase *usecase.ChatUseCase) *ConversationHandler {
	return &ConversationHandler{
		chatUseCase: chatUseCase,
	}
}

type startConversationRequest struct {
	RecipientID string `json:"recipient_id" validate:"required"`
}

type sendMessageRequest struct {
	Text string `json:"text" validate:"required,max=2000"`
}

// StartConversation gets or creates the conversation with another user.
func (h *ConversationHandler) StartConversation(c echo.Context) error {
	var req startConversationRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	principal := principalFromContext(c)

	conversation, err := h.chatUseCase.StartConversation(c.Request().Context(), principal, req.RecipientID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, conversation)
}

// GetUserConversations lists the caller's conversations, most recent first.
func (h *ConversationHandler) GetUserConversations(c echo.Context) error {
	principal := principalFromContext(c)

	conversations, err := h.chatUseCase.GetUserConversations(c.Request().Context(), principal.UID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, conversations)
}

func (h *ConversationHandler) GetConversationByID(c echo.Context) error {
	principal := principalFromContext(c)

	conversation, err := h.chatUseCase.GetConversationByID(c.Request().Context(), principal.UID, c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, conversation)
}

func (h *ConversationHandler) SendMessage(c echo.Context) error {
	var req sendMessageRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	principal := principalFromContext(c)

	message, err := h.chatUseCase.SendMessage(c.Request().Context(), principal, c.Param("id"), req.Text)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, message)
}

// GetMessages returns the full message history of a conversation, oldest
// first.
func (h *ConversationHandler) GetMessages(c echo.Context) error {
	principal := principalFromContext(c)

	messages, err := h.chatUseCase.GetMessages(c.Request().Context(), principal.UID, c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, messages)
}
