package handler

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"net/http"

	"github.com/google/uuid"
	gorillaws "github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"github.com/takitajwar17/my-chat-app/internal/domain/entity"
	"github.com/takitajwar17/my-chat-app/internal/domain/repository"
	ws "github.com/takitajwar17/my-chat-app/internal/infrastructure/websocket"
	"github.com/takitajwar17/my-chat-app/internal/usecase"
	"github.com/takitajwar17/my-chat-app/pkg/errors"
	"github.com/takitajwar17/my-chat-app/pkg/logger"
)

type WebSocketHandler struct {
	wsManager   *ws.Manager
	chatUseCase *usecase.ChatUseCase
}

var upgrader = gorillaws.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Restrict this in production
	},
}

func NewWebSocketHandler(wsManager *ws.Manager, chatUseCase *usecase.ChatUseCase) *WebSocketHandler {
	return &WebSocketHandler{
		wsManager:   wsManager,
		chatUseCase: chatUseCase,
	}
}

// wsSession tracks the live-query subscriptions one connection has opened.
// Control frames are handled on the connection's read goroutine, so the
// subscriptions map needs no locking; snapshot callbacks only touch the
// client's outbound channel.
type wsSession struct {
	client        *ws.Client
	principal     usecase.Principal
	ctx           context.Context
	subscriptions map[string]repository.Unsubscribe
}

// HandleWebSocket upgrades the connection and serves subscription control
// frames until the client disconnects. Teardown releases every listener the
// connection opened.
func (h *WebSocketHandler) HandleWebSocket(c echo.Context) error {
	principal := principalFromContext(c)
	if principal.UID == "" {
		return errors.Unauthorized("Authentication required", nil)
	}

	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return errors.Internal("Failed to upgrade connection", err)
	}

	client := ws.NewClient(uuid.New().String(), principal.UID, conn)
	h.wsManager.Register <- client

	// The session context outlives the HTTP request; it is cancelled when
	// the read pump returns, which also stops every listener goroutine.
	ctx, cancel := context.WithCancel(context.Background())
	session := &wsSession{
		client:        client,
		principal:     principal,
		ctx:           ctx,
		subscriptions: make(map[string]repository.Unsubscribe),
	}

	go client.WritePump()
	client.ReadPump(h.wsManager, func(raw []byte) {
		h.handleFrame(session, raw)
	})

	cancel()
	for key, unsubscribe := range session.subscriptions {
		unsubscribe()
		delete(session.subscriptions, key)
	}

	return nil
}

func (h *WebSocketHandler) handleFrame(session *wsSession, raw []byte) {
	var frame ws.ClientFrame
	if err := json.Unmarshal(raw, &frame); err != nil {
		session.pushError("", "Malformed frame")
		return
	}

	switch frame.Type {
	case ws.FrameTypeSubscribeConversations:
		h.subscribeConversations(session)
	case ws.FrameTypeSubscribeMessages:
		h.subscribeMessages(session, frame.ConversationID)
	case ws.FrameTypeUnsubscribeMessages:
		session.release("messages:" + frame.ConversationID)
	case ws.FrameTypePing:
		session.push(ws.ServerFrame{Type: ws.FrameTypePong})
	default:
		session.pushError("", "Unknown frame type: "+frame.Type)
	}
}

func (h *WebSocketHandler) subscribeConversations(session *wsSession) {
	const key = "conversations"
	if _, active := session.subscriptions[key]; active {
		return
	}

	client := session.client
	unsubscribe, err := h.chatUseCase.SubscribeToConversations(session.ctx, session.principal.UID, func(conversations []*entity.Conversation) {
		pushFrame(client, ws.ServerFrame{
			Type:          ws.FrameTypeConversations,
			Conversations: conversations,
		})
	})
	if err != nil {
		logger.Error("Failed to open conversation listener for user %s: %v", session.principal.UID, err)
		session.pushError("", "Failed to subscribe to conversations")
		return
	}

	session.subscriptions[key] = unsubscribe
}

func (h *WebSocketHandler) subscribeMessages(session *wsSession, conversationID string) {
	if conversationID == "" {
		session.pushError("", "conversation_id is required")
		return
	}

	key := "messages:" + conversationID
	if _, active := session.subscriptions[key]; active {
		return
	}

	client := session.client
	unsubscribe, err := h.chatUseCase.SubscribeToMessages(session.ctx, session.principal.UID, conversationID, func(messages []*entity.Message) {
		pushFrame(client, ws.ServerFrame{
			Type:           ws.FrameTypeMessages,
			ConversationID: conversationID,
			Messages:       messages,
		})
	})
	if err != nil {
		session.pushError(conversationID, friendlyError(err))
		return
	}

	session.subscriptions[key] = unsubscribe
}

func (session *wsSession) release(key string) {
	if unsubscribe, active := session.subscriptions[key]; active {
		unsubscribe()
		delete(session.subscriptions, key)
	}
}

func (session *wsSession) push(frame ws.ServerFrame) {
	pushFrame(session.client, frame)
}

func (session *wsSession) pushError(conversationID, message string) {
	pushFrame(session.client, ws.ServerFrame{
		Type:           ws.FrameTypeError,
		ConversationID: conversationID,
		Error:          message,
	})
}

func pushFrame(client *ws.Client, frame ws.ServerFrame) {
	data, err := frame.Encode()
	if err != nil {
		logger.Error("Failed to encode WebSocket frame: %v", err)
		return
	}
	client.Push(data)
}

func friendlyError(err error) string {
	var appErr *errors.AppError
	if stderrors.As(err, &appErr) {
		return appErr.Message
	}
	return "Subscription failed"
}
