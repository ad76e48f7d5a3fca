package repository

import (
	"context"

	"github.com/takitajwar17/my-chat-app/internal/domain/entity"
)

// Unsubscribe releases every listener a subscription opened. Safe to call
// more than once; only the first call does work.
type Unsubscribe func()

type ConversationRepository interface {
	Create(ctx context.Context, conversation *entity.Conversation) error
	GetByID(ctx context.Context, id string) (*entity.Conversation, error)
	ListByParticipant(ctx context.Context, userID string) ([]*entity.Conversation, error)
	SetParticipantName(ctx context.Context, conversationID, userID, displayName string) error

	// Message methods
	CreateMessage(ctx context.Context, conversationID string, message *entity.Message) error
	ListMessages(ctx context.Context, conversationID string) ([]*entity.Message, error)
}

// ConversationSubscriber opens live queries against the store. Each callback
// receives the full result snapshot on every remote change, the initial load
// included; the snapshot replaces any previously delivered slice.
type ConversationSubscriber interface {
	SubscribeToMessages(ctx context.Context, conversationID string, onUpdate func([]*entity.Message)) (Unsubscribe, error)
	SubscribeToConversations(ctx context.Context, userID string, onUpdate func([]*entity.Conversation)) (Unsubscribe, error)
}
