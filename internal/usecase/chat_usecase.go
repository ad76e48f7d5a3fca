package usecase

import (
	"context"
	"strings"

	"github.com/takitajwar17/my-chat-app/internal/domain/entity"
	"github.com/takitajwar17/my-chat-app/internal/domain/repository"
	"github.com/takitajwar17/my-chat-app/internal/infrastructure/ratelimit"
	"github.com/takitajwar17/my-chat-app/pkg/errors"
	"github.com/takitajwar17/my-chat-app/pkg/logger"
)

// Message text is trimmed before validation and capped at this length.
const maxMessageLength = 2000

type ChatUseCase struct {
	conversationRepo repository.ConversationRepository
	subscriber       repository.ConversationSubscriber
	userRepo         repository.UserRepository
	rateLimiter      *ratelimit.RateLimiter
}

func NewChatUseCase(
	conversationRepo repository.ConversationRepository,
	subscriber repository.ConversationSubscriber,
	userRepo repository.UserRepository,
) *ChatUseCase {
	rateLimiter := ratelimit.NewRateLimiter()
	rateLimiter.StartCleanupRoutine()

	return &ChatUseCase{
		conversationRepo: conversationRepo,
		subscriber:       subscriber,
		userRepo:         userRepo,
		rateLimiter:      rateLimiter,
	}
}

type ConversationResponse struct {
	*entity.Conversation
	OtherUser *entity.User `json:"other_user,omitempty"`
}

// StartConversation returns the conversation between the caller and
// otherUserID, creating it on first contact. The id is a pure function of the
// unordered pair, so repeated calls from either side land on the same
// document. Both participantNames entries are seeded from real display names;
// on an existing conversation the caller's entry is refreshed so renames
// propagate.
func (uc *ChatUseCase) StartConversation(ctx context.Context, current Principal, otherUserID string) (*ConversationResponse, error) {
	if allowed, waitTime := uc.rateLimiter.Allow(current.UID, "start_conversation"); !allowed {
		logger.Warn("StartConversation rate limited: user %s must wait %v", current.UID, waitTime)
		return nil, errors.TooManyRequests("Too many new conversations. Please wait before starting another")
	}

	if current.UID == otherUserID {
		return nil, errors.BadRequest("You cannot start a conversation with yourself", nil)
	}

	otherUser, err := uc.userRepo.GetByID(ctx, otherUserID)
	if err != nil {
		return nil, errors.NotFound("Recipient", err)
	}

	conversationID := entity.ConversationID(current.UID, otherUserID)

	conversation, err := uc.conversationRepo.GetByID(ctx, conversationID)
	if err != nil {
		if !errors.Is(err, "NOT_FOUND") {
			return nil, err
		}

		conversation = &entity.Conversation{
			ID:           conversationID,
			Participants: []string{current.UID, otherUserID},
			ParticipantNames: map[string]string{
				current.UID: current.DisplayName,
				otherUserID: otherUser.DisplayName,
			},
		}
		if err := uc.conversationRepo.Create(ctx, conversation); err != nil {
			return nil, err
		}
	} else {
		if conversation.ParticipantNames[current.UID] != current.DisplayName {
			if err := uc.conversationRepo.SetParticipantName(ctx, conversationID, current.UID, current.DisplayName); err != nil {
				logger.Warn("Failed to refresh participant name for %s in %s: %v", current.UID, conversationID, err)
			} else {
				conversation.ParticipantNames[current.UID] = current.DisplayName
			}
		}
	}

	return &ConversationResponse{
		Conversation: conversation,
		OtherUser:    otherUser,
	}, nil
}

func (uc *ChatUseCase) GetUserConversations(ctx context.Context, userID string) ([]*entity.Conversation, error) {
	return uc.conversationRepo.ListByParticipant(ctx, userID)
}

func (uc *ChatUseCase) GetConversationByID(ctx context.Context, userID, conversationID string) (*entity.Conversation, error) {
	conversation, err := uc.conversationRepo.GetByID(ctx, conversationID)
	if err != nil {
		return nil, err
	}

	if !conversation.HasParticipant(userID) {
		return nil, errors.Forbidden("You are not a participant in this conversation", nil)
	}

	return conversation, nil
}

// SendMessage validates and appends a message. The sender's display name is
// denormalized onto the message as a send-time snapshot; later renames leave
// it untouched. Validation failures never reach the store.
func (uc *ChatUseCase) SendMessage(ctx context.Context, current Principal, conversationID, text string) (*entity.Message, error) {
	if allowed, waitTime := uc.rateLimiter.Allow(current.UID, "send_message"); !allowed {
		logger.Warn("SendMessage rate limited: user %s must wait %v", current.UID, waitTime)
		return nil, errors.TooManyRequests("Too many messages. Please slow down")
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return nil, errors.BadRequest("Message text cannot be empty", nil)
	}
	if len(text) > maxMessageLength {
		return nil, errors.BadRequest("Message text is too long", nil)
	}

	conversation, err := uc.conversationRepo.GetByID(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	if !conversation.HasParticipant(current.UID) {
		return nil, errors.Forbidden("You are not a participant in this conversation", nil)
	}

	message := &entity.Message{
		Text:       text,
		SenderID:   current.UID,
		SenderName: current.DisplayName,
	}
	if err := uc.conversationRepo.CreateMessage(ctx, conversationID, message); err != nil {
		return nil, err
	}

	return message, nil
}

func (uc *ChatUseCase) GetMessages(ctx context.Context, userID, conversationID string) ([]*entity.Message, error) {
	if _, err := uc.GetConversationByID(ctx, userID, conversationID); err != nil {
		return nil, err
	}
	return uc.conversationRepo.ListMessages(ctx, conversationID)
}

// SubscribeToConversations opens a live recency-ordered view of the user's
// conversations. The returned Unsubscribe releases every listener the
// subscription opened; call it exactly once on teardown.
func (uc *ChatUseCase) SubscribeToConversations(ctx context.Context, userID string, onUpdate func([]*entity.Conversation)) (repository.Unsubscribe, error) {
	return uc.subscriber.SubscribeToConversations(ctx, userID, onUpdate)
}

// SubscribeToMessages opens a live chronological view of one conversation,
// after checking the caller is a participant.
func (uc *ChatUseCase) SubscribeToMessages(ctx context.Context, userID, conversationID string, onUpdate func([]*entity.Message)) (repository.Unsubscribe, error) {
	if _, err := uc.GetConversationByID(ctx, userID, conversationID); err != nil {
		return nil, err
	}
	return uc.subscriber.SubscribeToMessages(ctx, conversationID, onUpdate)
}
