package repository

import (
	"context"
	"sync"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/takitajwar17/my-chat-app/internal/domain/entity"
	"github.com/takitajwar17/my-chat-app/internal/domain/repository"
	"github.com/takitajwar17/my-chat-app/pkg/logger"
)

type firestoreConversationSubscriber struct {
	client *firestore.Client
}

func NewFirestoreConversationSubscriber(client *firestore.Client) repository.ConversationSubscriber {
	return &firestoreConversationSubscriber{
		client: client,
	}
}

// SubscribeToMessages opens a live query over a conversation's messages,
// ordered oldest-first. Every server snapshot, the initial load included,
// delivers the full ordered slice to onUpdate. The callback runs on the
// listener goroutine; it must not block for long.
func (s *firestoreConversationSubscriber) SubscribeToMessages(ctx context.Context, conversationID string, onUpdate func([]*entity.Message)) (repository.Unsubscribe, error) {
	ctx, cancel := context.WithCancel(ctx)

	query := s.client.Collection("conversations").Doc(conversationID).Collection("messages").
		OrderBy("timestamp", firestore.Asc)
	snapshots := query.Snapshots(ctx)

	go func() {
		defer snapshots.Stop()
		for {
			snapshot, err := snapshots.Next()
			if err != nil {
				if status.Code(err) != codes.Canceled {
					logger.Error("Message listener for conversation %s stopped: %v", conversationID, err)
				}
				return
			}
			onUpdate(decodeMessageSnapshot(conversationID, snapshot))
		}
	}()

	return once(cancel), nil
}

// SubscribeToConversations opens a live query over the user's conversations,
// newest-first by lastMessageTime. When the store rejects the compound
// filter+order for lack of a composite index, the listener falls back to the
// unordered filtered query and sorts each snapshot locally. The returned
// Unsubscribe releases whichever listener is active; nothing leaks across the
// fallback switch.
func (s *firestoreConversationSubscriber) SubscribeToConversations(ctx context.Context, userID string, onUpdate func([]*entity.Conversation)) (repository.Unsubscribe, error) {
	ctx, cancel := context.WithCancel(ctx)

	base := s.client.Collection("conversations").Where("participants", "array-contains", userID)
	snapshots := base.OrderBy("lastMessageTime", firestore.Desc).Snapshots(ctx)
	fellBack := false

	go func() {
		defer func() { snapshots.Stop() }()
		for {
			snapshot, err := snapshots.Next()
			if err != nil {
				if status.Code(err) == codes.Canceled {
					return
				}
				if !fellBack && isMissingIndex(err) {
					logger.Warn("Missing composite index for conversation listener of user %s, sorting locally: %v", userID, err)
					snapshots.Stop()
					snapshots = base.Snapshots(ctx)
					fellBack = true
					continue
				}
				logger.Error("Conversation listener for user %s stopped: %v", userID, err)
				return
			}

			conversations := decodeConversationSnapshot(snapshot)
			if fellBack {
				sortConversationsByRecency(conversations)
			}
			onUpdate(conversations)
		}
	}()

	return once(cancel), nil
}

func decodeMessageSnapshot(conversationID string, snapshot *firestore.QuerySnapshot) []*entity.Message {
	var messages []*entity.Message
	for {
		doc, err := snapshot.Documents.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			logger.Error("Error reading message snapshot for conversation %s: %v", conversationID, err)
			break
		}

		var message entity.Message
		if err := doc.DataTo(&message); err != nil {
			logger.Warn("Skipping malformed message document %s: %v", doc.Ref.ID, err)
			continue
		}
		message.ID = doc.Ref.ID
		messages = append(messages, &message)
	}
	return messages
}

func decodeConversationSnapshot(snapshot *firestore.QuerySnapshot) []*entity.Conversation {
	var docs []*firestore.DocumentSnapshot
	for {
		doc, err := snapshot.Documents.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			logger.Error("Error reading conversation snapshot: %v", err)
			break
		}
		docs = append(docs, doc)
	}
	return decodeConversations(docs)
}

// once wraps cancel so a second Unsubscribe call is a no-op.
func once(cancel context.CancelFunc) repository.Unsubscribe {
	var onceGuard sync.Once
	return func() {
		onceGuard.Do(cancel)
	}
}
