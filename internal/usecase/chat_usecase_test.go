package usecase

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/takitajwar17/my-chat-app/internal/domain/entity"
	"github.com/takitajwar17/my-chat-app/internal/domain/repository"
	"github.com/takitajwar17/my-chat-app/pkg/errors"
)

type fakeConversationRepo struct {
	conversations map[string]*entity.Conversation
	messages      map[string][]*entity.Message
	createCalls   int
	messageCalls  int
}

func newFakeConversationRepo() *fakeConversationRepo {
	return &fakeConversationRepo{
		conversations: make(map[string]*entity.Conversation),
		messages:      make(map[string][]*entity.Message),
	}
}

func (r *fakeConversationRepo) Create(ctx context.Context, conversation *entity.Conversation) error {
	r.createCalls++
	r.conversations[conversation.ID] = conversation
	return nil
}

func (r *fakeConversationRepo) GetByID(ctx context.Context, id string) (*entity.Conversation, error) {
	conversation, ok := r.conversations[id]
	if !ok {
		return nil, errors.NotFound("Conversation", nil)
	}
	return conversation, nil
}

func (r *fakeConversationRepo) ListByParticipant(ctx context.Context, userID string) ([]*entity.Conversation, error) {
	var out []*entity.Conversation
	for _, conversation := range r.conversations {
		if conversation.HasParticipant(userID) {
			out = append(out, conversation)
		}
	}
	return out, nil
}

func (r *fakeConversationRepo) SetParticipantName(ctx context.Context, conversationID, userID, displayName string) error {
	conversation, ok := r.conversations[conversationID]
	if !ok {
		return errors.NotFound("Conversation", nil)
	}
	conversation.ParticipantNames[userID] = displayName
	return nil
}

func (r *fakeConversationRepo) CreateMessage(ctx context.Context, conversationID string, message *entity.Message) error {
	r.messageCalls++
	conversation, ok := r.conversations[conversationID]
	if !ok {
		return errors.NotFound("Conversation", nil)
	}
	message.Timestamp = time.Now()
	r.messages[conversationID] = append(r.messages[conversationID], message)

	// Mirrors the store-side transaction: append and summary move together.
	conversation.LastMessage = message.Text
	conversation.LastMessageTime = message.Timestamp
	conversation.LastMessageSenderID = message.SenderID
	return nil
}

func (r *fakeConversationRepo) ListMessages(ctx context.Context, conversationID string) ([]*entity.Message, error) {
	return r.messages[conversationID], nil
}

type fakeUserRepo struct {
	users map[string]*entity.User
}

func (r *fakeUserRepo) Create(ctx context.Context, user *entity.User) error {
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, errors.NotFound("User", nil)
	}
	return user, nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	for _, user := range r.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, errors.NotFound("User", nil)
}

func (r *fakeUserRepo) List(ctx context.Context) ([]*entity.User, error) {
	var out []*entity.User
	for _, user := range r.users {
		out = append(out, user)
	}
	return out, nil
}

type fakeSubscriber struct {
	messageSubs      int
	conversationSubs int
	releases         int
}

func (s *fakeSubscriber) SubscribeToMessages(ctx context.Context, conversationID string, onUpdate func([]*entity.Message)) (repository.Unsubscribe, error) {
	s.messageSubs++
	return func() { s.releases++ }, nil
}

func (s *fakeSubscriber) SubscribeToConversations(ctx context.Context, userID string, onUpdate func([]*entity.Conversation)) (repository.Unsubscribe, error) {
	s.conversationSubs++
	return func() { s.releases++ }, nil
}

func newChatFixture() (*ChatUseCase, *fakeConversationRepo, *fakeSubscriber) {
	conversationRepo := newFakeConversationRepo()
	subscriber := &fakeSubscriber{}
	userRepo := &fakeUserRepo{users: map[string]*entity.User{
		"alice": {ID: "alice", DisplayName: "Alice", Email: "alice@example.com"},
		"bob":   {ID: "bob", DisplayName: "Bob", Email: "bob@example.com"},
	}}
	return NewChatUseCase(conversationRepo, subscriber, userRepo), conversationRepo, subscriber
}

var (
	alice = Principal{UID: "alice", DisplayName: "Alice"}
	bob   = Principal{UID: "bob", DisplayName: "Bob"}
)

func TestStartConversationDerivesSameIDRegardlessOfOrder(t *testing.T) {
	uc, conversationRepo, _ := newChatFixture()
	ctx := context.Background()

	first, err := uc.StartConversation(ctx, alice, "bob")
	require.NoError(t, err)
	assert.Equal(t, "alice_bob", first.ID)
	assert.Equal(t, 1, conversationRepo.createCalls)

	second, err := uc.StartConversation(ctx, bob, "alice")
	require.NoError(t, err)
	assert.Equal(t, "alice_bob", second.ID)
	assert.Equal(t, 1, conversationRepo.createCalls, "existing conversation must not be recreated")
}

func TestStartConversationSeedsBothDisplayNames(t *testing.T) {
	uc, _, _ := newChatFixture()

	result, err := uc.StartConversation(context.Background(), alice, "bob")
	require.NoError(t, err)

	// The mobile client seeded the caller's entry with their uid and
	// patched it afterwards; here both entries carry real names from the
	// start.
	assert.Equal(t, "Alice", result.ParticipantNames["alice"])
	assert.Equal(t, "Bob", result.ParticipantNames["bob"])
	assert.ElementsMatch(t, []string{"alice", "bob"}, result.Participants)
}

func TestStartConversationRefreshesCallerName(t *testing.T) {
	uc, conversationRepo, _ := newChatFixture()
	ctx := context.Background()

	_, err := uc.StartConversation(ctx, alice, "bob")
	require.NoError(t, err)

	renamed := Principal{UID: "alice", DisplayName: "Alice B."}
	result, err := uc.StartConversation(ctx, renamed, "bob")
	require.NoError(t, err)

	assert.Equal(t, "Alice B.", result.ParticipantNames["alice"])
	assert.Equal(t, "Alice B.", conversationRepo.conversations["alice_bob"].ParticipantNames["alice"])
}

func TestStartConversationRejectsSelf(t *testing.T) {
	uc, conversationRepo, _ := newChatFixture()

	_, err := uc.StartConversation(context.Background(), alice, "alice")
	require.Error(t, err)
	assert.True(t, errors.Is(err, "BAD_REQUEST"))
	assert.Equal(t, 0, conversationRepo.createCalls)
}

func TestStartConversationUnknownRecipient(t *testing.T) {
	uc, _, _ := newChatFixture()

	_, err := uc.StartConversation(context.Background(), alice, "mallory")
	require.Error(t, err)
	assert.True(t, errors.Is(err, "NOT_FOUND"))
}

func TestSendMessageRejectsBlankText(t *testing.T) {
	uc, conversationRepo, _ := newChatFixture()
	ctx := context.Background()

	_, err := uc.StartConversation(ctx, alice, "bob")
	require.NoError(t, err)

	for _, text := range []string{"", "   ", "\n\t ", " \r\n"} {
		_, err := uc.SendMessage(ctx, alice, "alice_bob", text)
		require.Error(t, err)
		assert.True(t, errors.Is(err, "BAD_REQUEST"))
	}
	assert.Equal(t, 0, conversationRepo.messageCalls, "validation failures must not reach the store")
}

func TestSendMessageRejectsOverlongText(t *testing.T) {
	uc, conversationRepo, _ := newChatFixture()
	ctx := context.Background()

	_, err := uc.StartConversation(ctx, alice, "bob")
	require.NoError(t, err)

	_, err = uc.SendMessage(ctx, alice, "alice_bob", strings.Repeat("a", maxMessageLength+1))
	require.Error(t, err)
	assert.True(t, errors.Is(err, "BAD_REQUEST"))
	assert.Equal(t, 0, conversationRepo.messageCalls)
}

func TestSendMessageUpdatesConversationSummary(t *testing.T) {
	uc, conversationRepo, _ := newChatFixture()
	ctx := context.Background()

	_, err := uc.StartConversation(ctx, alice, "bob")
	require.NoError(t, err)

	message, err := uc.SendMessage(ctx, alice, "alice_bob", "  hi  ")
	require.NoError(t, err)

	assert.Equal(t, "hi", message.Text, "text is trimmed before writing")
	assert.Equal(t, "alice", message.SenderID)
	assert.Equal(t, "Alice", message.SenderName, "sender name is a send-time snapshot")

	conversation := conversationRepo.conversations["alice_bob"]
	assert.Equal(t, "hi", conversation.LastMessage)
	assert.Equal(t, "alice", conversation.LastMessageSenderID)
	assert.False(t, conversation.LastMessageTime.IsZero())
}

func TestSendMessageRequiresParticipant(t *testing.T) {
	uc, conversationRepo, _ := newChatFixture()
	ctx := context.Background()

	_, err := uc.StartConversation(ctx, alice, "bob")
	require.NoError(t, err)

	mallory := Principal{UID: "mallory", DisplayName: "Mallory"}
	_, err = uc.SendMessage(ctx, mallory, "alice_bob", "hi")
	require.Error(t, err)
	assert.True(t, errors.Is(err, "FORBIDDEN"))
	assert.Equal(t, 0, conversationRepo.messageCalls)
}

func TestMessagesKeepSendOrder(t *testing.T) {
	uc, _, _ := newChatFixture()
	ctx := context.Background()

	_, err := uc.StartConversation(ctx, alice, "bob")
	require.NoError(t, err)

	_, err = uc.SendMessage(ctx, alice, "alice_bob", "first")
	require.NoError(t, err)
	_, err = uc.SendMessage(ctx, bob, "alice_bob", "second")
	require.NoError(t, err)

	messages, err := uc.GetMessages(ctx, alice.UID, "alice_bob")
	require.NoError(t, err)
	require.Len(t, messages, 2)
	assert.Equal(t, "first", messages[0].Text)
	assert.Equal(t, "second", messages[1].Text)
	assert.False(t, messages[0].TimestampPending())
}

func TestSubscribeToMessagesRequiresParticipant(t *testing.T) {
	uc, _, subscriber := newChatFixture()
	ctx := context.Background()

	_, err := uc.StartConversation(ctx, alice, "bob")
	require.NoError(t, err)

	_, err = uc.SubscribeToMessages(ctx, "mallory", "alice_bob", func([]*entity.Message) {})
	require.Error(t, err)
	assert.True(t, errors.Is(err, "FORBIDDEN"))
	assert.Equal(t, 0, subscriber.messageSubs)

	unsubscribe, err := uc.SubscribeToMessages(ctx, alice.UID, "alice_bob", func([]*entity.Message) {})
	require.NoError(t, err)
	assert.Equal(t, 1, subscriber.messageSubs)

	unsubscribe()
	assert.Equal(t, 1, subscriber.releases)
}

func TestSubscribeToConversations(t *testing.T) {
	uc, _, subscriber := newChatFixture()

	unsubscribe, err := uc.SubscribeToConversations(context.Background(), alice.UID, func([]*entity.Conversation) {})
	require.NoError(t, err)
	assert.Equal(t, 1, subscriber.conversationSubs)

	unsubscribe()
	assert.Equal(t, 1, subscriber.releases)
}
