package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestConversationIDIsOrderIndependent(t *testing.T) {
	assert.Equal(t, ConversationID("alice", "bob"), ConversationID("bob", "alice"))
	assert.Equal(t, "alice_bob", ConversationID("bob", "alice"))
}

func TestConversationIDIsStable(t *testing.T) {
	first := ConversationID("uid-9f2", "uid-03a")
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, ConversationID("uid-9f2", "uid-03a"))
		assert.Equal(t, first, ConversationID("uid-03a", "uid-9f2"))
	}
}

func TestConversationIDSortsLexicographically(t *testing.T) {
	// Ids sharing a prefix still sort deterministically.
	assert.Equal(t, "abc_abcd", ConversationID("abcd", "abc"))
	assert.Equal(t, "a_a", ConversationID("a", "a"))
}

func TestHasParticipant(t *testing.T) {
	conversation := &Conversation{Participants: []string{"alice", "bob"}}

	assert.True(t, conversation.HasParticipant("alice"))
	assert.True(t, conversation.HasParticipant("bob"))
	assert.False(t, conversation.HasParticipant("mallory"))
}

func TestOtherParticipant(t *testing.T) {
	conversation := &Conversation{Participants: []string{"alice", "bob"}}

	assert.Equal(t, "bob", conversation.OtherParticipant("alice"))
	assert.Equal(t, "alice", conversation.OtherParticipant("bob"))
}

func TestMessageTimestampPending(t *testing.T) {
	message := &Message{Text: "hi"}
	assert.True(t, message.TimestampPending())

	message.Timestamp = time.Now()
	assert.False(t, message.TimestampPending())
}
