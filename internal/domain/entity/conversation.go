package entity

import "time"

// ConversationID derives the canonical document id for a two-user
// conversation. The pair is sorted lexicographically before joining, so both
// orderings of the same pair map to the same conversation.
func ConversationID(userA, userB string) string {
	if userB < userA {
		userA, userB = userB, userA
	}
	return userA + "_" + userB
}

type Conversation struct {
	ID                  string            `json:"id" firestore:"-"`
	Participants        []string          `json:"participants" firestore:"participants"`
	ParticipantNames    map[string]string `json:"participant_names" firestore:"participantNames"`
	LastMessage         string            `json:"last_message,omitempty" firestore:"lastMessage"`
	LastMessageTime     time.Time         `json:"last_message_time" firestore:"lastMessageTime,serverTimestamp"`
	LastMessageSenderID string            `json:"last_message_sender_id,omitempty" firestore:"lastMessageSenderId,omitempty"`
	CreatedAt           time.Time         `json:"created_at" firestore:"createdAt,serverTimestamp"`
}

// HasParticipant reports whether userID is one of the two conversation members.
func (c *Conversation) HasParticipant(userID string) bool {
	for _, p := range c.Participants {
		if p == userID {
			return true
		}
	}
	return false
}

// OtherParticipant returns the member that is not userID. Empty when userID
// is not a participant.
func (c *Conversation) OtherParticipant(userID string) string {
	for _, p := range c.Participants {
		if p != userID {
			return p
		}
	}
	return ""
}
