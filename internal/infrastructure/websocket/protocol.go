package websocket

import (
	"encoding/json"
	"time"

	"github.com/takitajwar17/my-chat-app/internal/domain/entity"
)

// Frame types sent by clients.
const (
	FrameTypeSubscribeConversations = "subscribe_conversations"
	FrameTypeSubscribeMessages      = "subscribe_messages"
	FrameTypeUnsubscribeMessages    = "unsubscribe_messages"
	FrameTypePing                   = "ping"
)

// Frame types sent by the server.
const (
	FrameTypeConversations = "conversations"
	FrameTypeMessages      = "messages"
	FrameTypeError         = "error"
	FrameTypePong          = "pong"
)

// ClientFrame is a control message from a connected client.
type ClientFrame struct {
	Type           string `json:"type"`
	ConversationID string `json:"conversation_id,omitempty"`
}

// ServerFrame carries a snapshot or an error to a connected client. Snapshot
// frames replace any previously delivered state of the same type.
type ServerFrame struct {
	Type           string                 `json:"type"`
	ConversationID string                 `json:"conversation_id,omitempty"`
	Conversations  []*entity.Conversation `json:"conversations,omitempty"`
	Messages       []*entity.Message      `json:"messages,omitempty"`
	Error          string                 `json:"error,omitempty"`
	Timestamp      string                 `json:"timestamp"`
}

// Encode marshals a server frame, stamping the send time.
func (f ServerFrame) Encode() ([]byte, error) {
	f.Timestamp = time.Now().UTC().Format(time.RFC3339)
	return json.Marshal(f)
}
