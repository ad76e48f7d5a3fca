package entity

import "time"

type Message struct {
	ID         string    `json:"id" firestore:"-"`
	Text       string    `json:"text" firestore:"text"`
	SenderID   string    `json:"sender_id" firestore:"senderId"`
	SenderName string    `json:"sender_name" firestore:"senderName"`
	Timestamp  time.Time `json:"timestamp" firestore:"timestamp,serverTimestamp"`
}

// TimestampPending reports whether the server-assigned timestamp has not been
// resolved yet. A zero Timestamp is written as the server time on commit, so a
// zero value on a read-back means the write is still in flight.
func (m *Message) TimestampPending() bool {
	return m.Timestamp.IsZero()
}
