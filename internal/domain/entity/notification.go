package entity

import "time"

// Notification is derived from an unread message plus read state. It is
// never persisted; the aggregator rebuilds the feed on every refresh.
type Notification struct {
	MessageID     string    `json:"message_id"`
	ChatID        string    `json:"chat_id"`
	TransactionID string    `json:"transaction_id"`
	SenderID      string    `json:"sender_id"`
	SenderName    string    `json:"sender_name,omitempty"`
	Content       string    `json:"content"`
	Seq           int64     `json:"seq"`
	CreatedAt     time.Time `json:"created_at"`
	Read          bool      `json:"read"`
}
