package entity

import "time"

// Message is append-only and immutable once created. Seq is assigned by
// the store inside the same transaction that bumps the room counter, so
// messages within a room are totally ordered (CreatedAt with Seq as the
// tie-break).
type Message struct {
	ID       string `json:"id" firestore:"id"`
	ChatID   string `json:"chat_id" firestore:"chatId"`
	SenderID string `json:"sender_id" firestore:"senderId"`
	Content  string `json:"content" firestore:"content"`
	Seq      int64  `json:"seq" firestore:"seq"`

	ReadBy []string `json:"read_by" firestore:"readBy"`

	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
}
