package entity

import "time"

// Chat is the single messaging channel bound to one transaction. Its
// document ID is derived from the transaction ID, which is what makes
// lookup-or-create idempotent under concurrent first access.
type Chat struct {
	ID            string   `json:"id" firestore:"id"`
	TransactionID string   `json:"transaction_id" firestore:"transactionId"`
	Participants  []string `json:"participants" firestore:"participants"`

	LastMessage   string    `json:"last_message,omitempty" firestore:"lastMessage,omitempty"`
	LastMessageAt time.Time `json:"last_message_at" firestore:"lastMessageAt"`

	// MessageSeq is the per-room monotone counter; the next appended
	// message gets MessageSeq+1.
	MessageSeq int64 `json:"message_seq" firestore:"messageSeq"`

	// UnreadCount and LastReadSeq are maintained transactionally at
	// append / mark-read time, keyed by user ID.
	UnreadCount map[string]int   `json:"unread_count" firestore:"unreadCount"`
	LastReadSeq map[string]int64 `json:"last_read_seq" firestore:"lastReadSeq"`

	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updated_at" firestore:"updatedAt"`
}
