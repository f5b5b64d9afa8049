package entity

import (
	"time"
)

// Review adalah ulasan reputasi yang diberikan setelah pertukaran selesai
type Review struct {
	ID            string    `json:"id" firestore:"id"`
	TransactionID string    `json:"transaction_id" firestore:"transactionId"`
	ReviewerID    string    `json:"reviewer_id" firestore:"reviewerId"`
	TargetID      string    `json:"target_id" firestore:"targetId"`
	Rating        int       `json:"rating" firestore:"rating"` // 1-5
	Content       string    `json:"content" firestore:"content"`
	CreatedAt     time.Time `json:"created_at" firestore:"createdAt"`
}
