package entity

import "time"

// CreditEntry is one row of the append-only credits ledger. The ledger
// tracks value exchanged between users; it is not a payment system.
type CreditEntry struct {
	ID            string    `json:"id" firestore:"id"`
	UserID        string    `json:"user_id" firestore:"userId"`
	TransactionID string    `json:"transaction_id" firestore:"transactionId"`
	Amount        float64   `json:"amount" firestore:"amount"` // signed
	Reason        string    `json:"reason" firestore:"reason"`
	CreatedAt     time.Time `json:"created_at" firestore:"createdAt"`
}
