package entity

import (
	"time"
)

const (
	TransactionStatusPending   = "pending"
	TransactionStatusAccepted  = "accepted"
	TransactionStatusRejected  = "rejected"
	TransactionStatusCompleted = "completed"
)

// Transaction is a proposed or agreed exchange between two users over one
// item. It is never deleted; only status transitions mutate it.
type Transaction struct {
	ID          string `json:"id" firestore:"id"`
	ItemID      string `json:"item_id" firestore:"itemId"`
	RequesterID string `json:"requester_id" firestore:"requesterId"`
	OwnerID     string `json:"owner_id" firestore:"ownerId"`
	Status      string `json:"status" firestore:"status"` // "pending", "accepted", "rejected", "completed"

	OfferedItemID  string  `json:"offered_item_id,omitempty" firestore:"offeredItemId,omitempty"`
	OfferedCredits float64 `json:"offered_credits,omitempty" firestore:"offeredCredits,omitempty"`

	// FinalPrice is the agreed credit value, fixed when the owner accepts.
	FinalPrice *float64 `json:"final_price,omitempty" firestore:"finalPrice,omitempty"`

	Notes string `json:"notes,omitempty" firestore:"notes,omitempty"`

	RequesterReviewed bool `json:"requester_reviewed" firestore:"requesterReviewed"`
	OwnerReviewed     bool `json:"owner_reviewed" firestore:"ownerReviewed"`

	CreatedAt   time.Time  `json:"created_at" firestore:"createdAt"`
	UpdatedAt   time.Time  `json:"updated_at" firestore:"updatedAt"`
	CompletedAt *time.Time `json:"completed_at,omitempty" firestore:"completedAt,omitempty"`
}

// Participant reports whether userID is one of the two sides of the exchange.
func (t *Transaction) Participant(userID string) bool {
	return userID == t.RequesterID || userID == t.OwnerID
}

// Counterparty returns the other side of the exchange for userID.
func (t *Transaction) Counterparty(userID string) string {
	if userID == t.RequesterID {
		return t.OwnerID
	}
	return t.RequesterID
}

type TransactionLog struct {
	ID            string    `json:"id" firestore:"id"`
	TransactionID string    `json:"transaction_id" firestore:"transactionId"`
	Status        string    `json:"status" firestore:"status"`
	Notes         string    `json:"notes,omitempty" firestore:"notes,omitempty"`
	CreatedBy     string    `json:"created_by" firestore:"createdBy"`
	CreatedAt     time.Time `json:"created_at" firestore:"createdAt"`
}
