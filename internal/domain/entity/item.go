package entity

import (
	"time"
)

const (
	ItemStatusAvailable = "available"
	ItemStatusReserved  = "reserved"
	ItemStatusSwapped   = "swapped"
	ItemStatusArchived  = "archived"
)

type Item struct {
	ID          string   `json:"id" firestore:"id"`
	OwnerID     string   `json:"owner_id" firestore:"ownerId"`
	Title       string   `json:"title" firestore:"title"`
	Description string   `json:"description" firestore:"description"`
	Category    string   `json:"category" firestore:"category"`
	Condition   string   `json:"condition" firestore:"condition"` // "new", "like_new", "used", "worn"
	Value       float64  `json:"value" firestore:"value"`         // estimated value in credits
	ImageURLs   []string `json:"image_urls,omitempty" firestore:"imageUrls,omitempty"`

	City      string  `json:"city,omitempty" firestore:"city,omitempty"`
	Latitude  float64 `json:"latitude,omitempty" firestore:"latitude,omitempty"`
	Longitude float64 `json:"longitude,omitempty" firestore:"longitude,omitempty"`

	Status string `json:"status" firestore:"status"` // "available", "reserved", "swapped", "archived"

	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updated_at" firestore:"updatedAt"`
}
