package entity

import (
	"time"
)

type User struct {
	ID       string `json:"id" firestore:"id"`
	Email    string `json:"email" firestore:"email"`
	Username string `json:"username" firestore:"username"`
	Bio      string `json:"bio,omitempty" firestore:"bio,omitempty"`
	City     string `json:"city,omitempty" firestore:"city,omitempty"`

	AvatarURL string `json:"avatar_url,omitempty" firestore:"avatarUrl,omitempty"`

	SwapRating      float64 `json:"swap_rating,omitempty" firestore:"swapRating,omitempty"`
	SwapReviewCount int     `json:"swap_review_count,omitempty" firestore:"swapReviewCount,omitempty"`

	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updated_at" firestore:"updatedAt"`
}
