package domain

import "time"

const (
	MinRating = 1
	MaxRating = 5
)

// Testimonial is only publicly visible once Approved is set by an admin.
type Testimonial struct {
	ID        string    `json:"id" bson:"_id"`
	UserID    string    `json:"userId" bson:"userId"`
	Content   string    `json:"content" bson:"content"`
	Rating    int       `json:"rating" bson:"rating"`
	Approved  bool      `json:"approved" bson:"approved"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}
