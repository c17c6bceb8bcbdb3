package domain

import (
	"errors"
	"time"
)

var ErrReviewNotFound = errors.New("review not found")

// Review is a site review left by an authenticated user.
type Review struct {
	ID        string    `json:"id" bson:"_id"`
	UserID    string    `json:"user" bson:"user"`
	Name      string    `json:"name" bson:"name"`
	Rating    int       `json:"rating" bson:"rating"`
	Comment   string    `json:"comment" bson:"comment"`
	ServiceID string    `json:"serviceId,omitempty" bson:"service_id,omitempty"`
	OrderID   string    `json:"orderId,omitempty" bson:"order_id,omitempty"`
	CreatedAt time.Time `json:"createdAt" bson:"created_at"`
}
