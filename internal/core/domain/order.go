package domain

import (
	"errors"
	"time"
)

// OrderStatus represents the lifecycle state of an order.
type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderActive    OrderStatus = "active"
	OrderCompleted OrderStatus = "completed"
	OrderCancelled OrderStatus = "cancelled"
)

var (
	ErrOrderNotFound = errors.New("order not found")
	ErrEmptyOrder    = errors.New("no order items")
	ErrInvalidStatus = errors.New("invalid order status")
)

// Valid reports whether s is one of the known statuses.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderPending, OrderActive, OrderCompleted, OrderCancelled:
		return true
	}
	return false
}

// OrderItem is a single purchased service line.
type OrderItem struct {
	Title     string  `json:"title" bson:"title"`
	Qty       int     `json:"qty" bson:"qty"`
	Image     string  `json:"image" bson:"image"`
	Price     float64 `json:"price" bson:"price"`
	ServiceID string  `json:"service" bson:"service"`
}

// OrderOwner is the populated view of the user who placed an order.
type OrderOwner struct {
	ID   string `json:"id" bson:"id"`
	Name string `json:"name" bson:"name"`
}

// Order is the aggregate root for a purchase.
type Order struct {
	ID           string      `json:"id" bson:"_id"`
	User         OrderOwner  `json:"user" bson:"user"`
	Items        []OrderItem `json:"orderItems" bson:"order_items"`
	TotalPrice   float64     `json:"totalPrice" bson:"total_price"`
	Status       OrderStatus `json:"status" bson:"status"`
	IsPaid       bool        `json:"isPaid" bson:"is_paid"`
	PaidAt       *time.Time  `json:"paidAt,omitempty" bson:"paid_at,omitempty"`
	Deliverables string      `json:"deliverables,omitempty" bson:"deliverables,omitempty"`
	CreatedAt    time.Time   `json:"createdAt" bson:"created_at"`
	UpdatedAt    time.Time   `json:"updatedAt" bson:"updated_at"`
}

// ApplyStatus moves the order to next. Completing an order marks it paid.
func (o *Order) ApplyStatus(next OrderStatus, deliverables string, now time.Time) error {
	if !next.Valid() {
		return ErrInvalidStatus
	}
	o.Status = next
	if deliverables != "" {
		o.Deliverables = deliverables
	}
	if next == OrderCompleted {
		o.IsPaid = true
		paidAt := now
		o.PaidAt = &paidAt
	}
	o.UpdatedAt = now
	return nil
}
