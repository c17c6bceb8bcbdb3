package ports

import (
	"context"

	"github.com/teachreach/marketplace/internal/core/domain"
)

// Caller identifies the authenticated user behind a request.
type Caller struct {
	ID    string
	Name  string
	Email string
	Role  string
}

// CreateOrderInput carries a checkout request.
type CreateOrderInput struct {
	Caller     Caller
	Items      []domain.OrderItem
	TotalPrice float64
}

// UpdateOrderStatusInput carries an admin status change.
type UpdateOrderStatusInput struct {
	OrderID      string
	Status       string
	Deliverables string
}

// OrderService defines use-case operations for orders.
type OrderService interface {
	Create(ctx context.Context, in CreateOrderInput) (*domain.Order, error)
	ListMine(ctx context.Context, caller Caller) ([]*domain.Order, error)
	ListAll(ctx context.Context) ([]*domain.Order, error)
	UpdateStatus(ctx context.Context, in UpdateOrderStatusInput) (*domain.Order, error)
}

// CreateReviewInput carries a new site review.
type CreateReviewInput struct {
	Caller    Caller
	Rating    int
	Comment   string
	ServiceID string
	OrderID   string
}

// ReviewService defines use-case operations for reviews.
type ReviewService interface {
	Create(ctx context.Context, in CreateReviewInput) (*domain.Review, error)
	List(ctx context.Context) ([]*domain.Review, error)
	Delete(ctx context.Context, id string) error
}

// UserService defines account management operations.
type UserService interface {
	List(ctx context.Context) ([]*domain.User, error)
	// Delete removes another account on behalf of an admin.
	Delete(ctx context.Context, id string) error
	UpdateProfile(ctx context.Context, caller Caller, upd domain.ProfileUpdate) (*domain.User, error)
	DeleteSelf(ctx context.Context, caller Caller) error
	SupportRecipient(ctx context.Context) (*domain.User, error)
}
