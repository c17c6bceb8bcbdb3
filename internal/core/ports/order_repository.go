package ports

import (
	"context"

	"github.com/teachreach/marketplace/internal/core/domain"
)

// OrderRepository defines persistence operations for orders.
type OrderRepository interface {
	Create(ctx context.Context, o *domain.Order) error
	FindByID(ctx context.Context, id string) (*domain.Order, error)
	// ListByUser returns the orders of one user; an empty userID lists every order.
	ListByUser(ctx context.Context, userID string) ([]*domain.Order, error)
	Update(ctx context.Context, o *domain.Order) error
}

// ReviewRepository defines persistence operations for site reviews.
type ReviewRepository interface {
	Create(ctx context.Context, r *domain.Review) error
	List(ctx context.Context) ([]*domain.Review, error)
	Delete(ctx context.Context, id string) error
	DeleteByUser(ctx context.Context, userID string) (int64, error)
}
