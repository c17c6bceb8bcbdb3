package ports

import (
	"context"

	"github.com/teachreach/marketplace/internal/core/domain"
)

// UserRepository defines persistence for marketplace accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// FindFirstAdmin returns the oldest admin account.
	FindFirstAdmin(ctx context.Context) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, id string) error
}

// TokenRevoker records identities whose outstanding tokens must stop working.
type TokenRevoker interface {
	Revoke(ctx context.Context, userID string) error
	IsRevoked(ctx context.Context, userID string) (bool, error)
}
