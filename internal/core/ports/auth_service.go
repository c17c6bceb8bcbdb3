package ports

import (
	"context"

	"github.com/teachreach/marketplace/internal/core/domain"
)

// RegisterInput carries the fields accepted by POST /auth/register.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Phone    string
	Role     string
}

type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (string, *domain.User, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
}
