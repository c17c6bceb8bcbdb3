package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/teachreach/marketplace/internal/api/metrics"
	"github.com/teachreach/marketplace/internal/core/domain"
	"github.com/teachreach/marketplace/internal/core/ports"
)

// UserService manages accounts: admin listing/deletion and self-service
// profile edits. Deleting an account removes its reviews and revokes its
// outstanding tokens; orders are kept.
type UserService struct {
	users      ports.UserRepository
	reviews    ports.ReviewRepository
	revoker    ports.TokenRevoker
	adminEmail string
	logger     zerolog.Logger
}

func NewUserService(users ports.UserRepository, reviews ports.ReviewRepository, revoker ports.TokenRevoker, adminEmail string, logger zerolog.Logger) *UserService {
	return &UserService{
		users:      users,
		reviews:    reviews,
		revoker:    revoker,
		adminEmail: normalizeEmail(adminEmail),
		logger:     logger,
	}
}

func (s *UserService) List(ctx context.Context) ([]*domain.User, error) {
	return s.users.List(ctx)
}

func (s *UserService) Delete(ctx context.Context, id string) error {
	return s.remove(ctx, id, "admin")
}

func (s *UserService) DeleteSelf(ctx context.Context, caller ports.Caller) error {
	if caller.Role == domain.RoleAdmin {
		return domain.ErrAdminUndeletable
	}
	return s.remove(ctx, caller.ID, "self")
}

func (s *UserService) remove(ctx context.Context, id, actor string) error {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if user.IsAdmin() {
		return domain.ErrAdminUndeletable
	}

	if err := s.users.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete user %s: %w", id, err)
	}

	removed, err := s.reviews.DeleteByUser(ctx, id)
	if err != nil {
		s.logger.Warn().Err(err).Str("user_id", id).Msg("failed to cascade review deletion")
	}

	// A deleted account keeps valid-looking tokens until they expire; the
	// middleware consults the revocation list.
	if err := s.revoker.Revoke(ctx, id); err != nil {
		s.logger.Warn().Err(err).Str("user_id", id).Msg("failed to revoke tokens")
	}

	metrics.AccountsDeletedTotal.WithLabelValues(actor).Inc()
	s.logger.Info().Str("user_id", id).Str("actor", actor).Int64("reviews_removed", removed).Msg("account deleted")
	return nil
}

func (s *UserService) UpdateProfile(ctx context.Context, caller ports.Caller, upd domain.ProfileUpdate) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, caller.ID)
	if err != nil {
		return nil, err
	}

	if name := strings.TrimSpace(upd.Name); name != "" {
		user.Name = name
	}
	if upd.Phone != "" {
		user.Phone = upd.Phone
	}
	if email := normalizeEmail(upd.Email); email != "" && email != user.Email {
		if !validEmail(email) {
			return nil, domain.ErrInvalidInput
		}
		existing, err := s.users.FindByEmail(ctx, email)
		switch {
		case err == nil && existing.ID != user.ID:
			return nil, domain.ErrUserExists
		case err != nil && !errors.Is(err, domain.ErrUserNotFound):
			return nil, err
		}
		user.Email = email
	}
	user.UpdatedAt = time.Now().UTC()

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	s.logger.Info().Str("user_id", user.ID).Msg("profile updated")
	return user, nil
}

// SupportRecipient returns the administrator who receives client messages:
// the designated admin email when registered, otherwise the oldest admin.
func (s *UserService) SupportRecipient(ctx context.Context) (*domain.User, error) {
	if s.adminEmail != "" {
		user, err := s.users.FindByEmail(ctx, s.adminEmail)
		if err == nil && user.IsAdmin() {
			return user, nil
		}
		if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
			return nil, err
		}
	}
	return s.users.FindFirstAdmin(ctx)
}
