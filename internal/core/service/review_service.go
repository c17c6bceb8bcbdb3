package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/teachreach/marketplace/internal/api/metrics"
	"github.com/teachreach/marketplace/internal/core/domain"
	"github.com/teachreach/marketplace/internal/core/ports"
)

type ReviewService struct {
	repo   ports.ReviewRepository
	logger zerolog.Logger
}

func NewReviewService(repo ports.ReviewRepository, logger zerolog.Logger) *ReviewService {
	return &ReviewService{repo: repo, logger: logger}
}

// Create stores a review. The author name is always taken from the caller.
func (s *ReviewService) Create(ctx context.Context, in ports.CreateReviewInput) (*domain.Review, error) {
	if in.Caller.ID == "" {
		return nil, domain.ErrForbidden
	}
	if in.Rating < 1 || in.Rating > 5 || strings.TrimSpace(in.Comment) == "" {
		return nil, domain.ErrInvalidInput
	}

	review := &domain.Review{
		ID:        primitive.NewObjectID().Hex(),
		UserID:    in.Caller.ID,
		Name:      in.Caller.Name,
		Rating:    in.Rating,
		Comment:   strings.TrimSpace(in.Comment),
		ServiceID: in.ServiceID,
		OrderID:   in.OrderID,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, review); err != nil {
		return nil, err
	}

	metrics.ReviewsCreatedTotal.Inc()
	s.logger.Info().Str("review_id", review.ID).Str("user_id", in.Caller.ID).Int("rating", in.Rating).Msg("review created")
	return review, nil
}

func (s *ReviewService) List(ctx context.Context) ([]*domain.Review, error) {
	return s.repo.List(ctx)
}

func (s *ReviewService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("review_id", id).Msg("review removed")
	return nil
}
