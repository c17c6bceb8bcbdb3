package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/teachreach/marketplace/internal/api/metrics"
	"github.com/teachreach/marketplace/internal/core/domain"
	"github.com/teachreach/marketplace/internal/core/ports"
)

type OrderService struct {
	repo   ports.OrderRepository
	logger zerolog.Logger
	now    func() time.Time
}

func NewOrderService(repo ports.OrderRepository, logger zerolog.Logger) *OrderService {
	return &OrderService{repo: repo, logger: logger, now: func() time.Time { return time.Now().UTC() }}
}

// Create places a checkout order for the caller. Checkout orders start active.
func (s *OrderService) Create(ctx context.Context, in ports.CreateOrderInput) (*domain.Order, error) {
	if len(in.Items) == 0 {
		return nil, domain.ErrEmptyOrder
	}
	if in.Caller.ID == "" {
		return nil, domain.ErrForbidden
	}

	now := s.now()
	order := &domain.Order{
		ID:         primitive.NewObjectID().Hex(),
		User:       domain.OrderOwner{ID: in.Caller.ID, Name: in.Caller.Name},
		Items:      in.Items,
		TotalPrice: in.TotalPrice,
		Status:     domain.OrderActive,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.repo.Create(ctx, order); err != nil {
		s.logger.Error().Err(err).Str("user_id", in.Caller.ID).Msg("failed to create order")
		return nil, err
	}

	metrics.OrdersCreatedTotal.Inc()
	s.logger.Info().Str("order_id", order.ID).Str("user_id", in.Caller.ID).Float64("total", order.TotalPrice).Msg("order created")
	return order, nil
}

func (s *OrderService) ListMine(ctx context.Context, caller ports.Caller) ([]*domain.Order, error) {
	if caller.ID == "" {
		return nil, domain.ErrForbidden
	}
	return s.repo.ListByUser(ctx, caller.ID)
}

func (s *OrderService) ListAll(ctx context.Context) ([]*domain.Order, error) {
	return s.repo.ListByUser(ctx, "")
}

// UpdateStatus applies an admin status change. Completing an order marks it paid.
func (s *OrderService) UpdateStatus(ctx context.Context, in ports.UpdateOrderStatusInput) (*domain.Order, error) {
	next := domain.OrderStatus(strings.ToLower(strings.TrimSpace(in.Status)))
	if !next.Valid() {
		return nil, fmt.Errorf("update order %s: %w", in.OrderID, domain.ErrInvalidStatus)
	}

	order, err := s.repo.FindByID(ctx, in.OrderID)
	if err != nil {
		return nil, err
	}

	if err := order.ApplyStatus(next, in.Deliverables, s.now()); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, order); err != nil {
		return nil, fmt.Errorf("update order %s: %w", in.OrderID, err)
	}

	metrics.OrderStatusUpdatesTotal.WithLabelValues(string(next)).Inc()
	s.logger.Info().Str("order_id", order.ID).Str("status", string(next)).Msg("order status updated")
	return order, nil
}
