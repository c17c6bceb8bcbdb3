package orchestrator

import (
	"context"
	"fmt"
	"strings"

	"github.com/teachreach/marketplace/internal/client/gateway"
	"github.com/teachreach/marketplace/internal/client/model"
)

// PlaceOrder checks out one service. The order is added to the mirror only
// once the server has accepted it.
func (o *Orchestrator) PlaceOrder(ctx context.Context, serviceID string) (model.Order, error) {
	svc, ok := o.state.Service(serviceID)
	if !ok {
		return model.Order{}, o.invalid("unknown service %q", serviceID)
	}

	var placed model.Order
	err := o.write(ctx, func(ctx context.Context, cur model.Identity) error {
		rc, err := o.remote.CreateOrder(ctx, gateway.CheckoutRequest{
			OrderItems: []gateway.OrderLine{{Title: svc.Title, Qty: 1, Image: svc.Image, Price: svc.Price, Service: svc.ID}},
			TotalPrice: svc.Price,
		})
		if err != nil {
			return err
		}

		placed = model.Order{
			ID:          rc.ID,
			ServiceRef:  svc.ID,
			Title:       svc.Title,
			Image:       svc.Image,
			Price:       svc.Price,
			Status:      model.OrderActive,
			CreatedDate: o.now(),
			OwnerName:   cur.Name,
		}
		if err := o.state.PrependOrder(ctx, placed); err != nil {
			return err
		}
		o.log.Info().Str("order_id", placed.ID).Str("user_id", cur.ID).Float64("price", placed.Price).Msg("order placed")
		return nil
	})
	return placed, err
}

// RefreshOrders replaces the orders mirror: every order for admins, the
// caller's own otherwise.
func (o *Orchestrator) RefreshOrders(ctx context.Context) error {
	cur, err := o.current()
	if err != nil {
		return err
	}
	fetch := o.remote.MyOrders
	if cur.IsAdmin() {
		fetch = o.remote.AllOrders
	}
	orders, err := fetch(ctx)
	if err != nil {
		return err
	}
	return o.state.ReplaceOrders(ctx, orders)
}

func (o *Orchestrator) UpdateOrderStatus(ctx context.Context, orderID string, status model.OrderStatus, deliverables string) (model.Order, error) {
	if _, err := o.currentAdmin(); err != nil {
		return model.Order{}, err
	}
	if !status.Valid() {
		return model.Order{}, o.invalid("unknown order status %q", status)
	}

	updated, err := o.remote.UpdateOrderStatus(ctx, orderID, status, strings.TrimSpace(deliverables))
	if err != nil {
		return model.Order{}, err
	}
	if err := o.state.UpdateOrder(ctx, updated); err != nil {
		return model.Order{}, err
	}
	return updated, nil
}

// AddReview shows the review immediately as a pending entry, then replaces
// it with the server's copy or removes it when the server refuses.
func (o *Orchestrator) AddReview(ctx context.Context, rating int, comment string) (model.Review, error) {
	comment = strings.TrimSpace(comment)
	if err := o.validate.Var(rating, "gte=1,lte=5"); err != nil {
		return model.Review{}, o.invalid("rating must be between 1 and 5")
	}
	if comment == "" {
		return model.Review{}, o.invalid("comment is required")
	}

	var confirmed model.Review
	err := o.write(ctx, func(ctx context.Context, cur model.Identity) error {
		tmp := o.state.AddPending(model.Review{
			AuthorID:     cur.ID,
			AuthorName:   cur.Name,
			AuthorAvatar: cur.Avatar,
			Rating:       rating,
			Comment:      comment,
			CreatedDate:  o.now(),
		})

		rv, err := o.remote.CreateReview(ctx, rating, comment)
		if err != nil {
			o.state.RollbackPending(tmp)
			return err
		}
		if rv.AuthorID == "" {
			rv.AuthorID = cur.ID
		}
		if rv.AuthorAvatar == "" {
			rv.AuthorAvatar = cur.Avatar
		}
		if rv.CreatedDate.IsZero() {
			rv.CreatedDate = o.now()
		}
		if err := o.state.ConfirmPending(ctx, tmp, rv); err != nil {
			return err
		}
		confirmed = rv
		return nil
	})
	return confirmed, err
}

func (o *Orchestrator) DeleteReview(ctx context.Context, id string) error {
	if _, err := o.currentAdmin(); err != nil {
		return err
	}
	if err := o.remote.DeleteReview(ctx, id); err != nil {
		return err
	}
	return o.state.RemoveReview(ctx, id)
}

func (o *Orchestrator) RefreshReviews(ctx context.Context) error {
	reviews, err := o.remote.Reviews(ctx)
	if err != nil {
		return fmt.Errorf("refresh reviews: %w", err)
	}
	return o.state.ReplaceReviews(ctx, reviews)
}
