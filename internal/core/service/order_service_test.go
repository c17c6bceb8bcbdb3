package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/teachreach/marketplace/internal/core/domain"
	"github.com/teachreach/marketplace/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stub repository
// ---------------------------------------------------------------------------

type stubOrderRepo struct {
	byID      map[string]*domain.Order
	order     []string
	createErr error
}

func newStubOrderRepo() *stubOrderRepo {
	return &stubOrderRepo{byID: make(map[string]*domain.Order)}
}

func (r *stubOrderRepo) Create(_ context.Context, o *domain.Order) error {
	if r.createErr != nil {
		return r.createErr
	}
	clone := *o
	r.byID[o.ID] = &clone
	r.order = append(r.order, o.ID)
	return nil
}

func (r *stubOrderRepo) FindByID(_ context.Context, id string) (*domain.Order, error) {
	o, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	clone := *o
	return &clone, nil
}

func (r *stubOrderRepo) ListByUser(_ context.Context, userID string) ([]*domain.Order, error) {
	var out []*domain.Order
	for _, id := range r.order {
		o := r.byID[id]
		if userID != "" && o.User.ID != userID {
			continue
		}
		clone := *o
		out = append(out, &clone)
	}
	return out, nil
}

func (r *stubOrderRepo) Update(_ context.Context, o *domain.Order) error {
	if _, ok := r.byID[o.ID]; !ok {
		return domain.ErrOrderNotFound
	}
	clone := *o
	r.byID[o.ID] = &clone
	return nil
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

var discardLogger = zerolog.Nop()

func checkoutInput(userID string) ports.CreateOrderInput {
	return ports.CreateOrderInput{
		Caller: ports.Caller{ID: userID, Name: "Pedro", Role: domain.RoleClient},
		Items: []domain.OrderItem{
			{Title: "Logo design", Qty: 1, Image: "img", Price: 50, ServiceID: "svc1"},
		},
		TotalPrice: 50,
	}
}

// ---------------------------------------------------------------------------
// Create
// ---------------------------------------------------------------------------

func TestOrderService_Create_Success(t *testing.T) {
	repo := newStubOrderRepo()
	svc := NewOrderService(repo, discardLogger)

	order, err := svc.Create(context.Background(), checkoutInput("u1"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if order.ID == "" {
		t.Error("expected generated id")
	}
	if order.Status != domain.OrderActive {
		t.Errorf("expected status %q, got %q", domain.OrderActive, order.Status)
	}
	if order.User.ID != "u1" || order.User.Name != "Pedro" {
		t.Errorf("unexpected owner: %+v", order.User)
	}
	if _, ok := repo.byID[order.ID]; !ok {
		t.Error("order not persisted")
	}
}

func TestOrderService_Create_EmptyItems(t *testing.T) {
	repo := newStubOrderRepo()
	svc := NewOrderService(repo, discardLogger)

	in := checkoutInput("u1")
	in.Items = nil
	if _, err := svc.Create(context.Background(), in); !errors.Is(err, domain.ErrEmptyOrder) {
		t.Fatalf("expected ErrEmptyOrder, got %v", err)
	}
	if len(repo.byID) != 0 {
		t.Fatal("nothing should be stored for an empty order")
	}
}

func TestOrderService_Create_RepoError(t *testing.T) {
	repo := newStubOrderRepo()
	repo.createErr = errors.New("db unavailable")
	svc := NewOrderService(repo, discardLogger)

	if _, err := svc.Create(context.Background(), checkoutInput("u1")); err == nil {
		t.Fatal("expected error when repo fails, got nil")
	}
}

// ---------------------------------------------------------------------------
// Listing
// ---------------------------------------------------------------------------

func TestOrderService_ListMine_OnlyOwnOrders(t *testing.T) {
	repo := newStubOrderRepo()
	svc := NewOrderService(repo, discardLogger)
	_, _ = svc.Create(context.Background(), checkoutInput("u1"))
	_, _ = svc.Create(context.Background(), checkoutInput("u2"))

	mine, err := svc.ListMine(context.Background(), ports.Caller{ID: "u1"})
	if err != nil {
		t.Fatal(err)
	}
	if len(mine) != 1 || mine[0].User.ID != "u1" {
		t.Fatalf("expected only u1 orders, got %+v", mine)
	}

	all, _ := svc.ListAll(context.Background())
	if len(all) != 2 {
		t.Fatalf("admin listing: expected 2, got %d", len(all))
	}
}

// ---------------------------------------------------------------------------
// UpdateStatus
// ---------------------------------------------------------------------------

func TestOrderService_UpdateStatus_CompletedMarksPaid(t *testing.T) {
	repo := newStubOrderRepo()
	svc := NewOrderService(repo, discardLogger)
	fixed := time.Date(2026, 2, 19, 10, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	created, _ := svc.Create(context.Background(), checkoutInput("u1"))
	updated, err := svc.UpdateStatus(context.Background(), ports.UpdateOrderStatusInput{
		OrderID: created.ID, Status: "Completed", Deliverables: "https://files/final.zip",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Status != domain.OrderCompleted {
		t.Errorf("expected completed, got %s", updated.Status)
	}
	if !updated.IsPaid || updated.PaidAt == nil || !updated.PaidAt.Equal(fixed) {
		t.Errorf("completed order must be paid at %v, got paid=%v at %v", fixed, updated.IsPaid, updated.PaidAt)
	}
	if repo.byID[created.ID].Deliverables != "https://files/final.zip" {
		t.Error("deliverables not persisted")
	}
}

func TestOrderService_UpdateStatus_CancelledStaysUnpaid(t *testing.T) {
	repo := newStubOrderRepo()
	svc := NewOrderService(repo, discardLogger)
	created, _ := svc.Create(context.Background(), checkoutInput("u1"))

	updated, err := svc.UpdateStatus(context.Background(), ports.UpdateOrderStatusInput{OrderID: created.ID, Status: "cancelled"})
	if err != nil {
		t.Fatal(err)
	}
	if updated.IsPaid || updated.PaidAt != nil {
		t.Error("cancelled order must not be paid")
	}
}

func TestOrderService_UpdateStatus_Errors(t *testing.T) {
	repo := newStubOrderRepo()
	svc := NewOrderService(repo, discardLogger)
	created, _ := svc.Create(context.Background(), checkoutInput("u1"))

	if _, err := svc.UpdateStatus(context.Background(), ports.UpdateOrderStatusInput{OrderID: created.ID, Status: "shipped"}); !errors.Is(err, domain.ErrInvalidStatus) {
		t.Errorf("expected ErrInvalidStatus, got %v", err)
	}
	if _, err := svc.UpdateStatus(context.Background(), ports.UpdateOrderStatusInput{OrderID: "missing", Status: "active"}); !errors.Is(err, domain.ErrOrderNotFound) {
		t.Errorf("expected ErrOrderNotFound, got %v", err)
	}
}
