// Package orchestrator carries out every state-changing user intent: it
// checks preconditions, calls the API, then reconciles the mirror, the
// session and the current view.
package orchestrator

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/teachreach/marketplace/internal/client/gateway"
	"github.com/teachreach/marketplace/internal/client/mirror"
	"github.com/teachreach/marketplace/internal/client/model"
	"github.com/teachreach/marketplace/internal/client/router"
	"github.com/teachreach/marketplace/internal/client/session"
	"github.com/teachreach/marketplace/internal/infrastructure/queue"
)

// Remote is the API surface the orchestrator drives.
type Remote interface {
	Register(ctx context.Context, req gateway.RegisterRequest) (model.Identity, error)
	Login(ctx context.Context, email, password string) (model.Identity, error)
	MyOrders(ctx context.Context) ([]model.Order, error)
	AllOrders(ctx context.Context) ([]model.Order, error)
	CreateOrder(ctx context.Context, req gateway.CheckoutRequest) (gateway.OrderReceipt, error)
	UpdateOrderStatus(ctx context.Context, id string, status model.OrderStatus, deliverables string) (model.Order, error)
	Reviews(ctx context.Context) ([]model.Review, error)
	CreateReview(ctx context.Context, rating int, comment string) (model.Review, error)
	DeleteReview(ctx context.Context, id string) error
	Users(ctx context.Context) ([]model.Identity, error)
	DeleteUser(ctx context.Context, id string) error
	UpdateProfile(ctx context.Context, req gateway.ProfileRequest) (model.Identity, error)
	DeleteMe(ctx context.Context) error
	SupportRecipient(ctx context.Context) (gateway.Recipient, error)
}

// Notifier delivers verification codes to their owner.
type Notifier interface {
	SendCode(ctx context.Context, email, code string) error
}

// Deps are the collaborators an Orchestrator works on.
type Deps struct {
	Remote    Remote
	Session   *session.Store
	State     *mirror.State
	Navigator *router.Navigator
	Notifier  Notifier
	// Writes must be started by the caller.
	Writes *queue.Serializer
	Logger zerolog.Logger
}

type Orchestrator struct {
	remote   Remote
	session  *session.Store
	state    *mirror.State
	nav      *router.Navigator
	notifier Notifier
	writes   *queue.Serializer
	validate *validator.Validate
	log      zerolog.Logger

	now     func() time.Time
	newCode func() string

	mu      sync.Mutex
	support *gateway.Recipient
	deleted map[string]bool
}

type Option func(*Orchestrator)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(o *Orchestrator) { o.now = now }
}

// WithCodeGenerator replaces the random verification code source.
func WithCodeGenerator(fn func() string) Option {
	return func(o *Orchestrator) { o.newCode = fn }
}

func New(d Deps, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		remote:   d.Remote,
		session:  d.Session,
		state:    d.State,
		nav:      d.Navigator,
		notifier: d.Notifier,
		writes:   d.Writes,
		validate: validator.New(),
		log:      d.Logger,
		now:      func() time.Time { return time.Now().UTC() },
		newCode:  randomCode,
		deleted:  make(map[string]bool),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// randomCode returns a 4-digit code in [1000, 9999].
func randomCode() string {
	n, err := rand.Int(rand.Reader, big.NewInt(9000))
	if err != nil {
		panic(fmt.Sprintf("read random code: %v", err))
	}
	return fmt.Sprintf("%04d", n.Int64()+1000)
}

// Start syncs identity-scoped state for a session restored from storage.
// The persisted orders belong to that identity and are kept until the
// refetch replaces them.
func (o *Orchestrator) Start(ctx context.Context) {
	cur := o.session.Current()
	o.identityChanged(ctx, cur, cur)
}

// identityChanged refetches identity-scoped collections and resolves the
// support recipient. Orders of a different identity are dropped before the
// refetch, so a failed refetch leaves the mirror empty rather than showing
// them. Remote failures are logged; the session change that caused them has
// already happened.
func (o *Orchestrator) identityChanged(ctx context.Context, prev, next *model.Identity) {
	o.mu.Lock()
	o.support = nil
	o.mu.Unlock()

	if next == nil || prev == nil || prev.ID != next.ID {
		if err := o.state.ReplaceOrders(ctx, nil); err != nil {
			o.log.Warn().Err(err).Msg("failed to reset orders mirror")
		}
	}
	if next == nil {
		return
	}

	if err := o.RefreshOrders(ctx); err != nil {
		o.log.Warn().Err(err).Str("user_id", next.ID).Msg("failed to refresh orders")
	}
	if next.IsAdmin() {
		if err := o.RefreshUsers(ctx); err != nil {
			o.log.Warn().Err(err).Str("user_id", next.ID).Msg("failed to refresh users")
		}
		return
	}
	if _, err := o.supportRecipient(ctx); err != nil {
		o.log.Warn().Err(err).Str("user_id", next.ID).Msg("failed to resolve support recipient")
	}
}

func (o *Orchestrator) supportRecipient(ctx context.Context) (gateway.Recipient, error) {
	o.mu.Lock()
	if o.support != nil {
		rc := *o.support
		o.mu.Unlock()
		return rc, nil
	}
	o.mu.Unlock()

	rc, err := o.remote.SupportRecipient(ctx)
	if err != nil {
		return gateway.Recipient{}, err
	}
	o.mu.Lock()
	o.support = &rc
	o.mu.Unlock()
	return rc, nil
}

// current returns the signed-in identity or ErrAuth.
func (o *Orchestrator) current() (model.Identity, error) {
	id := o.session.Current()
	if id == nil {
		return model.Identity{}, fmt.Errorf("%w: not signed in", model.ErrAuth)
	}
	return *id, nil
}

func (o *Orchestrator) currentAdmin() (model.Identity, error) {
	id, err := o.current()
	if err != nil {
		return id, err
	}
	if !id.IsAdmin() {
		return id, fmt.Errorf("%w: admin access required", model.ErrForbidden)
	}
	return id, nil
}

// write runs fn for the current identity behind every earlier write of the
// same identity. Writes that reach the front of the queue after the
// identity was deleted or signed out fail with ErrAuth.
func (o *Orchestrator) write(ctx context.Context, fn func(ctx context.Context, id model.Identity) error) error {
	id, err := o.current()
	if err != nil {
		return err
	}
	return o.writes.Do(ctx, id.ID, func(ctx context.Context) error {
		o.mu.Lock()
		gone := o.deleted[id.ID]
		o.mu.Unlock()
		if cur := o.session.Current(); gone || cur == nil || cur.ID != id.ID {
			o.log.Debug().Str("user_id", id.ID).Bool("deleted", gone).Msg("queued write rejected, session ended")
			return fmt.Errorf("%w: session ended", model.ErrAuth)
		}
		return fn(ctx, id)
	})
}

func (o *Orchestrator) invalid(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{model.ErrValidation}, args...)...)
}

// NotificationCount is the number of active orders plus unread messages for
// the current identity.
func (o *Orchestrator) NotificationCount() int {
	if o.session.Current() == nil {
		return 0
	}
	n := 0
	for _, ord := range o.state.Orders() {
		if ord.Status == model.OrderActive {
			n++
		}
	}
	return n + o.UnreadCount()
}

// UnreadCount is the number of unread messages addressed to the current
// identity.
func (o *Orchestrator) UnreadCount() int {
	id := o.session.Current()
	if id == nil {
		return 0
	}
	n := 0
	for _, m := range o.state.Messages() {
		if m.ReceiverID == id.ID && !m.IsRead {
			n++
		}
	}
	return n
}
