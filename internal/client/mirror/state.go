package mirror

import (
	"context"
	"errors"
	"slices"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/teachreach/marketplace/internal/client/model"
	"github.com/teachreach/marketplace/internal/client/storage"
)

const pendingPrefix = "pending-"

// State owns the in-memory collections. Every mutation is written through to
// storage before it returns.
type State struct {
	kv  storage.KV
	log zerolog.Logger

	mu            sync.RWMutex
	services      []model.Service
	orders        []model.Order
	messages      []model.Message
	users         []model.Identity
	reviews       []model.Review
	pending       []model.Review
	site          model.SiteConfig
	verifications map[string]model.Verification
}

// Open loads every collection from kv.
func Open(ctx context.Context, kv storage.KV, log zerolog.Logger) *State {
	return &State{
		kv:            kv,
		log:           log,
		services:      ServicesCollection.Load(ctx, kv, log),
		orders:        OrdersCollection.Load(ctx, kv, log),
		messages:      MessagesCollection.Load(ctx, kv, log),
		users:         UsersCollection.Load(ctx, kv, log),
		reviews:       ReviewsCollection.Load(ctx, kv, log),
		site:          SiteConfigCollection.Load(ctx, kv, log),
		verifications: VerificationsCollection.Load(ctx, kv, log),
	}
}

// Close flushes every persisted collection. Pending reviews are dropped.
func (s *State) Close(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = nil
	return errors.Join(
		ServicesCollection.Save(ctx, s.kv, s.services),
		OrdersCollection.Save(ctx, s.kv, s.orders),
		MessagesCollection.Save(ctx, s.kv, s.messages),
		UsersCollection.Save(ctx, s.kv, s.users),
		ReviewsCollection.Save(ctx, s.kv, s.reviews),
		SiteConfigCollection.Save(ctx, s.kv, s.site),
		VerificationsCollection.Save(ctx, s.kv, s.verifications),
	)
}

// --- services ---

func (s *State) Services() []model.Service {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.services)
}

func (s *State) Service(id string) (model.Service, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := slices.IndexFunc(s.services, func(v model.Service) bool { return v.ID == id })
	if i < 0 {
		return model.Service{}, false
	}
	return s.services[i], true
}

// PutService inserts svc or replaces the entry with the same id.
func (s *State) PutService(ctx context.Context, svc model.Service) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := slices.Clone(s.services)
	if i := slices.IndexFunc(next, func(v model.Service) bool { return v.ID == svc.ID }); i >= 0 {
		next[i] = svc
	} else {
		next = append(next, svc)
	}
	return s.saveServices(ctx, next)
}

// RemoveService reports whether an entry was removed.
func (s *State) RemoveService(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := slices.DeleteFunc(slices.Clone(s.services), func(v model.Service) bool { return v.ID == id })
	if len(next) == len(s.services) {
		return false, nil
	}
	return true, s.saveServices(ctx, next)
}

func (s *State) saveServices(ctx context.Context, next []model.Service) error {
	if err := ServicesCollection.Save(ctx, s.kv, next); err != nil {
		return err
	}
	s.services = next
	return nil
}

// --- orders ---

func (s *State) Orders() []model.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.orders)
}

// ReplaceOrders swaps in a freshly fetched list.
func (s *State) ReplaceOrders(ctx context.Context, orders []model.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if orders == nil {
		orders = []model.Order{}
	}
	return s.saveOrders(ctx, slices.Clone(orders))
}

// PrependOrder puts a confirmed order at the head of the list.
func (s *State) PrependOrder(ctx context.Context, o model.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveOrders(ctx, append([]model.Order{o}, s.orders...))
}

// UpdateOrder replaces the order with the same id; unknown ids are ignored.
func (s *State) UpdateOrder(ctx context.Context, o model.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := slices.IndexFunc(s.orders, func(v model.Order) bool { return v.ID == o.ID })
	if i < 0 {
		return nil
	}
	next := slices.Clone(s.orders)
	next[i] = o
	return s.saveOrders(ctx, next)
}

func (s *State) saveOrders(ctx context.Context, next []model.Order) error {
	if err := OrdersCollection.Save(ctx, s.kv, next); err != nil {
		return err
	}
	s.orders = next
	return nil
}

// --- messages ---

func (s *State) Messages() []model.Message {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.messages)
}

func (s *State) AppendMessage(ctx context.Context, m model.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveMessages(ctx, append(slices.Clone(s.messages), m))
}

// MarkRead flags every unread message from sender to receiver as read and
// returns how many changed. Nothing is written when none did.
func (s *State) MarkRead(ctx context.Context, sender, receiver string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := slices.Clone(s.messages)
	n := 0
	for i := range next {
		if next[i].SenderID == sender && next[i].ReceiverID == receiver && !next[i].IsRead {
			next[i].IsRead = true
			n++
		}
	}
	if n == 0 {
		return 0, nil
	}
	return n, s.saveMessages(ctx, next)
}

func (s *State) saveMessages(ctx context.Context, next []model.Message) error {
	if err := MessagesCollection.Save(ctx, s.kv, next); err != nil {
		return err
	}
	s.messages = next
	return nil
}

// --- users ---

func (s *State) Users() []model.Identity {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.users)
}

// ReplaceUsers stores the directory without credentials.
func (s *State) ReplaceUsers(ctx context.Context, users []model.Identity) error {
	next := make([]model.Identity, 0, len(users))
	for _, u := range users {
		u.Credential = ""
		u.PendingVerificationCode = ""
		next = append(next, u)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := UsersCollection.Save(ctx, s.kv, next); err != nil {
		return err
	}
	s.users = next
	return nil
}

// PurgeUser removes an account and everything it authored: its directory
// entry, the messages it sent and its reviews. Messages addressed to it are
// kept.
func (s *State) PurgeUser(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	users := slices.DeleteFunc(slices.Clone(s.users), func(u model.Identity) bool { return u.ID == id })
	messages := slices.DeleteFunc(slices.Clone(s.messages), func(m model.Message) bool { return m.SenderID == id })
	reviews := slices.DeleteFunc(slices.Clone(s.reviews), func(r model.Review) bool { return r.AuthorID == id })

	if err := errors.Join(
		UsersCollection.Save(ctx, s.kv, users),
		MessagesCollection.Save(ctx, s.kv, messages),
		ReviewsCollection.Save(ctx, s.kv, reviews),
	); err != nil {
		return err
	}
	s.users = users
	s.messages = messages
	s.reviews = reviews
	s.pending = slices.DeleteFunc(s.pending, func(r model.Review) bool { return r.AuthorID == id })
	return nil
}

// --- reviews ---

// Reviews lists pending entries first, newest first, then confirmed ones.
func (s *State) Reviews() []model.Review {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Review, 0, len(s.pending)+len(s.reviews))
	for i := len(s.pending) - 1; i >= 0; i-- {
		out = append(out, s.pending[i])
	}
	return append(out, s.reviews...)
}

func (s *State) ReplaceReviews(ctx context.Context, reviews []model.Review) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := make([]model.Review, 0, len(reviews))
	for _, r := range reviews {
		r.Pending = false
		next = append(next, r)
	}
	return s.saveReviews(ctx, next)
}

// AddPending records an optimistic review in memory and returns its
// temporary id.
func (s *State) AddPending(r model.Review) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	r.ID = pendingPrefix + uuid.NewString()
	r.Pending = true
	s.pending = append(s.pending, r)
	return r.ID
}

// ConfirmPending replaces the optimistic entry tempID with the server's
// copy and persists it.
func (s *State) ConfirmPending(ctx context.Context, tempID string, confirmed model.Review) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = slices.DeleteFunc(s.pending, func(r model.Review) bool { return r.ID == tempID })
	confirmed.Pending = false
	return s.saveReviews(ctx, append([]model.Review{confirmed}, s.reviews...))
}

// RollbackPending discards the optimistic entry tempID.
func (s *State) RollbackPending(tempID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = slices.DeleteFunc(s.pending, func(r model.Review) bool { return r.ID == tempID })
}

func (s *State) RemoveReview(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveReviews(ctx, slices.DeleteFunc(slices.Clone(s.reviews), func(r model.Review) bool { return r.ID == id }))
}

func (s *State) saveReviews(ctx context.Context, next []model.Review) error {
	if err := ReviewsCollection.Save(ctx, s.kv, next); err != nil {
		return err
	}
	s.reviews = next
	return nil
}

// --- site config ---

func (s *State) SiteConfig() model.SiteConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.site
}

func (s *State) SetSiteName(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := s.site
	next.SiteName = name
	if err := SiteConfigCollection.Save(ctx, s.kv, next); err != nil {
		return err
	}
	s.site = next
	return nil
}

// --- verifications ---

func (s *State) Verification(email string) (model.Verification, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.verifications[email]
	return v, ok
}

// PutVerification stores v, replacing any earlier one for the same email.
func (s *State) PutVerification(ctx context.Context, v model.Verification) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := make(map[string]model.Verification, len(s.verifications)+1)
	for k, old := range s.verifications {
		next[k] = old
	}
	next[v.Email] = v
	return s.saveVerifications(ctx, next)
}

func (s *State) DeleteVerification(ctx context.Context, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.verifications[email]; !ok {
		return nil
	}
	next := make(map[string]model.Verification, len(s.verifications))
	for k, old := range s.verifications {
		if k != email {
			next[k] = old
		}
	}
	return s.saveVerifications(ctx, next)
}

func (s *State) saveVerifications(ctx context.Context, next map[string]model.Verification) error {
	if err := VerificationsCollection.Save(ctx, s.kv, next); err != nil {
		return err
	}
	s.verifications = next
	return nil
}
