// Package session owns the single process-wide slot holding the current
// identity and its bearer credential.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/teachreach/marketplace/internal/client/model"
	"github.com/teachreach/marketplace/internal/client/storage"
)

// Key is the storage slot for the identity snapshot. The credential is part
// of the same value, so the two are always written and removed together.
const Key = "session"

// parkedPrefix holds signed-out identities waiting to be restored, keyed by
// identity id.
const parkedPrefix = "session:parked:"

// Listener is notified after every identity change. prev and next may be nil.
type Listener func(prev, next *model.Identity)

type Store struct {
	kv  storage.KV
	log zerolog.Logger

	mu        sync.RWMutex
	current   *model.Identity
	listeners []Listener
}

// Open restores the persisted identity. Unreadable or malformed state is
// logged and treated as logged out; Open never fails because of it.
func Open(ctx context.Context, kv storage.KV, log zerolog.Logger) *Store {
	s := &Store{kv: kv, log: log}

	raw, ok, err := kv.Get(ctx, Key)
	switch {
	case err != nil:
		log.Warn().Err(err).Msg("session unreadable, starting logged out")
	case ok:
		var id model.Identity
		if err := json.Unmarshal(raw, &id); err != nil || id.ID == "" || id.Credential == "" {
			log.Warn().Err(err).Msg("discarding malformed session")
			break
		}
		s.current = &id
	}
	return s
}

// Current returns a copy of the current identity, or nil when logged out.
func (s *Store) Current() *model.Identity {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return nil
	}
	id := *s.current
	return &id
}

// Token returns the bearer credential of the current identity, if any.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return ""
	}
	return s.current.Credential
}

// SetCurrent persists id as the current identity and then updates memory.
// On a storage error nothing changes.
func (s *Store) SetCurrent(ctx context.Context, id model.Identity) error {
	if id.ID == "" || id.Credential == "" {
		return fmt.Errorf("%w: identity without credential", model.ErrAuth)
	}
	raw, err := json.Marshal(id)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}

	s.mu.Lock()
	if err := s.kv.Set(ctx, Key, raw); err != nil {
		s.mu.Unlock()
		return fmt.Errorf("persist session: %w", err)
	}
	prev := s.current
	next := id
	s.current = &next
	listeners := append([]Listener(nil), s.listeners...)
	s.mu.Unlock()

	s.notify(listeners, prev, &next)
	return nil
}

// Clear logs out. The in-memory identity is dropped even if storage fails,
// so a failing disk can never keep a session alive.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	err := s.kv.Delete(ctx, Key)
	prev := s.current
	s.current = nil
	listeners := append([]Listener(nil), s.listeners...)
	s.mu.Unlock()

	if prev != nil {
		s.notify(listeners, prev, nil)
	}
	if err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

// Park signs the current identity out and keeps it, credential included,
// so Unpark can restore it later without a new login.
func (s *Store) Park(ctx context.Context, id model.Identity) error {
	if id.ID == "" || id.Credential == "" {
		return fmt.Errorf("%w: identity without credential", model.ErrAuth)
	}
	raw, err := json.Marshal(id)
	if err != nil {
		return fmt.Errorf("encode parked session: %w", err)
	}
	if err := s.kv.Set(ctx, parkedPrefix+id.ID, raw); err != nil {
		return fmt.Errorf("park session: %w", err)
	}
	return s.Clear(ctx)
}

// Unpark removes and returns the identity parked under userID. ok is false
// when nothing usable was parked.
func (s *Store) Unpark(ctx context.Context, userID string) (id model.Identity, ok bool, err error) {
	key := parkedPrefix + userID
	raw, found, err := s.kv.Get(ctx, key)
	if err != nil {
		return model.Identity{}, false, fmt.Errorf("read parked session: %w", err)
	}
	if !found {
		return model.Identity{}, false, nil
	}
	if err := s.kv.Delete(ctx, key); err != nil {
		return model.Identity{}, false, fmt.Errorf("drop parked session: %w", err)
	}
	if err := json.Unmarshal(raw, &id); err != nil || id.ID != userID || id.Credential == "" {
		s.log.Warn().Err(err).Str("user_id", userID).Msg("discarding malformed parked session")
		return model.Identity{}, false, nil
	}
	return id, true, nil
}

// Subscribe registers fn for identity changes.
func (s *Store) Subscribe(fn Listener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

func (s *Store) notify(listeners []Listener, prev, next *model.Identity) {
	for _, fn := range listeners {
		var p, n *model.Identity
		if prev != nil {
			cp := *prev
			p = &cp
		}
		if next != nil {
			cp := *next
			n = &cp
		}
		fn(p, n)
	}
}
