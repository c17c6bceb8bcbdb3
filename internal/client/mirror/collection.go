// Package mirror is the client's local copy of marketplace state. Persisted
// collections always hold the last state confirmed by the server; optimistic
// entries stay in memory until reconciled or rolled back.
package mirror

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/teachreach/marketplace/internal/client/model"
	"github.com/teachreach/marketplace/internal/client/storage"
)

const keyPrefix = "mirror:"

// Collection names one persisted slot and the value it starts from.
type Collection[T any] struct {
	Name string
	Seed func() T
}

var (
	ServicesCollection      = Collection[[]model.Service]{Name: "services", Seed: model.SeedServices}
	OrdersCollection        = Collection[[]model.Order]{Name: "orders", Seed: none[model.Order]}
	MessagesCollection      = Collection[[]model.Message]{Name: "messages", Seed: none[model.Message]}
	UsersCollection         = Collection[[]model.Identity]{Name: "users", Seed: none[model.Identity]}
	ReviewsCollection       = Collection[[]model.Review]{Name: "reviews", Seed: none[model.Review]}
	SiteConfigCollection    = Collection[model.SiteConfig]{Name: "site-config", Seed: defaultSiteConfig}
	VerificationsCollection = Collection[map[string]model.Verification]{Name: "verifications", Seed: noVerifications}
)

func none[E any]() []E { return []E{} }

func defaultSiteConfig() model.SiteConfig {
	return model.SiteConfig{SiteName: model.DefaultSiteName}
}

func noVerifications() map[string]model.Verification {
	return map[string]model.Verification{}
}

func (c Collection[T]) key() string { return keyPrefix + c.Name }

// Load returns the stored value, or the seed when the slot is absent,
// unreadable or malformed.
func (c Collection[T]) Load(ctx context.Context, kv storage.KV, log zerolog.Logger) T {
	raw, ok, err := kv.Get(ctx, c.key())
	if err != nil {
		log.Warn().Err(err).Str("collection", c.Name).Msg("mirror read failed, using seed")
		return c.Seed()
	}
	if !ok || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return c.Seed()
	}
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		log.Warn().Err(err).Str("collection", c.Name).Msg("malformed mirror data, using seed")
		return c.Seed()
	}
	return v
}

// Save replaces the stored value.
func (c Collection[T]) Save(ctx context.Context, kv storage.KV, v T) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", c.Name, err)
	}
	if err := kv.Set(ctx, c.key(), raw); err != nil {
		return fmt.Errorf("save %s: %w", c.Name, err)
	}
	return nil
}
