package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RevocationList marks identities whose issued tokens must be rejected.
// Key format: revoked:user:<user_id>
// Entries expire together with the longest-lived token that could still be
// presented.
type RevocationList struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRevocationList creates a RevocationList wrapping the given Redis client.
func NewRevocationList(client *redis.Client, tokenTTL time.Duration) *RevocationList {
	return &RevocationList{client: client, ttl: tokenTTL}
}

// Revoke records that every token issued to userID is void.
func (l *RevocationList) Revoke(ctx context.Context, userID string) error {
	if err := l.client.Set(ctx, l.key(userID), time.Now().Unix(), l.ttl).Err(); err != nil {
		return fmt.Errorf("revoke tokens: %w", err)
	}
	return nil
}

// IsRevoked reports whether userID has been revoked.
func (l *RevocationList) IsRevoked(ctx context.Context, userID string) (bool, error) {
	n, err := l.client.Exists(ctx, l.key(userID)).Result()
	if err != nil {
		return false, fmt.Errorf("revocation check: %w", err)
	}
	return n > 0, nil
}

func (l *RevocationList) key(userID string) string {
	return "revoked:user:" + userID
}
