// Package metadata is a small key/value store in the local cache database.
// It holds the cached session token, user id, and last known balance.
package metadata

import "context"

type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}

// Well-known keys.
const (
	KeySessionToken = "session_token"
	KeyUserID       = "user_id"
	KeyCredits      = "credits"
	KeyTier         = "tier"
)
