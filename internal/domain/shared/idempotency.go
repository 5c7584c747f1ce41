package shared

import (
	"context"
	"time"
)

// IdempotencyStore stores processed submission keys to prevent duplicate
// processing of client-retried requests (e.g. a double-submitted checkout)
type IdempotencyStore interface {
	// MarkProcessed marks a submission key as processed with a TTL
	// Returns true if the key was newly marked, false if it was already seen
	MarkProcessed(ctx context.Context, key string, ttl time.Duration) (bool, error)

	// IsProcessed checks if a submission key has already been processed
	IsProcessed(ctx context.Context, key string) (bool, error)

	// Release removes a submission key so the same submission can be
	// retried, used when the guarded operation fails
	Release(ctx context.Context, key string) error

	// Close closes the store and releases resources
	Close() error
}

// IdempotencyConfig holds configuration for idempotency handling
type IdempotencyConfig struct {
	// TTL is the time-to-live for processed submission keys
	TTL time.Duration

	// Enabled determines whether idempotency checking is enabled
	Enabled bool
}

// DefaultIdempotencyConfig returns the default idempotency configuration
func DefaultIdempotencyConfig() IdempotencyConfig {
	return IdempotencyConfig{
		TTL:     24 * time.Hour,
		Enabled: true,
	}
}
