package usecase

import (
	"context"
	"time"
)

// Cache is what usecases need from the Redis layer. A nil implementation is
// acceptable; callers must treat misses and errors identically.
type Cache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}
