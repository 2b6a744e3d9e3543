package cache

import (
	"context"
	"time"
)

// StatusCache is a small TTL cache used to absorb the client's short-interval
// polling of meeting processing state.
type StatusCache interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key, value string, expiration time.Duration)
	Delete(ctx context.Context, key string)
}
