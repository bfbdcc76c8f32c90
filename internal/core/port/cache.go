package port

import (
	"context"
	"time"
)

// CacheRepository backs the calendar read path: day summaries for a
// visible range are cached under a range key and dropped by prefix on any
// item write.
type CacheRepository interface {
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Get(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
	DeleteByPrefix(ctx context.Context, prefix string) error
	Close() error
}
