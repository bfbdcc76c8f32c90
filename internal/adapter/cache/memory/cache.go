package memory

import (
	"context"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"ziluri/internal/core/domain"
	"ziluri/internal/core/port"
)

// Repository is an in-process cache backed by go-cache. It is the default
// cache driver; the redis adapter replaces it for multi-instance setups.
type Repository struct {
	cache *gocache.Cache
}

func NewRepository() port.CacheRepository {
	return &Repository{
		cache: gocache.New(5*time.Minute, 10*time.Minute),
	}
}

func (r *Repository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = gocache.DefaultExpiration
	}

	r.cache.Set(key, value, ttl)
	return nil
}

func (r *Repository) Get(ctx context.Context, key string) ([]byte, error) {
	value, found := r.cache.Get(key)
	if !found {
		return nil, domain.ErrNotFound
	}

	data, ok := value.([]byte)
	if !ok {
		return nil, domain.ErrNotFound
	}

	return data, nil
}

func (r *Repository) Delete(ctx context.Context, key string) error {
	r.cache.Delete(key)
	return nil
}

func (r *Repository) DeleteByPrefix(ctx context.Context, prefix string) error {
	for key := range r.cache.Items() {
		if strings.HasPrefix(key, prefix) {
			r.cache.Delete(key)
		}
	}
	return nil
}

func (r *Repository) Close() error {
	r.cache.Flush()
	return nil
}
