package cache

import (
	"context"
	"time"

	"github.com/dgraph-io/ristretto"
	gocache "github.com/eko/gocache/lib/v4/cache"
	"github.com/eko/gocache/lib/v4/marshaler"
	"github.com/eko/gocache/lib/v4/store"
	ristrettostore "github.com/eko/gocache/store/ristretto/v4"
	"github.com/rs/zerolog/log"
)

// Store is an in-process cache for computed responses, grouped by tags.
type Store struct {
	client  *ristretto.Cache
	cache   *gocache.Cache[any]
	marshal *marshaler.Marshaler
}

func NewStore() (*Store, error) {
	client, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: 1e5,
		MaxCost:     1 << 26,
		BufferItems: 64,
	})
	if err != nil {
		return nil, err
	}

	manager := gocache.New[any](ristrettostore.NewRistretto(client))
	return &Store{
		client:  client,
		cache:   manager,
		marshal: marshaler.New(manager),
	}, nil
}

// Remember returns the cached value under key or computes it with load and
// caches the result for ttl. A nil store always calls load.
func Remember[T any](ctx context.Context, s *Store, key string, ttl time.Duration, tags []string, load func() (T, error)) (T, error) {
	var out T
	if s != nil {
		if _, err := s.marshal.Get(ctx, key, &out); err == nil {
			return out, nil
		}
	}

	out, err := load()
	if err != nil || s == nil {
		return out, err
	}

	if err := s.marshal.Set(ctx, key, out, store.WithExpiration(ttl), store.WithTags(tags)); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("Unable to cache value...")
	}
	s.client.Wait()
	return out, nil
}

// Invalidate drops every entry stored with any of tags.
func (v *Store) Invalidate(ctx context.Context, tags ...string) {
	if v == nil || len(tags) == 0 {
		return
	}
	if err := v.cache.Invalidate(ctx, store.WithInvalidateTags(tags)); err != nil {
		log.Warn().Err(err).Strs("tags", tags).Msg("Unable to invalidate cache...")
	}
	v.client.Wait()
}

func (v *Store) Close() {
	if v != nil {
		v.client.Close()
	}
}
