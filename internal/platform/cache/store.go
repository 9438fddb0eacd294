package cache

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/bytedance/sonic"
	gocache "github.com/eko/gocache/lib/v4/cache"
	"github.com/eko/gocache/lib/v4/store"
	gostore "github.com/eko/gocache/store/go_cache/v4"
	redisstore "github.com/eko/gocache/store/redis/v4"
	gocacheclient "github.com/patrickmn/go-cache"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

const (
	DriverMemory = "memory"
	DriverRedis  = "redis"
)

type Options struct {
	Driver    string
	TTL       time.Duration
	RedisAddr string
	Prefix    string
}

// Store is a JSON-encoded, tag-invalidated read-through cache. A nil *Store
// is valid and disables caching.
//
// Each tag carries a generation bumped by InvalidateTags. A load that
// overlaps an invalidation returns its value but does not store it, so a
// read racing a write cannot park the old row in the cache. Generations are
// process local; with the redis driver another instance's in-flight load is
// only bounded by the TTL.
type Store struct {
	cache  *gocache.Cache[string]
	ttl    time.Duration
	prefix string
	flight singleflight.Group

	mu   sync.Mutex
	gens map[string]uint64
}

func New(opts Options) (*Store, error) {
	var backend store.StoreInterface
	switch opts.Driver {
	case "", DriverMemory:
		client := gocacheclient.New(opts.TTL, 2*opts.TTL+time.Minute)
		backend = gostore.NewGoCache(client)
	case DriverRedis:
		if opts.RedisAddr == "" {
			return nil, fmt.Errorf("redis address is required for redis cache")
		}
		backend = redisstore.NewRedis(redis.NewClient(&redis.Options{Addr: opts.RedisAddr}))
	default:
		return nil, fmt.Errorf("unsupported cache driver %q", opts.Driver)
	}

	return &Store{
		cache:  gocache.New[string](backend),
		ttl:    opts.TTL,
		prefix: opts.Prefix,
		gens:   make(map[string]uint64),
	}, nil
}

// NewMemory returns an in-process store, used by tests and the memory storage driver.
func NewMemory(ttl time.Duration) *Store {
	s, _ := New(Options{Driver: DriverMemory, TTL: ttl})
	return s
}

func (s *Store) key(key string) string {
	return s.prefix + key
}

func (s *Store) getRaw(ctx context.Context, key string) (string, bool) {
	raw, err := s.cache.Get(ctx, s.key(key))
	if err != nil || raw == "" {
		return "", false
	}
	return raw, true
}

func (s *Store) Set(ctx context.Context, key string, value any, tags ...string) error {
	if s == nil || key == "" {
		return nil
	}
	raw, err := sonic.MarshalString(value)
	if err != nil {
		return fmt.Errorf("encode cache value %s: %w", key, err)
	}

	opts := []store.Option{store.WithExpiration(s.ttl)}
	if len(tags) > 0 {
		opts = append(opts, store.WithTags(s.tagKeys(tags)))
	}
	return s.cache.Set(ctx, s.key(key), raw, opts...)
}

func (s *Store) Delete(ctx context.Context, key string) error {
	if s == nil || key == "" {
		return nil
	}
	return s.cache.Delete(ctx, s.key(key))
}

// InvalidateTags drops every entry stored with one of the given tags.
func (s *Store) InvalidateTags(ctx context.Context, tags ...string) error {
	if s == nil || len(tags) == 0 {
		return nil
	}
	s.mu.Lock()
	for _, tag := range tags {
		s.gens[tag]++
	}
	s.mu.Unlock()
	return s.cache.Invalidate(ctx, store.WithInvalidateTags(s.tagKeys(tags)))
}

// generation sums the tag generations; any invalidation of one of the tags
// changes it.
func (s *Store) generation(tags []string) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	var sum uint64
	for _, tag := range tags {
		sum += s.gens[tag]
	}
	return sum
}

func (s *Store) tagKeys(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		out = append(out, s.prefix+tag)
	}
	return out
}

// GetOrLoad returns the cached value for key or runs loader once across
// concurrent callers and stores its result.
func GetOrLoad[T any](ctx context.Context, s *Store, key string, tags []string, loader func(context.Context) (T, error)) (T, error) {
	var zero T
	if loader == nil {
		return zero, fmt.Errorf("loader is required")
	}
	if s == nil || key == "" {
		return loader(ctx)
	}

	if raw, ok := s.getRaw(ctx, key); ok {
		var out T
		if err := sonic.UnmarshalString(raw, &out); err == nil {
			return out, nil
		}
	}

	gen := s.generation(tags)
	flightKey := key
	if len(tags) > 0 {
		flightKey = key + "#" + strconv.FormatUint(gen, 10)
	}
	value, err, _ := s.flight.Do(flightKey, func() (any, error) {
		if raw, ok := s.getRaw(ctx, key); ok {
			var out T
			if err := sonic.UnmarshalString(raw, &out); err == nil {
				return out, nil
			}
		}

		loaded, loadErr := loader(ctx)
		if loadErr != nil {
			return nil, loadErr
		}
		if s.generation(tags) != gen {
			return loaded, nil
		}
		// A failed write only costs a reload.
		_ = s.Set(ctx, key, loaded, tags...)
		if s.generation(tags) != gen {
			_ = s.Delete(ctx, key)
		}
		return loaded, nil
	})
	if err != nil {
		return zero, err
	}

	out, ok := value.(T)
	if !ok {
		return zero, fmt.Errorf("cache value for %s has unexpected type %T", key, value)
	}
	return out, nil
}
