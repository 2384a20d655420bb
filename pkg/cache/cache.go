package cache

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/aretw0/mosaic/pkg/domain"
	"github.com/aretw0/mosaic/pkg/ports"
)

// call is one in-flight fetch that waiters attach to.
type call struct {
	done    chan struct{}
	records []domain.Record
	err     error
}

// Cache coordinates fetches against a backing RecordStore. Distinct keys
// never contend on the same entry; the mutex only guards the in-flight
// bookkeeping.
type Cache struct {
	fetcher ports.RecordFetcher
	store   ports.RecordStore
	hooks   domain.LifecycleHooks
	logger  *slog.Logger
	clock   func() time.Time

	mu       sync.Mutex
	inflight map[string]*call
}

// Option configures a Cache.
type Option func(*Cache)

// WithHooks registers lifecycle hooks fired on loading-state transitions.
func WithHooks(hooks domain.LifecycleHooks) Option {
	return func(c *Cache) { c.hooks = hooks }
}

// WithLogger sets a structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Cache) { c.logger = logger }
}

// WithClock overrides the timestamp source (used by tests).
func WithClock(clock func() time.Time) Option {
	return func(c *Cache) { c.clock = clock }
}

// New builds a cache over the given fetcher and backing store.
func New(fetcher ports.RecordFetcher, store ports.RecordStore, opts ...Option) *Cache {
	c := &Cache{
		fetcher:  fetcher,
		store:    store,
		clock:    time.Now,
		inflight: make(map[string]*call),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = slog.New(slog.DiscardHandler)
	}
	return c
}

// Fetch resolves the record set for a key.
//
// Present entries resolve immediately from the store without touching the
// network. If a fetch for the key is already pending the caller coalesces
// onto it and receives the same eventual records or error. Otherwise this
// caller becomes the leader: the key flips to pending, the upstream fetch
// runs, and on success the records are stored before waiters are released.
//
// ctx only gates how long this caller waits; the in-flight fetch itself is
// never cancelled and always runs to completion or failure.
func (c *Cache) Fetch(ctx context.Context, key string) ([]domain.Record, error) {
	if records, ok := c.lookup(ctx, key); ok {
		return records, nil
	}
	if c.fetcher == nil {
		return nil, domain.ErrNoFetcher
	}

	c.mu.Lock()
	cl, pending := c.inflight[key]
	if !pending {
		cl = &call{done: make(chan struct{})}
		c.inflight[key] = cl
		c.mu.Unlock()

		c.hooks.FireFetchStart(&domain.FetchEvent{Timestamp: c.clock(), Key: key})
		go c.run(key, cl)
	} else {
		c.mu.Unlock()
	}

	select {
	case <-cl.done:
		if cl.err != nil {
			return nil, cl.err
		}
		return domain.CloneRecords(cl.records), nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// run executes the upstream fetch for the leader and settles the call.
// The completion handler is the only writer for this key's entry.
func (c *Cache) run(key string, cl *call) {
	start := c.clock()

	// Detach from the caller: an in-flight fetch runs to completion even if
	// the leader stops waiting.
	records, err := c.fetcher.Fetch(context.WithoutCancel(context.Background()), key)

	if err == nil {
		if storeErr := c.store.Set(context.Background(), key, records); storeErr != nil {
			c.logger.Warn("failed to store fetched records", "key", key, "err", storeErr)
		}
	}

	cl.records = records
	cl.err = err

	c.mu.Lock()
	delete(c.inflight, key)
	c.mu.Unlock()
	close(cl.done)

	event := &domain.FetchEvent{
		Timestamp: c.clock(),
		Key:       key,
		Records:   len(records),
		Duration:  c.clock().Sub(start),
		Err:       err,
	}
	if err != nil {
		c.logger.Warn("fetch failed", "key", key, "err", err)
		c.hooks.FireFetchError(event)
		return
	}
	c.hooks.FireFetchDone(event)
}

func (c *Cache) lookup(ctx context.Context, key string) ([]domain.Record, bool) {
	records, ok, err := c.store.Get(ctx, key)
	if err != nil {
		// A flaky store degrades to a cache miss.
		c.logger.Warn("record store lookup failed", "key", key, "err", err)
		return nil, false
	}
	return records, ok
}

// Lookup returns the cached records for a key without triggering a fetch.
func (c *Cache) Lookup(key string) ([]domain.Record, bool) {
	return c.lookup(context.Background(), key)
}

// Pending reports whether a fetch for the key is in flight.
func (c *Cache) Pending(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.inflight[key]
	return ok
}
