// Package dnscache implements the time-aware result cache of a DNS
// resolver. It stores positive answer sets and negative answers keyed
// by the query that produced them, bounded by LRU eviction, with
// expiration derived from record TTLs clamped into configured bounds.
package dnscache

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/miekg/dns"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/pmkol/rescache/pkg/dnsutils"
	"github.com/pmkol/rescache/pkg/lru"
)

const defaultCapacity = 4096

var nopLogger = zap.NewNop()

type Opts struct {
	// Capacity is the maximum number of entries, not bytes.
	// Default is 4096.
	Capacity int

	// TTL carries the optional TTL bounds applied to all insertions.
	TTL TTLConfig

	// CleanerInterval starts a background goroutine that removes
	// expired entries at this interval. <= 0 disables it; expired
	// entries are then only removed lazily when a read finds them.
	CleanerInterval time.Duration

	// Logger is the *zap.Logger for this Cache.
	// A nil Logger will disable logging.
	Logger *zap.Logger

	// Metrics optionally registers the cache counters.
	Metrics prometheus.Registerer
}

func (opts *Opts) Init() error {
	if opts.Capacity <= 0 {
		opts.Capacity = defaultCapacity
	}
	if opts.Logger == nil {
		opts.Logger = nopLogger
	}
	return nil
}

// Cache is a bounded query -> outcome store with LRU eviction.
//
// A single mutex guards the whole store; every operation holds it for
// its full read-modify-write sequence and never blocks on I/O while
// doing so. A *Cache handle is cheap to share: all users reference the
// same lock and store, so an insert from one resolution is immediately
// visible to every other.
type Cache struct {
	bounds  ttlBounds
	logger  *zap.Logger
	metrics *cacheMetrics

	fillSF singleflight.Group

	closeOnce        sync.Once
	closeCleanerChan chan struct{}

	mu    sync.Mutex
	store *lru.LRU[Query, *entry]
}

func New(opts Opts) (*Cache, error) {
	if err := opts.Init(); err != nil {
		return nil, err
	}

	c := &Cache{
		bounds:           opts.TTL.bounds(),
		logger:           opts.Logger,
		metrics:          newCacheMetrics(),
		closeCleanerChan: make(chan struct{}),
	}
	if opts.Metrics != nil {
		if err := c.metrics.registerTo(opts.Metrics); err != nil {
			return nil, fmt.Errorf("failed to register cache metrics: %w", err)
		}
	}

	c.store = lru.New[Query, *entry](opts.Capacity, func(_ Query, _ *entry) {
		c.metrics.evicted.Inc()
	})

	if opts.CleanerInterval > 0 {
		go c.startCleaner(opts.CleanerInterval)
	}
	return c, nil
}

// Insert stores records under query and returns the Lookup it cached.
//
// The entry's TTL is the smallest record TTL clamped into the positive
// bounds: it starts at the configured ceiling, is pulled down by every
// record's TTL, then raised to the configured floor. An empty record
// set yields a Lookup with no records and the bounds-derived TTL. A
// prior entry for query is replaced and its recency updated.
func (c *Cache) Insert(query Query, records []dns.RR, now time.Time) *Lookup {
	ttl := c.bounds.positiveMax
	if minTTL, ok := dnsutils.MinimalTTL(records); ok {
		if d := time.Duration(minTTL) * time.Second; d < ttl {
			ttl = d
		}
	}
	if ttl < c.bounds.positiveMin {
		ttl = c.bounds.positiveMin
	}
	validUntil := now.Add(ttl)

	lookup := NewLookup(query, dnsutils.CopyRecords(records), validUntil)

	c.mu.Lock()
	c.store.Add(query, &entry{lookup: lookup, validUntil: validUntil})
	c.mu.Unlock()

	c.metrics.stored.Inc()
	c.logger.Debug("cached lookup",
		zap.Stringer("query", query),
		zap.Int("records", len(records)),
		zap.Duration("ttl", ttl),
	)
	return lookup
}

// InsertRecords partitions records into their sub-queries and stores
// each group as its own entry. It returns the Lookup whose key equals
// originalQuery, or nil if no group matched it. A nil return with
// related records cached is expected, e.g. when only a CNAME set was
// cachable under the original key.
func (c *Cache) InsertRecords(originalQuery Query, records []dns.RR, now time.Time) *Lookup {
	var answer *Lookup
	for query, group := range partition(originalQuery, records) {
		lookup := c.Insert(query, group, now)
		if query == originalQuery {
			answer = lookup
		}
	}
	return answer
}

// Duplicate stores an already cached Lookup under an additional key
// with its own deadline of now plus ttl seconds. No clamping is
// applied; the caller is expected to have derived ttl appropriately.
// Used to make an alias query, e.g. a CNAME source, resolve to an
// existing target Lookup.
func (c *Cache) Duplicate(query Query, lookup *Lookup, ttl uint32, now time.Time) *Lookup {
	validUntil := now.Add(time.Duration(ttl) * time.Second)

	c.mu.Lock()
	c.store.Add(query, &entry{lookup: lookup, validUntil: validUntil})
	c.mu.Unlock()

	c.metrics.stored.Inc()
	return lookup
}

// Negative caches a negative answer. If err carries a *NoRecordsError
// with a negative TTL, that TTL is clamped into the negative bounds,
// the answer is cached under query and a copy of the error with the
// clamped TTL is returned, so the immediate caller observes the clamp
// too. Any other error is returned unchanged and nothing is cached.
func (c *Cache) Negative(query Query, err error, now time.Time) error {
	var negative *NoRecordsError
	if !errors.As(err, &negative) || negative.NegativeTTL == nil {
		return err
	}

	ttl := time.Duration(*negative.NegativeTTL) * time.Second
	if ttl < c.bounds.negativeMin {
		ttl = c.bounds.negativeMin
	}
	if ttl > c.bounds.negativeMax {
		ttl = c.bounds.negativeMax
	}
	validUntil := now.Add(ttl)

	clamped := negative.withTTL(uint32(ttl / time.Second))

	c.mu.Lock()
	c.store.Add(query, &entry{negative: clamped, validUntil: validUntil})
	c.mu.Unlock()

	c.metrics.stored.Inc()
	c.logger.Debug("cached negative answer",
		zap.Stringer("query", query),
		zap.Duration("ttl", ttl),
	)
	return clamped
}

// Get returns the cached outcome for query at now.
//
// A miss returns (nil, nil). A positive hit returns a Lookup whose
// record TTLs are rewritten to the whole seconds remaining; a negative
// hit returns a *NoRecordsError with NegativeTTL rewritten the same
// way. A hit also marks the entry as most recently used.
//
// An entry past its deadline is removed before the miss is reported.
// This lazy expiration assumes now never moves backwards across calls;
// with a rewound clock an entry may be removed prematurely.
func (c *Cache) Get(query Query, now time.Time) (*Lookup, error) {
	c.metrics.query.Inc()

	c.mu.Lock()
	e, ok := c.store.Get(query)
	if !ok {
		c.mu.Unlock()
		return nil, nil
	}
	if !e.isCurrent(now) {
		c.store.Del(query)
		c.mu.Unlock()
		return nil, nil
	}
	lookup, negative := e.rebased(now)
	c.mu.Unlock()

	c.metrics.hit.Inc()
	if negative != nil {
		return nil, negative
	}
	return lookup, nil
}

// Clear removes all entries unconditionally.
func (c *Cache) Clear() {
	c.mu.Lock()
	c.store.Flush()
	c.mu.Unlock()
}

// Len returns the number of cached entries, including entries that are
// expired but not yet removed.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.store.Len()
}

// Close stops the background cleaner, if any. The cache itself remains
// usable after Close.
func (c *Cache) Close() error {
	c.closeOnce.Do(func() {
		close(c.closeCleanerChan)
	})
	return nil
}

func (c *Cache) startCleaner(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-c.closeCleanerChan:
			return
		case <-ticker.C:
			now := time.Now()
			c.mu.Lock()
			removed := c.store.Clean(func(_ Query, e *entry) bool {
				return !e.isCurrent(now)
			})
			c.mu.Unlock()

			if removed > 0 {
				c.logger.Debug("removed expired entries", zap.Int("removed", removed))
			}
		}
	}
}
