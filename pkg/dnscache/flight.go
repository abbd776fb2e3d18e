package dnscache

import (
	"context"
	"time"

	"github.com/miekg/dns"
)

// FillFunc obtains records for query from an upstream source. A
// returned *NoRecordsError carrying a negative TTL is cached as a
// negative answer; any other error is passed through uncached.
type FillFunc func(ctx context.Context, query Query) ([]dns.RR, error)

// Fetch returns the cached outcome for query, calling fill on a miss
// and caching what it produces. Concurrent misses for the same query
// are collapsed into a single fill call; the other callers share its
// result.
//
// Like InsertRecords, Fetch can return (nil, nil) when fill succeeded
// but none of the cached groups answered query directly.
func (c *Cache) Fetch(ctx context.Context, query Query, fill FillFunc) (*Lookup, error) {
	if lookup, err := c.Get(query, time.Now()); lookup != nil || err != nil {
		return lookup, err
	}

	type result struct {
		lookup *Lookup
		err    error
	}

	key := query.key()
	ch := c.fillSF.DoChan(key, func() (interface{}, error) {
		defer c.fillSF.Forget(key)

		// Another flight may have filled the entry while this one was
		// being queued.
		if lookup, err := c.Get(query, time.Now()); lookup != nil || err != nil {
			return result{lookup: lookup, err: err}, nil
		}

		records, err := fill(ctx, query)
		now := time.Now()
		if err != nil {
			return result{err: c.Negative(query, err, now)}, nil
		}
		return result{lookup: c.InsertRecords(query, records, now)}, nil
	})

	select {
	case res := <-ch:
		r := res.Val.(result)
		return r.lookup, r.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
