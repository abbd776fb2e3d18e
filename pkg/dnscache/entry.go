package dnscache

import (
	"time"

	"github.com/pmkol/rescache/pkg/dnsutils"
)

// entry is the stored unit: a positive lookup or a negative answer,
// plus the absolute deadline derived from the clamped TTL at insertion
// time. The deadline never changes; the whole entry is replaced instead.
type entry struct {
	lookup     *Lookup         // nil for negative entries
	negative   *NoRecordsError // nil for positive entries
	validUntil time.Time
}

// isCurrent reports whether the entry is still fresh at now. The
// boundary is inclusive: an entry exactly at its deadline is a hit.
func (e *entry) isCurrent(now time.Time) bool {
	return !now.After(e.validUntil)
}

// remaining returns the time left until the deadline, never negative.
func (e *entry) remaining(now time.Time) time.Duration {
	if d := e.validUntil.Sub(now); d > 0 {
		return d
	}
	return 0
}

// rebased derives the outcome a caller should observe at now: TTLs
// reflect the whole seconds remaining rather than what was originally
// cached. Positive entries get copied records with rewritten TTLs and
// keep the original deadline; negative entries get a copy of the error
// with NegativeTTL rewritten.
func (e *entry) rebased(now time.Time) (*Lookup, *NoRecordsError) {
	ttl := uint32(e.remaining(now) / time.Second)

	if e.negative != nil {
		return nil, e.negative.withTTL(ttl)
	}

	records := dnsutils.CopyRecords(e.lookup.records)
	dnsutils.SetTTL(records, ttl)
	return NewLookup(e.lookup.query, records, e.validUntil), nil
}
