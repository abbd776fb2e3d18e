package dnscache

import (
	"time"

	"github.com/miekg/dns"
)

// Lookup is an immutable record set answering one query, stamped with
// the absolute deadline after which it is no longer valid. A single
// Lookup may be shared by multiple cache entries (see Cache.Duplicate);
// callers must not modify its records.
type Lookup struct {
	query      Query
	records    []dns.RR
	validUntil time.Time
}

func NewLookup(query Query, records []dns.RR, validUntil time.Time) *Lookup {
	return &Lookup{
		query:      query,
		records:    records,
		validUntil: validUntil,
	}
}

// Query returns the query this lookup answers.
func (l *Lookup) Query() Query {
	return l.query
}

// Records returns the answer records. The returned slice is shared;
// callers must not modify it or the records it holds.
func (l *Lookup) Records() []dns.RR {
	return l.records
}

// ValidUntil returns the absolute deadline of this lookup.
func (l *Lookup) ValidUntil() time.Time {
	return l.validUntil
}

func (l *Lookup) Len() int {
	return len(l.records)
}
