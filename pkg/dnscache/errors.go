package dnscache

import (
	"fmt"

	"github.com/miekg/dns"
)

// NoRecordsError is an authoritative negative answer: the queried name
// and type yielded no records. It is expected, cacheable data rather
// than a failure; the cache stores it when NegativeTTL is set.
type NoRecordsError struct {
	// Query is the query that produced the negative answer.
	Query Query
	// Rcode is the response code of the answer, e.g. dns.RcodeNameError.
	Rcode int
	// SOA is the authority SOA record of the answer, if any.
	SOA *dns.SOA
	// NegativeTTL is the duration in seconds for which the negative
	// answer may be cached. nil if the upstream provided none; such an
	// error is passed through uncached.
	NegativeTTL *uint32
}

func (e *NoRecordsError) Error() string {
	return fmt.Sprintf("no records found for %v, rcode %s", e.Query, rcodeToString(e.Rcode))
}

// withTTL returns a copy of e with NegativeTTL set to ttl.
func (e *NoRecordsError) withTTL(ttl uint32) *NoRecordsError {
	cp := *e
	cp.NegativeTTL = &ttl
	return &cp
}

func rcodeToString(rcode int) string {
	if s, ok := dns.RcodeToString[rcode]; ok {
		return s
	}
	return fmt.Sprintf("%d", rcode)
}
