package dnscache

import (
	"fmt"

	"github.com/miekg/dns"

	"github.com/pmkol/rescache/pkg/dnsutils"
)

// Query identifies a resolution request by owner name, type and class.
// The name is stored in canonical form (lowercased FQDN), so queries
// that differ only in case compare equal. Query is comparable and is
// used directly as the cache key.
type Query struct {
	name   string
	qtype  uint16
	qclass uint16
}

// NewQuery returns a class IN query for name and qtype.
func NewQuery(name string, qtype uint16) Query {
	return Query{
		name:   dns.CanonicalName(name),
		qtype:  qtype,
		qclass: dns.ClassINET,
	}
}

// NewQueryFromQuestion builds a Query from the question section of a
// DNS message.
func NewQueryFromQuestion(q dns.Question) Query {
	return Query{
		name:   dns.CanonicalName(q.Name),
		qtype:  q.Qtype,
		qclass: q.Qclass,
	}
}

// WithClass returns a copy of q with its class replaced.
func (q Query) WithClass(qclass uint16) Query {
	q.qclass = qclass
	return q
}

func (q Query) Name() string {
	return q.name
}

func (q Query) Qtype() uint16 {
	return q.qtype
}

func (q Query) Qclass() uint16 {
	return q.qclass
}

func (q Query) String() string {
	return fmt.Sprintf("%s %s %s", q.name, dnsutils.QclassToString(q.qclass), dnsutils.QtypeToString(q.qtype))
}

// key returns a compact binary identification key.
func (q Query) key() string {
	buf := make([]byte, 0, len(q.name)+4)
	buf = append(buf, q.name...)
	buf = append(buf, byte(q.qtype>>8), byte(q.qtype))
	buf = append(buf, byte(q.qclass>>8), byte(q.qclass))
	return string(buf)
}
