package dnscache

import (
	"github.com/miekg/dns"
)

// partition groups a flat set of newly obtained records into the
// sub-queries used as cache keys. OPT pseudo records carry EDNS
// metadata, not answer data, and are skipped.
//
// The key type is usually the record's own type, with two exceptions:
//
//   - A CNAME is keyed under the original query's type, so a CNAME
//     chain stays retrievable by the type that was actually asked for.
//   - An RRSIG is keyed under the type it covers. One owner name can
//     hold several RRSIGs, each covering a different record type and
//     issued at a different time; keyed by their own type, caching one
//     would silently overwrite a still-valid signature for another
//     covered type. A zero covered type falls back to RRSIG itself.
func partition(original Query, records []dns.RR) map[Query][]dns.RR {
	buckets := make(map[Query][]dns.RR)

	for _, record := range records {
		hdr := record.Header()
		rtype := hdr.Rrtype

		switch record := record.(type) {
		case *dns.CNAME:
			rtype = original.qtype
		case *dns.RRSIG:
			if record.TypeCovered != 0 {
				rtype = record.TypeCovered
			}
		case *dns.OPT:
			continue
		}

		query := Query{
			name:   dns.CanonicalName(hdr.Name),
			qtype:  rtype,
			qclass: hdr.Class,
		}
		buckets[query] = append(buckets[query], record)
	}

	return buckets
}
