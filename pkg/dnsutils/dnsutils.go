// Package dnsutils provides small helpers for working with DNS resource
// record sets.
package dnsutils

import (
	"strconv"

	"github.com/miekg/dns"
)

// MinimalTTL returns the smallest TTL among rrs, skipping OPT records.
// ok is false if rrs holds no countable record.
func MinimalTTL(rrs []dns.RR) (ttl uint32, ok bool) {
	ttl = ^uint32(0)
	for _, rr := range rrs {
		hdr := rr.Header()
		if hdr.Rrtype == dns.TypeOPT {
			continue
		}
		ok = true
		if hdr.Ttl < ttl {
			ttl = hdr.Ttl
		}
	}
	if !ok {
		return 0, false
	}
	return ttl, true
}

// SetTTL overwrites the TTL of every record in rrs, skipping OPT records.
func SetTTL(rrs []dns.RR, ttl uint32) {
	for _, rr := range rrs {
		hdr := rr.Header()
		if hdr.Rrtype != dns.TypeOPT {
			hdr.Ttl = ttl
		}
	}
}

// CopyRecords returns a deep copy of rrs.
func CopyRecords(rrs []dns.RR) []dns.RR {
	if rrs == nil {
		return nil
	}
	out := make([]dns.RR, len(rrs))
	for i, rr := range rrs {
		out[i] = dns.Copy(rr)
	}
	return out
}

func QclassToString(u uint16) string {
	return uint16Conv(u, dns.ClassToString)
}

func QtypeToString(u uint16) string {
	return uint16Conv(u, dns.TypeToString)
}

func uint16Conv(u uint16, m map[uint16]string) string {
	if s, ok := m[u]; ok {
		return s
	}
	return strconv.Itoa(int(u))
}
