package dnscache

import "time"

// MaxTTL is the default ceiling for cached entries, one day in seconds.
//
// RFC 2181 section 8 allows TTL values up to 2147483647, but resolvers
// commonly place a much lower upper bound on received TTLs.
const MaxTTL uint32 = 86400

// TTLConfig carries the optional TTL bounds for the cache. All values
// are in seconds. A nil field falls back to its default: 0 for the
// minimums, MaxTTL for the maximums.
type TTLConfig struct {
	// PositiveMinTTL is the floor for positive answers. Positive answers
	// whose TTL is below it are cached for PositiveMinTTL instead.
	PositiveMinTTL *uint32 `yaml:"positive_min_ttl"`
	// PositiveMaxTTL is the ceiling for positive answers.
	PositiveMaxTTL *uint32 `yaml:"positive_max_ttl"`
	// NegativeMinTTL is the floor for negative (e.g. NXDOMAIN) answers.
	NegativeMinTTL *uint32 `yaml:"negative_min_ttl"`
	// NegativeMaxTTL is the ceiling for negative answers.
	NegativeMaxTTL *uint32 `yaml:"negative_max_ttl"`
}

// ttlBounds is a TTLConfig resolved against the defaults.
type ttlBounds struct {
	positiveMin time.Duration
	positiveMax time.Duration
	negativeMin time.Duration
	negativeMax time.Duration
}

func (c TTLConfig) bounds() ttlBounds {
	secs := func(v *uint32, def uint32) time.Duration {
		if v == nil {
			return time.Duration(def) * time.Second
		}
		return time.Duration(*v) * time.Second
	}
	return ttlBounds{
		positiveMin: secs(c.PositiveMinTTL, 0),
		positiveMax: secs(c.PositiveMaxTTL, MaxTTL),
		negativeMin: secs(c.NegativeMinTTL, 0),
		negativeMax: secs(c.NegativeMaxTTL, MaxTTL),
	}
}
