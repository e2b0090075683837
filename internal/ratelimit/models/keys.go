package models

import "strings"

// KeyPrefix names the identifier type a bucket is keyed by.
type KeyPrefix string

const (
	KeyPrefixIP KeyPrefix = "ip"
)

// RateLimitKey identifies one sliding window bucket.
type RateLimitKey struct {
	prefix     KeyPrefix
	identifier string
	class      EndpointClass
}

// NewRateLimitKey builds a key with the identifier sanitized.
func NewRateLimitKey(prefix KeyPrefix, identifier string, class EndpointClass) RateLimitKey {
	return RateLimitKey{prefix: prefix, identifier: SanitizeKeySegment(identifier), class: class}
}

// String renders "prefix:identifier:class".
func (k RateLimitKey) String() string {
	return string(k.prefix) + ":" + k.identifier + ":" + string(k.class)
}

// SanitizeKeySegment escapes delimiter characters in rate limit key segments
// to prevent key collision attacks where user-controlled identifiers containing
// ':' could manipulate adjacent rate limit buckets.
//
// Example: an IPv6 address "2001:db8::1" becomes "2001_db8__1".
func SanitizeKeySegment(s string) string {
	return strings.ReplaceAll(s, ":", "_")
}
