package models

import (
	"time"
)

// EndpointClass categorizes endpoints for differentiated rate limiting.
type EndpointClass string

const (
	// ClassGenerate: number generation (30 req/min) - /hkid/generate
	ClassGenerate EndpointClass = "generate"
	// ClassValidate: validation (120 req/min) - /hkid/validate, /hkid/validate/batch
	ClassValidate EndpointClass = "validate"
	// ClassRead: lookups (300 req/min) - /hkid/prefixes, /hkid/symbols, /hkid/check-digit
	ClassRead EndpointClass = "read"
)

// IsValid checks if the endpoint class is one of the supported enum values.
func (c EndpointClass) IsValid() bool {
	switch c {
	case ClassGenerate, ClassValidate, ClassRead:
		return true
	}
	return false
}

// Limit is a request budget per sliding window.
type Limit struct {
	RequestsPerWindow int
	Window            time.Duration
}

// RateLimitResult represents the outcome of a rate limit check.
type RateLimitResult struct {
	Allowed    bool      `json:"allowed"`
	Limit      int       `json:"limit"`
	Remaining  int       `json:"remaining"`
	ResetAt    time.Time `json:"reset_at"`
	RetryAfter int       `json:"retry_after,omitempty"` // seconds, only set when not allowed

	// Degraded is set when the result came from the in-memory fallback
	// because the primary store is unavailable.
	Degraded bool `json:"-"`
}
