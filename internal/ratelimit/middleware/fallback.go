package middleware

import (
	"log/slog"

	"hkid-gateway/internal/ratelimit/models"
	"hkid-gateway/internal/ratelimit/store/bucket"
)

// NewFallbackLimiter creates a limiter over in-memory buckets with the same
// per-class limits as the primary. Used by the circuit breaker to keep
// limiting during store outages. A nil store gets a fresh one.
func NewFallbackLimiter(store *bucket.InMemoryBucketStore, limits map[models.EndpointClass]models.Limit, logger *slog.Logger) (*Limiter, error) {
	if store == nil {
		store = bucket.New()
	}
	return NewStoreLimiter(store, limits, logger)
}
