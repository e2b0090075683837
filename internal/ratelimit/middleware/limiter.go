package middleware

import (
	"context"
	"log/slog"

	"hkid-gateway/internal/ratelimit/metrics"
	"hkid-gateway/internal/ratelimit/models"
	"hkid-gateway/internal/ratelimit/service/requestlimit"
	"hkid-gateway/pkg/platform/circuit"
)

// Limiter implements RateLimiter over the request limit service.
type Limiter struct {
	requests *requestlimit.Service
}

// NewLimiter creates a Limiter backed by requests.
func NewLimiter(requests *requestlimit.Service) *Limiter {
	return &Limiter{requests: requests}
}

// NewStoreLimiter builds a Limiter over store with the given per-class limits.
func NewStoreLimiter(store requestlimit.BucketStore, limits map[models.EndpointClass]models.Limit, logger *slog.Logger) (*Limiter, error) {
	opts := []requestlimit.Option{requestlimit.WithLogger(logger)}
	for class, limit := range limits {
		opts = append(opts, requestlimit.WithLimit(class, limit))
	}
	requests, err := requestlimit.New(store, opts...)
	if err != nil {
		return nil, err
	}
	return NewLimiter(requests), nil
}

func (l *Limiter) CheckIPRateLimit(ctx context.Context, ip string, class models.EndpointClass) (*models.RateLimitResult, error) {
	return l.requests.CheckIP(ctx, ip, class)
}

// ResilientLimiter guards a primary limiter (typically Redis backed) with a
// circuit breaker. While the circuit is open, results come from the fallback
// and are marked Degraded. The primary is still probed on every check so the
// breaker can close once it recovers.
type ResilientLimiter struct {
	primary  RateLimiter
	fallback RateLimiter
	breaker  *circuit.Breaker
	logger   *slog.Logger
	metrics  *metrics.Metrics
}

// NewResilientLimiter wires primary and fallback behind breaker.
func NewResilientLimiter(primary, fallback RateLimiter, breaker *circuit.Breaker, logger *slog.Logger, m *metrics.Metrics) *ResilientLimiter {
	return &ResilientLimiter{
		primary:  primary,
		fallback: fallback,
		breaker:  breaker,
		logger:   logger,
		metrics:  m,
	}
}

func (l *ResilientLimiter) CheckIPRateLimit(ctx context.Context, ip string, class models.EndpointClass) (*models.RateLimitResult, error) {
	result, err := l.primary.CheckIPRateLimit(ctx, ip, class)
	if err != nil {
		l.metrics.IncrementPrimaryFailures()
		useFallback, change := l.breaker.RecordFailure()
		if change.Opened {
			l.metrics.SetCircuitOpen(true)
			l.logger.WarnContext(ctx, "rate limit store circuit opened, using in-memory fallback",
				"breaker", l.breaker.Name(),
				"error", err,
			)
		}
		if !useFallback {
			return nil, err
		}
		return l.checkFallback(ctx, ip, class)
	}

	usePrimary, change := l.breaker.RecordSuccess()
	if change.Closed {
		l.metrics.SetCircuitOpen(false)
		l.logger.InfoContext(ctx, "rate limit store circuit closed",
			"breaker", l.breaker.Name(),
		)
	}
	if usePrimary {
		return result, nil
	}
	return l.checkFallback(ctx, ip, class)
}

func (l *ResilientLimiter) checkFallback(ctx context.Context, ip string, class models.EndpointClass) (*models.RateLimitResult, error) {
	l.metrics.IncrementFallback()
	result, err := l.fallback.CheckIPRateLimit(ctx, ip, class)
	if err != nil {
		return nil, err
	}
	result.Degraded = true
	return result, nil
}
