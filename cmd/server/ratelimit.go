package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"hkid-gateway/internal/platform/config"
	"hkid-gateway/internal/platform/redis"
	rlmetrics "hkid-gateway/internal/ratelimit/metrics"
	rlmiddleware "hkid-gateway/internal/ratelimit/middleware"
	"hkid-gateway/internal/ratelimit/models"
	"hkid-gateway/internal/ratelimit/store/bucket"
	"hkid-gateway/pkg/platform/circuit"
)

// rateLimiting bundles the limiter middleware with what main needs to
// maintain it.
type rateLimiting struct {
	middleware *rlmiddleware.Middleware
	memory     []*bucket.InMemoryBucketStore
	health     healthCheck
	close      func() error
}

func (r *rateLimiting) Close() {
	if r.close != nil {
		_ = r.close()
	}
}

// sweep drops idle in-memory windows until ctx is done.
func (r *rateLimiting) sweep(ctx context.Context, log *slog.Logger, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			removed := 0
			for _, store := range r.memory {
				removed += store.Sweep(ctx)
			}
			if removed > 0 {
				log.Debug("swept idle rate limit windows", "removed", removed)
			}
		}
	}
}

func limitsFromConfig(cfg config.RateLimitConfig) map[models.EndpointClass]models.Limit {
	return map[models.EndpointClass]models.Limit{
		models.ClassGenerate: {RequestsPerWindow: cfg.Generate, Window: cfg.Window},
		models.ClassValidate: {RequestsPerWindow: cfg.Validate, Window: cfg.Window},
		models.ClassRead:     {RequestsPerWindow: cfg.Read, Window: cfg.Window},
	}
}

// buildRateLimiter uses Redis when REDIS_URL is set, guarded by a circuit
// breaker with an in-memory fallback. Without Redis, limits are per process.
func buildRateLimiter(ctx context.Context, cfg config.Server, log *slog.Logger, reg prometheus.Registerer) (*rateLimiting, error) {
	m := rlmetrics.New(reg)
	limits := limitsFromConfig(cfg.RateLimit)
	opts := []rlmiddleware.Option{
		rlmiddleware.WithMetrics(m),
		rlmiddleware.WithDisabled(cfg.RateLimit.Disabled),
	}

	memory := bucket.New()
	local, err := rlmiddleware.NewFallbackLimiter(memory, limits, log)
	if err != nil {
		return nil, fmt.Errorf("build rate limiter: %w", err)
	}
	rl := &rateLimiting{memory: []*bucket.InMemoryBucketStore{memory}}

	client, err := redis.New(ctx, cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("connect redis: %w", err)
	}
	if client == nil {
		log.Info("rate limiting uses in-memory store")
		rl.middleware = rlmiddleware.New(local, log, opts...)
		return rl, nil
	}

	primary, err := rlmiddleware.NewStoreLimiter(bucket.NewRedis(client), limits, log)
	if err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("build rate limiter: %w", err)
	}
	breaker := circuit.New("ratelimit-redis")
	resilient := rlmiddleware.NewResilientLimiter(primary, local, breaker, log, m)

	log.Info("rate limiting uses redis store with in-memory fallback")
	rl.middleware = rlmiddleware.New(resilient, log, opts...)
	rl.health = client.Health
	rl.close = client.Close
	return rl, nil
}
