package requestlimit

import (
	"context"
	"errors"
	"log/slog"

	"hkid-gateway/internal/ratelimit/models"
	"hkid-gateway/internal/ratelimit/ports"
	dErrors "hkid-gateway/pkg/domain-errors"
	"hkid-gateway/pkg/platform/privacy"
	"hkid-gateway/pkg/requestcontext"
)

// Type alias so callers need not import ports directly.
type BucketStore = ports.BucketStore

// missingConfigRetryAfter is the retry hint when a class has no limit.
const missingConfigRetryAfter = 60

// Service applies per-IP limits for each endpoint class.
type Service struct {
	buckets BucketStore
	limits  map[models.EndpointClass]models.Limit
	logger  *slog.Logger
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithLimit sets the budget for one endpoint class.
func WithLimit(class models.EndpointClass, limit models.Limit) Option {
	return func(s *Service) {
		s.limits[class] = limit
	}
}

func New(buckets BucketStore, opts ...Option) (*Service, error) {
	if buckets == nil {
		return nil, errors.New("buckets store is required")
	}

	svc := &Service{
		buckets: buckets,
		limits:  make(map[models.EndpointClass]models.Limit),
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(svc)
	}

	for class, limit := range svc.limits {
		if !class.IsValid() {
			return nil, errors.New("unknown endpoint class " + string(class))
		}
		if limit.RequestsPerWindow < 1 || limit.Window <= 0 {
			return nil, errors.New("limit for class " + string(class) + " must be positive")
		}
	}
	return svc, nil
}

// CheckIP consumes one request from ip's budget for class. Classes without a
// configured limit are denied.
func (s *Service) CheckIP(ctx context.Context, ip string, class models.EndpointClass) (*models.RateLimitResult, error) {
	limit, ok := s.limits[class]
	if !ok {
		s.logger.ErrorContext(ctx, "rate limit config missing",
			"endpoint_class", class,
			"ip_prefix", privacy.AnonymizeIP(ip),
		)
		return &models.RateLimitResult{
			Allowed:    false,
			ResetAt:    requestcontext.Now(ctx),
			RetryAfter: missingConfigRetryAfter,
		}, nil
	}

	key := models.NewRateLimitKey(models.KeyPrefixIP, ip, class)
	result, err := s.buckets.Allow(ctx, key.String(), limit.RequestsPerWindow, limit.Window)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "failed to check rate limit")
	}

	if !result.Allowed {
		s.logger.InfoContext(ctx, "ip rate limit exceeded",
			"request_id", requestcontext.RequestID(ctx),
			"ip_prefix", privacy.AnonymizeIP(ip),
			"endpoint_class", class,
			"limit", limit.RequestsPerWindow,
			"window_seconds", int(limit.Window.Seconds()),
		)
	}
	return result, nil
}
