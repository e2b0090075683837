package main

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"

	"hkid-gateway/internal/platform/metrics"
	"hkid-gateway/pkg/platform/httputil"
	"hkid-gateway/pkg/platform/middleware/metadata"
	"hkid-gateway/pkg/platform/middleware/requestid"
	"hkid-gateway/pkg/platform/middleware/requesttime"
)

const healthTimeout = 2 * time.Second

type routeRegistrar interface {
	Register(r chi.Router)
}

// healthCheck reports whether an optional dependency is reachable.
type healthCheck func(ctx context.Context) error

type healthResponse struct {
	Status    string `json:"status"`
	RateLimit string `json:"rate_limit"`
}

func newRouter(handler routeRegistrar, m *metrics.Metrics, rateLimitHealth healthCheck) http.Handler {
	r := chi.NewRouter()
	r.Use(requestid.Middleware)
	r.Use(metadata.ClientMetadata)
	r.Use(requesttime.Middleware)
	r.Use(middleware.Recoverer)
	r.Use(m.Middleware)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		resp := healthResponse{Status: "ok", RateLimit: "memory"}
		if rateLimitHealth != nil {
			ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
			defer cancel()
			resp.RateLimit = "redis"
			if err := rateLimitHealth(ctx); err != nil {
				// The limiter falls back to memory, so the API stays up.
				resp.RateLimit = "degraded"
			}
		}
		httputil.WriteJSON(w, http.StatusOK, resp)
	})

	handler.Register(r)
	return r
}

func metricsRouter(g prometheus.Gatherer) http.Handler {
	r := chi.NewRouter()
	r.Handle("/metrics", metrics.Handler(g))
	return r
}
