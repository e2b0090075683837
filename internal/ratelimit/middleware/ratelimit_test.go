package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hkid-gateway/internal/ratelimit/metrics"
	"hkid-gateway/internal/ratelimit/models"
	"hkid-gateway/pkg/requestcontext"
)

type stubLimiter struct {
	result *models.RateLimitResult
	err    error
	calls  int
	lastIP string
}

func (s *stubLimiter) CheckIPRateLimit(_ context.Context, ip string, _ models.EndpointClass) (*models.RateLimitResult, error) {
	s.calls++
	s.lastIP = ip
	if s.err != nil {
		return nil, s.err
	}
	r := *s.result
	return &r, nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func serve(t *testing.T, mw *Middleware, class models.EndpointClass) (*httptest.ResponseRecorder, bool) {
	t.Helper()
	reached := false
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		reached = true
		w.WriteHeader(http.StatusOK)
	})
	req := httptest.NewRequest(http.MethodPost, "/hkid/generate", nil)
	req = req.WithContext(requestcontext.WithClientMetadata(req.Context(), "203.0.113.9", "test"))
	rec := httptest.NewRecorder()
	mw.RateLimit(class)(next).ServeHTTP(rec, req)
	return rec, reached
}

func TestRateLimit_Allowed(t *testing.T) {
	resetAt := time.Unix(1_700_000_000, 0)
	limiter := &stubLimiter{result: &models.RateLimitResult{Allowed: true, Limit: 30, Remaining: 29, ResetAt: resetAt}}
	mw := New(limiter, discardLogger())

	rec, reached := serve(t, mw, models.ClassGenerate)

	assert.True(t, reached)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "203.0.113.9", limiter.lastIP)
	assert.Equal(t, "30", rec.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "29", rec.Header().Get("X-RateLimit-Remaining"))
	assert.Equal(t, "1700000000", rec.Header().Get("X-RateLimit-Reset"))
	assert.Empty(t, rec.Header().Get(StatusHeader))
}

func TestRateLimit_Denied(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	limiter := &stubLimiter{result: &models.RateLimitResult{Allowed: false, Limit: 30, ResetAt: time.Now().Add(time.Minute), RetryAfter: 42}}
	mw := New(limiter, discardLogger(), WithMetrics(m))

	rec, reached := serve(t, mw, models.ClassGenerate)

	assert.False(t, reached)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "42", rec.Header().Get("Retry-After"))
	assert.Equal(t, "0", rec.Header().Get("X-RateLimit-Remaining"))

	var body models.RateLimitExceededResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "rate_limit_exceeded", body.Error)
	assert.Equal(t, 42, body.RetryAfter)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Rejected.WithLabelValues("generate")))
}

func TestRateLimit_FailsOpen(t *testing.T) {
	limiter := &stubLimiter{err: errors.New("store down")}
	mw := New(limiter, discardLogger())

	rec, reached := serve(t, mw, models.ClassValidate)

	assert.True(t, reached)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Header().Get("X-RateLimit-Limit"))
}

func TestRateLimit_DegradedHeader(t *testing.T) {
	limiter := &stubLimiter{result: &models.RateLimitResult{Allowed: true, Limit: 10, Remaining: 9, ResetAt: time.Now(), Degraded: true}}
	mw := New(limiter, discardLogger())

	rec, _ := serve(t, mw, models.ClassRead)

	assert.Equal(t, "degraded", rec.Header().Get(StatusHeader))
}

func TestRateLimit_Disabled(t *testing.T) {
	limiter := &stubLimiter{err: errors.New("should not be called")}
	mw := New(limiter, discardLogger(), WithDisabled(true))

	rec, reached := serve(t, mw, models.ClassGenerate)

	assert.True(t, reached)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Zero(t, limiter.calls)
}
