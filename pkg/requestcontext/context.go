// Package requestcontext carries request-scoped values (request ID, client
// metadata, request time) without depending on net/http, so the service
// layer and hkidctl can read them the same way.
//
//	ctx = requestcontext.WithRequestID(ctx, "req-1")
//	ctx = requestcontext.WithClientMetadata(ctx, "203.0.113.7", "curl/8")
//	ctx = requestcontext.WithTime(ctx, fixedTime)
package requestcontext

import (
	"context"
	"time"
)

type key int

const (
	requestIDKey key = iota
	clientKey
	requestTimeKey
)

// client groups the values set together by the metadata middleware.
type client struct {
	ip        string
	userAgent string
}

func value[T any](ctx context.Context, k key) (T, bool) {
	v, ok := ctx.Value(k).(T)
	return v, ok
}

// ClientIP returns the client IP, or "" when unset.
func ClientIP(ctx context.Context) string {
	c, _ := value[client](ctx, clientKey)
	return c.ip
}

// UserAgent returns the client User-Agent, or "" when unset.
func UserAgent(ctx context.Context) string {
	c, _ := value[client](ctx, clientKey)
	return c.userAgent
}

// WithClientMetadata stores the client IP and User-Agent.
func WithClientMetadata(ctx context.Context, clientIP, userAgent string) context.Context {
	return context.WithValue(ctx, clientKey, client{ip: clientIP, userAgent: userAgent})
}

// RequestID returns the request ID, or "" when unset.
func RequestID(ctx context.Context) string {
	id, _ := value[string](ctx, requestIDKey)
	return id
}

func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

// Now returns the time the request arrived. Outside a request (CLI, tests)
// it is the current time.
func Now(ctx context.Context) time.Time {
	if t, ok := value[time.Time](ctx, requestTimeKey); ok {
		return t
	}
	return time.Now()
}

func WithTime(ctx context.Context, t time.Time) context.Context {
	return context.WithValue(ctx, requestTimeKey, t)
}
