package bucket

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"hkid-gateway/internal/ratelimit/models"
)

const (
	testLimit  = 10
	testWindow = time.Minute
)

type InMemoryBucketStoreSuite struct {
	suite.Suite
	store *InMemoryBucketStore
	now   time.Time
	ctx   context.Context
}

func TestInMemoryBucketStoreSuite(t *testing.T) {
	suite.Run(t, new(InMemoryBucketStoreSuite))
}

func (s *InMemoryBucketStoreSuite) SetupTest() {
	s.now = time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	s.store = New(WithClock(func() time.Time { return s.now }))
	s.ctx = context.Background()
}

func (s *InMemoryBucketStoreSuite) advance(d time.Duration) {
	s.now = s.now.Add(d)
}

func (s *InMemoryBucketStoreSuite) TestAllow() {
	s.Run("first request allowed", func() {
		result, err := s.store.Allow(s.ctx, "ip:a:read", testLimit, testWindow)
		s.Require().NoError(err)
		s.True(result.Allowed)
		s.Equal(testLimit, result.Limit)
		s.Equal(testLimit-1, result.Remaining)
		s.Equal(s.now.Add(testWindow), result.ResetAt)
	})

	s.Run("requests up to limit allowed", func() {
		var result *models.RateLimitResult
		var err error
		for range testLimit {
			result, err = s.store.Allow(s.ctx, "ip:b:read", testLimit, testWindow)
		}
		s.Require().NoError(err)
		s.True(result.Allowed)
		s.Equal(0, result.Remaining)
	})

	s.Run("request over limit denied with retry hint", func() {
		for range testLimit {
			_, err := s.store.Allow(s.ctx, "ip:c:read", testLimit, testWindow)
			s.Require().NoError(err)
		}
		s.advance(15 * time.Second)

		result, err := s.store.Allow(s.ctx, "ip:c:read", testLimit, testWindow)
		s.Require().NoError(err)
		s.False(result.Allowed)
		s.Equal(0, result.Remaining)
		s.Equal(testLimit, result.Limit)
		s.Equal(45, result.RetryAfter)
	})
}

func (s *InMemoryBucketStoreSuite) TestSlidingWindow() {
	key := "ip:slide:generate"

	for range 5 {
		_, err := s.store.Allow(s.ctx, key, 5, testWindow)
		s.Require().NoError(err)
	}
	s.advance(30 * time.Second)
	for range 5 {
		result, err := s.store.Allow(s.ctx, key, 10, testWindow)
		s.Require().NoError(err)
		s.True(result.Allowed)
	}

	s.advance(30 * time.Second) // first five expire exactly at the boundary
	count, err := s.store.GetCurrentCount(s.ctx, key, testWindow)
	s.Require().NoError(err)
	s.Equal(5, count)

	s.advance(30 * time.Second)
	count, err = s.store.GetCurrentCount(s.ctx, key, testWindow)
	s.Require().NoError(err)
	s.Equal(0, count)
}

func (s *InMemoryBucketStoreSuite) TestAllowN() {
	s.Run("cost of 5 consumes 5 tokens", func() {
		result, err := s.store.AllowN(s.ctx, "ip:n5:validate", 5, testLimit, testWindow)
		s.Require().NoError(err)
		s.True(result.Allowed)
		s.Equal(5, result.Remaining)
	})

	s.Run("cost greater than remaining denied without consuming", func() {
		first, err := s.store.AllowN(s.ctx, "ip:deny:validate", 7, testLimit, testWindow)
		s.Require().NoError(err)
		s.Require().True(first.Allowed)

		result, err := s.store.AllowN(s.ctx, "ip:deny:validate", 4, testLimit, testWindow)
		s.Require().NoError(err)
		s.False(result.Allowed)
		s.Equal(3, result.Remaining)

		count, err := s.store.GetCurrentCount(s.ctx, "ip:deny:validate", testWindow)
		s.Require().NoError(err)
		s.Equal(7, count)
	})
}

func (s *InMemoryBucketStoreSuite) TestReset() {
	_, err := s.store.AllowN(s.ctx, "ip:reset:read", testLimit, testLimit, testWindow)
	s.Require().NoError(err)

	s.Require().NoError(s.store.Reset(s.ctx, "ip:reset:read"))

	result, err := s.store.Allow(s.ctx, "ip:reset:read", testLimit, testWindow)
	s.Require().NoError(err)
	s.True(result.Allowed)
	s.Equal(testLimit-1, result.Remaining)
}

func (s *InMemoryBucketStoreSuite) TestSweep() {
	_, _ = s.store.Allow(s.ctx, "ip:old:read", testLimit, testWindow)
	s.advance(2 * testWindow)
	_, _ = s.store.Allow(s.ctx, "ip:new:read", testLimit, testWindow)

	s.Equal(1, s.store.Sweep(s.ctx))
	s.Len(s.store.buckets, 1)
}

func TestInMemoryBucketStore_Concurrent(t *testing.T) {
	store := New()
	ctx := context.Background()
	limit := 100
	var wg sync.WaitGroup
	var mu sync.Mutex
	allowed := 0

	for range 200 {
		wg.Go(func() {
			result, err := store.Allow(ctx, "ip:concurrent:read", limit, testWindow)
			if err == nil && result.Allowed {
				mu.Lock()
				allowed++
				mu.Unlock()
			}
		})
	}
	wg.Wait()

	if allowed != limit {
		t.Fatalf("expected %d allowed, got %d", limit, allowed)
	}
}
