package ratelimit

import (
	"context"
	"fmt"
	"strconv"

	"github.com/cucumber/godog"
)

// TestContext interface defines the methods needed from the main test context
type TestContext interface {
	POST(path string, body interface{}) error
	GET(path string, headers map[string]string) error
	SetHeader(name, value string)
	GetLastResponseStatus() int
	GetLastResponseBody() []byte
	GetLastResponseHeader(name string) string
}

// RegisterSteps registers rate-limiting step definitions
func RegisterSteps(ctx *godog.ScenarioContext, tc TestContext) {
	steps := &ratelimitSteps{tc: tc}

	ctx.Step(`^I am calling from IP "([^"]*)"$`, steps.callingFromIP)
	ctx.Step(`^I call "([^"]*)" until I am rate limited$`, steps.callUntilLimited)
	ctx.Step(`^the remaining budget header should be a number$`, steps.remainingIsNumber)
	ctx.Step(`^the response should ask me to retry later$`, steps.shouldAskRetry)
}

type ratelimitSteps struct {
	tc TestContext
}

// The gateway trusts X-Forwarded-For, so each scenario picks its own client.
func (s *ratelimitSteps) callingFromIP(_ context.Context, ip string) error {
	s.tc.SetHeader("X-Forwarded-For", ip)
	return nil
}

func (s *ratelimitSteps) callUntilLimited(_ context.Context, path string) error {
	limit := 0
	for i := 0; ; i++ {
		if err := s.tc.GET(path, nil); err != nil {
			return err
		}
		if s.tc.GetLastResponseStatus() == 429 {
			return nil
		}
		if i == 0 {
			n, err := strconv.Atoi(s.tc.GetLastResponseHeader("X-RateLimit-Limit"))
			if err != nil {
				return fmt.Errorf("first response has no usable X-RateLimit-Limit: %w", err)
			}
			limit = n
		}
		if i > limit {
			return fmt.Errorf("still not limited after %d requests with limit %d", i+1, limit)
		}
	}
}

func (s *ratelimitSteps) remainingIsNumber(_ context.Context) error {
	if _, err := strconv.Atoi(s.tc.GetLastResponseHeader("X-RateLimit-Remaining")); err != nil {
		return fmt.Errorf("X-RateLimit-Remaining is not a number: %w", err)
	}
	return nil
}

func (s *ratelimitSteps) shouldAskRetry(_ context.Context) error {
	if s.tc.GetLastResponseHeader("Retry-After") == "" {
		return fmt.Errorf("Retry-After header missing")
	}
	return nil
}
