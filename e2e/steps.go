package e2e

import (
	"context"

	"github.com/cucumber/godog"

	"hkid-gateway/e2e/steps/common"
	"hkid-gateway/e2e/steps/hkid"
	"hkid-gateway/e2e/steps/ratelimit"
)

// RegisterSteps registers all step definitions from modular packages
func RegisterSteps(ctx *godog.ScenarioContext, tc *TestContext) {
	ctx.Before(func(ctx context.Context, _ *godog.Scenario) (context.Context, error) {
		tc.Reset()
		return ctx, nil
	})

	// Register common steps (service up, status and field assertions)
	common.RegisterSteps(ctx, tc)

	// Register hkid endpoint steps
	hkid.RegisterSteps(ctx, tc)

	// Register rate limiting steps
	ratelimit.RegisterSteps(ctx, tc)
}
