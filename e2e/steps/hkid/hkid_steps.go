package hkid

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/cucumber/godog"
)

// TestContext interface defines the methods needed from the main test context
type TestContext interface {
	POST(path string, body interface{}) error
	GET(path string, headers map[string]string) error
	GetResponseField(field string) (interface{}, error)
	GetLastResponseStatus() int
	GetLastResponseBody() []byte
	Remember(key, value string)
	Recall(key string) (string, bool)
}

// RegisterSteps registers hkid endpoint step definitions
func RegisterSteps(ctx *godog.ScenarioContext, tc TestContext) {
	steps := &hkidSteps{tc: tc}

	ctx.Step(`^I validate "([^"]*)"$`, steps.validate)
	ctx.Step(`^I validate "([^"]*)" requiring a known prefix$`, steps.validateKnown)
	ctx.Step(`^I validate the batch "([^"]*)"$`, steps.validateBatch)
	ctx.Step(`^the batch should report (\d+) valid, (\d+) invalid and (\d+) rejected$`, steps.batchShouldReport)

	ctx.Step(`^I generate (\d+) HKIDs? with prefix "([^"]*)"$`, steps.generateWithPrefix)
	ctx.Step(`^I generate (\d+) HKIDs? with known prefixes$`, steps.generateKnown)
	ctx.Step(`^every generated HKID should start with "([^"]*)"$`, steps.everyGeneratedStartsWith)
	ctx.Step(`^every generated HKID should validate$`, steps.everyGeneratedValidates)

	ctx.Step(`^I request the check digit for "([^"]*)"$`, steps.requestCheckDigit)
	ctx.Step(`^I look up prefix "([^"]*)"$`, steps.lookUpPrefix)
	ctx.Step(`^I look up symbol "([^"]*)"$`, steps.lookUpSymbol)
	ctx.Step(`^validating "([^"]*)" and "([^"]*)" should give the same answer$`, steps.sameAnswer)
}

type hkidSteps struct {
	tc        TestContext
	generated []string
}

type validateBody struct {
	HKID        string `json:"hkid"`
	MustBeKnown bool   `json:"must_be_known"`
}

func (s *hkidSteps) validate(_ context.Context, id string) error {
	return s.tc.POST("/hkid/validate", validateBody{HKID: id})
}

func (s *hkidSteps) validateKnown(_ context.Context, id string) error {
	return s.tc.POST("/hkid/validate", validateBody{HKID: id, MustBeKnown: true})
}

func (s *hkidSteps) validateBatch(_ context.Context, list string) error {
	ids := strings.Split(list, ",")
	for i := range ids {
		ids[i] = strings.TrimSpace(ids[i])
	}
	return s.tc.POST("/hkid/validate/batch", map[string]interface{}{"hkids": ids})
}

func (s *hkidSteps) batchShouldReport(_ context.Context, valid, invalid, rejected int) error {
	var body struct {
		Valid    int `json:"valid"`
		Invalid  int `json:"invalid"`
		Rejected int `json:"rejected"`
	}
	if err := json.Unmarshal(s.tc.GetLastResponseBody(), &body); err != nil {
		return fmt.Errorf("decode batch response: %w", err)
	}
	if body.Valid != valid || body.Invalid != invalid || body.Rejected != rejected {
		return fmt.Errorf("expected %d/%d/%d valid/invalid/rejected, got %d/%d/%d",
			valid, invalid, rejected, body.Valid, body.Invalid, body.Rejected)
	}
	return nil
}

func (s *hkidSteps) generate(body map[string]interface{}) error {
	if err := s.tc.POST("/hkid/generate", body); err != nil {
		return err
	}
	if status := s.tc.GetLastResponseStatus(); status != 200 {
		return fmt.Errorf("generate returned %d: %s", status, s.tc.GetLastResponseBody())
	}
	var resp struct {
		HKIDs []string `json:"hkids"`
	}
	if err := json.Unmarshal(s.tc.GetLastResponseBody(), &resp); err != nil {
		return fmt.Errorf("decode generate response: %w", err)
	}
	s.generated = resp.HKIDs
	return nil
}

func (s *hkidSteps) generateWithPrefix(_ context.Context, count int, prefix string) error {
	return s.generate(map[string]interface{}{"prefix": prefix, "count": count})
}

func (s *hkidSteps) generateKnown(_ context.Context, count int) error {
	return s.generate(map[string]interface{}{"must_be_known": true, "count": count})
}

func (s *hkidSteps) everyGeneratedStartsWith(_ context.Context, prefix string) error {
	if len(s.generated) == 0 {
		return fmt.Errorf("nothing was generated")
	}
	for _, id := range s.generated {
		if !strings.HasPrefix(id, prefix) {
			return fmt.Errorf("%s does not start with %s", id, prefix)
		}
	}
	return nil
}

func (s *hkidSteps) everyGeneratedValidates(_ context.Context) error {
	if len(s.generated) == 0 {
		return fmt.Errorf("nothing was generated")
	}
	for _, id := range s.generated {
		valid, err := s.isValid(id)
		if err != nil {
			return err
		}
		if !valid {
			return fmt.Errorf("generated %s does not validate", id)
		}
	}
	return nil
}

func (s *hkidSteps) requestCheckDigit(_ context.Context, body string) error {
	return s.tc.GET("/hkid/check-digit/"+url.PathEscape(body), nil)
}

func (s *hkidSteps) lookUpPrefix(_ context.Context, code string) error {
	return s.tc.GET("/hkid/prefixes/"+url.PathEscape(code), nil)
}

func (s *hkidSteps) lookUpSymbol(_ context.Context, text string) error {
	return s.tc.GET("/hkid/symbols/"+url.PathEscape(text), nil)
}

func (s *hkidSteps) sameAnswer(_ context.Context, a, b string) error {
	first, err := s.isValid(a)
	if err != nil {
		return err
	}
	second, err := s.isValid(b)
	if err != nil {
		return err
	}
	if first != second {
		return fmt.Errorf("%s validated %t but %s validated %t", a, first, b, second)
	}
	return nil
}

func (s *hkidSteps) isValid(id string) (bool, error) {
	if err := s.tc.POST("/hkid/validate", validateBody{HKID: id}); err != nil {
		return false, err
	}
	if status := s.tc.GetLastResponseStatus(); status != 200 {
		return false, fmt.Errorf("validate %s returned %d: %s", id, status, s.tc.GetLastResponseBody())
	}
	v, err := s.tc.GetResponseField("valid")
	if err != nil {
		return false, err
	}
	valid, _ := v.(bool)
	return valid, nil
}
