package e2e

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

// DefaultBaseURL is used when E2E_BASE_URL is unset.
const DefaultBaseURL = "http://localhost:8080"

// TestContext carries the HTTP client and the last exchange for one scenario.
type TestContext struct {
	BaseURL string
	client  *http.Client

	headers  map[string]string
	lastResp *http.Response
	lastBody []byte
	vars     map[string]string
}

// NewTestContext creates a scenario context against E2E_BASE_URL.
func NewTestContext() *TestContext {
	base := os.Getenv("E2E_BASE_URL")
	if base == "" {
		base = DefaultBaseURL
	}
	return &TestContext{
		BaseURL: strings.TrimRight(base, "/"),
		client:  &http.Client{Timeout: 10 * time.Second},
		headers: map[string]string{},
		vars:    map[string]string{},
	}
}

// Reset clears per-scenario state.
func (tc *TestContext) Reset() {
	tc.headers = map[string]string{}
	tc.vars = map[string]string{}
	tc.lastResp = nil
	tc.lastBody = nil
}

// SetHeader adds a header to every following request of the scenario.
func (tc *TestContext) SetHeader(name, value string) {
	tc.headers[name] = value
}

func (tc *TestContext) POST(path string, body interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode request body: %w", err)
	}
	return tc.do(http.MethodPost, path, bytes.NewReader(payload))
}

func (tc *TestContext) GET(path string, headers map[string]string) error {
	for k, v := range headers {
		tc.headers[k] = v
	}
	return tc.do(http.MethodGet, path, nil)
}

func (tc *TestContext) do(method, path string, body io.Reader) error {
	req, err := http.NewRequest(method, tc.BaseURL+path, body)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range tc.headers {
		req.Header.Set(k, v)
	}

	resp, err := tc.client.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	tc.lastBody, err = io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response body: %w", err)
	}
	tc.lastResp = resp
	return nil
}

func (tc *TestContext) GetLastResponseStatus() int {
	if tc.lastResp == nil {
		return 0
	}
	return tc.lastResp.StatusCode
}

func (tc *TestContext) GetLastResponseBody() []byte {
	return tc.lastBody
}

func (tc *TestContext) GetLastResponseHeader(name string) string {
	if tc.lastResp == nil {
		return ""
	}
	return tc.lastResp.Header.Get(name)
}

// GetResponseField returns a top-level field of the last JSON response.
func (tc *TestContext) GetResponseField(field string) (interface{}, error) {
	var body map[string]interface{}
	if err := json.Unmarshal(tc.lastBody, &body); err != nil {
		return nil, fmt.Errorf("response is not a JSON object: %w", err)
	}
	v, ok := body[field]
	if !ok {
		return nil, fmt.Errorf("field %q not in response: %s", field, tc.lastBody)
	}
	return v, nil
}

// Remember stores a value for later steps of the same scenario.
func (tc *TestContext) Remember(key, value string) {
	tc.vars[key] = value
}

func (tc *TestContext) Recall(key string) (string, bool) {
	v, ok := tc.vars[key]
	return v, ok
}
