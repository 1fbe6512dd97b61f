package signupcheck

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"sync/atomic"
	"time"

	"github.com/okian/mergington/pkg/logger"
)

// HTTPClient wraps http.Client with the service base URL.
type HTTPClient struct {
	client  *http.Client
	baseURL string
}

// newHTTPClient creates a new HTTP client with timeout.
func newHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		client:  &http.Client{Timeout: timeout},
		baseURL: baseURL,
	}
}

// do sends a bodiless request and returns the status code and body.
func (c *HTTPClient) do(ctx context.Context, method, path string) (int, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, http.NoBody)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("failed to read response: %w", err)
	}
	return resp.StatusCode, body, nil
}

// Health calls GET /healthz.
func (c *HTTPClient) Health(ctx context.Context) error {
	status, _, err := c.do(ctx, http.MethodGet, "/healthz")
	if err != nil {
		return fmt.Errorf("failed to connect to service: %w", err)
	}
	if status != http.StatusOK {
		return fmt.Errorf("%w: status %d", ErrUnhealthy, status)
	}
	return nil
}

// Activities calls GET /activities.
func (c *HTTPClient) Activities(ctx context.Context) (map[string]Activity, error) {
	status, body, err := c.do(ctx, http.MethodGet, "/activities")
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("%w: list returned %d", ErrUnexpected, status)
	}
	var out map[string]Activity
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("failed to decode activities: %w", err)
	}
	return out, nil
}

// Signup calls POST /activities/{name}/signup.
func (c *HTTPClient) Signup(ctx context.Context, s Student) (int, []byte, error) {
	return c.do(ctx, http.MethodPost, activityPath(s, "signup"))
}

// Unregister calls DELETE /activities/{name}/unregister.
func (c *HTTPClient) Unregister(ctx context.Context, s Student) (int, []byte, error) {
	return c.do(ctx, http.MethodDelete, activityPath(s, "unregister"))
}

func activityPath(s Student, action string) string {
	return "/activities/" + url.PathEscape(s.Activity) + "/" + action + "?email=" + url.QueryEscape(s.Email)
}

// callFunc is one of HTTPClient.Signup or HTTPClient.Unregister.
type callFunc func(ctx context.Context, s Student) (int, []byte, error)

// runConcurrently fans students out over config.Workers workers and
// returns the outcome of each call, indexed like students.
func runConcurrently(ctx context.Context, config *Config, students []Student, call callFunc, label string) []outcome {
	// Students never dispatched because ctx ended stay failed.
	results := make([]outcome, len(students))
	for i := range results {
		results[i] = outcomeFailed
	}
	workers := max(config.Workers, 1)
	work := make(chan int, workers*WorkerChannelMultiplier)
	var done atomic.Int64
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range work {
				results[i] = classify(ctx, call, students[i])
				if n := done.Add(1); config.Verbose && n%100 == 0 {
					logger.Get().Debug(ctx, "progress",
						logger.String("phase", label),
						logger.Int("done", int(n)),
						logger.Int("total", len(students)))
				}
			}
		}()
	}

	go func() {
		defer close(work)
		for i := range students {
			select {
			case <-ctx.Done():
				return
			case work <- i:
			}
		}
	}()

	wg.Wait()
	return results
}

func classify(ctx context.Context, call callFunc, s Student) outcome {
	status, body, err := call(ctx, s)
	if err != nil {
		logger.Get().Debug(ctx, "request failed", logger.String("email", s.Email), logger.Error(err))
		return outcomeFailed
	}
	switch status {
	case http.StatusOK:
		return outcomeOK
	case http.StatusBadRequest:
		var e ErrorResponse
		if json.Unmarshal(body, &e) == nil && e.Code == "activity_full" {
			return outcomeFull
		}
	}
	logger.Get().Debug(ctx, "unexpected status",
		logger.String("email", s.Email),
		logger.String("activity", s.Activity),
		logger.Int("status", status),
		logger.String("body", string(body)))
	return outcomeFailed
}
