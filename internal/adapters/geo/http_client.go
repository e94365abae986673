package geo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"
)

type httpStatusError struct {
	Code int
	Body string
}

func (e *httpStatusError) Error() string {
	return fmt.Sprintf("status %d: %s", e.Code, e.Body)
}

// TransportError reports that every attempt against a provider failed.
// It carries the last underlying error after retries were exhausted.
type TransportError struct {
	Attempts int
	Last     error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport failed after %d attempt(s): %v", e.Attempts, e.Last)
}

func (e *TransportError) Unwrap() error { return e.Last }

// RetryPolicy bounds attempts against one provider endpoint.
// Backoff receives the zero-based index of the attempt that just failed.
// Injectable so tests can substitute a zero-delay policy.
type RetryPolicy struct {
	MaxAttempts int
	Backoff     func(attempt int) time.Duration
}

const backoffBase = time.Second

// DefaultRetryPolicy retries up to 4 attempts with linear backoff
// (1s, 2s, 3s between attempts).
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts: 4,
		Backoff: func(attempt int) time.Duration {
			return backoffBase * time.Duration(attempt+1)
		},
	}
}

// SingleAttemptPolicy performs exactly one attempt with no backoff.
func SingleAttemptPolicy() RetryPolicy {
	return RetryPolicy{MaxAttempts: 1}
}

// Client performs JSON GET requests against external geo providers,
// retrying transient failures per its policy. Safe for concurrent use.
type Client struct {
	session *http.Client
	policy  RetryPolicy
}

func NewClient(timeout time.Duration, policy RetryPolicy) *Client {
	if policy.MaxAttempts < 1 {
		policy.MaxAttempts = 1
	}
	return &Client{
		session: &http.Client{Timeout: timeout},
		policy:  policy,
	}
}

// GetJSON issues a GET with the given query params and headers and
// decodes the 2xx response body into out. Non-2xx statuses are failures.
func (c *Client) GetJSON(
	ctx context.Context,
	endpoint string,
	params url.Values,
	headers http.Header,
	out any,
) error {
	resp, err := c.doWithRetry(ctx, func() (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, fmt.Errorf("create request: %w", err)
		}
		req.URL.RawQuery = params.Encode()
		req.Header.Set("Accept", "application/json")
		for k, vs := range headers {
			for _, v := range vs {
				req.Header.Set(k, v)
			}
		}
		return req, nil
	})
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response from %s: %w", endpoint, err)
	}

	return nil
}

func (c *Client) do(req *http.Request) (*http.Response, error) {
	resp, err := c.session.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		return nil, &httpStatusError{
			Code: resp.StatusCode,
			Body: strings.TrimSpace(string(b)),
		}
	}
	return resp, nil
}

// doWithRetry retries transient failures (network errors, 429/5xx)
// per the configured policy while respecting context cancellation.
// Cancellation is honored between attempts, never mid-request.
func (c *Client) doWithRetry(
	ctx context.Context,
	makeReq func() (*http.Request, error),
) (*http.Response, error) {
	var lastErr error
	attempts := 0

	for attempt := 0; attempt < c.policy.MaxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		req, err := makeReq()
		if err != nil {
			return nil, fmt.Errorf("make request: %w", err)
		}

		resp, err := c.do(req)
		attempts++
		if err == nil {
			return resp, nil
		}
		lastErr = err

		if !retryable(err) || attempt == c.policy.MaxAttempts-1 {
			break
		}

		if c.policy.Backoff != nil {
			timer := time.NewTimer(c.policy.Backoff(attempt))
			select {
			case <-ctx.Done():
				timer.Stop()
				return nil, ctx.Err()
			case <-timer.C:
			}
		}
	}

	return nil, &TransportError{Attempts: attempts, Last: lastErr}
}

func retryable(err error) bool {
	var he *httpStatusError
	if errors.As(err, &he) {
		switch he.Code {
		case 429, 500, 502, 503, 504:
			return true
		}
		return false
	}

	// Transport-level failures from http.Client arrive as *url.Error,
	// which satisfies net.Error.
	var netErr net.Error
	return errors.As(err, &netErr)
}
