package geo

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func zeroDelayPolicy(maxAttempts int) RetryPolicy {
	return RetryPolicy{
		MaxAttempts: maxAttempts,
		Backoff:     func(int) time.Duration { return 0 },
	}
}

func TestClientRetriesTransientFailures(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	c := NewClient(time.Second, zeroDelayPolicy(4))

	var out struct {
		OK bool `json:"ok"`
	}
	if err := c.GetJSON(context.Background(), srv.URL, nil, nil, &out); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !out.OK {
		t.Error("response not decoded")
	}
	if got := atomic.LoadInt32(&calls); got != 3 {
		t.Errorf("attempts = %d, want 3", got)
	}
}

func TestClientExhaustsRetries(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewClient(time.Second, zeroDelayPolicy(4))

	var out any
	err := c.GetJSON(context.Background(), srv.URL, nil, nil, &out)

	var te *TransportError
	if !errors.As(err, &te) {
		t.Fatalf("err = %v, want TransportError", err)
	}
	if te.Attempts != 4 {
		t.Errorf("attempts reported = %d, want 4", te.Attempts)
	}
	if got := atomic.LoadInt32(&calls); got != 4 {
		t.Errorf("attempts made = %d, want 4", got)
	}

	var he *httpStatusError
	if !errors.As(err, &he) || he.Code != http.StatusBadGateway {
		t.Errorf("underlying error = %v, want 502 status error", te.Last)
	}
}

func TestClientDoesNotRetryClientErrors(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewClient(time.Second, zeroDelayPolicy(4))

	var out any
	err := c.GetJSON(context.Background(), srv.URL, nil, nil, &out)

	var te *TransportError
	if !errors.As(err, &te) {
		t.Fatalf("err = %v, want TransportError", err)
	}
	if te.Attempts != 1 {
		t.Errorf("attempts reported = %d, want 1", te.Attempts)
	}
	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Errorf("attempts made = %d, want 1", got)
	}
}

func TestClientHonorsCancellationBetweenAttempts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())

	c := NewClient(time.Second, RetryPolicy{
		MaxAttempts: 4,
		Backoff: func(int) time.Duration {
			// Cancel while the client waits out the backoff.
			cancel()
			return time.Minute
		},
	})

	var out any
	err := c.GetJSON(ctx, srv.URL, nil, nil, &out)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}
