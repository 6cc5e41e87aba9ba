package agent

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(url string) (*Client, *[]time.Duration) {
	c := NewClient(url, "test-key")
	var delays []time.Duration
	c.sleep = func(d time.Duration) { delays = append(delays, d) }
	return c, &delays
}

func TestSendSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"reply":"hello","conversation_id":"7b4a1f64-7a04-4f4b-9c39-869e473ec0a5"}`))
	}))
	defer srv.Close()

	c, delays := newTestClient(srv.URL)
	resp, err := c.Send(context.Background(), &ChatRequest{Message: "hi"})
	require.NoError(t, err)
	assert.Equal(t, "hello", resp.Reply)
	assert.Empty(t, *delays)
}

func TestSendRetriesTwiceWithBackoff(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c, delays := newTestClient(srv.URL)
	_, err := c.Send(context.Background(), &ChatRequest{Message: "hi"})
	require.Error(t, err)

	assert.Equal(t, 3, calls, "one initial attempt plus two retries")
	assert.Equal(t, []time.Duration{time.Second, 2 * time.Second}, *delays)
	assert.Equal(t, CategoryServerError, Categorize(err))
}

func TestSendRecoversOnRetry(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls < 2 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte(`{"reply":"ok","conversation_id":"7b4a1f64-7a04-4f4b-9c39-869e473ec0a5"}`))
	}))
	defer srv.Close()

	c, _ := newTestClient(srv.URL)
	resp, err := c.Send(context.Background(), &ChatRequest{Message: "hi"})
	require.NoError(t, err)
	assert.Equal(t, "ok", resp.Reply)
	assert.Equal(t, 2, calls)
}

func TestRetryDelayCap(t *testing.T) {
	assert.Equal(t, time.Second, RetryDelay(1))
	assert.Equal(t, 2*time.Second, RetryDelay(2))
	assert.Equal(t, 4*time.Second, RetryDelay(3))
	assert.Equal(t, 8*time.Second, RetryDelay(4))
	assert.Equal(t, 8*time.Second, RetryDelay(10))
}

func TestCategorize(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorCategory
	}{
		{"offline", errors.New("chat request failed to fetch: dial tcp: connection refused"), CategoryOffline},
		{"timeout", errors.New("request timeout exceeded"), CategoryTimeout},
		{"deadline", context.DeadlineExceeded, CategoryTimeout},
		{"rate limit", errors.New("chat endpoint returned 429: slow down"), CategoryRateLimited},
		{"server", errors.New("chat endpoint returned 500: boom"), CategoryServerError},
		{"generic", errors.New("chat response decode: unexpected EOF"), CategoryGeneric},
		{"nil", nil, CategoryGeneric},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Categorize(tt.err))
		})
	}
}
