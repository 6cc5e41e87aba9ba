// Package agent is the HTTP client for the remote AI assistant endpoint.
// Calls are retried twice with exponential backoff before a categorized,
// user-presentable failure message is surfaced.
package agent

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const (
	defaultTimeout = 30 * time.Second
	maxRetries     = 2
	baseDelay      = time.Second
	maxDelay       = 8 * time.Second
)

// ChatRequest is the payload sent to the chat endpoint
type ChatRequest struct {
	Message        string     `json:"message"`
	ConversationID *uuid.UUID `json:"conversation_id,omitempty"`
}

// ChatResponse is the reply from the chat endpoint
type ChatResponse struct {
	Reply          string    `json:"reply"`
	ConversationID uuid.UUID `json:"conversation_id"`
}

// ErrorCategory classifies a chat failure for user-facing messaging
type ErrorCategory string

const (
	CategoryOffline     ErrorCategory = "offline"
	CategoryTimeout     ErrorCategory = "timeout"
	CategoryRateLimited ErrorCategory = "rate_limited"
	CategoryServerError ErrorCategory = "server_error"
	CategoryGeneric     ErrorCategory = "generic"
)

// Client calls the remote chat function
type Client struct {
	endpoint   string
	apiKey     string
	httpClient *http.Client
	log        *logrus.Entry
	sleep      func(time.Duration) // injectable for tests
}

// NewClient creates a chat client for the given endpoint
func NewClient(endpoint, apiKey string) *Client {
	return &Client{
		endpoint:   endpoint,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: defaultTimeout},
		log:        logrus.WithField("component", "agent"),
		sleep:      time.Sleep,
	}
}

// Send posts a chat message, retrying up to two times with exponential
// backoff (1s, 2s, capped at 8s) before giving up.
func (c *Client) Send(ctx context.Context, req *ChatRequest) (*ChatResponse, error) {
	var lastErr error

	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			delay := RetryDelay(attempt)
			c.log.WithFields(logrus.Fields{
				"attempt": attempt,
				"delay":   delay,
			}).Warn("retrying chat request")

			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			default:
			}
			c.sleep(delay)
		}

		resp, err := c.send(ctx, req)
		if err == nil {
			return resp, nil
		}
		lastErr = err
	}

	return nil, lastErr
}

func (c *Client) send(ctx context.Context, req *ChatRequest) (*ChatResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("chat request failed to fetch: %w", err)
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(io.LimitReader(httpResp.Body, 4096))
		return nil, fmt.Errorf("chat endpoint returned %d: %s", httpResp.StatusCode, string(raw))
	}

	var resp ChatResponse
	if err := json.NewDecoder(httpResp.Body).Decode(&resp); err != nil {
		return nil, fmt.Errorf("chat response decode: %w", err)
	}
	return &resp, nil
}

// RetryDelay returns the backoff before the given retry attempt (1-based):
// 1s, 2s, 4s... capped at 8s.
func RetryDelay(attempt int) time.Duration {
	delay := baseDelay * time.Duration(1<<(attempt-1))
	if delay > maxDelay {
		delay = maxDelay
	}
	return delay
}

// Categorize maps a chat failure to an error category by inspecting the
// error text, mirroring how the UI classified fetch failures.
func Categorize(err error) ErrorCategory {
	if err == nil {
		return CategoryGeneric
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return CategoryTimeout
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "failed to fetch"),
		strings.Contains(msg, "connection refused"),
		strings.Contains(msg, "no such host"):
		return CategoryOffline
	case strings.Contains(msg, "timeout"), strings.Contains(msg, "deadline"):
		return CategoryTimeout
	case strings.Contains(msg, "429"):
		return CategoryRateLimited
	case strings.Contains(msg, "500"), strings.Contains(msg, "502"), strings.Contains(msg, "503"):
		return CategoryServerError
	}
	return CategoryGeneric
}

// FriendlyMessage returns the assistant-voice message stored in place of a
// reply when a send ultimately fails.
func FriendlyMessage(cat ErrorCategory) string {
	switch cat {
	case CategoryOffline:
		return "I couldn't reach the server. Check your connection and try again."
	case CategoryTimeout:
		return "That took too long to answer. Please try again in a moment."
	case CategoryRateLimited:
		return "I'm getting too many requests right now. Give me a minute and try again."
	case CategoryServerError:
		return "Something went wrong on my end. Please try again shortly."
	}
	return "Sorry, I couldn't process that. Please try again."
}
