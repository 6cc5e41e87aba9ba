// Package printclient talks to the desktop label print helper that runs
// next to the browser on warehouse machines. The helper exposes a tiny
// HTTP endpoint on localhost; printing is best-effort and the caller
// falls back to opening the label URL when no helper is reachable.
package printclient

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

// Default helper endpoints, tried in order. The TLS endpoint comes
// first so browsers on https pages can reach it without mixed content.
var defaultEndpoints = []string{
	"https://localhost:9111",
	"http://localhost:9112",
}

// Result reports how a print request was resolved
type Result struct {
	// Printed is true when a local helper accepted the job
	Printed bool `json:"printed"`
	// Endpoint is the helper that accepted the job, empty on fallback
	Endpoint string `json:"endpoint,omitempty"`
	// FallbackURL is set when no helper answered; the caller should
	// open the label in a new tab instead
	FallbackURL string `json:"fallback_url,omitempty"`
}

// Client sends label URLs to the local print helper
type Client struct {
	endpoints  []string
	httpClient *http.Client
	log        *logrus.Entry
}

// NewClient creates a print client with the default localhost endpoints
func NewClient() *Client {
	return &Client{
		endpoints: defaultEndpoints,
		httpClient: &http.Client{
			Timeout: 3 * time.Second,
			Transport: &http.Transport{
				// the helper uses a self-signed localhost cert
				TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
			},
		},
		log: logrus.WithField("component", "printclient"),
	}
}

// NewClientWithEndpoints creates a print client against explicit endpoints
func NewClientWithEndpoints(endpoints ...string) *Client {
	c := NewClient()
	c.endpoints = endpoints
	return c
}

type printRequest struct {
	URL string `json:"url"`
}

// Print asks each helper endpoint in turn to print the label at labelURL.
// It never returns an error for unreachable helpers; the Result carries
// the fallback URL instead.
func (c *Client) Print(ctx context.Context, labelURL string) Result {
	body, _ := json.Marshal(printRequest{URL: labelURL})

	for _, endpoint := range c.endpoints {
		if err := c.send(ctx, endpoint, body); err != nil {
			c.log.WithError(err).WithField("endpoint", endpoint).Debug("print helper unreachable")
			continue
		}
		return Result{Printed: true, Endpoint: endpoint}
	}

	return Result{FallbackURL: labelURL}
}

func (c *Client) send(ctx context.Context, endpoint string, body []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint+"/print", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("print helper returned %d", resp.StatusCode)
	}
	return nil
}
