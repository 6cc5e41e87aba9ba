package printclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrintUsesFirstReachableEndpoint(t *testing.T) {
	var gotURL string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/print", r.URL.Path)
		var req map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		gotURL = req["url"]
	}))
	defer server.Close()

	client := NewClientWithEndpoints(server.URL)
	result := client.Print(context.Background(), "https://labels.example.com/l/abc.pdf")

	assert.True(t, result.Printed)
	assert.Equal(t, server.URL, result.Endpoint)
	assert.Empty(t, result.FallbackURL)
	assert.Equal(t, "https://labels.example.com/l/abc.pdf", gotURL)
}

func TestPrintFallsThroughToSecondEndpoint(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer server.Close()

	// first endpoint refuses connections, second works
	client := NewClientWithEndpoints("http://127.0.0.1:1", server.URL)
	result := client.Print(context.Background(), "https://labels.example.com/l/abc.pdf")

	assert.True(t, result.Printed)
	assert.Equal(t, server.URL, result.Endpoint)
}

func TestPrintReturnsFallbackURLWhenNoHelper(t *testing.T) {
	client := NewClientWithEndpoints("http://127.0.0.1:1")
	result := client.Print(context.Background(), "https://labels.example.com/l/abc.pdf")

	assert.False(t, result.Printed)
	assert.Equal(t, "https://labels.example.com/l/abc.pdf", result.FallbackURL)
}

func TestPrintTreatsNon200AsUnreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := NewClientWithEndpoints(server.URL)
	result := client.Print(context.Background(), "https://labels.example.com/l/abc.pdf")

	assert.False(t, result.Printed)
	assert.NotEmpty(t, result.FallbackURL)
}
