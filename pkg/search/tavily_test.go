package search

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTavilyClientSearch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)

		var req tavilyRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "test-key", req.APIKey)
		assert.Equal(t, "Louvre Paris opening hours", req.Query)
		assert.Equal(t, 3, req.MaxResults)

		json.NewEncoder(w).Encode(tavilyResponse{Results: []Result{
			{Title: "Louvre hours", URL: "https://example.com", Content: "Closes at 6 PM."},
		}})
	}))
	defer srv.Close()

	client := NewTavilyClientWithEndpoint("test-key", srv.URL)

	results, err := client.Search(context.Background(), "Louvre Paris opening hours", 3)

	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Closes at 6 PM.", results[0].Content)
}

func TestTavilyClientRejectsMissingKey(t *testing.T) {
	t.Setenv("TAVILY_API_KEY", "")
	client := NewTavilyClient("")

	_, err := client.Search(context.Background(), "q", 3)
	assert.Error(t, err)
}

func TestTavilyClientNonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	client := NewTavilyClientWithEndpoint("test-key", srv.URL)

	_, err := client.Search(context.Background(), "q", 3)
	assert.ErrorContains(t, err, "unexpected status 429")
}
