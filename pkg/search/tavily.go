package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"
)

// Client is the external fact-checking capability used by the reviewer.
type Client interface {
	Search(ctx context.Context, query string, maxResults int) ([]Result, error)
}

type Result struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Content string `json:"content"`
}

const tavilyEndpoint = "https://api.tavily.com/search"

type TavilyClient struct {
	apiKey     string
	endpoint   string
	httpClient *http.Client
}

type tavilyRequest struct {
	APIKey     string `json:"api_key"`
	Query      string `json:"query"`
	MaxResults int    `json:"max_results"`
}

type tavilyResponse struct {
	Results []Result `json:"results"`
}

func NewTavilyClient(apiKey string) *TavilyClient {
	if apiKey == "" {
		apiKey = os.Getenv("TAVILY_API_KEY")
	}
	return &TavilyClient{
		apiKey:   apiKey,
		endpoint: tavilyEndpoint,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// NewTavilyClientWithEndpoint keeps the endpoint overridable for tests.
func NewTavilyClientWithEndpoint(apiKey, endpoint string) *TavilyClient {
	c := NewTavilyClient(apiKey)
	c.endpoint = endpoint
	return c
}

func (c *TavilyClient) Search(ctx context.Context, query string, maxResults int) ([]Result, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("missing TAVILY_API_KEY in environment")
	}
	if maxResults <= 0 {
		maxResults = 3
	}

	body, err := json.Marshal(tavilyRequest{
		APIKey:     c.apiKey,
		Query:      query,
		MaxResults: maxResults,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("tavily: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("tavily: unexpected status %d", resp.StatusCode)
	}

	var out tavilyResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("tavily: decode: %w", err)
	}
	return out.Results, nil
}
