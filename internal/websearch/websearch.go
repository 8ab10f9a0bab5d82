// Package websearch queries the DuckDuckGo Instant Answer API for
// non-academic background material: recent articles, blog posts, and
// other sources ArXiv does not cover.
package websearch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

const (
	// BaseURL is the DuckDuckGo Instant Answer endpoint.
	BaseURL = "https://api.duckduckgo.com/"

	// RateLimit caps queries per second.
	RateLimit = 1.0

	// DefaultTimeout is the HTTP request timeout.
	DefaultTimeout = 10 * time.Second

	// MaxResultsLimit caps how many results one search may request.
	MaxResultsLimit = 10

	// DefaultMaxResults is used when the caller does not specify a limit.
	DefaultMaxResults = 5
)

// ErrEmptyQuery is returned when no search query is supplied.
var ErrEmptyQuery = errors.New("search query cannot be empty")

// ErrBadLimit is returned for an out-of-range max results value.
var ErrBadLimit = errors.New("max results out of range")

// Item is one web search result.
type Item struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Snippet string `json:"snippet"`
}

// Result is the outcome of one search.
type Result struct {
	Query   string `json:"query"`
	Results []Item `json:"results"`
	Total   int    `json:"total_results"`
}

// Client is a rate-limited HTTP client for the Instant Answer API.
type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	baseURL    string
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithBaseURL sets a custom base URL (for testing).
func WithBaseURL(url string) ClientOption {
	return func(c *Client) {
		c.baseURL = url
	}
}

// NewClient creates a new web search client.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: DefaultTimeout},
		limiter:    rate.NewLimiter(rate.Limit(RateLimit), 1),
		baseURL:    BaseURL,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// instantAnswer mirrors the subset of the response we consume. Related
// topics nest one level under category headings.
type instantAnswer struct {
	Heading       string `json:"Heading"`
	AbstractText  string `json:"AbstractText"`
	AbstractURL   string `json:"AbstractURL"`
	RelatedTopics []struct {
		Text     string `json:"Text"`
		FirstURL string `json:"FirstURL"`
		Topics   []struct {
			Text     string `json:"Text"`
			FirstURL string `json:"FirstURL"`
		} `json:"Topics"`
	} `json:"RelatedTopics"`
}

// Search queries DuckDuckGo for web results matching the query.
// maxResults of 0 uses the default; values above MaxResultsLimit are
// rejected.
func (c *Client) Search(ctx context.Context, query string, maxResults int) (*Result, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrEmptyQuery
	}
	if maxResults == 0 {
		maxResults = DefaultMaxResults
	}
	if maxResults < 1 || maxResults > MaxResultsLimit {
		return nil, fmt.Errorf("%w: %d (must be 1-%d)", ErrBadLimit, maxResults, MaxResultsLimit)
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing base url: %w", err)
	}

	q := u.Query()
	q.Add("q", query)
	q.Add("format", "json")
	q.Add("no_html", "1")
	q.Add("skip_disambig", "1")
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("querying duckduckgo: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("duckduckgo returned status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	var answer instantAnswer
	if err := json.Unmarshal(data, &answer); err != nil {
		return nil, fmt.Errorf("parsing duckduckgo response: %w", err)
	}

	result := &Result{Query: query}

	if answer.AbstractText != "" && answer.AbstractURL != "" {
		result.Results = append(result.Results, Item{
			Title:   answer.Heading,
			URL:     answer.AbstractURL,
			Snippet: answer.AbstractText,
		})
	}

	for _, topic := range answer.RelatedTopics {
		if len(result.Results) >= maxResults {
			break
		}
		if topic.Text != "" && topic.FirstURL != "" {
			result.Results = append(result.Results, topicItem(topic.Text, topic.FirstURL))
			continue
		}
		for _, sub := range topic.Topics {
			if len(result.Results) >= maxResults {
				break
			}
			if sub.Text != "" && sub.FirstURL != "" {
				result.Results = append(result.Results, topicItem(sub.Text, sub.FirstURL))
			}
		}
	}

	result.Total = len(result.Results)
	return result, nil
}

// topicItem turns a related-topic entry into an Item. The topic text is
// "Title - description"; the title falls back to the whole text.
func topicItem(text, url string) Item {
	title := text
	if idx := strings.Index(text, " - "); idx > 0 {
		title = text[:idx]
	}
	return Item{Title: title, URL: url, Snippet: text}
}
