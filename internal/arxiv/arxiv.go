// Package arxiv is a client for the ArXiv Atom API, used to find
// candidate sources for a paper's reference list.
package arxiv

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

const (
	// BaseURL is the ArXiv API query endpoint.
	BaseURL = "http://export.arxiv.org/api/query"

	// RateLimit honors ArXiv's request of no more than one query every
	// three seconds.
	RateLimit = 1.0 / 3.0

	// DefaultTimeout is the HTTP request timeout.
	DefaultTimeout = 30 * time.Second

	// MaxResultsLimit caps how many papers one search may request.
	MaxResultsLimit = 10

	// DefaultMaxResults is used when the caller does not specify a limit.
	DefaultMaxResults = 2
)

// ErrEmptyQuery is returned when no search query is supplied.
var ErrEmptyQuery = errors.New("search query cannot be empty")

// ErrBadLimit is returned for an out-of-range max results value.
var ErrBadLimit = errors.New("max results out of range")

// Paper is the metadata of one ArXiv paper.
type Paper struct {
	Title     string    `json:"title"`
	Authors   []string  `json:"authors"`
	Published time.Time `json:"published"`
	ArxivID   string    `json:"arxiv_id"`
	Summary   string    `json:"summary"`
	PDFURL    string    `json:"pdf_url"`
	EntryURL  string    `json:"entry_url"`
}

// Result is the outcome of one search.
type Result struct {
	Query  string  `json:"query"`
	Papers []Paper `json:"papers"`
	Total  int     `json:"total_papers"`
}

// Client is a rate-limited HTTP client for the ArXiv API.
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

// NewClient creates a new ArXiv client.
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

// atomFeed mirrors the subset of the ArXiv Atom response we consume.
type atomFeed struct {
	Entries []struct {
		ID        string    `xml:"id"`
		Title     string    `xml:"title"`
		Summary   string    `xml:"summary"`
		Published time.Time `xml:"published"`
		Authors   []struct {
			Name string `xml:"name"`
		} `xml:"author"`
		Links []struct {
			HRef string `xml:"href,attr"`
			Type string `xml:"type,attr"`
		} `xml:"link"`
	} `xml:"entry"`
	Total int `xml:"totalResults"`
}

// Search queries ArXiv for papers matching the query, newest first.
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
	q.Add("search_query", fmt.Sprintf("all:%s", query))
	q.Add("max_results", strconv.Itoa(maxResults))
	q.Add("sortBy", "submittedDate")
	q.Add("sortOrder", "descending")
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("querying arxiv: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("arxiv returned status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	var feed atomFeed
	if err := xml.Unmarshal(data, &feed); err != nil {
		return nil, fmt.Errorf("parsing arxiv response: %w", err)
	}

	result := &Result{Query: query}
	for _, entry := range feed.Entries {
		paper := Paper{
			Title:     oneLine(entry.Title),
			Summary:   oneLine(entry.Summary),
			Published: entry.Published,
			ArxivID:   entry.ID,
			EntryURL:  entry.ID,
		}
		for _, a := range entry.Authors {
			paper.Authors = append(paper.Authors, a.Name)
		}
		for _, link := range entry.Links {
			if link.Type == "application/pdf" {
				paper.PDFURL = link.HRef
				break
			}
		}
		result.Papers = append(result.Papers, paper)
	}
	result.Total = len(result.Papers)

	return result, nil
}

// oneLine collapses the newline-wrapped text ArXiv returns into a single
// trimmed line.
func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
