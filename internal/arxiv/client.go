package arxiv

import (
	"context"
	"encoding/xml"
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
	// BaseURL is the arXiv Atom query endpoint.
	BaseURL = "http://export.arxiv.org/api/query"

	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 60 * time.Second

	// DefaultTitleSearchLimit bounds title-search result counts.
	DefaultTitleSearchLimit = 1000

	// DefaultWindowLimit bounds date-window collection result counts.
	DefaultWindowLimit = 500
)

// requestInterval is one request per 3 seconds per arXiv API terms.
var requestInterval = rate.Every(3 * time.Second)

// Client is a rate-limited HTTP client for the arXiv query API.
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
func WithBaseURL(u string) ClientOption {
	return func(c *Client) {
		c.baseURL = u
	}
}

// NewClient creates a new arXiv query client.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: DefaultTimeout},
		limiter:    rate.NewLimiter(requestInterval, 1),
		baseURL:    BaseURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SearchByTitle queries for papers matching a title, sorted by relevance
// descending.
func (c *Client) SearchByTitle(ctx context.Context, title string, maxResults int) ([]Entry, error) {
	if maxResults <= 0 {
		maxResults = DefaultTitleSearchLimit
	}

	params := url.Values{}
	// Plain quoting only. fmt's %q would backslash-escape embedded
	// quotes and non-ASCII runes, which the query parser rejects.
	params.Set("search_query", `ti:"`+title+`"`)
	params.Set("max_results", strconv.Itoa(maxResults))
	params.Set("sortBy", "relevance")
	params.Set("sortOrder", "descending")

	return c.query(ctx, params)
}

// SearchWindow queries for papers in any of the given categories
// submitted within [from, to]. Timestamps are truncated to minute
// precision as the API requires.
func (c *Client) SearchWindow(ctx context.Context, categories []string, from, to time.Time, maxResults int) ([]Entry, error) {
	if maxResults <= 0 {
		maxResults = DefaultWindowLimit
	}

	terms := make([]string, len(categories))
	for i, cat := range categories {
		terms[i] = "cat:" + cat
	}
	query := fmt.Sprintf("(%s) AND submittedDate:[%s TO %s]",
		strings.Join(terms, " OR "),
		from.Format("200601021504"),
		to.Format("200601021504"))

	params := url.Values{}
	params.Set("search_query", query)
	params.Set("max_results", strconv.Itoa(maxResults))

	return c.query(ctx, params)
}

func (c *Client) query(ctx context.Context, params url.Values) ([]Entry, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNetworkError, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("%w: HTTP %d", ErrAPIError, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	var feed atomFeed
	if err := xml.Unmarshal(body, &feed); err != nil {
		return nil, fmt.Errorf("%w: parsing feed: %v", ErrInvalidResponse, err)
	}

	entries := make([]Entry, len(feed.Entries))
	for i, e := range feed.Entries {
		entries[i] = mapEntry(e)
	}
	return entries, nil
}

// mapEntry converts an Atom entry into an Entry, normalizing the
// whitespace arXiv wraps into titles and abstracts.
func mapEntry(e atomEntry) Entry {
	entry := Entry{
		ID:              stripIDPrefix(e.ID),
		Title:           collapseWhitespace(e.Title),
		Abstract:        collapseWhitespace(e.Summary),
		PrimaryCategory: e.PrimaryCategory.Term,
		DOI:             e.DOI,
	}

	for _, cat := range e.Categories {
		entry.Categories = append(entry.Categories, cat.Term)
	}
	for _, link := range e.Links {
		if link.Title == "pdf" || link.Type == "application/pdf" {
			entry.PDFURL = link.Href
		}
	}
	if len(e.Published) >= 10 {
		entry.Published = e.Published[:10]
	}

	return entry
}

// stripIDPrefix reduces an entry id URL to the bare arXiv identifier.
func stripIDPrefix(id string) string {
	for _, prefix := range []string{"http://arxiv.org/abs/", "https://arxiv.org/abs/"} {
		if strings.HasPrefix(id, prefix) {
			return strings.TrimPrefix(id, prefix)
		}
	}
	return id
}

func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
