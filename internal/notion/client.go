package notion

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

const (
	// BaseURL is the Notion API base URL.
	BaseURL = "https://api.notion.com/v1"

	// APIVersion is the Notion-Version header value.
	APIVersion = "2022-06-28"

	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 60 * time.Second

	// RateLimit is 3 requests per second per the API's average limit.
	RateLimit = 3.0
)

// Client is a rate-limited HTTP client for the Notion API.
type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	token      string
	baseURL    string
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithToken sets the integration token.
func WithToken(token string) ClientOption {
	return func(c *Client) {
		c.token = token
	}
}

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

// NewClient creates a new Notion client.
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

// CreatePage creates a page in a database and returns it.
func (c *Client) CreatePage(ctx context.Context, databaseID string, properties Properties) (*Page, error) {
	reqBody := CreatePageRequest{
		Parent:     Parent{Type: "database_id", DatabaseID: databaseID},
		Properties: properties,
	}

	var page Page
	if err := c.do(ctx, http.MethodPost, "/pages", reqBody, &page); err != nil {
		return nil, fmt.Errorf("creating page: %w", err)
	}
	return &page, nil
}

// AppendBlockChildren appends content blocks to a page.
func (c *Client) AppendBlockChildren(ctx context.Context, pageID string, blocks []Block) error {
	reqBody := appendChildrenRequest{Children: blocks}
	if err := c.do(ctx, http.MethodPatch, "/blocks/"+pageID+"/children", reqBody, nil); err != nil {
		return fmt.Errorf("appending blocks: %w", err)
	}
	return nil
}

// QueryDatabase fetches one page of database query results. Pass the
// previous response's NextCursor to continue.
func (c *Client) QueryDatabase(ctx context.Context, databaseID string, filter *Filter, startCursor string) (*QueryResponse, error) {
	reqBody := QueryRequest{Filter: filter, StartCursor: startCursor}

	var result QueryResponse
	if err := c.do(ctx, http.MethodPost, "/databases/"+databaseID+"/query", reqBody, &result); err != nil {
		return nil, fmt.Errorf("querying database: %w", err)
	}
	return &result, nil
}

// do sends one JSON request and decodes the response into out when
// out is non-nil.
func (c *Client) do(ctx context.Context, method, path string, reqBody, out any) error {
	body, err := json.Marshal(reqBody)
	if err != nil {
		return fmt.Errorf("marshaling request: %w", err)
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Notion-Version", APIVersion)
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNetworkError, err)
	}
	defer resp.Body.Close()

	if err := checkHTTPErrors(resp); err != nil {
		return err
	}

	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("%w: parsing response: %v", ErrInvalidResponse, err)
	}
	return nil
}

// checkHTTPErrors returns an error if the HTTP response indicates a problem.
func checkHTTPErrors(resp *http.Response) error {
	switch {
	case resp.StatusCode == 401 || resp.StatusCode == 403:
		return fmt.Errorf("%w: status %d", ErrAuthError, resp.StatusCode)
	case resp.StatusCode == 404:
		return ErrNotFound
	case resp.StatusCode == 429:
		return fmt.Errorf("%w: status %d", ErrRateLimited, resp.StatusCode)
	case resp.StatusCode >= 400:
		return &APIError{
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("HTTP %d", resp.StatusCode),
		}
	}
	return nil
}
