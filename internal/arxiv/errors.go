package arxiv

import "errors"

// Common errors returned by the arXiv client.
var (
	// ErrNetworkError indicates a network connectivity issue.
	ErrNetworkError = errors.New("network error communicating with arXiv")

	// ErrAPIError indicates an HTTP-level error from the API.
	ErrAPIError = errors.New("arXiv API error")

	// ErrInvalidResponse indicates an unparseable API response.
	ErrInvalidResponse = errors.New("invalid response from arXiv")
)
