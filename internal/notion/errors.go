package notion

import (
	"errors"
	"fmt"
)

// Common errors returned by the Notion client.
var (
	// ErrAuthError indicates an authentication error (missing/invalid token).
	ErrAuthError = errors.New("Notion authentication error")

	// ErrNotFound indicates the page or database was not found.
	ErrNotFound = errors.New("not found in Notion")

	// ErrRateLimited indicates the rate limit has been exceeded.
	ErrRateLimited = errors.New("Notion rate limit exceeded")

	// ErrNetworkError indicates a network connectivity issue.
	ErrNetworkError = errors.New("network error communicating with Notion")

	// ErrInvalidResponse indicates an unexpected API response.
	ErrInvalidResponse = errors.New("invalid response from Notion")
)

// APIError represents an HTTP-level error from the API.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("Notion API error (status %d): %s", e.StatusCode, e.Message)
}
