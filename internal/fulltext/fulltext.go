// Package fulltext acquires a paper's full text from a PDF and splits
// it into titled sections.
package fulltext

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/ledongthuc/pdf"

	"github.com/paperbatch/paperbatch/internal/paper"
)

// DefaultTimeout is the PDF download timeout.
const DefaultTimeout = 2 * time.Minute

// ErrNoText indicates the PDF yielded no extractable text.
var ErrNoText = errors.New("no text extracted from PDF")

// Loader downloads and parses paper PDFs.
type Loader struct {
	httpClient *http.Client
}

// Option configures a Loader.
type Option func(*Loader)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(l *Loader) {
		l.httpClient = hc
	}
}

// NewLoader creates a Loader.
func NewLoader(opts ...Option) *Loader {
	l := &Loader{httpClient: &http.Client{Timeout: DefaultTimeout}}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load resolves source to a PDF, extracts its text, and returns the
// split sections. Source is a local file path or an http(s) URL.
func (l *Loader) Load(ctx context.Context, source string) ([]paper.Section, error) {
	path := source
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		downloaded, err := l.Fetch(ctx, source)
		if err != nil {
			return nil, err
		}
		defer os.Remove(downloaded)
		path = downloaded
	}
	return Extract(path)
}

// Fetch downloads a PDF to a temporary file and returns its path. The
// caller removes the file.
func (l *Loader) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}

	resp, err := l.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("downloading PDF: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("downloading PDF: status %d", resp.StatusCode)
	}

	tmp, err := os.CreateTemp("", "paperbatch-*.pdf")
	if err != nil {
		return "", fmt.Errorf("creating temp file: %w", err)
	}

	if _, err := io.Copy(tmp, resp.Body); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", fmt.Errorf("writing PDF: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("closing PDF: %w", err)
	}

	return tmp.Name(), nil
}

// Extract reads every page of the PDF at path and splits the text into
// sections.
func Extract(path string) ([]paper.Section, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening PDF: %w", err)
	}
	defer f.Close()

	var builder strings.Builder
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetTextByRow()
		if err != nil {
			continue
		}
		for _, row := range text {
			for _, word := range row.Content {
				builder.WriteString(word.S)
			}
			builder.WriteString("\n")
		}
	}

	sections := SplitSections(builder.String())
	if len(sections) == 0 {
		return nil, ErrNoText
	}
	return sections, nil
}
