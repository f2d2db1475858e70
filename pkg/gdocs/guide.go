// Package gdocs fetches the outreach guide document as plain text.
//
// The guide lives in a publicly shared Google Doc and is pulled through the
// export endpoint, so no OAuth flow or API key is involved. A missing or
// unreachable guide is not fatal to idea generation.
package gdocs

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rotisserie/eris"

	"github.com/sells-group/outreach-cli/internal/resilience"
)

const exportPathFormat = "/document/d/%s/export?format=txt"

// Fetcher retrieves the plain-text body of a guide document.
type Fetcher interface {
	FetchGuide(ctx context.Context, docID string) (string, error)
}

type fetcher struct {
	httpClient *http.Client
	baseURL    string
	maxChars   int
	retryCfg   resilience.RetryConfig
}

// FetcherOption configures the guide fetcher.
type FetcherOption func(*fetcher)

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(c *http.Client) FetcherOption {
	return func(f *fetcher) { f.httpClient = c }
}

// WithBaseURL overrides the export endpoint base, primarily for tests.
// The value replaces "https://docs.google.com" in the export URL.
func WithBaseURL(base string) FetcherOption {
	return func(f *fetcher) { f.baseURL = base }
}

// WithMaxChars caps the returned guide text at n characters.
func WithMaxChars(n int) FetcherOption {
	return func(f *fetcher) { f.maxChars = n }
}

// WithRetryConfig overrides the retry policy.
func WithRetryConfig(cfg resilience.RetryConfig) FetcherOption {
	return func(f *fetcher) { f.retryCfg = cfg }
}

// NewFetcher creates a guide fetcher with sane defaults.
func NewFetcher(opts ...FetcherOption) Fetcher {
	f := &fetcher{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    "https://docs.google.com",
		maxChars:   4000,
		retryCfg:   resilience.DefaultRetryConfig(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// FetchGuide downloads the document as plain text, normalizes its
// whitespace, and truncates it to the configured character cap.
func (f *fetcher) FetchGuide(ctx context.Context, docID string) (string, error) {
	if docID == "" {
		return "", eris.Wrap(resilience.ErrNotConfigured, "gdocs: guide doc id is empty")
	}

	url := f.baseURL + fmt.Sprintf(exportPathFormat, docID)

	body, err := resilience.DoVal(ctx, f.retryCfg, func(ctx context.Context) (string, error) {
		return f.fetchOnce(ctx, url)
	})
	if err != nil {
		return "", err
	}

	return truncate(normalize(body), f.maxChars), nil
}

func (f *fetcher) fetchOnce(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", eris.Wrap(err, "gdocs: build request")
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return "", eris.Wrap(err, "gdocs: fetch guide")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", eris.Wrap(resilience.FromStatus(resp.StatusCode, "export request failed"), "gdocs: fetch guide")
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", eris.Wrap(err, "gdocs: read guide body")
	}
	return string(raw), nil
}

// normalize collapses runs of blank lines and trims trailing spaces so the
// guide spends its character budget on content rather than padding.
func normalize(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	lines := strings.Split(s, "\n")
	out := make([]string, 0, len(lines))
	blank := false
	for _, line := range lines {
		line = strings.TrimRight(line, " \t")
		if line == "" {
			if blank {
				continue
			}
			blank = true
		} else {
			blank = false
		}
		out = append(out, line)
	}
	return strings.TrimSpace(strings.Join(out, "\n"))
}

func truncate(s string, max int) string {
	if max <= 0 || len(s) <= max {
		return s
	}
	return s[:max]
}
