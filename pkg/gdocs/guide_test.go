package gdocs

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/outreach-cli/internal/resilience"
)

func newTestFetcher(t *testing.T, handler http.HandlerFunc, opts ...FetcherOption) Fetcher {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	base := []FetcherOption{
		WithBaseURL(srv.URL),
		WithRetryConfig(resilience.RetryConfig{MaxAttempts: 1}),
	}
	return NewFetcher(append(base, opts...)...)
}

func TestFetchGuide(t *testing.T) {
	f := newTestFetcher(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/document/d/doc-123/export", r.URL.Path)
		assert.Equal(t, "txt", r.URL.Query().Get("format"))
		w.Write([]byte("Outreach guide\r\n\r\n\r\nBe concise.  \n"))
	})

	text, err := f.FetchGuide(context.Background(), "doc-123")
	require.NoError(t, err)
	assert.Equal(t, "Outreach guide\n\nBe concise.", text)
}

func TestFetchGuideTruncates(t *testing.T) {
	f := newTestFetcher(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(strings.Repeat("a", 100)))
	}, WithMaxChars(40))

	text, err := f.FetchGuide(context.Background(), "doc-123")
	require.NoError(t, err)
	assert.Len(t, text, 40)
}

func TestFetchGuideEmptyDocID(t *testing.T) {
	f := NewFetcher()
	_, err := f.FetchGuide(context.Background(), "")
	assert.True(t, errors.Is(err, resilience.ErrNotConfigured))
}

func TestFetchGuideNotFound(t *testing.T) {
	f := newTestFetcher(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := f.FetchGuide(context.Background(), "doc-123")
	assert.True(t, errors.Is(err, resilience.ErrNotFound))
}
