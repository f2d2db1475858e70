// Package hubspot is a minimal HubSpot CRM API client covering the read,
// association, catalog, and task-creation surfaces the outreach pipeline
// consumes. Every read uses explicit property selection.
package hubspot

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rotisserie/eris"
	"golang.org/x/time/rate"

	"github.com/sells-group/outreach-cli/internal/resilience"
)

const defaultBaseURL = "https://api.hubapi.com"

// Client defines the HubSpot API operations used by the pipeline.
type Client interface {
	GetList(ctx context.Context, listID string) (*List, error)
	ListMemberships(ctx context.Context, listID, after string, limit int) (*MembershipPage, error)
	ListContactsLegacy(ctx context.Context, listID string, properties []string) ([]Object, error)

	GetContact(ctx context.Context, contactID string, properties []string) (*Object, error)
	BatchReadContacts(ctx context.Context, contactIDs []string, properties []string) ([]Object, error)
	GetCompany(ctx context.Context, companyID string, properties []string) (*Object, error)
	GetDeal(ctx context.Context, dealID string, properties []string) (*Object, error)
	ListAssociations(ctx context.Context, fromType, objectID, toType string) ([]string, error)
	GetDealPipelines(ctx context.Context) ([]Pipeline, error)
	ListEngagements(ctx context.Context, contactID string, limit int) (*EngagementPage, error)

	CreateTask(ctx context.Context, properties map[string]string) (*Object, error)
	AssociateTaskWithContact(ctx context.Context, taskID, contactID string) error
}

// Option configures the client.
type Option func(*httpClient)

// WithBaseURL overrides the default API base URL.
func WithBaseURL(u string) Option {
	return func(c *httpClient) {
		c.baseURL = u
	}
}

// WithHTTPClient overrides the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *httpClient) {
		c.http = hc
	}
}

// WithRateLimit sets a per-second limit on API calls.
func WithRateLimit(rps float64) Option {
	return func(c *httpClient) {
		if rps > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(rps), max(int(rps), 1))
		} else {
			c.limiter = nil
		}
	}
}

// WithRetryConfig overrides the retry policy for transient failures.
func WithRetryConfig(cfg resilience.RetryConfig) Option {
	return func(c *httpClient) {
		c.retry = cfg
	}
}

type httpClient struct {
	token   string
	baseURL string
	http    *http.Client
	limiter *rate.Limiter
	retry   resilience.RetryConfig
}

// NewClient creates a HubSpot API client authenticated with a private app
// token. Calls are throttled to 8 req/s by default.
func NewClient(token string, opts ...Option) Client {
	c := &httpClient{
		token:   token,
		baseURL: defaultBaseURL,
		http: &http.Client{
			Timeout: 30 * time.Second,
			Transport: &http.Transport{
				MaxIdleConnsPerHost: 20,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		limiter: rate.NewLimiter(8, 8),
		retry:   resilience.DefaultRetryConfig(),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// wait blocks until the rate limiter allows one event, or ctx is cancelled.
func (c *httpClient) wait(ctx context.Context) error {
	if c.limiter == nil {
		return nil
	}
	return c.limiter.Wait(ctx)
}

// doJSON performs one rate-limited, retried request and decodes the response
// body into out (skipped when out is nil). Non-2xx statuses map onto the
// resilience taxonomy.
func (c *httpClient) doJSON(ctx context.Context, method, path string, query url.Values, body, out any) error {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return eris.Wrap(err, "hubspot: marshal request")
		}
	}

	raw, err := resilience.DoVal(ctx, c.retry, func(ctx context.Context) ([]byte, error) {
		if err := c.wait(ctx); err != nil {
			return nil, eris.Wrap(err, "hubspot: rate limit")
		}
		return c.doOnce(ctx, method, path, query, payload)
	})
	if err != nil {
		return err
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return eris.Wrap(err, "hubspot: decode response")
	}
	return nil
}

func (c *httpClient) doOnce(ctx context.Context, method, path string, query url.Values, payload []byte) ([]byte, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return nil, eris.Wrap(err, "hubspot: create request")
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, eris.Wrap(err, "hubspot: send request")
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, eris.Wrap(err, "hubspot: read response")
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail := ""
		var ae apiError
		if json.Unmarshal(raw, &ae) == nil && ae.Message != "" {
			detail = ae.Message
		}
		return nil, eris.Wrap(resilience.FromStatus(resp.StatusCode, detail), "hubspot: "+method+" "+path)
	}

	return raw, nil
}
