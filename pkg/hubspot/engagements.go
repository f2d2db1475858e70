package hubspot

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/rotisserie/eris"
)

// ListEngagements fetches the engagements (emails, calls, notes, meetings,
// tasks) associated with a contact through the v1 paged endpoint.
func (c *httpClient) ListEngagements(ctx context.Context, contactID string, limit int) (*EngagementPage, error) {
	q := url.Values{}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}

	var page EngagementPage
	path := "/engagements/v1/engagements/associated/contact/" + contactID + "/paged"
	if err := c.doJSON(ctx, http.MethodGet, path, q, nil, &page); err != nil {
		return nil, eris.Wrap(err, "hubspot: list engagements "+contactID)
	}
	return &page, nil
}
