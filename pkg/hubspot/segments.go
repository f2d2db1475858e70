package hubspot

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
)

// GetList fetches segment/list metadata, including the underlying object
// type (contacts vs deals).
func (c *httpClient) GetList(ctx context.Context, listID string) (*List, error) {
	var env listEnvelope
	if err := c.doJSON(ctx, http.MethodGet, "/crm/v3/lists/"+listID, nil, nil, &env); err != nil {
		return nil, eris.Wrap(err, "hubspot: get list "+listID)
	}
	return &env.List, nil
}

// ListMemberships fetches one page of list membership records. Pass the
// cursor from NextAfter to continue; an empty cursor starts from the top.
func (c *httpClient) ListMemberships(ctx context.Context, listID, after string, limit int) (*MembershipPage, error) {
	q := url.Values{}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	if after != "" {
		q.Set("after", after)
	}

	var page MembershipPage
	if err := c.doJSON(ctx, http.MethodGet, "/crm/v3/lists/"+listID+"/memberships", q, nil, &page); err != nil {
		return nil, eris.Wrap(err, "hubspot: list memberships "+listID)
	}
	return &page, nil
}

// ListContactsLegacy fetches contacts through the v1 list endpoint. It is the
// alternate resolution path used when the v3 membership walk yields nothing.
func (c *httpClient) ListContactsLegacy(ctx context.Context, listID string, properties []string) ([]Object, error) {
	q := url.Values{}
	q.Set("count", "100")
	if len(properties) > 0 {
		q.Set("property", strings.Join(properties, ","))
	}

	var resp legacyContactsResponse
	if err := c.doJSON(ctx, http.MethodGet, "/contacts/v1/lists/"+listID+"/contacts/all", q, nil, &resp); err != nil {
		return nil, eris.Wrap(err, "hubspot: legacy list contacts "+listID)
	}

	objects := make([]Object, 0, len(resp.Contacts))
	for _, lc := range resp.Contacts {
		props := make(map[string]string, len(lc.Properties))
		for name, v := range lc.Properties {
			props[name] = v.Value
		}
		objects = append(objects, Object{
			ID:         strconv.FormatInt(lc.VID, 10),
			Properties: props,
		})
	}
	return objects, nil
}
