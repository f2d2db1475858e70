package hubspot

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/rotisserie/eris"
)

func (c *httpClient) getObject(ctx context.Context, objectType, objectID string, properties []string) (*Object, error) {
	q := url.Values{}
	if len(properties) > 0 {
		q.Set("properties", strings.Join(properties, ","))
	}

	var obj Object
	if err := c.doJSON(ctx, http.MethodGet, "/crm/v3/objects/"+objectType+"/"+objectID, q, nil, &obj); err != nil {
		return nil, eris.Wrap(err, "hubspot: get "+objectType+" "+objectID)
	}
	return &obj, nil
}

// GetContact fetches one contact with the given properties.
func (c *httpClient) GetContact(ctx context.Context, contactID string, properties []string) (*Object, error) {
	return c.getObject(ctx, "contacts", contactID, properties)
}

// GetCompany fetches one company with the given properties.
func (c *httpClient) GetCompany(ctx context.Context, companyID string, properties []string) (*Object, error) {
	return c.getObject(ctx, "companies", companyID, properties)
}

// GetDeal fetches one deal with the given properties.
func (c *httpClient) GetDeal(ctx context.Context, dealID string, properties []string) (*Object, error) {
	return c.getObject(ctx, "deals", dealID, properties)
}

// BatchReadContacts fetches many contacts in one call.
func (c *httpClient) BatchReadContacts(ctx context.Context, contactIDs []string, properties []string) ([]Object, error) {
	inputs := make([]batchReadInput, len(contactIDs))
	for i, id := range contactIDs {
		inputs[i] = batchReadInput{ID: id}
	}
	req := batchReadRequest{Inputs: inputs, Properties: properties}

	var resp batchReadResponse
	if err := c.doJSON(ctx, http.MethodPost, "/crm/v3/objects/contacts/batch/read", nil, req, &resp); err != nil {
		return nil, eris.Wrap(err, "hubspot: batch read contacts")
	}
	return resp.Results, nil
}

// ListAssociations returns the ids of records of toType associated with the
// given record, e.g. ("contacts", id, "companies") or ("deals", id, "contacts").
func (c *httpClient) ListAssociations(ctx context.Context, fromType, objectID, toType string) ([]string, error) {
	var resp associationsResponse
	path := "/crm/v3/objects/" + fromType + "/" + objectID + "/associations/" + toType
	if err := c.doJSON(ctx, http.MethodGet, path, nil, nil, &resp); err != nil {
		return nil, eris.Wrap(err, "hubspot: associations "+fromType+" "+objectID+" -> "+toType)
	}

	ids := make([]string, 0, len(resp.Results))
	for _, a := range resp.Results {
		id := a.ID
		if id == "" {
			id = a.ToObjectID
		}
		if id != "" {
			ids = append(ids, id)
		}
	}
	return ids, nil
}
