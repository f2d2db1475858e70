package hubspot

import (
	"context"
	"net/http"

	"github.com/rotisserie/eris"
)

// taskToContactAssociationType is the HubSpot-defined association type id
// for task -> contact.
const taskToContactAssociationType = "204"

// CreateTask creates a task record and returns it. Publication is
// append-only; there is no update or delete counterpart.
func (c *httpClient) CreateTask(ctx context.Context, properties map[string]string) (*Object, error) {
	req := struct {
		Properties map[string]string `json:"properties"`
	}{Properties: properties}

	var obj Object
	if err := c.doJSON(ctx, http.MethodPost, "/crm/v3/objects/tasks", nil, req, &obj); err != nil {
		return nil, eris.Wrap(err, "hubspot: create task")
	}
	return &obj, nil
}

// AssociateTaskWithContact links a created task to the contact it is about.
func (c *httpClient) AssociateTaskWithContact(ctx context.Context, taskID, contactID string) error {
	path := "/crm/v3/objects/tasks/" + taskID + "/associations/contacts/" + contactID + "/" + taskToContactAssociationType
	if err := c.doJSON(ctx, http.MethodPut, path, nil, nil, nil); err != nil {
		return eris.Wrap(err, "hubspot: associate task "+taskID+" with contact "+contactID)
	}
	return nil
}
