package hubspot

// Object is a generic CRM record: an id plus the explicitly requested
// property values. HubSpot returns all property values as strings.
type Object struct {
	ID         string            `json:"id"`
	Properties map[string]string `json:"properties"`
}

// List describes a contact or deal list/segment.
type List struct {
	ListID         string `json:"listId"`
	Name           string `json:"name"`
	ProcessingType string `json:"processingType"`
	ObjectTypeID   string `json:"objectTypeId"`
	Size           int    `json:"size"`
}

// ObjectTypeDeal is the objectTypeId HubSpot assigns to deal lists.
// Contact lists carry "0-1".
const ObjectTypeDeal = "0-3"

// listEnvelope wraps GET /crm/v3/lists/{id}.
type listEnvelope struct {
	List List `json:"list"`
}

// Membership is one record in a list membership page.
type Membership struct {
	RecordID string `json:"recordId"`
}

// MembershipPage is one page of GET /crm/v3/lists/{id}/memberships.
type MembershipPage struct {
	Results []Membership `json:"results"`
	Paging  *Paging      `json:"paging,omitempty"`
}

// NextAfter returns the continuation cursor, or "" when this is the last page.
func (p *MembershipPage) NextAfter() string {
	if p.Paging == nil || p.Paging.Next == nil {
		return ""
	}
	return p.Paging.Next.After
}

// Paging carries the v3 continuation cursor.
type Paging struct {
	Next *PagingNext `json:"next,omitempty"`
}

// PagingNext holds the cursor for the next page.
type PagingNext struct {
	After string `json:"after"`
}

// batchReadRequest is the body of POST /crm/v3/objects/{type}/batch/read.
type batchReadRequest struct {
	Inputs     []batchReadInput `json:"inputs"`
	Properties []string         `json:"properties"`
}

type batchReadInput struct {
	ID string `json:"id"`
}

type batchReadResponse struct {
	Results []Object `json:"results"`
}

// association is one entry of GET .../associations/{toType}.
type association struct {
	ID         string `json:"id"`
	ToObjectID string `json:"toObjectId"`
}

type associationsResponse struct {
	Results []association `json:"results"`
}

// Pipeline is a deal pipeline with its stages, from the pipelines catalog.
type Pipeline struct {
	ID     string          `json:"id"`
	Label  string          `json:"label"`
	Stages []PipelineStage `json:"stages"`
}

// PipelineStage is a single stage within a pipeline.
type PipelineStage struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

type pipelinesResponse struct {
	Results []Pipeline `json:"results"`
}

// Engagement is the core of one logged interaction from the v1 engagements
// API. Timestamp is epoch milliseconds.
type Engagement struct {
	ID        int64  `json:"id"`
	Type      string `json:"type"`
	Timestamp int64  `json:"timestamp"`
	OwnerID   int64  `json:"ownerId"`
}

// EngagementMetadata carries the type-specific payload of an engagement.
// Only the fields the pipeline reads are mapped.
type EngagementMetadata struct {
	Subject    string `json:"subject"`
	Title      string `json:"title"`
	Body       string `json:"body"`
	HTML       string `json:"html"`
	Text       string `json:"text"`
	Notes      string `json:"notes"`
	Direction  string `json:"direction"`
	ToNumber   string `json:"toNumber"`
	FromNumber string `json:"fromNumber"`
}

// EngagementRecord pairs an engagement with its metadata.
type EngagementRecord struct {
	Engagement Engagement         `json:"engagement"`
	Metadata   EngagementMetadata `json:"metadata"`
}

// EngagementPage is one page of the contact engagements listing.
type EngagementPage struct {
	Results []EngagementRecord `json:"results"`
	HasMore bool               `json:"hasMore"`
	Offset  int64              `json:"offset"`
}

// legacyContact is a contact record from the v1 list-contacts endpoint.
type legacyContact struct {
	VID        int64                    `json:"vid"`
	Properties map[string]legacyVersion `json:"properties"`
}

type legacyVersion struct {
	Value string `json:"value"`
}

type legacyContactsResponse struct {
	Contacts []legacyContact `json:"contacts"`
}

// apiError is HubSpot's JSON error envelope.
type apiError struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}
