package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/sells-group/outreach-cli/internal/config"
	"github.com/sells-group/outreach-cli/internal/enrich"
	"github.com/sells-group/outreach-cli/internal/ideas"
	"github.com/sells-group/outreach-cli/internal/model"
	"github.com/sells-group/outreach-cli/internal/orchestrator"
	"github.com/sells-group/outreach-cli/internal/publish"
	"github.com/sells-group/outreach-cli/internal/resilience"
	"github.com/sells-group/outreach-cli/pkg/hubspot"
)

// stubCRM serves a one-contact segment from memory.
type stubCRM struct{}

func (stubCRM) GetList(ctx context.Context, listID string) (*hubspot.List, error) {
	return &hubspot.List{ListID: listID, ObjectTypeID: "0-1"}, nil
}

func (stubCRM) ListMemberships(ctx context.Context, listID, after string, limit int) (*hubspot.MembershipPage, error) {
	return &hubspot.MembershipPage{Results: []hubspot.Membership{{RecordID: "c1"}}}, nil
}

func (stubCRM) ListContactsLegacy(ctx context.Context, listID string, properties []string) ([]hubspot.Object, error) {
	return nil, nil
}

func (stubCRM) GetContact(ctx context.Context, contactID string, properties []string) (*hubspot.Object, error) {
	if contactID != "c1" {
		return nil, resilience.ErrNotFound
	}
	return &hubspot.Object{ID: "c1", Properties: map[string]string{
		"firstname": "Ada", "lastname": "Lovelace", "email": "ada@example.com",
	}}, nil
}

func (stubCRM) BatchReadContacts(ctx context.Context, contactIDs []string, properties []string) ([]hubspot.Object, error) {
	return []hubspot.Object{{ID: "c1", Properties: map[string]string{"email": "ada@example.com"}}}, nil
}

func (stubCRM) GetCompany(ctx context.Context, companyID string, properties []string) (*hubspot.Object, error) {
	return nil, resilience.ErrNotFound
}

func (stubCRM) GetDeal(ctx context.Context, dealID string, properties []string) (*hubspot.Object, error) {
	return nil, resilience.ErrNotFound
}

func (stubCRM) ListAssociations(ctx context.Context, fromType, objectID, toType string) ([]string, error) {
	return nil, nil
}

func (stubCRM) GetDealPipelines(ctx context.Context) ([]hubspot.Pipeline, error) {
	return nil, nil
}

func (stubCRM) ListEngagements(ctx context.Context, contactID string, limit int) (*hubspot.EngagementPage, error) {
	return &hubspot.EngagementPage{}, nil
}

func (stubCRM) CreateTask(ctx context.Context, properties map[string]string) (*hubspot.Object, error) {
	return &hubspot.Object{ID: "task-1"}, nil
}

func (stubCRM) AssociateTaskWithContact(ctx context.Context, taskID, contactID string) error {
	return nil
}

func newTestEnv() *pipelineEnv {
	log := zap.NewNop()
	crm := stubCRM{}
	resolver := enrich.NewSegmentResolver(crm, log)
	orch := orchestrator.New(
		resolver,
		enrich.NewContactEnricher(crm, log),
		ideas.NewService(log),
		publish.NewPublisher(crm, log),
		log,
	)
	return &pipelineEnv{CRM: crm, Resolver: resolver, Orchestrator: orch}
}

func setupServeTest(t *testing.T) http.Handler {
	t.Helper()
	cfg = &config.Config{
		HubSpot: config.HubSpotConfig{Token: "t", SegmentID: "seg-1"},
		Batch:   config.BatchConfig{PacingInterval: time.Millisecond},
	}
	return newRouter(newTestEnv())
}

func TestServeHealth(t *testing.T) {
	router := setupServeTest(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestServeListContacts(t *testing.T) {
	router := setupServeTest(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/contacts", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Count    int             `json:"count"`
		Contacts []model.Contact `json:"contacts"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 1, body.Count)
	require.Len(t, body.Contacts, 1)
	assert.Equal(t, "c1", body.Contacts[0].ID)
}

func TestServeAnalyzeContact(t *testing.T) {
	router := setupServeTest(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/contacts/c1/analyze", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Analysis  *model.AnalysisResult `json:"analysis"`
		Published []model.PublishedTask `json:"published"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "c1", body.Analysis.ContactID)
	require.Len(t, body.Published, 1)
	assert.Equal(t, "task-1", body.Published[0].ID)
}

func TestServeContactNotFound(t *testing.T) {
	router := setupServeTest(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/contacts/zzz", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestServeAnalyzeAllAccepted(t *testing.T) {
	router := setupServeTest(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/contacts/analyze-all", nil))

	assert.Equal(t, http.StatusAccepted, rec.Code)
}

func TestStatusForError(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, statusForError(resilience.ErrNotFound))
	assert.Equal(t, http.StatusUnauthorized, statusForError(resilience.ErrAuthentication))
	assert.Equal(t, http.StatusForbidden, statusForError(resilience.ErrAccessDenied))
	assert.Equal(t, http.StatusServiceUnavailable, statusForError(resilience.ErrRateLimited))
	assert.Equal(t, http.StatusInternalServerError, statusForError(assert.AnError))
}
