package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/sells-group/outreach-cli/internal/enrich"
	"github.com/sells-group/outreach-cli/internal/ideas"
	"github.com/sells-group/outreach-cli/internal/model"
	"github.com/sells-group/outreach-cli/internal/publish"
	"github.com/sells-group/outreach-cli/pkg/hubspot"
)

// fakeCRM is a minimal in-memory CRM: a contact segment, per-contact fetch
// failures, and a task counter.
type fakeCRM struct {
	contactIDs   []string
	failContacts map[string]bool
	failTasks    bool
	tasksCreated int
}

func (f *fakeCRM) GetList(ctx context.Context, listID string) (*hubspot.List, error) {
	return &hubspot.List{ListID: listID, ObjectTypeID: "0-1"}, nil
}

func (f *fakeCRM) ListMemberships(ctx context.Context, listID, after string, limit int) (*hubspot.MembershipPage, error) {
	page := &hubspot.MembershipPage{}
	for _, id := range f.contactIDs {
		page.Results = append(page.Results, hubspot.Membership{RecordID: id})
	}
	return page, nil
}

func (f *fakeCRM) ListContactsLegacy(ctx context.Context, listID string, properties []string) ([]hubspot.Object, error) {
	return nil, nil
}

func (f *fakeCRM) GetContact(ctx context.Context, contactID string, properties []string) (*hubspot.Object, error) {
	if f.failContacts[contactID] {
		return nil, errors.New("contact fetch failed")
	}
	return &hubspot.Object{ID: contactID, Properties: map[string]string{
		"firstname": "Contact",
		"lastname":  contactID,
		"email":     contactID + "@example.com",
	}}, nil
}

func (f *fakeCRM) BatchReadContacts(ctx context.Context, contactIDs []string, properties []string) ([]hubspot.Object, error) {
	var objs []hubspot.Object
	for _, id := range contactIDs {
		objs = append(objs, hubspot.Object{ID: id, Properties: map[string]string{
			"email": id + "@example.com",
		}})
	}
	return objs, nil
}

func (f *fakeCRM) GetCompany(ctx context.Context, companyID string, properties []string) (*hubspot.Object, error) {
	return nil, errors.New("no company")
}

func (f *fakeCRM) GetDeal(ctx context.Context, dealID string, properties []string) (*hubspot.Object, error) {
	return nil, errors.New("no deal")
}

func (f *fakeCRM) ListAssociations(ctx context.Context, fromType, objectID, toType string) ([]string, error) {
	return nil, nil
}

func (f *fakeCRM) GetDealPipelines(ctx context.Context) ([]hubspot.Pipeline, error) {
	return nil, nil
}

func (f *fakeCRM) ListEngagements(ctx context.Context, contactID string, limit int) (*hubspot.EngagementPage, error) {
	return &hubspot.EngagementPage{}, nil
}

func (f *fakeCRM) CreateTask(ctx context.Context, properties map[string]string) (*hubspot.Object, error) {
	if f.failTasks {
		return nil, errors.New("task create failed")
	}
	f.tasksCreated++
	return &hubspot.Object{ID: fmt.Sprintf("task-%d", f.tasksCreated)}, nil
}

func (f *fakeCRM) AssociateTaskWithContact(ctx context.Context, taskID, contactID string) error {
	return nil
}

func newTestOrchestrator(crm hubspot.Client, opts ...Option) *Orchestrator {
	log := zap.NewNop()
	now := func() time.Time { return time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC) }
	return New(
		enrich.NewSegmentResolver(crm, log),
		enrich.NewContactEnricher(crm, log, enrich.WithClock(now)),
		ideas.NewService(log, ideas.WithClock(now)),
		publish.NewPublisher(crm, log, publish.WithClock(now)),
		log,
		append([]Option{WithClock(now)}, opts...)...,
	)
}

func TestRunProcessesWholeSegment(t *testing.T) {
	crm := &fakeCRM{contactIDs: []string{"c1", "c2", "c3"}}
	o := newTestOrchestrator(crm)

	report, err := o.Run(context.Background(), "seg-1")
	require.NoError(t, err)

	assert.NotEmpty(t, report.RunID)
	assert.Equal(t, 3, report.TotalProcessed)
	assert.Equal(t, 3, report.Succeeded)
	assert.Equal(t, 0, report.Failed)
	require.Len(t, report.Results, 3)
	for _, r := range report.Results {
		assert.Equal(t, model.StateDone, r.State)
		assert.NotEmpty(t, r.TaskID)
		assert.Equal(t, model.ProvenanceFallbackDisabled, r.Provenance)
	}
}

func TestRunIsolatesContactFailure(t *testing.T) {
	crm := &fakeCRM{
		contactIDs:   []string{"c1", "c2", "c3", "c4"},
		failContacts: map[string]bool{"c2": true},
	}
	o := newTestOrchestrator(crm)

	report, err := o.Run(context.Background(), "seg-1")
	require.NoError(t, err)

	assert.Equal(t, 4, report.TotalProcessed)
	assert.Equal(t, 3, report.Succeeded)
	assert.Equal(t, 1, report.Failed)

	failed := report.Results[1]
	assert.Equal(t, model.StateFailed, failed.State)
	assert.Equal(t, "c2", failed.ContactID)
	assert.NotEmpty(t, failed.Error)
	// Contacts after the failure are still processed.
	assert.Equal(t, model.StateDone, report.Results[3].State)
}

func TestRunPublishFailureMarksContactFailed(t *testing.T) {
	crm := &fakeCRM{contactIDs: []string{"c1"}, failTasks: true}
	o := newTestOrchestrator(crm)

	report, err := o.Run(context.Background(), "seg-1")
	require.NoError(t, err)

	require.Len(t, report.Results, 1)
	assert.Equal(t, model.StateFailed, report.Results[0].State)
	assert.Equal(t, 1, report.Failed)
}

func TestRunEmptySegment(t *testing.T) {
	crm := &fakeCRM{}
	o := newTestOrchestrator(crm)

	report, err := o.Run(context.Background(), "seg-1")
	require.NoError(t, err)
	assert.Equal(t, 0, report.TotalProcessed)
	assert.Empty(t, report.Results)
}

func TestRunStopsSchedulingOnCancel(t *testing.T) {
	crm := &fakeCRM{contactIDs: []string{"c1", "c2", "c3"}}

	ctx, cancel := context.WithCancel(context.Background())
	o := newTestOrchestrator(crm, WithPacer(pacerFunc(func(ctx context.Context) error {
		cancel()
		return ctx.Err()
	})))

	report, err := o.Run(ctx, "seg-1")
	require.NoError(t, err)
	// First contact completes, cancellation lands at the pacing point.
	assert.Equal(t, 1, report.TotalProcessed)
}

func TestRunOne(t *testing.T) {
	crm := &fakeCRM{}
	o := newTestOrchestrator(crm)

	result, published, err := o.RunOne(context.Background(), "c1")
	require.NoError(t, err)
	assert.Equal(t, "c1", result.ContactID)
	assert.LessOrEqual(t, len(result.Ideas), model.MaxIdeasPerAnalysis)
	require.Len(t, published, 1)
	assert.Equal(t, model.SourceCRM, published[0].Source)
}

func TestAnalyzeDoesNotPublish(t *testing.T) {
	crm := &fakeCRM{}
	o := newTestOrchestrator(crm)

	result, err := o.Analyze(context.Background(), "c1")
	require.NoError(t, err)
	assert.NotEmpty(t, result.Ideas)
	assert.Zero(t, crm.tasksCreated)
}

type pacerFunc func(context.Context) error

func (f pacerFunc) Wait(ctx context.Context) error { return f(ctx) }

func TestIntervalPacerSpacing(t *testing.T) {
	p := NewIntervalPacer(20 * time.Millisecond)
	ctx := context.Background()

	start := time.Now()
	require.NoError(t, p.Wait(ctx))
	require.NoError(t, p.Wait(ctx))
	assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)
}

func TestZeroIntervalPacerNeverBlocks(t *testing.T) {
	p := NewIntervalPacer(0)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.NoError(t, p.Wait(ctx))
}
