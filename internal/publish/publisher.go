// Package publish persists analysis results as tasks: one mandatory task in
// the CRM, plus one best-effort task per idea in the secondary tracker.
package publish

import (
	"context"
	"strconv"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/outreach-cli/internal/model"
	"github.com/sells-group/outreach-cli/pkg/hubspot"
	"github.com/sells-group/outreach-cli/pkg/tracker"
)

// trackerTaskStatus is the initial status of every tracker task.
const trackerTaskStatus = "To Do"

// Publisher writes analysis results out to the CRM and, when configured,
// the secondary tracker.
type Publisher struct {
	crm       hubspot.Client
	tracker   tracker.Client // nil when the tracker is not configured
	trackerDB string
	log       *zap.Logger
	now       func() time.Time
}

// PublisherOption configures a Publisher.
type PublisherOption func(*Publisher)

// WithTracker enables secondary-tracker publication into the given database.
func WithTracker(c tracker.Client, database string) PublisherOption {
	return func(p *Publisher) {
		p.tracker = c
		p.trackerDB = database
	}
}

// WithClock overrides the time source, for tests.
func WithClock(now func() time.Time) PublisherOption {
	return func(p *Publisher) { p.now = now }
}

// NewPublisher creates a publisher over the CRM client.
func NewPublisher(crm hubspot.Client, log *zap.Logger, opts ...PublisherOption) *Publisher {
	if log == nil {
		log = zap.L()
	}
	p := &Publisher{crm: crm, log: log, now: time.Now}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// trackerConfigured gates all secondary-tracker calls.
func (p *Publisher) trackerConfigured() bool {
	return p.tracker != nil && p.trackerDB != ""
}

// Publish creates the CRM task first, then one tracker task per idea.
// CRM task failure is fatal; individual tracker task failures are logged
// and skipped. Publication is append-only.
func (p *Publisher) Publish(ctx context.Context, result *model.AnalysisResult) ([]model.PublishedTask, error) {
	crmTask, err := p.publishCRMTask(ctx, result)
	if err != nil {
		return nil, err
	}
	published := []model.PublishedTask{*crmTask}

	if p.trackerConfigured() && len(result.Ideas) > 0 {
		published = append(published, p.publishTrackerTasks(ctx, result)...)
	}
	return published, nil
}

func (p *Publisher) publishCRMTask(ctx context.Context, result *model.AnalysisResult) (*model.PublishedTask, error) {
	subject := taskSubject(result)
	properties := map[string]string{
		"hs_task_subject":  subject,
		"hs_task_body":     taskBody(result),
		"hs_task_status":   "NOT_STARTED",
		"hs_task_priority": crmTaskPriority(result),
		"hs_task_type":     "TODO",
		"hs_timestamp":     strconv.FormatInt(p.now().UnixMilli(), 10),
	}
	if result.OwnerID != "" {
		properties["hubspot_owner_id"] = result.OwnerID
	}

	obj, err := p.crm.CreateTask(ctx, properties)
	if err != nil {
		return nil, eris.Wrap(err, "publish: create crm task for contact "+result.ContactID)
	}

	if err := p.crm.AssociateTaskWithContact(ctx, obj.ID, result.ContactID); err != nil {
		// Association failure leaves an orphaned but visible task; the
		// publication itself still counts.
		p.log.Warn("task association failed",
			zap.String("task_id", obj.ID),
			zap.String("contact_id", result.ContactID), zap.Error(err))
	}

	return &model.PublishedTask{
		ID:     obj.ID,
		Source: model.SourceCRM,
		Name:   subject,
		Status: "NOT_STARTED",
	}, nil
}

// publishTrackerTasks is a best-effort per-idea loop: one idea's failure
// must not prevent the remaining ideas from being attempted.
func (p *Publisher) publishTrackerTasks(ctx context.Context, result *model.AnalysisResult) []model.PublishedTask {
	var published []model.PublishedTask
	for _, idea := range result.Ideas {
		created, err := tracker.CreateTask(ctx, p.tracker, p.trackerDB, tracker.Task{
			Name:        idea.Title,
			Description: trackerDescription(result, idea),
			Status:      trackerTaskStatus,
			Priority:    trackerPriority(idea.Priority),
			Tags:        []string{"outreach", idea.Channel},
		})
		if err != nil {
			p.log.Warn("tracker task creation failed",
				zap.String("contact_id", result.ContactID),
				zap.String("idea", idea.Title), zap.Error(err))
			continue
		}
		published = append(published, model.PublishedTask{
			ID:     created.ID,
			Source: model.SourceTracker,
			Name:   created.Name,
			URL:    created.URL,
			Status: created.Status,
		})
	}
	return published
}

func crmTaskPriority(result *model.AnalysisResult) string {
	if result.HighPriority {
		return "HIGH"
	}
	return "MEDIUM"
}

// trackerPriority maps idea priorities onto the tracker's scale. The
// tracker's Urgent tier exists but no idea priority maps to it.
func trackerPriority(p model.Priority) tracker.TaskPriority {
	switch p {
	case model.PriorityHigh:
		return tracker.TaskPriorityHigh
	case model.PriorityMedium:
		return tracker.TaskPriorityNormal
	default:
		return tracker.TaskPriorityLow
	}
}
