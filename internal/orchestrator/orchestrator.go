// Package orchestrator sequences the per-contact pipeline across a whole
// segment: enrich, generate, publish, one contact at a time with pacing in
// between. A contact's failure becomes a failed result record, never an
// aborted batch.
package orchestrator

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/outreach-cli/internal/enrich"
	"github.com/sells-group/outreach-cli/internal/ideas"
	"github.com/sells-group/outreach-cli/internal/model"
	"github.com/sells-group/outreach-cli/internal/publish"
)

// Orchestrator runs the analysis pipeline for single contacts and for whole
// segments.
type Orchestrator struct {
	resolver  *enrich.SegmentResolver
	enricher  *enrich.ContactEnricher
	ideas     *ideas.Service
	publisher *publish.Publisher
	pacer     Pacer
	log       *zap.Logger
	now       func() time.Time
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithPacer overrides the inter-contact pacer.
func WithPacer(p Pacer) Option {
	return func(o *Orchestrator) { o.pacer = p }
}

// WithClock overrides the time source, for tests.
func WithClock(now func() time.Time) Option {
	return func(o *Orchestrator) { o.now = now }
}

// New wires an orchestrator from the pipeline components.
func New(resolver *enrich.SegmentResolver, enricher *enrich.ContactEnricher, ideaSvc *ideas.Service, publisher *publish.Publisher, log *zap.Logger, opts ...Option) *Orchestrator {
	if log == nil {
		log = zap.L()
	}
	o := &Orchestrator{
		resolver:  resolver,
		enricher:  enricher,
		ideas:     ideaSvc,
		publisher: publisher,
		pacer:     noPacer{},
		log:       log,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// RunOne executes the full pipeline for a single contact and returns both
// the analysis and what was published.
func (o *Orchestrator) RunOne(ctx context.Context, contactID string) (*model.AnalysisResult, []model.PublishedTask, error) {
	enriched, err := o.enricher.Enrich(ctx, contactID)
	if err != nil {
		return nil, nil, err
	}

	result := o.ideas.Analyze(ctx, enriched)

	published, err := o.publisher.Publish(ctx, result)
	if err != nil {
		return result, nil, err
	}
	return result, published, nil
}

// Analyze runs enrichment and idea generation without publishing, for
// read-only inspection surfaces.
func (o *Orchestrator) Analyze(ctx context.Context, contactID string) (*model.AnalysisResult, error) {
	enriched, err := o.enricher.Enrich(ctx, contactID)
	if err != nil {
		return nil, err
	}
	return o.ideas.Analyze(ctx, enriched), nil
}

// Run processes every contact in the segment sequentially. Context
// cancellation stops scheduling new contacts but the report for the
// contacts already processed is still returned.
func (o *Orchestrator) Run(ctx context.Context, segmentID string) (*model.BatchReport, error) {
	report := &model.BatchReport{
		RunID:     uuid.NewString(),
		SegmentID: segmentID,
		StartedAt: o.now().UTC(),
	}

	contacts, err := o.resolver.Resolve(ctx, segmentID)
	if err != nil {
		return nil, eris.Wrap(err, "orchestrator: resolve segment")
	}
	o.log.Info("segment resolved",
		zap.String("run_id", report.RunID),
		zap.String("segment_id", segmentID),
		zap.Int("contacts", len(contacts)))

	for i, contact := range contacts {
		if ctx.Err() != nil {
			o.log.Warn("run cancelled, stopping before next contact",
				zap.String("run_id", report.RunID),
				zap.Int("processed", i))
			break
		}
		if i > 0 {
			if err := o.pacer.Wait(ctx); err != nil {
				break
			}
		}

		result := o.processContact(ctx, contact)
		report.Results = append(report.Results, result)
		report.TotalProcessed++
		if result.Succeeded() {
			report.Succeeded++
		} else {
			report.Failed++
		}
	}

	report.FinishedAt = o.now().UTC()
	o.log.Info("batch finished",
		zap.String("run_id", report.RunID),
		zap.Int("total", report.TotalProcessed),
		zap.Int("succeeded", report.Succeeded),
		zap.Int("failed", report.Failed))
	return report, nil
}

// processContact walks one contact through the state machine. Any failure
// transitions to Failed with the state it failed in preserved in the error
// message.
func (o *Orchestrator) processContact(ctx context.Context, contact model.Contact) model.ContactResult {
	result := model.ContactResult{
		ContactID: contact.ID,
		Email:     contact.Email,
		State:     model.StatePending,
	}

	result.State = model.StateEnriching
	enriched, err := o.enricher.Enrich(ctx, contact.ID)
	if err != nil {
		return o.failContact(result, err)
	}

	result.State = model.StateGenerating
	analysis := o.ideas.Analyze(ctx, enriched)
	result.GeneratedWithAI = analysis.GeneratedWithAI
	result.Provenance = analysis.Provenance
	result.OwnerID = analysis.OwnerID

	result.State = model.StatePublishing
	published, err := o.publisher.Publish(ctx, analysis)
	if err != nil {
		return o.failContact(result, err)
	}
	for _, task := range published {
		switch task.Source {
		case model.SourceCRM:
			result.TaskID = task.ID
		case model.SourceTracker:
			result.TrackerTaskIDs = append(result.TrackerTaskIDs, task.ID)
		}
	}

	result.State = model.StateDone
	return result
}

func (o *Orchestrator) failContact(result model.ContactResult, err error) model.ContactResult {
	o.log.Error("contact processing failed",
		zap.String("contact_id", result.ContactID),
		zap.String("state", string(result.State)),
		zap.Error(err))
	result.Error = err.Error()
	result.State = model.StateFailed
	return result
}
