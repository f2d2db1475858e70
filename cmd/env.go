package main

import (
	"go.uber.org/zap"

	"github.com/sells-group/outreach-cli/internal/enrich"
	"github.com/sells-group/outreach-cli/internal/ideas"
	"github.com/sells-group/outreach-cli/internal/orchestrator"
	"github.com/sells-group/outreach-cli/internal/publish"
	"github.com/sells-group/outreach-cli/internal/signals"
	anthropicpkg "github.com/sells-group/outreach-cli/pkg/anthropic"
	"github.com/sells-group/outreach-cli/pkg/gdocs"
	"github.com/sells-group/outreach-cli/pkg/hubspot"
	"github.com/sells-group/outreach-cli/pkg/tracker"
)

// pipelineEnv holds the initialized clients and the orchestrator used by the
// run/batch/serve commands.
type pipelineEnv struct {
	CRM          hubspot.Client
	Resolver     *enrich.SegmentResolver
	Orchestrator *orchestrator.Orchestrator
}

// initEnv validates config and wires every pipeline component. The
// generation backend and the tracker are optional; the pipeline degrades to
// rule-based ideas and CRM-only publication without them.
func initEnv() (*pipelineEnv, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	log := zap.L()

	crm := hubspot.NewClient(cfg.HubSpot.Token,
		hubspot.WithBaseURL(cfg.HubSpot.BaseURL),
		hubspot.WithRateLimit(cfg.HubSpot.RateRPS),
	)

	ideaOpts := []ideas.ServiceOption{
		ideas.WithSignals(signals.NewFileSource(cfg.Signals.EventsFile)),
	}
	if cfg.Anthropic.Configured() {
		backend := anthropicpkg.NewClient(cfg.Anthropic.Key)
		ideaOpts = append(ideaOpts,
			ideas.WithBackend(backend, cfg.Anthropic.Model, int64(cfg.Anthropic.MaxTokens)))
	} else {
		log.Info("generation backend not configured, using rule-based ideas only")
	}
	if cfg.Guide.DocID != "" {
		fetcher := gdocs.NewFetcher(gdocs.WithMaxChars(cfg.Guide.MaxChars))
		ideaOpts = append(ideaOpts, ideas.WithGuide(fetcher, cfg.Guide.DocID))
	}

	publishOpts := []publish.PublisherOption{}
	if cfg.Tracker.Configured() {
		trackerClient := tracker.NewClient(cfg.Tracker.Token)
		publishOpts = append(publishOpts, publish.WithTracker(trackerClient, cfg.Tracker.TaskDB))
	} else {
		log.Info("tracker not configured, publishing to CRM only")
	}

	resolver := enrich.NewSegmentResolver(crm, log)
	orch := orchestrator.New(
		resolver,
		enrich.NewContactEnricher(crm, log),
		ideas.NewService(log, ideaOpts...),
		publish.NewPublisher(crm, log, publishOpts...),
		log,
		orchestrator.WithPacer(orchestrator.NewIntervalPacer(cfg.Batch.PacingInterval)),
	)

	return &pipelineEnv{
		CRM:          crm,
		Resolver:     resolver,
		Orchestrator: orch,
	}, nil
}

// segmentID resolves the segment to operate on: flag value first, then
// config.
func segmentID(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	return cfg.HubSpot.SegmentID
}
