// Package ideas generates ranked outreach ideas for an enriched contact.
// The AI strategy is preferred; any backend or parse failure falls back to a
// deterministic rule engine, so generation itself never fails the pipeline.
package ideas

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/sells-group/outreach-cli/internal/model"
	"github.com/sells-group/outreach-cli/internal/signals"
	"github.com/sells-group/outreach-cli/pkg/anthropic"
	"github.com/sells-group/outreach-cli/pkg/gdocs"
)

// Service produces AnalysisResults from enriched contacts.
type Service struct {
	backend    anthropic.Client // nil when the generation backend is not configured
	modelName  string
	maxTokens  int64
	guide      gdocs.Fetcher // nil when no guide doc is configured
	guideDocID string
	signals    signals.Source
	log        *zap.Logger
	now        func() time.Time
}

// ServiceOption configures the idea service.
type ServiceOption func(*Service)

// WithBackend enables the AI strategy with the given backend and model.
func WithBackend(backend anthropic.Client, modelName string, maxTokens int64) ServiceOption {
	return func(s *Service) {
		s.backend = backend
		s.modelName = modelName
		s.maxTokens = maxTokens
	}
}

// WithGuide enables the guidance-document prefix on the system prompt.
func WithGuide(fetcher gdocs.Fetcher, docID string) ServiceOption {
	return func(s *Service) {
		s.guide = fetcher
		s.guideDocID = docID
	}
}

// WithSignals sets the external signal source.
func WithSignals(src signals.Source) ServiceOption {
	return func(s *Service) { s.signals = src }
}

// WithClock overrides the time source, for tests.
func WithClock(now func() time.Time) ServiceOption {
	return func(s *Service) { s.now = now }
}

// NewService creates an idea service. With no options it runs rule-only.
func NewService(log *zap.Logger, opts ...ServiceOption) *Service {
	if log == nil {
		log = zap.L()
	}
	s := &Service{
		log:     log,
		signals: signals.NewFileSource(""),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Analyze generates ideas for the enriched contact and assembles the full
// AnalysisResult. It never returns an error: every failure path lands on the
// rule-based fallback.
func (s *Service) Analyze(ctx context.Context, enriched *model.EnrichedContext) *model.AnalysisResult {
	events := s.upcomingEvents(ctx)
	news := s.companyNews(ctx, enriched.Company)
	ideas, provenance := s.generate(ctx, enriched, events, news)

	result := &model.AnalysisResult{
		ContactID:       enriched.Contact.ID,
		ContactName:     enriched.Contact.FullName(),
		ContactEmail:    enriched.Contact.Email,
		ContactPhone:    enriched.Contact.Phone,
		LifecycleStage:  enriched.Contact.LifecycleStage,
		OwnerID:         enriched.Contact.OwnerID,
		Metrics:         enriched.Metrics,
		Deals:           enriched.Deals,
		Communications:  enriched.Communications,
		Ideas:           ideas,
		Provenance:      provenance,
		GeneratedWithAI: provenance == model.ProvenanceAI,
		GeneratedAt:     s.now().UTC(),
	}
	if co := enriched.Company; co != nil {
		result.CompanyName = co.Name
		result.CompanyDomain = co.Domain
		result.CompanyIndustry = co.Industry
	}
	result.HighPriority = isHighPriority(result)
	return result
}

func (s *Service) generate(ctx context.Context, enriched *model.EnrichedContext, events []signals.Event, news []signals.NewsItem) ([]model.Idea, model.Provenance) {
	if s.backend == nil {
		return rulesIdeas(enriched, events), model.ProvenanceFallbackDisabled
	}

	resp, err := s.backend.CreateMessage(ctx, anthropic.MessageRequest{
		Model:     s.modelName,
		MaxTokens: s.maxTokens,
		System:    buildSystemPrompt(s.fetchGuide(ctx)),
		Messages: []anthropic.Message{
			{Role: "user", Content: buildUserPrompt(enriched, events, news)},
		},
	})
	if err != nil {
		s.log.Warn("generation backend failed, using rule fallback",
			zap.String("contact_id", enriched.Contact.ID), zap.Error(err))
		return rulesIdeas(enriched, events), model.ProvenanceFallbackError
	}

	ideas, err := parseIdeas(resp.Text())
	if err != nil {
		s.log.Warn("generation response unusable, using rule fallback",
			zap.String("contact_id", enriched.Contact.ID), zap.Error(err))
		return rulesIdeas(enriched, events), model.ProvenanceFallbackError
	}
	return ideas, model.ProvenanceAI
}

// fetchGuide is best-effort: a missing or failing guide never blocks
// generation.
func (s *Service) fetchGuide(ctx context.Context) string {
	if s.guide == nil || s.guideDocID == "" {
		return ""
	}
	guide, err := s.guide.FetchGuide(ctx, s.guideDocID)
	if err != nil {
		s.log.Warn("guide fetch failed, generating without it", zap.Error(err))
		return ""
	}
	return guide
}

func (s *Service) upcomingEvents(ctx context.Context) []signals.Event {
	events, err := s.signals.UpcomingEvents(ctx, s.now())
	if err != nil {
		s.log.Warn("event signal fetch failed", zap.Error(err))
		return nil
	}
	return events
}

func (s *Service) companyNews(ctx context.Context, company *model.Company) []signals.NewsItem {
	if company == nil {
		return nil
	}
	news, err := s.signals.CompanyNews(ctx, company)
	if err != nil {
		s.log.Warn("news signal fetch failed",
			zap.String("company", company.Name), zap.Error(err))
		return nil
	}
	return news
}

func isHighPriority(result *model.AnalysisResult) bool {
	if result.Metrics.DaysSinceLastContact > model.HighPriorityContactThreshold {
		return true
	}
	for _, idea := range result.Ideas {
		if idea.Priority == model.PriorityHigh {
			return true
		}
	}
	return false
}
