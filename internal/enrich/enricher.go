package enrich

import (
	"context"
	"sort"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/outreach-cli/internal/metrics"
	"github.com/sells-group/outreach-cli/internal/model"
	"github.com/sells-group/outreach-cli/pkg/hubspot"
)

// engagementFetchLimit caps how much raw history is pulled before the recent
// window is applied.
const engagementFetchLimit = 100

// ContactEnricher assembles the full EnrichedContext for one contact.
type ContactEnricher struct {
	crm hubspot.Client
	log *zap.Logger
	now func() time.Time
}

// EnricherOption configures a ContactEnricher.
type EnricherOption func(*ContactEnricher)

// WithClock overrides the time source, for tests.
func WithClock(now func() time.Time) EnricherOption {
	return func(e *ContactEnricher) { e.now = now }
}

// NewContactEnricher creates an enricher over the given CRM client.
func NewContactEnricher(crm hubspot.Client, log *zap.Logger, opts ...EnricherOption) *ContactEnricher {
	if log == nil {
		log = zap.L()
	}
	e := &ContactEnricher{crm: crm, log: log, now: time.Now}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Enrich fetches the contact plus its company, deals, and recent
// communications, then derives metrics. Only the contact fetch itself is
// fatal; every associated fetch degrades to empty with a logged warning.
func (e *ContactEnricher) Enrich(ctx context.Context, contactID string) (*model.EnrichedContext, error) {
	obj, err := e.crm.GetContact(ctx, contactID, contactProperties)
	if err != nil {
		return nil, eris.Wrap(err, "enrich: fetch contact "+contactID)
	}
	contact := contactFromObject(obj)

	enriched := &model.EnrichedContext{
		Contact:        contact,
		Company:        e.fetchCompany(ctx, contactID),
		Deals:          e.fetchDeals(ctx, contactID),
		Communications: e.fetchCommunications(ctx, contactID),
		EnrichedAt:     e.now().UTC(),
	}
	enriched.Metrics = metrics.Compute(contact, enriched.Deals, enriched.Communications, enriched.EnrichedAt)
	return enriched, nil
}

func (e *ContactEnricher) fetchCompany(ctx context.Context, contactID string) *model.Company {
	ids, err := e.crm.ListAssociations(ctx, "contacts", contactID, "companies")
	if err != nil {
		e.log.Warn("company association lookup failed",
			zap.String("contact_id", contactID), zap.Error(err))
		return nil
	}
	if len(ids) == 0 {
		return nil
	}

	obj, err := e.crm.GetCompany(ctx, ids[0], companyProperties)
	if err != nil {
		e.log.Warn("company fetch failed",
			zap.String("contact_id", contactID),
			zap.String("company_id", ids[0]), zap.Error(err))
		return nil
	}
	return companyFromObject(obj)
}

// fetchDeals loads the contact's deals and resolves stage/pipeline labels
// through a catalog fetched once per enrichment call. Catalog failure
// degrades to raw ids.
func (e *ContactEnricher) fetchDeals(ctx context.Context, contactID string) []model.Deal {
	ids, err := e.crm.ListAssociations(ctx, "contacts", contactID, "deals")
	if err != nil {
		e.log.Warn("deal association lookup failed",
			zap.String("contact_id", contactID), zap.Error(err))
		return nil
	}
	if len(ids) == 0 {
		return nil
	}

	var catalog *hubspot.StageCatalog
	pipelines, err := e.crm.GetDealPipelines(ctx)
	if err != nil {
		e.log.Warn("pipeline catalog fetch failed, using raw stage ids",
			zap.Error(err))
	} else {
		catalog = hubspot.BuildStageCatalog(pipelines)
	}

	var deals []model.Deal
	for _, id := range ids {
		obj, err := e.crm.GetDeal(ctx, id, dealProperties)
		if err != nil {
			e.log.Warn("deal fetch failed",
				zap.String("contact_id", contactID),
				zap.String("deal_id", id), zap.Error(err))
			continue
		}
		deals = append(deals, dealFromObject(obj, catalog))
	}
	return deals
}

// fetchCommunications pulls recent engagements, drops the pipeline's own
// tasks, sorts newest-first, and caps to the recent window.
func (e *ContactEnricher) fetchCommunications(ctx context.Context, contactID string) []model.Communication {
	page, err := e.crm.ListEngagements(ctx, contactID, engagementFetchLimit)
	if err != nil {
		e.log.Warn("engagement fetch failed",
			zap.String("contact_id", contactID), zap.Error(err))
		return nil
	}

	var comms []model.Communication
	for _, rec := range page.Results {
		comm := communicationFromRecord(rec)
		if comm.IsSelfTask() {
			continue
		}
		comms = append(comms, comm)
	}

	sort.Slice(comms, func(i, j int) bool {
		return comms[i].Timestamp.After(comms[j].Timestamp)
	})
	if len(comms) > model.MaxRecentCommunications {
		comms = comms[:model.MaxRecentCommunications]
	}
	return comms
}
