// Package enrich resolves segment membership and assembles the per-contact
// context the rest of the pipeline consumes.
package enrich

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/outreach-cli/internal/model"
	"github.com/sells-group/outreach-cli/pkg/hubspot"
)

// membershipPageSize bounds each membership page request; batchReadLimit is
// the CRM's cap on batch-read inputs.
const (
	membershipPageSize = 100
	batchReadLimit     = 100
)

// SegmentResolver resolves a CRM segment to its member contacts.
type SegmentResolver struct {
	crm hubspot.Client
	log *zap.Logger
}

// NewSegmentResolver creates a resolver over the given CRM client.
func NewSegmentResolver(crm hubspot.Client, log *zap.Logger) *SegmentResolver {
	if log == nil {
		log = zap.L()
	}
	return &SegmentResolver{crm: crm, log: log}
}

// Resolve returns the contacts currently in the segment, in membership
// order. Deal segments are resolved through deal→contact associations. An
// empty segment is not an error. Authentication, access-denied, and
// segment-not-found failures propagate as distinct error kinds.
func (r *SegmentResolver) Resolve(ctx context.Context, segmentID string) ([]model.Contact, error) {
	list, err := r.crm.GetList(ctx, segmentID)
	if err != nil {
		return nil, eris.Wrap(err, "enrich: resolve segment "+segmentID)
	}

	memberIDs, err := r.collectMemberIDs(ctx, segmentID)
	if err != nil {
		return nil, eris.Wrap(err, "enrich: list segment members")
	}

	contactIDs := memberIDs
	if list.ObjectTypeID == hubspot.ObjectTypeDeal {
		contactIDs = r.contactsForDeals(ctx, memberIDs)
	}

	contacts := r.fetchContacts(ctx, contactIDs)
	if len(contacts) == 0 {
		return r.resolveLegacy(ctx, segmentID)
	}
	return contacts, nil
}

func (r *SegmentResolver) collectMemberIDs(ctx context.Context, segmentID string) ([]string, error) {
	var ids []string
	after := ""
	for {
		page, err := r.crm.ListMemberships(ctx, segmentID, after, membershipPageSize)
		if err != nil {
			return nil, err
		}
		for _, m := range page.Results {
			ids = append(ids, m.RecordID)
		}
		after = page.NextAfter()
		if after == "" {
			return ids, nil
		}
	}
}

// contactsForDeals maps deal ids to their associated contact ids,
// de-duplicating while preserving first-seen order. A single deal's
// association failure drops only that deal.
func (r *SegmentResolver) contactsForDeals(ctx context.Context, dealIDs []string) []string {
	seen := make(map[string]struct{}, len(dealIDs))
	var contactIDs []string
	for _, dealID := range dealIDs {
		ids, err := r.crm.ListAssociations(ctx, "deals", dealID, "contacts")
		if err != nil {
			r.log.Warn("deal association lookup failed",
				zap.String("deal_id", dealID), zap.Error(err))
			continue
		}
		for _, id := range ids {
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			contactIDs = append(contactIDs, id)
		}
	}
	return contactIDs
}

// fetchContacts batch-reads contact details in chunks of batchReadLimit,
// falling back to per-id fetches for a chunk whose batch call fails so one
// bad id cannot drop the rest.
func (r *SegmentResolver) fetchContacts(ctx context.Context, contactIDs []string) []model.Contact {
	var contacts []model.Contact
	for start := 0; start < len(contactIDs); start += batchReadLimit {
		end := min(start+batchReadLimit, len(contactIDs))
		chunk := contactIDs[start:end]

		objs, err := r.crm.BatchReadContacts(ctx, chunk, contactProperties)
		if err != nil {
			r.log.Warn("batch contact read failed, falling back to individual fetches",
				zap.Int("contacts", len(chunk)), zap.Error(err))
			contacts = append(contacts, r.fetchContactsIndividually(ctx, chunk)...)
			continue
		}
		for i := range objs {
			contacts = append(contacts, contactFromObject(&objs[i]))
		}
	}
	return contacts
}

func (r *SegmentResolver) fetchContactsIndividually(ctx context.Context, contactIDs []string) []model.Contact {
	var contacts []model.Contact
	for _, id := range contactIDs {
		obj, err := r.crm.GetContact(ctx, id, contactProperties)
		if err != nil {
			r.log.Warn("contact fetch failed",
				zap.String("contact_id", id), zap.Error(err))
			continue
		}
		contacts = append(contacts, contactFromObject(obj))
	}
	return contacts
}

// resolveLegacy is the alternate path for lists only reachable through the
// v1 contacts endpoint. Its failure yields an empty set, not an error.
func (r *SegmentResolver) resolveLegacy(ctx context.Context, segmentID string) ([]model.Contact, error) {
	objs, err := r.crm.ListContactsLegacy(ctx, segmentID, contactProperties)
	if err != nil {
		r.log.Warn("legacy list resolution failed",
			zap.String("segment_id", segmentID), zap.Error(err))
		return nil, nil
	}
	contacts := make([]model.Contact, 0, len(objs))
	for i := range objs {
		contacts = append(contacts, contactFromObject(&objs[i]))
	}
	return contacts, nil
}
