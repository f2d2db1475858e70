package enrich

import (
	"strconv"
	"strings"
	"time"

	"github.com/sells-group/outreach-cli/internal/model"
	"github.com/sells-group/outreach-cli/pkg/hubspot"
)

// Property sets requested from the CRM. Explicit selection keeps responses
// small and makes the pipeline's data dependencies visible in one place.
var (
	contactProperties = []string{
		"firstname", "lastname", "email", "phone",
		"lifecyclestage", "hs_lead_status", "hubspot_owner_id",
		"createdate", "lastmodifieddate",
	}
	companyProperties = []string{
		"name", "domain", "industry", "numberofemployees",
		"annualrevenue", "city", "state", "country",
	}
	dealProperties = []string{
		"dealname", "dealstage", "pipeline", "amount",
		"deal_currency_code", "closedate", "dealtype",
		"hubspot_owner_id", "createdate", "hs_lastmodifieddate",
	}
)

// Subject and body caps keep each retained communication bounded, so prompts
// and task descriptions stay a predictable size.
const (
	maxCommunicationSubject = 200
	maxCommunicationBody    = 500
)

func contactFromObject(obj *hubspot.Object) model.Contact {
	p := obj.Properties
	return model.Contact{
		ID:             obj.ID,
		FirstName:      p["firstname"],
		LastName:       p["lastname"],
		Email:          p["email"],
		Phone:          p["phone"],
		LifecycleStage: p["lifecyclestage"],
		LeadStatus:     p["hs_lead_status"],
		OwnerID:        p["hubspot_owner_id"],
		CreatedAt:      parseTime(p["createdate"]),
		LastModifiedAt: parseTime(p["lastmodifieddate"]),
	}
}

func companyFromObject(obj *hubspot.Object) *model.Company {
	p := obj.Properties
	return &model.Company{
		ID:            obj.ID,
		Name:          p["name"],
		Domain:        p["domain"],
		Industry:      p["industry"],
		Employees:     int(parseFloat(p["numberofemployees"])),
		AnnualRevenue: p["annualrevenue"],
		City:          p["city"],
		State:         p["state"],
		Country:       p["country"],
	}
}

// dealFromObject maps a raw deal record, resolving stage and pipeline ids to
// labels through the catalog. A nil catalog degrades to the raw ids.
func dealFromObject(obj *hubspot.Object, catalog *hubspot.StageCatalog) model.Deal {
	p := obj.Properties
	return model.Deal{
		ID:             obj.ID,
		Name:           p["dealname"],
		Stage:          catalog.StageLabel(p["dealstage"]),
		StageID:        p["dealstage"],
		Pipeline:       catalog.PipelineLabel(p["pipeline"]),
		PipelineID:     p["pipeline"],
		Amount:         parseFloat(p["amount"]),
		Currency:       p["deal_currency_code"],
		CloseDate:      parseTime(p["closedate"]),
		Type:           p["dealtype"],
		OwnerID:        p["hubspot_owner_id"],
		CreatedAt:      parseTime(p["createdate"]),
		LastModifiedAt: parseTime(p["hs_lastmodifieddate"]),
	}
}

func communicationFromRecord(rec hubspot.EngagementRecord) model.Communication {
	commType := communicationType(rec.Engagement.Type)
	subject := rec.Metadata.Subject
	if subject == "" {
		subject = rec.Metadata.Title
	}
	if len(subject) > maxCommunicationSubject {
		subject = subject[:maxCommunicationSubject]
	}

	body := firstNonEmpty(rec.Metadata.Body, rec.Metadata.Text, rec.Metadata.Notes)
	if len(body) > maxCommunicationBody {
		body = body[:maxCommunicationBody]
	}

	direction := model.DirectionOutbound
	if strings.EqualFold(rec.Engagement.Type, "INCOMING_EMAIL") ||
		strings.EqualFold(rec.Metadata.Direction, "INCOMING") {
		direction = model.DirectionInbound
	}

	comm := model.Communication{
		ID:        strconv.FormatInt(rec.Engagement.ID, 10),
		Type:      commType,
		Timestamp: time.UnixMilli(rec.Engagement.Timestamp).UTC(),
		Subject:   subject,
		Body:      body,
		Direction: direction,
	}
	if rec.Engagement.OwnerID != 0 {
		comm.OwnerID = strconv.FormatInt(rec.Engagement.OwnerID, 10)
	}
	return comm
}

func communicationType(engagementType string) model.CommunicationType {
	switch strings.ToUpper(engagementType) {
	case "EMAIL", "INCOMING_EMAIL", "FORWARDED_EMAIL":
		return model.CommEmail
	case "CALL":
		return model.CommCall
	case "NOTE":
		return model.CommNote
	case "MEETING":
		return model.CommMeeting
	case "TASK":
		return model.CommTask
	default:
		return model.CommOther
	}
}

// parseTime accepts the two timestamp encodings the CRM uses: RFC 3339 on
// the v3 endpoints and epoch milliseconds on the legacy ones.
func parseTime(s string) *time.Time {
	if s == "" {
		return nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		t = t.UTC()
		return &t
	}
	if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
		t := time.UnixMilli(ms).UTC()
		return &t
	}
	return nil
}

func parseFloat(s string) float64 {
	if s == "" {
		return 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return f
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
