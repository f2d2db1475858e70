package model

import "time"

// MaxRecentCommunications bounds how much history is carried past the
// enricher. Older engagements exist in the CRM but are not handed downstream.
const MaxRecentCommunications = 10

// Metrics are the engagement metrics derived from an enriched contact.
// Computation is pure and deterministic; see internal/metrics.
type Metrics struct {
	DaysSinceLastContact  int     `json:"days_since_last_contact"`
	DaysSinceCreation     int     `json:"days_since_creation"`
	DaysSinceLastActivity int     `json:"days_since_last_activity"`
	ActiveDeals           int     `json:"active_deals"`
	TotalDealAmount       float64 `json:"total_deal_amount"`
	TotalCommunications   int     `json:"total_communications"`
}

// EnrichedContext aggregates everything known about one contact at analysis
// time. It is constructed fresh per analysis call and never cached across
// contacts.
type EnrichedContext struct {
	Contact        Contact         `json:"contact"`
	Company        *Company        `json:"company,omitempty"`
	Deals          []Deal          `json:"deals"`
	Communications []Communication `json:"communications"`
	Metrics        Metrics         `json:"metrics"`
	EnrichedAt     time.Time       `json:"enriched_at"`
}

// PrimaryDeal returns the first associated deal, or nil when the contact has
// none.
func (e *EnrichedContext) PrimaryDeal() *Deal {
	if len(e.Deals) == 0 {
		return nil
	}
	return &e.Deals[0]
}

// LastCommunication returns the most recent retained communication, or nil.
// Communications are sorted newest-first by the enricher.
func (e *EnrichedContext) LastCommunication() *Communication {
	if len(e.Communications) == 0 {
		return nil
	}
	return &e.Communications[0]
}
